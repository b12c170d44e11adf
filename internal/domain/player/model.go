package player

import (
	"fmt"
	"strings"
)

// Player is a selectable athlete as published by the fantasy feed.
// Values are snapshotted once per load and never mutated during scoring.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	KnownName string
	Cost      int64
	Positions []Position
	TeamID    int64
	Status    string
	Provider  ProviderStats
}

// ProviderStats are the season numbers reported by the feed itself.
// They are passed through for display and never used for scoring.
type ProviderStats struct {
	TotalPoints float64
	AvgPoints   float64
	OwnedBy     float64
	HighScore   float64
	LowScore    float64
	GamesPlayed int
}

func (p Player) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return strings.TrimSpace(p.KnownName)
	}
	return name
}

func (p Player) Roles() RoleFlags {
	return Classify(p.Positions)
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.Cost < 0 {
		return fmt.Errorf("player cost cannot be negative")
	}

	return nil
}

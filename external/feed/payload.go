package feed

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
)

type squadItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type playerItem struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	KnownName string          `json:"known_name"`
	Cost      float64         `json:"cost"`
	SquadID   int64           `json:"squad_id"`
	Status    string          `json:"status"`
	Positions []int           `json:"positions"`
	Stats     playerStatsItem `json:"stats"`
}

type playerStatsItem struct {
	TotalPoints float64 `json:"total_points"`
	AvgPoints   float64 `json:"avg_points"`
	OwnedBy     float64 `json:"owned_by"`
	HighScore   float64 `json:"high_score"`
	LowScore    float64 `json:"low_score"`
	GamesPlayed int     `json:"games_played"`
}

// matchStatItem is one entry of stats/players/{id}.json. match_id arrives
// as a number or a string; stats mixes counters with lists such as the
// per-game positions.
type matchStatItem struct {
	MatchID any            `json:"match_id"`
	Stats   map[string]any `json:"stats"`
}

func (s squadItem) toDomain() team.Team {
	return team.Team{
		ID:    s.ID,
		Name:  strings.TrimSpace(s.Name),
		Short: strings.TrimSpace(s.ShortName),
	}
}

func (p playerItem) toDomain() player.Player {
	positions := make([]player.Position, 0, len(p.Positions))
	for _, code := range p.Positions {
		positions = append(positions, player.PositionFromCode(code))
	}

	return player.Player{
		ID:        p.ID,
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		KnownName: strings.TrimSpace(p.KnownName),
		Cost:      int64(math.Round(p.Cost)),
		Positions: positions,
		TeamID:    p.SquadID,
		Status:    strings.TrimSpace(p.Status),
		Provider: player.ProviderStats{
			TotalPoints: p.Stats.TotalPoints,
			AvgPoints:   p.Stats.AvgPoints,
			OwnedBy:     p.Stats.OwnedBy,
			HighScore:   p.Stats.HighScore,
			LowScore:    p.Stats.LowScore,
			GamesPlayed: p.Stats.GamesPlayed,
		},
	}
}

// toDomain returns false for entries without a usable match id.
func (m matchStatItem) toDomain() (scoring.MatchStatRecord, bool) {
	matchID := normalizeMatchID(m.MatchID)
	if matchID == "" {
		return scoring.MatchStatRecord{}, false
	}

	counts := make(map[scoring.StatCode]int, len(m.Stats))
	for key, raw := range m.Stats {
		value, ok := numericValue(raw)
		if !ok {
			continue
		}
		code := scoring.StatCode(strings.ToUpper(strings.TrimSpace(key)))
		counts[code] = int(math.Floor(value))
	}

	return scoring.MatchStatRecord{MatchID: matchID, Counts: counts}, true
}

func normalizeMatchID(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(int64(v), 10)
	case int64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

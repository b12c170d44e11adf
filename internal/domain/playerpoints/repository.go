package playerpoints

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
)

// Source supplies the raw inputs of a scoring run.
type Source interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListPlayers(ctx context.Context) ([]player.Player, error)
	// ListMatchStats returns match histories keyed by player id. Players
	// without history may be absent from the result.
	ListMatchStats(ctx context.Context, playerIDs []int64) (map[int64][]scoring.MatchStatRecord, error)
}

// Snapshot is one consistent load from a Source.
type Snapshot struct {
	Players  []player.Player
	Teams    map[int64]team.Team
	Matches  map[int64][]scoring.MatchStatRecord
	LoadedAt time.Time
}

func (s Snapshot) TeamName(teamID int64) string {
	return team.NameOf(s.Teams, teamID)
}

// Run is a complete aggregation result; persisting it replaces the
// previous run wholesale.
type Run struct {
	ID          string
	RuleTable   string
	Codes       []scoring.StatCode
	GeneratedAt time.Time
	Season      []Record
	Weekly      map[gameweek.Label][]Record
}

func (r Run) RecordCount() int {
	total := len(r.Season)
	for _, records := range r.Weekly {
		total += len(records)
	}
	return total
}

type Repository interface {
	ReplaceRun(ctx context.Context, run Run) error
}

package playerpoints

import (
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
)

// ScoreHistory scores every match of one player with table. Records
// without a match id are skipped.
func ScoreHistory(table scoring.RuleTable, p player.Player, history []scoring.MatchStatRecord) []scoring.ScoredMatch {
	roles := p.Roles()
	out := make([]scoring.ScoredMatch, 0, len(history))
	for _, stats := range history {
		if stats.MatchID == "" {
			continue
		}
		out = append(out, table.Score(stats, roles))
	}
	return out
}

// AggregateSeason sums every match. A player with no matches has no record.
func AggregateSeason(p player.Player, teamName string, matches []scoring.ScoredMatch) (Record, bool) {
	if len(matches) == 0 {
		return Record{}, false
	}
	return aggregate(p, teamName, ScopeSeason, matches), true
}

// AggregateWeekly buckets matches with ladder and aggregates each week
// independently.
func AggregateWeekly(p player.Player, teamName string, matches []scoring.ScoredMatch, ladder gameweek.Ladder) map[gameweek.Label]Record {
	buckets := make(map[gameweek.Label][]scoring.ScoredMatch)
	for _, match := range matches {
		label := ladder.BucketString(match.MatchID)
		buckets[label] = append(buckets[label], match)
	}

	out := make(map[gameweek.Label]Record, len(buckets))
	for label, weekMatches := range buckets {
		out[label] = aggregate(p, teamName, WeekScope(label), weekMatches)
	}
	return out
}

func aggregate(p player.Player, teamName string, scope Scope, matches []scoring.ScoredMatch) Record {
	record := newRecord(p, teamName, scope)
	for _, match := range matches {
		record.Totals.Add(match)
	}
	return record
}

func newRecord(p player.Player, teamName string, scope Scope) Record {
	return Record{
		PlayerID:  p.ID,
		Name:      p.DisplayName(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		KnownName: p.KnownName,
		TeamID:    p.TeamID,
		TeamName:  teamName,
		Cost:      p.Cost,
		Positions: append([]player.Position(nil), p.Positions...),
		OwnedBy:   p.Provider.OwnedBy,
		Scope:     scope,
		Totals:    Totals{Points: make(map[scoring.StatCode]int)},
	}
}

package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
)

// Source serves a fixed roster; it backs local runs when the feed is off.
type Source struct {
	mu      sync.RWMutex
	teams   []team.Team
	players []player.Player
	matches map[int64][]scoring.MatchStatRecord
}

func NewSource(teams []team.Team, players []player.Player, matches map[int64][]scoring.MatchStatRecord) *Source {
	s := &Source{}
	s.Replace(teams, players, matches)
	return s
}

func NewSeedSource() *Source {
	return NewSource(SeedTeams(), SeedPlayers(), SeedMatchStats())
}

// Replace swaps the whole dataset.
func (s *Source) Replace(teams []team.Team, players []player.Player, matches map[int64][]scoring.MatchStatRecord) {
	copied := make(map[int64][]scoring.MatchStatRecord, len(matches))
	for id, history := range matches {
		copied[id] = append([]scoring.MatchStatRecord(nil), history...)
	}

	s.mu.Lock()
	s.teams = append([]team.Team(nil), teams...)
	s.players = append([]player.Player(nil), players...)
	s.matches = copied
	s.mu.Unlock()
}

func (s *Source) ListTeams(_ context.Context) ([]team.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, 0, len(s.teams))
	out = append(out, s.teams...)
	return out, nil
}

func (s *Source) ListPlayers(_ context.Context) ([]player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(s.players))
	out = append(out, s.players...)
	return out, nil
}

func (s *Source) ListMatchStats(_ context.Context, playerIDs []int64) (map[int64][]scoring.MatchStatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64][]scoring.MatchStatRecord, len(playerIDs))
	for _, id := range playerIDs {
		history, ok := s.matches[id]
		if !ok {
			continue
		}
		out[id] = append([]scoring.MatchStatRecord(nil), history...)
	}
	return out, nil
}

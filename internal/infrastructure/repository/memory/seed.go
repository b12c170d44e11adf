package memory

import (
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/domain/team"
)

const (
	TeamIDGalaxy  int64 = 7
	TeamIDInterMI int64 = 12
	TeamIDLAFC    int64 = 19
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDGalaxy, Name: "LA Galaxy", Short: "LA"},
		{ID: TeamIDInterMI, Name: "Inter Miami CF", Short: "MIA"},
		{ID: TeamIDLAFC, Name: "Los Angeles FC", Short: "LAFC"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{
			ID: 1001, FirstName: "John", LastName: "McCarthy", Cost: 5_000_000, TeamID: TeamIDGalaxy,
			Positions: []player.Position{player.PositionGoalkeeper},
			Provider:  player.ProviderStats{OwnedBy: 8.25, TotalPoints: 41, AvgPoints: 4.1, HighScore: 12, LowScore: -1, GamesPlayed: 10},
		},
		{
			ID: 1002, FirstName: "Maya", LastName: "Yoshida", Cost: 5_500_000, TeamID: TeamIDGalaxy,
			Positions: []player.Position{player.PositionDefender},
			Provider:  player.ProviderStats{OwnedBy: 3.1},
		},
		{
			ID: 1003, FirstName: "Lionel", LastName: "Messi", KnownName: "Messi", Cost: 12_500_000, TeamID: TeamIDInterMI,
			Positions: []player.Position{player.PositionMidfielder, player.PositionForward},
			Provider:  player.ProviderStats{OwnedBy: 64.8, TotalPoints: 120, AvgPoints: 8.6, HighScore: 21, LowScore: 2, GamesPlayed: 14},
		},
		{
			ID: 1004, FirstName: "Denis", LastName: "Bouanga", Cost: 10_000_000, TeamID: TeamIDLAFC,
			Positions: []player.Position{player.PositionForward},
			Provider:  player.ProviderStats{OwnedBy: 31.4},
		},
		{
			ID: 1005, FirstName: "Sergio", LastName: "Busquets", Cost: 7_000_000, TeamID: TeamIDInterMI,
			Positions: []player.Position{player.PositionMidfielder},
			Provider:  player.ProviderStats{OwnedBy: 5.5},
		},
		{
			ID: 1006, FirstName: "Unsigned", LastName: "Trialist", Cost: 4_000_000, TeamID: 999,
			Positions: []player.Position{player.PositionUnknown},
		},
	}
}

// SeedMatchStats covers weeks on both sides of the ladder tail and one
// player without any match.
func SeedMatchStats() map[int64][]scoring.MatchStatRecord {
	return map[int64][]scoring.MatchStatRecord{
		1001: {
			stats("20250301", scoring.StatMinutes, 90, scoring.StatSaves, 8, scoring.StatPenaltySaves, 2),
			stats("20250315", scoring.StatMinutes, 90, scoring.StatSaves, 3, scoring.StatGoalsConceded, 2, scoring.StatYellowCards, 1),
			stats("20251220", scoring.StatMinutes, 90, scoring.StatSaves, 5, scoring.StatGoalsConceded, 1),
		},
		1002: {
			stats("20250301", scoring.StatMinutes, 90, scoring.StatGoals, 1, scoring.StatClearances, 9),
			stats("20250412", scoring.StatMinutes, 58, scoring.StatGoalsConceded, 3, scoring.StatFoulsCommitted, 4),
		},
		1003: {
			stats("20250301", scoring.StatMinutes, 90, scoring.StatGoals, 2, scoring.StatAssists, 1, scoring.StatKeyPasses, 5, scoring.StatPasses, 71),
			stats("20250308", scoring.StatMinutes, 70, scoring.StatAssists, 2, scoring.StatShotsOnGoal, 4, scoring.StatFoulsSuffered, 6),
			stats("20250510", scoring.StatMinutes, 90, scoring.StatPenaltyMisses, 1, scoring.StatCrosses, 6),
		},
		1004: {
			stats("20250308", scoring.StatMinutes, 90, scoring.StatGoals, 1, scoring.StatShotsOnGoal, 5, scoring.StatRedCards, 1),
			stats("20250620", scoring.StatMinutes, 45, scoring.StatOwnGoals, 1),
		},
		1005: {
			stats("20250412", scoring.StatMinutes, 90, scoring.StatPasses, 105, scoring.StatInterceptions, 4),
		},
	}
}

func stats(matchID string, pairs ...any) scoring.MatchStatRecord {
	counts := make(map[scoring.StatCode]int, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		code, _ := pairs[i].(scoring.StatCode)
		value, _ := pairs[i+1].(int)
		counts[code] = value
	}
	return scoring.MatchStatRecord{MatchID: matchID, Counts: counts}
}

package scoring

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

var (
	goalkeeper = player.RoleFlags{Goalkeeper: true}
	defender   = player.RoleFlags{Defender: true}
	midfielder = player.RoleFlags{Midfielder: true}
	forward    = player.RoleFlags{Forward: true}
	unknown    = player.RoleFlags{}
)

func record(counts map[StatCode]int) MatchStatRecord {
	return MatchStatRecord{MatchID: "20250301", Counts: counts}
}

func TestScoreMatch_DefenderWithGoalAndCleanSheet(t *testing.T) {
	got := ScoreMatch(record(map[StatCode]int{StatMinutes: 90, StatGoals: 1, StatGoalsConceded: 0}), defender)

	want := map[StatCode]int{StatMinutes: 2, StatGoals: 6, StatCleanSheet: 5}
	for code, points := range want {
		if got.Point(code) != points {
			t.Fatalf("unexpected %s points: got=%d want=%d", code, got.Point(code), points)
		}
	}
	if got.Total != 13 {
		t.Fatalf("unexpected total: got=%d want=13", got.Total)
	}
	if got.MatchID != "20250301" {
		t.Fatalf("unexpected match id: %q", got.MatchID)
	}
}

func TestScoreMatch_GoalkeeperSaves(t *testing.T) {
	got := ScoreMatch(record(map[StatCode]int{
		StatMinutes:       90,
		StatPenaltySaves:  2,
		StatSaves:         8,
		StatGoalsConceded: 0,
	}), goalkeeper)

	if got.Point(StatSaves) != 2 {
		t.Fatalf("unexpected saves points: %d", got.Point(StatSaves))
	}
	if got.Point(StatPenaltySaves) != 10 {
		t.Fatalf("unexpected penalty save points: %d", got.Point(StatPenaltySaves))
	}
	if got.Point(StatCleanSheet) != 5 {
		t.Fatalf("unexpected clean sheet points: %d", got.Point(StatCleanSheet))
	}
	if got.Total != 19 {
		t.Fatalf("unexpected total: got=%d want=19", got.Total)
	}
}

func TestScoreMatch_RoleGatedRules(t *testing.T) {
	stats := record(map[StatCode]int{
		StatMinutes:       75,
		StatGoals:         2,
		StatGoalsConceded: 5,
		StatSaves:         9,
		StatPenaltySaves:  1,
	})

	tests := []struct {
		name     string
		roles    player.RoleFlags
		goals    int
		conceded int
		saves    int
		penalty  int
	}{
		{name: "goalkeeper", roles: goalkeeper, goals: 12, conceded: -2, saves: 2, penalty: 5},
		{name: "defender", roles: defender, goals: 12, conceded: -2},
		{name: "midfielder", roles: midfielder, goals: 10},
		{name: "forward", roles: forward, goals: 10},
		{name: "no role", roles: unknown, goals: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreMatch(stats, tt.roles)
			if got.Point(StatGoals) != tt.goals {
				t.Fatalf("goals: got=%d want=%d", got.Point(StatGoals), tt.goals)
			}
			if got.Point(StatGoalsConceded) != tt.conceded {
				t.Fatalf("conceded: got=%d want=%d", got.Point(StatGoalsConceded), tt.conceded)
			}
			if got.Point(StatSaves) != tt.saves {
				t.Fatalf("saves: got=%d want=%d", got.Point(StatSaves), tt.saves)
			}
			if got.Point(StatPenaltySaves) != tt.penalty {
				t.Fatalf("penalty saves: got=%d want=%d", got.Point(StatPenaltySaves), tt.penalty)
			}
			if got.Point(StatCleanSheet) != 0 {
				t.Fatalf("clean sheet must not be awarded after conceding, got=%d", got.Point(StatCleanSheet))
			}
		})
	}
}

func TestScoreMatch_CleanSheet(t *testing.T) {
	tests := []struct {
		name     string
		roles    player.RoleFlags
		minutes  int
		conceded int
		want     int
	}{
		{name: "defender full match", roles: defender, minutes: 90, want: 5},
		{name: "goalkeeper exactly sixty", roles: goalkeeper, minutes: 60, want: 5},
		{name: "defender short match", roles: defender, minutes: 59, want: 0},
		{name: "defender conceded", roles: defender, minutes: 90, conceded: 1, want: 0},
		{name: "midfielder", roles: midfielder, minutes: 90, want: 1},
		{name: "midfielder and defender", roles: player.RoleFlags{Defender: true, Midfielder: true}, minutes: 90, want: 5},
		{name: "forward", roles: forward, minutes: 90, want: 0},
		{name: "forward no minutes", roles: forward, minutes: 0, want: 0},
		{name: "no role", roles: unknown, minutes: 90, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreMatch(record(map[StatCode]int{
				StatMinutes:       tt.minutes,
				StatGoalsConceded: tt.conceded,
			}), tt.roles)
			if got.Point(StatCleanSheet) != tt.want {
				t.Fatalf("clean sheet: got=%d want=%d", got.Point(StatCleanSheet), tt.want)
			}
		})
	}
}

func TestScoreMatch_MinutesTier(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 60: 1, 61: 2, 90: 2, 120: 2}
	for minutes, want := range tests {
		got := ScoreMatch(record(map[StatCode]int{StatMinutes: minutes, StatGoalsConceded: 1}), forward)
		if got.Point(StatMinutes) != want {
			t.Fatalf("minutes=%d: got=%d want=%d", minutes, got.Point(StatMinutes), want)
		}
	}
}

func TestScoreMatch_FloorDivisionRules(t *testing.T) {
	tests := []struct {
		code  StatCode
		count int
		want  int
	}{
		{StatPasses, 34, 0},
		{StatPasses, 35, 1},
		{StatPasses, 69, 1},
		{StatPasses, 70, 2},
		{StatCrosses, 2, 0},
		{StatCrosses, 7, 2},
		{StatKeyPasses, 4, 1},
		{StatClearances, 11, 2},
		{StatShotsOnGoal, 3, 0},
		{StatFoulsSuffered, 8, 2},
		{StatFoulsCommitted, 3, 0},
		{StatFoulsCommitted, 7, -1},
		{StatFoulsCommitted, 8, -2},
		{StatAssists, 2, 6},
		{StatYellowCards, 1, -1},
		{StatRedCards, 1, -3},
		{StatPenaltyMisses, 1, -2},
		{StatOwnGoals, 2, -4},
	}

	for _, tt := range tests {
		got := ScoreMatch(record(map[StatCode]int{tt.code: tt.count}), midfielder)
		if got.Point(tt.code) != tt.want {
			t.Fatalf("%s=%d: got=%d want=%d", tt.code, tt.count, got.Point(tt.code), tt.want)
		}
	}
}

func TestScoreMatch_MissingAndNegativeCounters(t *testing.T) {
	got := ScoreMatch(MatchStatRecord{MatchID: "1"}, unknown)
	if got.Total != 1 {
		t.Fatalf("empty record should only score the minutes tier, got total=%d", got.Total)
	}
	if len(got.Points) != len(StandardRuleTable().Rules) {
		t.Fatalf("every rule should report a contribution, got %d", len(got.Points))
	}

	got = ScoreMatch(record(map[StatCode]int{StatYellowCards: -3, StatGoals: -1}), forward)
	if got.Point(StatYellowCards) != 0 || got.Point(StatGoals) != 0 {
		t.Fatalf("negative counters must read as zero: %+v", got.Points)
	}
}

func TestScoreMatch_UnscoredCodesIgnored(t *testing.T) {
	got := ScoreMatch(record(map[StatCode]int{StatShots: 10, StatInterceptions: 4, StatMinutes: 90, StatGoalsConceded: 2}), forward)
	if _, ok := got.Points[StatShots]; ok {
		t.Fatalf("SH has no rule in the standard table")
	}
	if got.Total != 2 {
		t.Fatalf("unexpected total: got=%d want=2", got.Total)
	}
}

func TestScoreMatch_TotalIsSumAndDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	codes := StandardRuleTable().Codes()
	roles := []player.RoleFlags{goalkeeper, defender, midfielder, forward, unknown}

	for i := 0; i < 500; i++ {
		counts := make(map[StatCode]int, len(codes))
		for _, code := range codes {
			counts[code] = rng.Intn(100)
		}
		stats := record(counts)
		role := roles[i%len(roles)]

		first := ScoreMatch(stats, role)
		second := ScoreMatch(stats, role)
		sum := 0
		for code, points := range first.Points {
			sum += points
			if second.Points[code] != points {
				t.Fatalf("non-deterministic %s: %d vs %d", code, points, second.Points[code])
			}
		}
		if sum != first.Total {
			t.Fatalf("total %d does not match contribution sum %d", first.Total, sum)
		}
	}
}

func TestRuleTable_Swappable(t *testing.T) {
	table := RuleTable{
		Name: "goals-only",
		Rules: []Rule{
			{Code: StatGoals, Score: Multiply(StatGoals, 4)},
		},
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got := table.Score(record(map[StatCode]int{StatGoals: 2, StatMinutes: 90}), defender)
	if got.Total != 8 {
		t.Fatalf("unexpected total: got=%d want=8", got.Total)
	}
	if len(table.Codes()) != 1 || !table.Has(StatGoals) || table.Has(StatMinutes) {
		t.Fatalf("unexpected codes: %v", table.Codes())
	}
}

func TestRuleTable_Validate(t *testing.T) {
	tests := []struct {
		name  string
		table RuleTable
		want  error
	}{
		{name: "standard", table: StandardRuleTable()},
		{name: "empty", table: RuleTable{}, want: ErrEmptyRuleTable},
		{
			name: "duplicate",
			table: RuleTable{Rules: []Rule{
				{Code: StatGoals, Score: Multiply(StatGoals, 1)},
				{Code: StatGoals, Score: Multiply(StatGoals, 2)},
			}},
			want: ErrDuplicateRule,
		},
		{name: "nil score", table: RuleTable{Rules: []Rule{{Code: StatGoals}}}, want: ErrInvalidRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected error %v, got %v", tt.want, err)
			}
		})
	}
}

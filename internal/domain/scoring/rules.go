package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

var (
	ErrEmptyRuleTable = errors.New("rule table has no rules")
	ErrDuplicateRule  = errors.New("duplicate rule for stat code")
	ErrInvalidRule    = errors.New("invalid scoring rule")
)

// ScoreFunc computes one stat code's contribution from raw counters and role
// flags. It must not depend on any other rule's output.
type ScoreFunc func(stats MatchStatRecord, roles player.RoleFlags) int

type Rule struct {
	Code  StatCode
	Score ScoreFunc
}

// RuleTable is an ordered, swappable scoring convention. The order of Rules
// is also the column order of exported records.
type RuleTable struct {
	Name  string
	Rules []Rule
}

const cleanSheetMinMinutes = 60

// StandardRuleTable is the canonical MLS fantasy convention.
func StandardRuleTable() RuleTable {
	return RuleTable{
		Name: "standard",
		Rules: []Rule{
			{Code: StatMinutes, Score: MinutesTier(60, 1, 2)},
			{Code: StatGoals, Score: GoalsByRole(6, 5)},
			{Code: StatAssists, Score: Multiply(StatAssists, 3)},
			{Code: StatYellowCards, Score: Multiply(StatYellowCards, -1)},
			{Code: StatRedCards, Score: Multiply(StatRedCards, -3)},
			{Code: StatGoalsConceded, Score: When(player.RoleFlags.DefenderOrGoalkeeper, PerBlock(StatGoalsConceded, 2, -1))},
			{Code: StatCleanSheet, Score: CleanSheet(cleanSheetMinMinutes, 5, 1)},
			{Code: StatSaves, Score: When(isGoalkeeper, PerBlock(StatSaves, 4, 1))},
			{Code: StatPenaltySaves, Score: When(isGoalkeeper, Multiply(StatPenaltySaves, 5))},
			{Code: StatPenaltyMisses, Score: Multiply(StatPenaltyMisses, -2)},
			{Code: StatOwnGoals, Score: Multiply(StatOwnGoals, -2)},
			{Code: StatShotsOnGoal, Score: PerBlock(StatShotsOnGoal, 4, 1)},
			{Code: StatFoulsSuffered, Score: PerBlock(StatFoulsSuffered, 4, 1)},
			{Code: StatPasses, Score: PerBlock(StatPasses, 35, 1)},
			{Code: StatCrosses, Score: PerBlock(StatCrosses, 3, 1)},
			{Code: StatKeyPasses, Score: PerBlock(StatKeyPasses, 4, 1)},
			{Code: StatClearances, Score: PerBlock(StatClearances, 4, 1)},
			{Code: StatFoulsCommitted, Score: PerBlock(StatFoulsCommitted, 4, -1)},
		},
	}
}

var standardTable = StandardRuleTable()

// ScoreMatch scores one match with the standard table.
func ScoreMatch(stats MatchStatRecord, roles player.RoleFlags) ScoredMatch {
	return standardTable.Score(stats, roles)
}

// Score applies every rule independently and sums the contributions.
func (t RuleTable) Score(stats MatchStatRecord, roles player.RoleFlags) ScoredMatch {
	out := ScoredMatch{
		MatchID: stats.MatchID,
		Points:  make(map[StatCode]int, len(t.Rules)),
	}
	for _, rule := range t.Rules {
		if rule.Score == nil {
			continue
		}
		points := rule.Score(stats, roles)
		out.Points[rule.Code] = points
		out.Total += points
	}
	return out
}

func (t RuleTable) Codes() []StatCode {
	out := make([]StatCode, 0, len(t.Rules))
	for _, rule := range t.Rules {
		out = append(out, rule.Code)
	}
	return out
}

func (t RuleTable) Has(code StatCode) bool {
	for _, rule := range t.Rules {
		if rule.Code == code {
			return true
		}
	}
	return false
}

func (t RuleTable) Validate() error {
	if len(t.Rules) == 0 {
		return ErrEmptyRuleTable
	}

	seen := make(map[StatCode]struct{}, len(t.Rules))
	for _, rule := range t.Rules {
		if rule.Code == "" {
			return fmt.Errorf("%w: empty stat code", ErrInvalidRule)
		}
		if rule.Score == nil {
			return fmt.Errorf("%w: %s has no score function", ErrInvalidRule, rule.Code)
		}
		if _, exists := seen[rule.Code]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Code)
		}
		seen[rule.Code] = struct{}{}
	}

	return nil
}

// Multiply scores count*points.
func Multiply(code StatCode, points int) ScoreFunc {
	return func(stats MatchStatRecord, _ player.RoleFlags) int {
		return stats.Count(code) * points
	}
}

// PerBlock scores floor(count/size)*points. Counts are non-negative so
// integer division is floor division.
func PerBlock(code StatCode, size, points int) ScoreFunc {
	return func(stats MatchStatRecord, _ player.RoleFlags) int {
		if size <= 0 {
			return 0
		}
		return stats.Count(code) / size * points
	}
}

// When gates fn on a role predicate; other roles score 0.
func When(eligible func(player.RoleFlags) bool, fn ScoreFunc) ScoreFunc {
	return func(stats MatchStatRecord, roles player.RoleFlags) int {
		if eligible == nil || !eligible(roles) {
			return 0
		}
		return fn(stats, roles)
	}
}

// MinutesTier is a tier, not a count: short points up to threshold minutes,
// long points beyond it.
func MinutesTier(threshold, short, long int) ScoreFunc {
	return func(stats MatchStatRecord, _ player.RoleFlags) int {
		if stats.Minutes() <= threshold {
			return short
		}
		return long
	}
}

// GoalsByRole pays defenders and goalkeepers more per goal.
func GoalsByRole(defenderOrGoalkeeper, other int) ScoreFunc {
	return func(stats MatchStatRecord, roles player.RoleFlags) int {
		goals := stats.Count(StatGoals)
		if roles.DefenderOrGoalkeeper() {
			return goals * defenderOrGoalkeeper
		}
		return goals * other
	}
}

// CleanSheet is derived from minutes and goals conceded, not read from the
// CS counter.
func CleanSheet(minMinutes, defenderOrGoalkeeper, midfielder int) ScoreFunc {
	return func(stats MatchStatRecord, roles player.RoleFlags) int {
		if stats.Minutes() < minMinutes || stats.Count(StatGoalsConceded) != 0 {
			return 0
		}
		switch {
		case roles.DefenderOrGoalkeeper():
			return defenderOrGoalkeeper
		case roles.Midfielder:
			return midfielder
		default:
			return 0
		}
	}
}

func isGoalkeeper(roles player.RoleFlags) bool {
	return roles.Goalkeeper
}

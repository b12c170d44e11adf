package scoring

// StatCode is the feed's short identifier for a countable match event.
type StatCode string

const (
	StatMinutes        StatCode = "MIN"
	StatGoals          StatCode = "GL"
	StatAssists        StatCode = "ASS"
	StatYellowCards    StatCode = "YC"
	StatRedCards       StatCode = "RC"
	StatGoalsConceded  StatCode = "GC"
	StatCleanSheet     StatCode = "CS"
	StatSaves          StatCode = "GS"
	StatPenaltySaves   StatCode = "PS"
	StatPenaltyMisses  StatCode = "PM"
	StatOwnGoals       StatCode = "OG"
	StatShotsOnGoal    StatCode = "SGS"
	StatFoulsSuffered  StatCode = "FS"
	StatPasses         StatCode = "PSS"
	StatCrosses        StatCode = "CRS"
	StatKeyPasses      StatCode = "KP"
	StatClearances     StatCode = "CL"
	StatFoulsCommitted StatCode = "WF"
	StatAccuratePasses StatCode = "APS"
	StatAssistedShots  StatCode = "ASG"
	StatShots          StatCode = "SH"
	StatInterceptions  StatCode = "INT"
)

// MatchStatRecord holds one player's raw counters for one match.
// Codes missing from Counts are zero.
type MatchStatRecord struct {
	MatchID string
	Counts  map[StatCode]int
}

// Count returns the counter for code; absent or negative counters read as 0.
func (r MatchStatRecord) Count(code StatCode) int {
	v := r.Counts[code]
	if v < 0 {
		return 0
	}
	return v
}

func (r MatchStatRecord) Minutes() int {
	return r.Count(StatMinutes)
}

// ScoredMatch is the per-code point contribution of one match.
type ScoredMatch struct {
	MatchID string
	Points  map[StatCode]int
	Total   int
}

// Point returns the contribution of code, zero when the rule did not apply.
func (m ScoredMatch) Point(code StatCode) int {
	return m.Points[code]
}

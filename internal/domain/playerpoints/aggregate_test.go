package playerpoints

import (
	"testing"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
)

func testDefender() player.Player {
	return player.Player{
		ID:        101,
		FirstName: "Walker",
		LastName:  "Zimmerman",
		Cost:      9_500_000,
		Positions: []player.Position{player.PositionDefender},
		TeamID:    7,
		Provider:  player.ProviderStats{OwnedBy: 12.345},
	}
}

func testHistory() []scoring.MatchStatRecord {
	return []scoring.MatchStatRecord{
		{MatchID: "20250301", Counts: map[scoring.StatCode]int{scoring.StatMinutes: 90, scoring.StatGoals: 1}},
		{MatchID: "20250308", Counts: map[scoring.StatCode]int{scoring.StatMinutes: 90, scoring.StatGoalsConceded: 3, scoring.StatYellowCards: 1}},
		{MatchID: "20250420", Counts: map[scoring.StatCode]int{scoring.StatMinutes: 45, scoring.StatPasses: 70}},
		{MatchID: "", Counts: map[scoring.StatCode]int{scoring.StatGoals: 5}},
		{MatchID: "20251220", Counts: map[scoring.StatCode]int{scoring.StatMinutes: 90, scoring.StatAssists: 2}},
	}
}

func TestScoreHistory_SkipsRecordsWithoutMatchID(t *testing.T) {
	t.Parallel()

	matches := ScoreHistory(scoring.StandardRuleTable(), testDefender(), testHistory())
	if len(matches) != 4 {
		t.Fatalf("expected 4 scored matches, got %d", len(matches))
	}
	if matches[0].Total != 13 {
		t.Fatalf("unexpected first match total: %d", matches[0].Total)
	}
}

func TestAggregateSeason(t *testing.T) {
	t.Parallel()

	p := testDefender()
	matches := ScoreHistory(scoring.StandardRuleTable(), p, testHistory())
	record, ok := AggregateSeason(p, "LA Galaxy", matches)
	if !ok {
		t.Fatalf("expected season record")
	}

	// 13 + (2-1-1) + (1+2) + (2+6+5)
	if record.Totals.Combined != 29 {
		t.Fatalf("unexpected combined total: %d", record.Totals.Combined)
	}
	if record.Totals.Games != 4 {
		t.Fatalf("unexpected games: %d", record.Totals.Games)
	}
	if record.Totals.High != 13 || record.Totals.Low != 0 {
		t.Fatalf("unexpected high/low: %d/%d", record.Totals.High, record.Totals.Low)
	}
	if record.AveragePoints() != 7.25 {
		t.Fatalf("unexpected average: %v", record.AveragePoints())
	}
	if record.Totals.Point(scoring.StatGoals) != 6 || record.Totals.Point(scoring.StatAssists) != 6 {
		t.Fatalf("unexpected per-code totals: %+v", record.Totals.Points)
	}
	if record.Scope != ScopeSeason || record.TeamName != "LA Galaxy" || record.Name != "Walker Zimmerman" {
		t.Fatalf("unexpected record identity: %+v", record)
	}
	if record.FormattedCost() != "$9.5M" || record.FormattedOwnedBy() != "12.35%" {
		t.Fatalf("unexpected formatting: %s %s", record.FormattedCost(), record.FormattedOwnedBy())
	}
}

func TestAggregateSeason_NoMatches(t *testing.T) {
	t.Parallel()

	if _, ok := AggregateSeason(testDefender(), "LA Galaxy", nil); ok {
		t.Fatalf("expected no record for empty history")
	}
	if weekly := AggregateWeekly(testDefender(), "LA Galaxy", nil, gameweek.DefaultLadder()); len(weekly) != 0 {
		t.Fatalf("expected no weekly records, got %d", len(weekly))
	}
}

func TestAggregateWeekly_PartitionsAndSumsToSeason(t *testing.T) {
	t.Parallel()

	p := testDefender()
	matches := ScoreHistory(scoring.StandardRuleTable(), p, testHistory())
	weekly := AggregateWeekly(p, "LA Galaxy", matches, gameweek.DefaultLadder())

	if len(weekly) != 3 {
		t.Fatalf("expected 3 weeks, got %d: %+v", len(weekly), weekly)
	}
	week3, ok := weekly["Week 3"]
	if !ok || week3.Totals.Games != 2 || week3.Totals.Combined != 13 {
		t.Fatalf("unexpected week 3 record: %+v", week3)
	}
	if week3.Scope.Week() != "Week 3" || week3.Scope.IsSeason() {
		t.Fatalf("unexpected week 3 scope: %q", week3.Scope)
	}
	if _, ok := weekly["Week 13"]; !ok {
		t.Fatalf("expected tail week 13 record")
	}

	season, _ := AggregateSeason(p, "LA Galaxy", matches)
	sum := 0
	games := 0
	for _, record := range weekly {
		sum += record.Totals.Combined
		games += record.Totals.Games
	}
	if sum != season.Totals.Combined || games != season.Totals.Games {
		t.Fatalf("weekly totals %d/%d do not add up to season %d/%d", sum, games, season.Totals.Combined, season.Totals.Games)
	}
}

func TestTotals_MergeIsAssociativeAndCommutative(t *testing.T) {
	t.Parallel()

	matches := ScoreHistory(scoring.StandardRuleTable(), testDefender(), testHistory())

	var ab, c, abc Totals
	for _, m := range matches[:2] {
		ab.Add(m)
	}
	for _, m := range matches[2:] {
		c.Add(m)
	}
	for _, m := range matches {
		abc.Add(m)
	}

	merged := ab.Merge(c)
	reversed := c.Merge(ab)
	for _, got := range []Totals{merged, reversed} {
		if got.Combined != abc.Combined || got.Games != abc.Games || got.High != abc.High || got.Low != abc.Low {
			t.Fatalf("merge mismatch: got=%+v want=%+v", got, abc)
		}
		for code, points := range abc.Points {
			if got.Point(code) != points {
				t.Fatalf("merge mismatch for %s: got=%d want=%d", code, got.Point(code), points)
			}
		}
	}

	empty := Totals{}
	if got := empty.Merge(abc); got.High != abc.High || got.Low != abc.Low || got.Combined != abc.Combined {
		t.Fatalf("merge into empty lost values: %+v", got)
	}
	if got := abc.Merge(Totals{}); got.Games != abc.Games || got.Low != abc.Low {
		t.Fatalf("merge with empty changed values: %+v", got)
	}
}

func TestTotals_AverageWithoutGames(t *testing.T) {
	t.Parallel()

	var totals Totals
	if totals.Average() != 0 {
		t.Fatalf("expected zero average, got %v", totals.Average())
	}
}

func TestRecord_MatchesSearch(t *testing.T) {
	t.Parallel()

	record := Record{PlayerID: 101, Name: "Walker Zimmerman", FirstName: "Walker", LastName: "Zimmerman", KnownName: "Zim"}
	tests := map[string]bool{
		"":         true,
		"101":      true,
		"walker":   true,
		"ZIM":      true,
		"zimmer":   true,
		"10":       false,
		"Carlos":   false,
		" Walker ": true,
	}
	for term, want := range tests {
		if got := record.MatchesSearch(term); got != want {
			t.Fatalf("search %q: got=%v want=%v", term, got, want)
		}
	}
}

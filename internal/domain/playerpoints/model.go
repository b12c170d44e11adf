package playerpoints

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
)

// Scope is the aggregation window: the whole season or one week label.
type Scope string

const ScopeSeason Scope = "season"

func WeekScope(label gameweek.Label) Scope {
	return Scope(label)
}

func (s Scope) IsSeason() bool {
	return s == ScopeSeason
}

// Week returns the label of a weekly scope, empty for the season.
func (s Scope) Week() gameweek.Label {
	if s.IsSeason() {
		return ""
	}
	return gameweek.Label(s)
}

// Totals accumulates scored matches. The zero value is ready to use.
type Totals struct {
	Points   map[scoring.StatCode]int
	Combined int
	Games    int
	High     int
	Low      int
}

func (t *Totals) Add(match scoring.ScoredMatch) {
	if t.Points == nil {
		t.Points = make(map[scoring.StatCode]int, len(match.Points))
	}
	for code, points := range match.Points {
		t.Points[code] += points
	}
	t.observe(match.Total, match.Total, 1)
	t.Combined += match.Total
}

// Merge returns the sum of both accumulators; neither side is modified.
func (t Totals) Merge(other Totals) Totals {
	out := Totals{
		Points:   make(map[scoring.StatCode]int, len(t.Points)+len(other.Points)),
		Combined: t.Combined,
		Games:    t.Games,
		High:     t.High,
		Low:      t.Low,
	}
	for code, points := range t.Points {
		out.Points[code] += points
	}
	for code, points := range other.Points {
		out.Points[code] += points
	}
	if other.Games > 0 {
		out.observe(other.High, other.Low, other.Games)
		out.Combined += other.Combined
	}
	return out
}

func (t *Totals) observe(high, low, games int) {
	if t.Games == 0 || high > t.High {
		t.High = high
	}
	if t.Games == 0 || low < t.Low {
		t.Low = low
	}
	t.Games += games
}

func (t Totals) Point(code scoring.StatCode) int {
	return t.Points[code]
}

// Average is the combined total per game; zero when no games were played.
func (t Totals) Average() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Combined) / float64(t.Games)
}

// Record is one player's aggregate for one scope.
type Record struct {
	PlayerID  int64
	Name      string
	FirstName string
	LastName  string
	KnownName string
	TeamID    int64
	TeamName  string
	Cost      int64
	Positions []player.Position
	OwnedBy   float64
	Scope     Scope
	Totals    Totals
}

func (r Record) AveragePoints() float64 {
	return r.Totals.Average()
}

// FormattedCost renders cost in millions, e.g. "$9.5M".
func (r Record) FormattedCost() string {
	return fmt.Sprintf("$%.1fM", float64(r.Cost)/1_000_000)
}

func (r Record) FormattedOwnedBy() string {
	return fmt.Sprintf("%.2f%%", r.OwnedBy)
}

func (r Record) PositionLabel() string {
	return player.FormatPositions(r.Positions)
}

func (r Record) HasPosition(position player.Position) bool {
	for _, p := range r.Positions {
		if p == position {
			return true
		}
	}
	return false
}

// MatchesSearch reports an exact id or name match, ignoring case, or a
// substring of the display name.
func (r Record) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if fmt.Sprint(r.PlayerID) == term {
		return true
	}
	for _, name := range []string{r.FirstName, r.LastName, r.KnownName} {
		if strings.ToLower(strings.TrimSpace(name)) == term {
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.Name), term)
}

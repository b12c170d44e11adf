package gameweek

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLadder = errors.New("invalid week ladder")

// Rung maps every match id up to and including Threshold to Week.
type Rung struct {
	Threshold int64
	Week      int
}

// Ladder buckets date-shaped match ids (YYYYMMDD) into approximate weeks.
// Ids at or above SeasonFloor walk the rungs, then the tail formula;
// smaller ids fall back to (id mod MaxWeek)+1.
type Ladder struct {
	Rungs        []Rung
	SeasonFloor  int64
	TailAnchor   int64
	TailStep     int64
	TailBaseWeek int
	MaxWeek      int
	DefaultWeek  int
}

const (
	defaultSeasonFloor = 20250000
	defaultSeasonYear  = 2025
)

// DefaultLadder covers the 2025 season in half-month-offset monthly steps:
// 20250115 is week 1 through 20251215 as week 12.
func DefaultLadder() Ladder {
	rungs := make([]Rung, 0, 12)
	for month := 1; month <= 12; month++ {
		rungs = append(rungs, Rung{
			Threshold: int64(defaultSeasonYear*10000 + month*100 + 15),
			Week:      month,
		})
	}

	return Ladder{
		Rungs:        rungs,
		SeasonFloor:  defaultSeasonFloor,
		TailAnchor:   rungs[len(rungs)-1].Threshold,
		TailStep:     100,
		TailBaseWeek: 13,
		MaxWeek:      MaxWeek,
		DefaultWeek:  DefaultWeek,
	}
}

// Bucket never fails; negative ids get the default week.
func (l Ladder) Bucket(matchID int64) Label {
	return LabelFor(l.Week(matchID))
}

// BucketString buckets a raw id; anything that is not an integer gets the
// default week.
func (l Ladder) BucketString(raw string) Label {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return LabelFor(l.defaultWeek())
	}
	return l.Bucket(id)
}

func (l Ladder) Week(matchID int64) int {
	maxWeek := l.maxWeek()
	if matchID < 0 {
		return l.defaultWeek()
	}
	if matchID < l.SeasonFloor {
		return clamp(int(matchID%int64(maxWeek))+1, MinWeek, maxWeek)
	}

	for _, rung := range l.Rungs {
		if matchID <= rung.Threshold {
			return clamp(rung.Week, MinWeek, maxWeek)
		}
	}

	step := l.TailStep
	if step <= 0 {
		step = 1
	}
	offset := (matchID - l.TailAnchor) / step
	if offset > int64(maxWeek) {
		offset = int64(maxWeek)
	}
	week := clamp(l.TailBaseWeek+int(offset), l.TailBaseWeek, maxWeek)
	return clamp(week, MinWeek, maxWeek)
}

func (l Ladder) Validate() error {
	if l.maxWeek() < MinWeek {
		return fmt.Errorf("%w: max week must be >= %d", ErrInvalidLadder, MinWeek)
	}
	for i, rung := range l.Rungs {
		if rung.Week < MinWeek || rung.Week > l.maxWeek() {
			return fmt.Errorf("%w: week %d out of range", ErrInvalidLadder, rung.Week)
		}
		if i == 0 {
			continue
		}
		prev := l.Rungs[i-1]
		if rung.Threshold <= prev.Threshold {
			return fmt.Errorf("%w: threshold %d must be greater than %d", ErrInvalidLadder, rung.Threshold, prev.Threshold)
		}
		if rung.Week < prev.Week {
			return fmt.Errorf("%w: week %d after week %d", ErrInvalidLadder, rung.Week, prev.Week)
		}
	}
	if len(l.Rungs) > 0 && l.TailAnchor < l.Rungs[len(l.Rungs)-1].Threshold {
		return fmt.Errorf("%w: tail anchor %d below last threshold", ErrInvalidLadder, l.TailAnchor)
	}
	return nil
}

// ParseLadder reads "threshold:week,..." pairs. The tail continues one week
// after the last rung. An empty string yields DefaultLadder.
func ParseLadder(raw string) (Ladder, error) {
	ladder := DefaultLadder()
	if strings.TrimSpace(raw) == "" {
		return ladder, nil
	}

	rungs := make([]Rung, 0, 12)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return Ladder{}, fmt.Errorf("%w: invalid item %q, expected threshold:week", ErrInvalidLadder, item)
		}
		threshold, err := strconv.ParseInt(strings.TrimSpace(segments[0]), 10, 64)
		if err != nil {
			return Ladder{}, fmt.Errorf("%w: invalid threshold in item %q: %v", ErrInvalidLadder, item, err)
		}
		week, err := strconv.Atoi(strings.TrimSpace(segments[1]))
		if err != nil {
			return Ladder{}, fmt.Errorf("%w: invalid week in item %q: %v", ErrInvalidLadder, item, err)
		}
		rungs = append(rungs, Rung{Threshold: threshold, Week: week})
	}
	if len(rungs) == 0 {
		return ladder, nil
	}

	last := rungs[len(rungs)-1]
	ladder.Rungs = rungs
	ladder.TailAnchor = last.Threshold
	ladder.TailBaseWeek = last.Week + 1
	if err := ladder.Validate(); err != nil {
		return Ladder{}, err
	}
	return ladder, nil
}

func (l Ladder) maxWeek() int {
	if l.MaxWeek <= 0 {
		return MaxWeek
	}
	return l.MaxWeek
}

func (l Ladder) defaultWeek() int {
	if l.DefaultWeek <= 0 {
		return DefaultWeek
	}
	return l.DefaultWeek
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

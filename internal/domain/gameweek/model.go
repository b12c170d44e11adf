package gameweek

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinWeek     = 1
	MaxWeek     = 28
	DefaultWeek = 14
)

var ErrInvalidLabel = errors.New("invalid week label")

// Label is a heuristic week bucket such as "Week 3".
type Label string

func LabelFor(week int) Label {
	return Label("Week " + strconv.Itoa(week))
}

// Number returns the week number, or 0 when the label is malformed.
func (l Label) Number() int {
	raw, ok := strings.CutPrefix(string(l), "Week ")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func (l Label) String() string {
	return string(l)
}

// ParseLabel accepts "Week 3", "week 3" or a bare "3".
func ParseLabel(raw string) (Label, error) {
	value := strings.TrimSpace(raw)
	if len(value) > 4 && strings.EqualFold(value[:4], "week") {
		value = strings.TrimSpace(value[4:])
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, raw)
	}
	if n < MinWeek || n > MaxWeek {
		return "", fmt.Errorf("%w: week %d out of range %d..%d", ErrInvalidLabel, n, MinWeek, MaxWeek)
	}
	return LabelFor(n), nil
}

// SortLabels orders labels by week number.
func SortLabels(labels []Label) {
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Number() < labels[j].Number()
	})
}

package gameweek

import (
	"errors"
	"testing"
)

func TestLabel_Number(t *testing.T) {
	t.Parallel()

	tests := map[Label]int{
		"Week 1":  1,
		"Week 28": 28,
		"week 3":  0,
		"Week x":  0,
		"":        0,
	}
	for label, want := range tests {
		if got := label.Number(); got != want {
			t.Fatalf("number of %q: got=%d want=%d", label, got, want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Label
		wantErr bool
	}{
		{raw: "Week 3", want: "Week 3"},
		{raw: "week 12", want: "Week 12"},
		{raw: "7", want: "Week 7"},
		{raw: "Week7", want: "Week 7"},
		{raw: "0", wantErr: true},
		{raw: "29", wantErr: true},
		{raw: "Week", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLabel(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLabel) {
				t.Fatalf("parse %q: expected ErrInvalidLabel, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: got=%q want=%q", tt.raw, got, tt.want)
		}
	}
}

func TestSortLabels(t *testing.T) {
	t.Parallel()

	labels := []Label{"Week 10", "Week 2", "Week 1", "Week 28"}
	SortLabels(labels)

	want := []Label{"Week 1", "Week 2", "Week 10", "Week 28"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("unexpected order: %v", labels)
		}
	}
}

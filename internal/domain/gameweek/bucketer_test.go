package gameweek

import (
	"errors"
	"testing"
)

func TestDefaultLadder_Bucket(t *testing.T) {
	t.Parallel()

	ladder := DefaultLadder()
	tests := []struct {
		id   int64
		want Label
	}{
		{id: 20250105, want: "Week 1"},
		{id: 20250115, want: "Week 1"},
		{id: 20250116, want: "Week 2"},
		{id: 20250301, want: "Week 3"},
		{id: 20250700, want: "Week 7"},
		{id: 20251215, want: "Week 12"},
		{id: 20251216, want: "Week 13"},
		{id: 20251315, want: "Week 14"},
		{id: 20260115, want: "Week 28"},
		{id: 99999999, want: "Week 28"},
		{id: 20250000, want: "Week 1"},
		{id: 999, want: "Week 20"},
		{id: 27, want: "Week 28"},
		{id: 28, want: "Week 1"},
		{id: 0, want: "Week 1"},
		{id: -5, want: "Week 14"},
	}

	for _, tt := range tests {
		if got := ladder.Bucket(tt.id); got != tt.want {
			t.Fatalf("bucket %d: got=%q want=%q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultLadder_BucketString(t *testing.T) {
	t.Parallel()

	ladder := DefaultLadder()
	tests := map[string]Label{
		"20250301":   "Week 3",
		" 20250105 ": "Week 1",
		"abc":        "Week 14",
		"":           "Week 14",
		"2025-03-01": "Week 14",
		"-20250301":  "Week 14",
	}
	for raw, want := range tests {
		if got := ladder.BucketString(raw); got != want {
			t.Fatalf("bucket %q: got=%q want=%q", raw, got, want)
		}
	}
}

func TestDefaultLadder_MonotonicAndInRange(t *testing.T) {
	t.Parallel()

	ladder := DefaultLadder()
	prev := 0
	for id := int64(20250000); id <= 20280000; id += 37 {
		week := ladder.Week(id)
		if week < MinWeek || week > MaxWeek {
			t.Fatalf("week out of range for %d: %d", id, week)
		}
		if week < prev {
			t.Fatalf("week decreased at %d: %d after %d", id, week, prev)
		}
		if again := ladder.Week(id); again != week {
			t.Fatalf("non-deterministic week for %d: %d vs %d", id, week, again)
		}
		prev = week
	}
}

func TestDefaultLadder_FallbackInRange(t *testing.T) {
	t.Parallel()

	ladder := DefaultLadder()
	for id := int64(0); id < 5000; id++ {
		week := ladder.Week(id)
		if week < MinWeek || week > MaxWeek {
			t.Fatalf("week out of range for %d: %d", id, week)
		}
	}
}

func TestParseLadder(t *testing.T) {
	t.Parallel()

	ladder, err := ParseLadder("20260301:1, 20260401:2,20260501:2")
	if err != nil {
		t.Fatalf("parse ladder: %v", err)
	}
	if len(ladder.Rungs) != 3 {
		t.Fatalf("unexpected rungs: %+v", ladder.Rungs)
	}
	if ladder.TailAnchor != 20260501 || ladder.TailBaseWeek != 3 {
		t.Fatalf("unexpected tail: anchor=%d base=%d", ladder.TailAnchor, ladder.TailBaseWeek)
	}

	tests := map[int64]Label{
		20260201: "Week 1",
		20260315: "Week 2",
		20260501: "Week 2",
		20260502: "Week 3",
		20260702: "Week 5",
	}
	for id, want := range tests {
		if got := ladder.Bucket(id); got != want {
			t.Fatalf("bucket %d: got=%q want=%q", id, got, want)
		}
	}
}

func TestParseLadder_EmptyIsDefault(t *testing.T) {
	t.Parallel()

	ladder, err := ParseLadder("  ")
	if err != nil {
		t.Fatalf("parse ladder: %v", err)
	}
	if got := ladder.Bucket(20250301); got != "Week 3" {
		t.Fatalf("unexpected bucket: %q", got)
	}
}

func TestParseLadder_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"20250115",
		"abc:1",
		"20250115:x",
		"20250215:1,20250115:2",
		"20250115:3,20250215:2",
		"20250115:0",
		"20250115:29",
	}
	for _, raw := range tests {
		if _, err := ParseLadder(raw); !errors.Is(err, ErrInvalidLadder) {
			t.Fatalf("parse %q: expected ErrInvalidLadder, got %v", raw, err)
		}
	}
}

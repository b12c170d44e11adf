package player

import "testing"

func TestPositionFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Position
	}{
		{1, PositionGoalkeeper},
		{2, PositionDefender},
		{3, PositionMidfielder},
		{4, PositionForward},
		{0, PositionUnknown},
		{5, PositionUnknown},
		{-1, PositionUnknown},
	}

	for _, tt := range tests {
		if got := PositionFromCode(tt.code); got != tt.want {
			t.Fatalf("PositionFromCode(%d)=%s want=%s", tt.code, got, tt.want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := map[string]Position{
		"1":          PositionGoalkeeper,
		" GK ":       PositionGoalkeeper,
		"Defender":   PositionDefender,
		"MID":        PositionMidfielder,
		"mf":         PositionMidfielder,
		"fwd":        PositionForward,
		"striker":    PositionUnknown,
		"":           PositionUnknown,
		"9":          PositionUnknown,
		"goalkeeper": PositionGoalkeeper,
	}

	for raw, want := range tests {
		if got := ParsePosition(raw); got != want {
			t.Fatalf("ParsePosition(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		positions []Position
		want      RoleFlags
		defOrGK   bool
		other     bool
	}{
		{name: "empty", positions: nil, want: RoleFlags{}, other: true},
		{name: "all unknown", positions: []Position{PositionUnknown, PositionUnknown}, want: RoleFlags{}, other: true},
		{name: "goalkeeper", positions: []Position{PositionGoalkeeper}, want: RoleFlags{Goalkeeper: true}, defOrGK: true},
		{name: "defender", positions: []Position{PositionDefender}, want: RoleFlags{Defender: true}, defOrGK: true},
		{name: "midfielder", positions: []Position{PositionMidfielder}, want: RoleFlags{Midfielder: true}},
		{name: "forward with unknown", positions: []Position{PositionUnknown, PositionForward}, want: RoleFlags{Forward: true}},
		{
			name:      "defender and midfielder",
			positions: []Position{PositionDefender, PositionMidfielder},
			want:      RoleFlags{Defender: true, Midfielder: true},
			defOrGK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.positions)
			if got != tt.want {
				t.Fatalf("unexpected flags: got=%+v want=%+v", got, tt.want)
			}
			if got.DefenderOrGoalkeeper() != tt.defOrGK {
				t.Fatalf("unexpected DefenderOrGoalkeeper: got=%v want=%v", got.DefenderOrGoalkeeper(), tt.defOrGK)
			}
			if got.Other() != tt.other {
				t.Fatalf("unexpected Other: got=%v want=%v", got.Other(), tt.other)
			}
		})
	}
}

func TestPlayerDisplayName(t *testing.T) {
	p := Player{ID: 1, FirstName: "Lionel", LastName: "Messi"}
	if got := p.DisplayName(); got != "Lionel Messi" {
		t.Fatalf("unexpected display name: %q", got)
	}

	p = Player{ID: 2, KnownName: "Hulk"}
	if got := p.DisplayName(); got != "Hulk" {
		t.Fatalf("unexpected known-name fallback: %q", got)
	}
}

package player

import (
	"strconv"
	"strings"
)

// Position represents football position categories used in scoring rules.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
	PositionUnknown    Position = "Unknown"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

var positionByCode = map[int]Position{
	1: PositionGoalkeeper,
	2: PositionDefender,
	3: PositionMidfielder,
	4: PositionForward,
}

var positionByTag = map[string]Position{
	"gk":         PositionGoalkeeper,
	"goalkeeper": PositionGoalkeeper,
	"def":        PositionDefender,
	"defender":   PositionDefender,
	"mf":         PositionMidfielder,
	"mid":        PositionMidfielder,
	"midfielder": PositionMidfielder,
	"fw":         PositionForward,
	"fwd":        PositionForward,
	"forward":    PositionForward,
}

// PositionFromCode maps the feed's numeric position codes.
func PositionFromCode(code int) Position {
	if pos, ok := positionByCode[code]; ok {
		return pos
	}
	return PositionUnknown
}

// ParsePosition accepts numeric codes, long names or short tags.
func ParsePosition(raw string) Position {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return PositionUnknown
	}
	if code, err := strconv.Atoi(value); err == nil {
		return PositionFromCode(code)
	}
	if pos, ok := positionByTag[value]; ok {
		return pos
	}
	return PositionUnknown
}

func (p Position) Short() string {
	switch p {
	case PositionGoalkeeper:
		return "GK"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	default:
		return "UNK"
	}
}

// RoleFlags is the positional eligibility used by role-gated scoring rules.
// A player may carry several flags when the feed lists several positions.
type RoleFlags struct {
	Goalkeeper bool
	Defender   bool
	Midfielder bool
	Forward    bool
}

// DefenderOrGoalkeeper governs the goal multiplier, goals conceded and the
// full clean-sheet bonus.
func (r RoleFlags) DefenderOrGoalkeeper() bool {
	return r.Goalkeeper || r.Defender
}

// Other reports a player with no recognised position.
func (r RoleFlags) Other() bool {
	return !r.Goalkeeper && !r.Defender && !r.Midfielder && !r.Forward
}

// Classify derives role flags from a position list. Unknown entries are ignored.
func Classify(positions []Position) RoleFlags {
	var flags RoleFlags
	for _, pos := range positions {
		switch pos {
		case PositionGoalkeeper:
			flags.Goalkeeper = true
		case PositionDefender:
			flags.Defender = true
		case PositionMidfielder:
			flags.Midfielder = true
		case PositionForward:
			flags.Forward = true
		}
	}
	return flags
}

// FormatPositions renders a position list the way the export shows it.
func FormatPositions(positions []Position) string {
	if len(positions) == 0 {
		return string(PositionUnknown)
	}
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, string(pos))
	}
	return strings.Join(parts, ", ")
}

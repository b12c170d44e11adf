package team

import "strings"

// UnknownName is shown for players whose squad is missing from the feed.
const UnknownName = "Unknown Team"

// Team is a real football club (squad) in the league feed.
type Team struct {
	ID    int64
	Name  string
	Short string
}

// NameOf resolves a team name by id, falling back to UnknownName.
func NameOf(teams map[int64]Team, id int64) string {
	t, ok := teams[id]
	if !ok || strings.TrimSpace(t.Name) == "" {
		return UnknownName
	}
	return t.Name
}

package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
)

const (
	DefaultPerPage = 50
	MaxPerPage     = 500

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// ListQuery filters, sorts and paginates aggregated records. Zero values
// mean no filter, sort by id ascending, first page of DefaultPerPage.
type ListQuery struct {
	Search   string
	Position string
	Team     string
	SortBy   string
	Order    string
	Page     int
	PerPage  int
}

type RecordPage struct {
	Scope      playerpoints.Scope
	Codes      []scoring.StatCode
	Items      []playerpoints.Record
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

type recordLess func(a, b playerpoints.Record) bool

var recordSortKeys = map[string]recordLess{
	"id":   func(a, b playerpoints.Record) bool { return a.PlayerID < b.PlayerID },
	"name": func(a, b playerpoints.Record) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	"team": func(a, b playerpoints.Record) bool { return a.TeamName < b.TeamName },
	"cost": func(a, b playerpoints.Record) bool { return a.Cost < b.Cost },
	"total": func(a, b playerpoints.Record) bool {
		return a.Totals.Combined < b.Totals.Combined
	},
	"average": func(a, b playerpoints.Record) bool {
		return a.AveragePoints() < b.AveragePoints()
	},
	"games":    func(a, b playerpoints.Record) bool { return a.Totals.Games < b.Totals.Games },
	"owned_by": func(a, b playerpoints.Record) bool { return a.OwnedBy < b.OwnedBy },
	"high":     func(a, b playerpoints.Record) bool { return a.Totals.High < b.Totals.High },
	"low":      func(a, b playerpoints.Record) bool { return a.Totals.Low < b.Totals.Low },
}

// SortKeys lists the accepted SortBy values: the fixed keys followed by the
// rule table codes.
func SortKeys(codes []scoring.StatCode) []string {
	out := make([]string, 0, len(recordSortKeys)+len(codes))
	for key := range recordSortKeys {
		out = append(out, key)
	}
	sort.Strings(out)
	for _, code := range codes {
		out = append(out, strings.ToLower(string(code)))
	}
	return out
}

func (q ListQuery) normalize(codes []scoring.StatCode) (ListQuery, recordLess, error) {
	q.Search = strings.TrimSpace(q.Search)
	q.Position = strings.TrimSpace(q.Position)
	q.Team = strings.TrimSpace(q.Team)
	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	q.Order = strings.ToLower(strings.TrimSpace(q.Order))

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 0 {
		return q, nil, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage < 0 || q.PerPage > MaxPerPage {
		return q, nil, fmt.Errorf("%w: per_page must be between 1 and %d", ErrInvalidInput, MaxPerPage)
	}

	switch q.Order {
	case "":
		q.Order = SortOrderAsc
	case SortOrderAsc, SortOrderDesc:
	default:
		return q, nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidInput)
	}

	if q.SortBy == "" {
		q.SortBy = "id"
	}
	less, ok := recordSortKeys[q.SortBy]
	if !ok {
		code := scoring.StatCode(strings.ToUpper(q.SortBy))
		if !containsCode(codes, code) {
			return q, nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, q.SortBy)
		}
		less = func(a, b playerpoints.Record) bool {
			return a.Totals.Point(code) < b.Totals.Point(code)
		}
	}

	if q.Position != "" {
		position := player.ParsePosition(q.Position)
		if position == player.PositionUnknown && !strings.EqualFold(q.Position, string(player.PositionUnknown)) {
			return q, nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, q.Position)
		}
		q.Position = string(position)
	}

	return q, less, nil
}

// queryRecords never mutates records; it sorts a filtered copy.
func queryRecords(records []playerpoints.Record, codes []scoring.StatCode, scope playerpoints.Scope, query ListQuery) (RecordPage, error) {
	q, less, err := query.normalize(codes)
	if err != nil {
		return RecordPage{}, err
	}

	filtered := make([]playerpoints.Record, 0, len(records))
	for _, record := range records {
		if !record.MatchesSearch(q.Search) {
			continue
		}
		if q.Position != "" && !matchesPosition(record, player.Position(q.Position)) {
			continue
		}
		if q.Team != "" && !strings.EqualFold(record.TeamName, q.Team) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if q.Order == SortOrderDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return filtered[i].PlayerID < filtered[j].PlayerID
	})

	total := len(filtered)
	totalPages := (total + q.PerPage - 1) / q.PerPage
	start, end := total, total
	if q.Page <= totalPages {
		start = (q.Page - 1) * q.PerPage
		end = min(start+q.PerPage, total)
	}

	return RecordPage{
		Scope:      scope,
		Codes:      codes,
		Items:      filtered[start:end],
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func matchesPosition(record playerpoints.Record, position player.Position) bool {
	if position == player.PositionUnknown && len(record.Positions) == 0 {
		return true
	}
	return record.HasPosition(position)
}

func containsCode(codes []scoring.StatCode, code scoring.StatCode) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

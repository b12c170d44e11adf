package httpapi

import (
	"math"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

type pointsRecordDTO struct {
	PlayerID      int64          `json:"player_id"`
	Name          string         `json:"name"`
	TeamID        int64          `json:"team_id"`
	Team          string         `json:"team"`
	Cost          string         `json:"cost"`
	CostRaw       int64          `json:"cost_raw"`
	Positions     string         `json:"positions"`
	OwnedBy       string         `json:"owned_by"`
	Scope         string         `json:"scope"`
	GamesPlayed   int            `json:"games_played"`
	TotalPoints   int            `json:"total_points"`
	AveragePoints float64        `json:"average_points"`
	HighScore     int            `json:"high_score"`
	LowScore      int            `json:"low_score"`
	Points        map[string]int `json:"points"`
}

type recordPageDTO struct {
	Scope      string            `json:"scope"`
	Codes      []string          `json:"codes"`
	Items      []pointsRecordDTO `json:"items"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

type weekSummaryDTO struct {
	Week          string `json:"week"`
	Number        int    `json:"number"`
	Players       int    `json:"players"`
	Matches       int    `json:"matches"`
	CombinedTotal int    `json:"combined_total"`
}

type playerMatchDTO struct {
	MatchID string         `json:"match_id"`
	Week    string         `json:"week"`
	Total   int            `json:"total"`
	Points  map[string]int `json:"points"`
}

type playerDetailDTO struct {
	Season  pointsRecordDTO   `json:"season"`
	Weekly  []pointsRecordDTO `json:"weekly"`
	Matches []playerMatchDTO  `json:"matches"`
}

type optionsDTO struct {
	Positions []string `json:"positions"`
	Teams     []string `json:"teams"`
	Weeks     []string `json:"weeks"`
	Codes     []string `json:"codes"`
	SortKeys  []string `json:"sort_keys"`
}

type refreshResultDTO struct {
	GeneratedAt string `json:"generated_at"`
	Players     int    `json:"players"`
	Records     int    `json:"records"`
	Weeks       int    `json:"weeks"`
}

type persistResultDTO struct {
	RunID       string `json:"run_id"`
	RuleTable   string `json:"rule_table"`
	GeneratedAt string `json:"generated_at"`
	Records     int    `json:"records"`
}

func recordToDTO(record playerpoints.Record) pointsRecordDTO {
	return pointsRecordDTO{
		PlayerID:      record.PlayerID,
		Name:          record.Name,
		TeamID:        record.TeamID,
		Team:          record.TeamName,
		Cost:          record.FormattedCost(),
		CostRaw:       record.Cost,
		Positions:     record.PositionLabel(),
		OwnedBy:       record.FormattedOwnedBy(),
		Scope:         string(record.Scope),
		GamesPlayed:   record.Totals.Games,
		TotalPoints:   record.Totals.Combined,
		AveragePoints: round2(record.AveragePoints()),
		HighScore:     record.Totals.High,
		LowScore:      record.Totals.Low,
		Points:        pointsToDTO(record.Totals.Points),
	}
}

func recordPageToDTO(page usecase.RecordPage) recordPageDTO {
	items := make([]pointsRecordDTO, 0, len(page.Items))
	for _, record := range page.Items {
		items = append(items, recordToDTO(record))
	}
	return recordPageDTO{
		Scope:      string(page.Scope),
		Codes:      codesToStrings(page.Codes),
		Items:      items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

func playerDetailToDTO(detail usecase.PlayerDetail) playerDetailDTO {
	weekly := make([]pointsRecordDTO, 0, len(detail.Weekly))
	for _, record := range detail.Weekly {
		weekly = append(weekly, recordToDTO(record))
	}
	matches := make([]playerMatchDTO, 0, len(detail.Matches))
	for _, match := range detail.Matches {
		matches = append(matches, playerMatchDTO{
			MatchID: match.MatchID,
			Week:    string(match.Week),
			Total:   match.Total,
			Points:  pointsToDTO(match.Points),
		})
	}
	return playerDetailDTO{
		Season:  recordToDTO(detail.Season),
		Weekly:  weekly,
		Matches: matches,
	}
}

func pointsToDTO(points map[scoring.StatCode]int) map[string]int {
	out := make(map[string]int, len(points))
	for code, value := range points {
		out[string(code)] = value
	}
	return out
}

func codesToStrings(codes []scoring.StatCode) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, string(code))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
)

const (
	pointsRunsTable    = "player_points_runs"
	pointsRecordsTable = "player_points_records"
)

type pointsRunInsertModel struct {
	ID          string         `db:"id"`
	RuleTable   string         `db:"rule_table"`
	Codes       pq.StringArray `db:"codes"`
	RecordCount int            `db:"record_count"`
	GeneratedAt time.Time      `db:"generated_at"`
}

type pointsRecordInsertModel struct {
	RunID         string         `db:"run_id"`
	Scope         string         `db:"scope"`
	PlayerID      int64          `db:"player_id"`
	Name          string         `db:"name"`
	TeamID        int64          `db:"team_id"`
	TeamName      string         `db:"team_name"`
	Cost          int64          `db:"cost"`
	Positions     pq.StringArray `db:"positions"`
	OwnedBy       float64        `db:"owned_by"`
	GamesPlayed   int            `db:"games_played"`
	TotalPoints   int            `db:"total_points"`
	AveragePoints float64        `db:"average_points"`
	HighScore     int            `db:"high_score"`
	LowScore      int            `db:"low_score"`
	Points        string         `db:"points"`
}

func pointsRunModelFromDomain(run playerpoints.Run) pointsRunInsertModel {
	codes := make(pq.StringArray, 0, len(run.Codes))
	for _, code := range run.Codes {
		codes = append(codes, string(code))
	}
	return pointsRunInsertModel{
		ID:          run.ID,
		RuleTable:   run.RuleTable,
		Codes:       codes,
		RecordCount: run.RecordCount(),
		GeneratedAt: run.GeneratedAt.UTC(),
	}
}

func pointsRecordModelFromDomain(runID string, record playerpoints.Record) (pointsRecordInsertModel, error) {
	positions := make(pq.StringArray, 0, len(record.Positions))
	for _, p := range record.Positions {
		positions = append(positions, string(p))
	}
	points, err := encodePoints(record.Totals)
	if err != nil {
		return pointsRecordInsertModel{}, err
	}
	return pointsRecordInsertModel{
		RunID:         runID,
		Scope:         string(record.Scope),
		PlayerID:      record.PlayerID,
		Name:          record.Name,
		TeamID:        record.TeamID,
		TeamName:      record.TeamName,
		Cost:          record.Cost,
		Positions:     positions,
		OwnedBy:       record.OwnedBy,
		GamesPlayed:   record.Totals.Games,
		TotalPoints:   record.Totals.Combined,
		AveragePoints: record.AveragePoints(),
		HighScore:     record.Totals.High,
		LowScore:      record.Totals.Low,
		Points:        points,
	}, nil
}

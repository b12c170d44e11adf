package postgres

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
)

// Postgres caps a statement at 65535 bind parameters; records carry 15
// columns each.
const recordInsertBatchSize = 500

var marshalPoints = sonic.ConfigStd.Marshal

func encodePoints(totals playerpoints.Totals) (string, error) {
	if len(totals.Points) == 0 {
		return "{}", nil
	}
	encoded, err := marshalPoints(totals.Points)
	if err != nil {
		return "", fmt.Errorf("encode points: %w", err)
	}
	return string(encoded), nil
}

// runRecords flattens a run into insert models, season first and weeks in
// calendar order.
func runRecords(run playerpoints.Run) ([]pointsRecordInsertModel, error) {
	out := make([]pointsRecordInsertModel, 0, run.RecordCount())
	add := func(record playerpoints.Record) error {
		model, err := pointsRecordModelFromDomain(run.ID, record)
		if err != nil {
			return fmt.Errorf("player=%d scope=%s: %w", record.PlayerID, record.Scope, err)
		}
		out = append(out, model)
		return nil
	}

	for _, record := range run.Season {
		if err := add(record); err != nil {
			return nil, err
		}
	}

	weeks := make([]gameweek.Label, 0, len(run.Weekly))
	for label := range run.Weekly {
		weeks = append(weeks, label)
	}
	gameweek.SortLabels(weeks)
	for _, label := range weeks {
		for _, record := range run.Weekly[label] {
			if err := add(record); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	out := make([][]T, 0, (len(items)+size-1)/max(size, 1))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

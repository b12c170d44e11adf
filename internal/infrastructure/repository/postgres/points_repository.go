package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// ReplaceRun writes the run and its records, then drops every earlier run,
// all inside one transaction.
func (r *PointsRepository) ReplaceRun(ctx context.Context, run playerpoints.Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("replace points run: run id is required")
	}

	records, err := runRecords(run)
	if err != nil {
		return fmt.Errorf("build points records run=%s: %w", run.ID, err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace points run: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel(pointsRunsTable, pointsRunModelFromDomain(run), "")
	if err != nil {
		return fmt.Errorf("build insert points run query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert points run id=%s: %w", run.ID, err)
	}

	for i, batch := range batches(records, recordInsertBatchSize) {
		query, args, err := qb.InsertModels(pointsRecordsTable, batch, "")
		if err != nil {
			return fmt.Errorf("build insert points records query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert points records run=%s batch=%d: %w", run.ID, i, err)
		}
	}

	if err := deleteOtherRuns(ctx, tx, run.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace points run tx: %w", err)
	}
	return nil
}

func deleteOtherRuns(ctx context.Context, tx *sqlx.Tx, keepRunID string) error {
	query, args, err := qb.DeleteFrom(pointsRecordsTable).
		Where(qb.NotEq("run_id", keepRunID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stale points records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stale points records: %w", err)
	}

	query, args, err = qb.DeleteFrom(pointsRunsTable).
		Where(qb.NotEq("id", keepRunID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stale points runs query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stale points runs: %w", err)
	}
	return nil
}

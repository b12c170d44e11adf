package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/platform/dburl"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbDriverName         = "postgres"
	dbMaxOpenConns       = 10
	dbMaxIdleConns       = 5
	dbConnMaxLifetime    = 30 * time.Minute
	dbPingTimeout        = 5 * time.Second
	maxTracedQueryLength = 512
)

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	if cfg.DBDisablePreparedBinary {
		dsn = dburl.WithPreparedBinaryDisabled(dsn)
	}
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dburl.Name(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	}

	db, err := otelsqlx.Open(dbDriverName, dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", dburl.Redact(dsn), err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db %s: %w", dburl.Redact(dsn), err)
	}
	otelsql.ReportDBStatsMetrics(db.DB, opts...)

	return db, nil
}

// traceQuery collapses whitespace and caps the statement recorded on spans.
func traceQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}

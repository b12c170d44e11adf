package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/external/feed"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-points/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-points/internal/platform/dburl"
	idgen "github.com/riskibarqy/fantasy-points/internal/platform/id"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

// App holds the dependencies shared by the API server and the batch export.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB
	points *usecase.PointsService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var source playerpoints.Source
	if cfg.FeedEnabled {
		source = feed.NewClient(feed.ClientConfig{
			BaseURL:        cfg.FeedBaseURL,
			Timeout:        cfg.FeedTimeout,
			MaxRetries:     cfg.FeedMaxRetries,
			Concurrency:    cfg.FeedConcurrency,
			Logger:         logger.Named("feed"),
			CircuitBreaker: cfg.FeedCircuit,
		})
		logger.Info("points source configured", "source", "feed", "base_url", cfg.FeedBaseURL)
	} else {
		source = memory.NewSeedSource()
		logger.Warn("fantasy feed disabled, serving seed data")
	}

	var (
		db   *sqlx.DB
		repo playerpoints.Repository
	)
	if cfg.DBEnabled {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo = postgres.NewPointsRepository(db)
		logger.Info("points repository configured", "db", dburl.Redact(cfg.DBURL))
	}

	points := usecase.NewPointsService(source, repo, idgen.NewTimeOrderedGenerator(), usecase.PointsServiceConfig{
		Workers:     cfg.ScoringWorkers,
		CacheTTL:    cfg.CacheTTL,
		PlayerLimit: cfg.FeedPlayerLimit,
		Ladder:      cfg.WeekLadder,
	}, logger.Named("points"))

	return &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
		points: points,
	}, nil
}

func (a *App) Points() *usecase.PointsService {
	return a.points
}

// Persistent reports whether Export writes runs to the database.
func (a *App) Persistent() bool {
	return a.db != nil
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	httpLogger := a.logger.Named("http")
	handler := httpapi.NewHandler(a.points, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, a.cfg.CORSAllowedOrigins, a.cfg.InternalJobToken)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

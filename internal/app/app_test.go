package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:         config.EnvDev,
		HTTPAddr:       ":0",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		CacheTTL:       time.Minute,
		ScoringWorkers: 2,
	}
}

func TestNew_SeedSourceWithoutDB(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.False(t, a.Persistent())

	run, err := a.Points().Export(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 14, run.RecordCount())
}

func TestNewHTTPServer(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	srv, err := a.NewHTTPServer()
	require.NoError(t, err)
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/points/season?per_page=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	_, err = a.NewHTTPServer()
	require.Error(t, err)
}

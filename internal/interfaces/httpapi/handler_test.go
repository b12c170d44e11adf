package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobToken = "job-secret"

type staticIDGenerator string

func (g staticIDGenerator) NewID() (string, error) {
	return string(g), nil
}

func newTestRouter(t *testing.T) (http.Handler, *memory.RunRepository) {
	t.Helper()

	runs := memory.NewRunRepository()
	service := usecase.NewPointsService(
		memory.NewSeedSource(),
		runs,
		staticIDGenerator("run-test"),
		usecase.PointsServiceConfig{Workers: 3},
		logging.NewNop(),
	)
	return NewRouter(NewHandler(service, logging.NewNop()), logging.NewNop(), []string{"*"}, testJobToken), runs
}

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int `json:"code"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func serve(router http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ListSeasonPoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := serve(router, http.MethodGet, "/v1/points/season", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[recordPageDTO](t, rec)
	ids := make([]int64, 0, len(body.Data.Items))
	for _, item := range body.Data.Items {
		ids = append(ids, item.PlayerID)
	}
	assert.Equal(t, []int64{1001, 1002, 1003, 1004, 1005}, ids)
	assert.Equal(t, "season", body.Data.Scope)
	assert.Equal(t, 5, body.Data.TotalItems)

	messi := body.Data.Items[2]
	assert.Equal(t, "Messi", messi.Name)
	assert.Equal(t, 33, messi.TotalPoints)
	assert.Equal(t, "$12.5M", messi.Cost)
}

func TestRouter_ListSeasonPoints_Queries(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		status int
		want   []int64
	}{
		{name: "sorted by total", target: "/v1/points/season?sort=total&order=desc", status: http.StatusOK, want: []int64{1003, 1001, 1002, 1005, 1004}},
		{name: "team filter", target: "/v1/points/season?team=Inter+Miami+CF", status: http.StatusOK, want: []int64{1003, 1005}},
		{name: "paged", target: "/v1/points/season?per_page=2&page=2", status: http.StatusOK, want: []int64{1003, 1004}},
		{name: "page far past the end", target: "/v1/points/season?page=9223372036854775807&per_page=500", status: http.StatusOK, want: []int64{}},
		{name: "bad order", target: "/v1/points/season?order=sideways", status: http.StatusBadRequest},
		{name: "bad page", target: "/v1/points/season?page=two", status: http.StatusBadRequest},
		{name: "per page too large", target: "/v1/points/season?per_page=501", status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tc.target, nil)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status != http.StatusOK {
				return
			}

			body := decodeEnvelope[recordPageDTO](t, rec)
			ids := make([]int64, 0, len(body.Data.Items))
			for _, item := range body.Data.Items {
				ids = append(ids, item.PlayerID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestRouter_ListWeeks(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := serve(router, http.MethodGet, "/v1/points/weeks", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[[]weekSummaryDTO](t, rec)
	weeks := make([]string, 0, len(body.Data))
	for _, w := range body.Data {
		weeks = append(weeks, w.Week)
	}
	assert.Equal(t, []string{"Week 3", "Week 4", "Week 5", "Week 7", "Week 13"}, weeks)
}

func TestRouter_ListWeekPoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, target := range []string{"/v1/points/weeks/3", "/v1/points/weeks/Week%203"} {
		rec := serve(router, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, "%s: %s", target, rec.Body.String())

		body := decodeEnvelope[recordPageDTO](t, rec)
		assert.Equal(t, "Week 3", body.Data.Scope, target)
		for _, item := range body.Data.Items {
			assert.Equal(t, "Week 3", item.Scope)
		}
	}

	rec := serve(router, http.MethodGet, "/v1/points/weeks/99", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope[any](t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "invalidInput", body.Error.Errors[0].Reason)
}

func TestRouter_GetPlayerPoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/v1/points/players/1003", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeEnvelope[playerDetailDTO](t, rec)
	assert.Equal(t, int64(1003), body.Data.Season.PlayerID)
	assert.Equal(t, 33, body.Data.Season.TotalPoints)
	assert.NotEmpty(t, body.Data.Weekly)
	assert.NotEmpty(t, body.Data.Matches)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "no matches", target: "/v1/points/players/1006", status: http.StatusNotFound},
		{name: "unknown", target: "/v1/points/players/424242", status: http.StatusNotFound},
		{name: "not a number", target: "/v1/points/players/messi", status: http.StatusBadRequest},
		{name: "negative", target: "/v1/points/players/-4", status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tc.target, nil)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_ComparePlayers(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := serve(router, http.MethodGet, "/v1/points/compare?ids=1003,1001", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeEnvelope[[]playerDetailDTO](t, rec)
	require.Len(t, body.Data, 2)
	assert.Equal(t, int64(1003), body.Data[0].Season.PlayerID)
	assert.Equal(t, int64(1001), body.Data[1].Season.PlayerID)

	rec = serve(router, http.MethodGet, "/v1/points/compare?ids=1003&ids=1005", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, target := range []string{
		"/v1/points/compare?ids=1003",
		"/v1/points/compare",
		"/v1/points/compare?ids=1003,abc",
		"/v1/points/compare?ids=1,2,3,4,5,6,7,8,9,10,11",
	} {
		rec := serve(router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestRouter_GetOptions(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := serve(router, http.MethodGet, "/v1/points/options", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope[optionsDTO](t, rec)
	assert.Contains(t, body.Data.Teams, "Inter Miami CF")
	assert.Contains(t, body.Data.Weeks, "Week 13")
	assert.Contains(t, body.Data.Codes, "GL")
	assert.Contains(t, body.Data.SortKeys, "gl")
	assert.Contains(t, body.Data.SortKeys, "total")
}

func TestRouter_ExportCSV(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	tests := []struct {
		target   string
		filename string
		header   string
	}{
		{target: "/v1/export/season.csv", filename: "player_stats.csv", header: "Player ID,"},
		{target: "/v1/export/weeks.csv", filename: "player_weekly_stats.csv", header: "Week,Player ID,"},
		{target: "/v1/export/weeks/7", filename: "player_week_07_stats.csv", header: "Week,Player ID,"},
	}

	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tc.target, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), tc.filename)
			assert.True(t, strings.HasPrefix(rec.Body.String(), tc.header), rec.Body.String())
		})
	}

	rec := serve(router, http.MethodGet, "/v1/export/weeks/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InternalJobs(t *testing.T) {
	t.Parallel()

	router, runs := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/v1/internal/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router, http.MethodPost, "/v1/internal/refresh", http.Header{internalJobTokenHeader: {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	authorized := http.Header{internalJobTokenHeader: {testJobToken}}
	rec = serve(router, http.MethodPost, "/v1/internal/refresh", authorized)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decodeEnvelope[refreshResultDTO](t, rec)
	assert.Equal(t, len(memory.SeedPlayers()), refreshed.Data.Players)
	assert.Equal(t, 14, refreshed.Data.Records)

	_, ok := runs.Latest()
	assert.False(t, ok)

	rec = serve(router, http.MethodPost, "/v1/internal/export", authorized)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	persisted := decodeEnvelope[persistResultDTO](t, rec)
	assert.Equal(t, "run-test", persisted.Data.RunID)
	assert.Equal(t, 14, persisted.Data.Records)

	latest, ok := runs.Latest()
	require.True(t, ok)
	assert.Equal(t, "run-test", latest.ID)
}

func TestRouter_InternalJobsWithoutToken(t *testing.T) {
	t.Parallel()

	service := usecase.NewPointsService(memory.NewSeedSource(), nil, nil, usecase.PointsServiceConfig{}, logging.NewNop())
	router := NewRouter(NewHandler(service, logging.NewNop()), logging.NewNop(), nil, "")

	rec := serve(router, http.MethodPost, "/v1/internal/refresh", http.Header{internalJobTokenHeader: {"anything"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec := serve(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope[map[string]string](t, rec)
	assert.Equal(t, "ok", body.Data["status"])
}

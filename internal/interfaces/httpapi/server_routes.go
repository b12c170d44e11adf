package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPointsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/points/season", handler.ListSeasonPoints)
	mux.HandleFunc("GET /v1/points/weeks", handler.ListWeeks)
	mux.HandleFunc("GET /v1/points/weeks/{week}", handler.ListWeekPoints)
	mux.HandleFunc("GET /v1/points/players/{playerID}", handler.GetPlayerPoints)
	mux.HandleFunc("GET /v1/points/compare", handler.ComparePlayers)
	mux.HandleFunc("GET /v1/points/options", handler.GetOptions)
}

func registerExportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/export/season.csv", handler.ExportSeasonCSV)
	mux.HandleFunc("GET /v1/export/weeks.csv", handler.ExportWeeklyCSV)
	mux.HandleFunc("GET /v1/export/weeks/{week}", handler.ExportWeekCSV)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, guard Middleware) {
	mux.Handle("POST /v1/internal/refresh", guard(http.HandlerFunc(handler.RefreshPoints)))
	mux.Handle("POST /v1/internal/export", guard(http.HandlerFunc(handler.PersistPoints)))
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

func (h *Handler) ListSeasonPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListSeasonPoints")
	defer span.End()

	query, err := h.parseListQuery(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.pointsService.ListSeason(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list season points failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recordPageToDTO(page))
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListWeeks")
	defer span.End()

	weeks, err := h.pointsService.ListWeeks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list weeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weekSummaryDTO, 0, len(weeks))
	for _, week := range weeks {
		items = append(items, weekSummaryDTO{
			Week:          string(week.Week),
			Number:        week.Number,
			Players:       week.Players,
			Matches:       week.Matches,
			CombinedTotal: week.CombinedTotal,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListWeekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListWeekPoints")
	defer span.End()

	week, err := parseWeek(r.PathValue("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query, err := h.parseListQuery(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.pointsService.ListWeek(ctx, week, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list week points failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recordPageToDTO(page))
}

func (h *Handler) GetPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetPlayerPoints")
	defer span.End()

	playerID, err := parsePlayerID(r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.pointsService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player points failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailToDTO(detail))
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ComparePlayers")
	defer span.End()

	ids, err := parseIDList(r.URL.Query(), "ids")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, compareRequest{PlayerIDs: ids}); err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.pointsService.Compare(ctx, ids)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "player_ids", ids, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDetailDTO, 0, len(details))
	for _, detail := range details {
		items = append(items, playerDetailToDTO(detail))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetOptions")
	defer span.End()

	options, err := h.pointsService.Options(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get options failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	weeks := make([]string, 0, len(options.Weeks))
	for _, week := range options.Weeks {
		weeks = append(weeks, string(week))
	}
	writeSuccess(ctx, w, http.StatusOK, optionsDTO{
		Positions: options.Positions,
		Teams:     options.Teams,
		Weeks:     weeks,
		Codes:     codesToStrings(options.Codes),
		SortKeys:  usecase.SortKeys(options.Codes),
	})
}

package httpapi

import "net/http"

// RefreshPoints rebuilds the cached report from the source.
func (h *Handler) RefreshPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RefreshPoints")
	defer span.End()

	result, err := h.pointsService.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh points failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshResultDTO{
		GeneratedAt: formatTime(result.GeneratedAt),
		Players:     result.Players,
		Records:     result.Records,
		Weeks:       result.Weeks,
	})
}

// PersistPoints stores the current report as the latest run.
func (h *Handler) PersistPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.PersistPoints")
	defer span.End()

	run, err := h.pointsService.Export(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "persist points failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, persistResultDTO{
		RunID:       run.ID,
		RuleTable:   run.RuleTable,
		GeneratedAt: formatTime(run.GeneratedAt),
		Records:     run.RecordCount(),
	})
}

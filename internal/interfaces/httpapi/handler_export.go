package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
	"github.com/riskibarqy/fantasy-points/internal/interfaces/export"
)

func (h *Handler) ExportSeasonCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ExportSeasonCSV")
	defer span.End()

	report, err := h.pointsService.Report(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export season csv failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeCSV(ctx, w, export.SeasonFileName, func(buf *bytes.Buffer) error {
		return export.WriteCSV(buf, report.Season, report.Codes)
	})
}

func (h *Handler) ExportWeeklyCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ExportWeeklyCSV")
	defer span.End()

	report, err := h.pointsService.Report(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export weekly csv failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeCSV(ctx, w, export.WeeklyFileName, func(buf *bytes.Buffer) error {
		return export.WriteWeeklyCSV(buf, report.Weekly, report.Codes)
	})
}

// ExportWeekCSV writes the weekly layout restricted to one week. A week
// without records yields a header-only file.
func (h *Handler) ExportWeekCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ExportWeekCSV")
	defer span.End()

	week, err := parseWeek(r.PathValue("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.pointsService.Report(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export week csv failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	weekly := map[gameweek.Label][]playerpoints.Record{week: report.Weekly[week]}
	filename := fmt.Sprintf("player_week_%02d_stats.csv", week.Number())
	h.writeCSV(ctx, w, filename, func(buf *bytes.Buffer) error {
		return export.WriteWeeklyCSV(buf, weekly, report.Codes)
	})
}

// writeCSV renders the whole file before any byte reaches w.
func (h *Handler) writeCSV(ctx context.Context, w http.ResponseWriter, filename string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.logger.ErrorContext(ctx, "render csv failed", "filename", filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

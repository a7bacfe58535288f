package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cmc-mcp/internal/models"
)

// UsageReporter reads one day of the usage ledger.
type UsageReporter interface {
	Report(ctx context.Context, day time.Time) (*models.UsageReport, error)
}

// UsageHandler serves GET /usage?date=YYYY-MM-DD. A nil reporter means the
// ledger is disabled.
func UsageHandler(reporter UsageReporter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reporter == nil {
			sendError(w, http.StatusNotFound, "usage_disabled", "Usage ledger is not configured")
			return
		}

		day := time.Now().UTC()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				sendError(w, http.StatusBadRequest, "invalid_parameter", "date must be formatted as YYYY-MM-DD")
				return
			}
			day = parsed
		}

		report, err := reporter.Report(r.Context(), day)
		if err != nil {
			logger.Error("usage_read_failed", "error", err)
			sendError(w, http.StatusServiceUnavailable, "backend_unavailable", "Failed to read usage ledger")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vypiska/internal/core"
)

// anchorLayouts accepted by the date query parameter.
var anchorLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseAnchor reads the date parameter, defaulting to now when absent or
// malformed.
func parseAnchor(r *http.Request) time.Time {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return time.Now()
	}
	for _, layout := range anchorLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}

// parsePeriod reads the period parameter. Anything unrecognized is handed
// through; the window computation falls back to MONTH on its own.
func parsePeriod(r *http.Request) core.Period {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("period")))
	if raw == "" {
		return core.PeriodMonth
	}
	return core.Period(raw)
}

// parseYearMonth extracts year and month query parameters, defaulting to
// the current month.
func parseYearMonth(r *http.Request) (int, time.Month) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = time.Month(m)
		}
	}
	return year, month
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// loadTransactions fetches the ledger, answering 500 on failure. The bool
// reports whether the caller may proceed.
func (s *Server) loadTransactions(ctx context.Context, w http.ResponseWriter) ([]core.Transaction, bool) {
	txs, err := s.source.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return nil, false
	}
	return txs, true
}

// publishReport forwards a snapshot when a publisher is configured. Publish
// failures are logged, never surfaced to the API caller.
func (s *Server) publishReport(ctx context.Context, name string, payload any) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal report snapshot", "report", name, "error", err)
		return
	}
	if err := s.publisher.PublishReport(ctx, name, body); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report snapshot", "report", name, "error", err)
	}
}

package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"vypiska/internal/reports"
)

// Snapshot names under which computed reports are published for
// persistence.
const (
	reportNameCategory = "spending_by_category"
	reportNameWeekday  = "spending_by_weekday"
	reportNameWorkday  = "spending_by_workday"
)

func (s *Server) handleReportByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "category parameter is required")
		return
	}

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	rows := reports.SpendingByCategory(txs, category, parseAnchor(r))
	if rows == nil {
		rows = []reports.MonthlyAmount{}
	} else {
		s.publishReport(ctx, reportNameCategory, rows)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleReportByWeekday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	rows := reports.SpendingByWeekday(txs, parseAnchor(r))
	if rows == nil {
		rows = []reports.WeekdayAverage{}
	} else {
		s.publishReport(ctx, reportNameWeekday, rows)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleReportByWorkday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	rows := reports.SpendingByWorkday(txs, parseAnchor(r))
	if rows == nil {
		rows = []reports.DayTypeAverage{}
	} else {
		s.publishReport(ctx, reportNameWorkday, rows)
	}
	writeJSON(w, http.StatusOK, rows)
}

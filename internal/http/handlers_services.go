package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vypiska/internal/core"
	"vypiska/internal/services"
)

const defaultRoundingLimit = 50

func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	year, month := parseYearMonth(r)
	writeJSON(w, http.StatusOK, services.ProfitableCashbackCategories(txs, year, month))
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		writeError(w, http.StatusBadRequest, "month parameter is required (YYYY-MM)")
		return
	}

	limit := defaultRoundingLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":  month,
		"limit":  limit,
		"amount": services.InvestmentBank(month, txs, limit),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	writeSearchResults(w, services.SimpleSearch(txs, query))
}

func (s *Server) handleSearchPhones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	writeSearchResults(w, services.SearchPhoneNumbers(txs))
}

func (s *Server) handleSearchTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	writeSearchResults(w, services.SearchPersonTransfers(txs))
}

func writeSearchResults(w http.ResponseWriter, matches []core.Transaction) {
	if matches == nil {
		matches = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(matches),
		"results": matches,
	})
}

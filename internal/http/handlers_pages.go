package http

import (
	"context"
	"net/http"
	"time"

	"vypiska/internal/core"
	"vypiska/internal/views"
)

// handleHomePage returns the dashboard payload for the month containing the
// requested instant.
func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ref := parseAnchor(r)
	cacheKey := "home:" + ref.Format("2006-01-02 15:04:05")
	if page, ok := s.homeCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, page)
		return
	}

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	rates := s.quotes.ExchangeRates(ctx, s.settings.Currencies)
	prices := s.quotes.StockPrices(ctx, s.settings.Stocks)

	page := views.BuildHomePage(txs, ref, rates, prices)
	s.homeCache.Set(cacheKey, page)
	writeJSON(w, http.StatusOK, page)
}

// handleEventsPage returns the windowed events payload.
func (s *Server) handleEventsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ref := parseAnchor(r)
	period := parsePeriod(r)
	cacheKey := "events:" + string(period) + ":" + ref.Format("2006-01-02 15:04:05")
	if page, ok := s.eventsCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, page)
		return
	}

	txs, ok := s.loadTransactions(ctx, w)
	if !ok {
		return
	}

	rates := s.quotes.ExchangeRates(ctx, s.settings.Currencies)
	prices := s.quotes.StockPrices(ctx, s.settings.Stocks)

	page := views.BuildEventsPage(txs, ref, core.Period(period), rates, prices)
	s.eventsCache.Set(cacheKey, page)
	writeJSON(w, http.StatusOK, page)
}

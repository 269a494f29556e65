// Package http exposes the analysis pipeline over a JSON API: the two
// composite pages, the trailing-quarter reports, and the search/analysis
// services.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"vypiska/internal/cache"
	"vypiska/internal/config"
	"vypiska/internal/core"
	"vypiska/internal/quotes"
	"vypiska/internal/views"
)

const (
	pageCacheSize = 32
	pageCacheTTL  = time.Minute
)

// TransactionSource loads the settled ledger for analysis.
type TransactionSource interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CountTransactions(ctx context.Context) (int64, error)
}

// QuoteProvider supplies pre-fetched market data for page composition.
type QuoteProvider interface {
	ExchangeRates(ctx context.Context, currencies []string) []quotes.Rate
	StockPrices(ctx context.Context, stocks []string) []quotes.StockPrice
}

// ReportPublisher forwards computed report snapshots to the persistence
// worker. May be nil when no broker is configured.
type ReportPublisher interface {
	PublishReport(ctx context.Context, name string, payload json.RawMessage) error
}

type Server struct {
	http.Server

	source    TransactionSource
	quotes    QuoteProvider
	settings  config.UserSettings
	publisher ReportPublisher

	homeCache   *cache.LRUCache[views.HomePage]
	eventsCache *cache.LRUCache[views.EventsPage]

	startedAt    time.Time
	shutdownOnce sync.Once
}

func NewServer(addr string, source TransactionSource, q QuoteProvider, settings config.UserSettings, publisher ReportPublisher) *Server {
	s := &Server{
		source:      source,
		quotes:      q,
		settings:    settings,
		publisher:   publisher,
		homeCache:   cache.NewLRUCache[views.HomePage](pageCacheSize, pageCacheTTL),
		eventsCache: cache.NewLRUCache[views.EventsPage](pageCacheSize, pageCacheTTL),
		startedAt:   time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/pages/home", s.handleHomePage)
	mux.HandleFunc("GET /api/v1/pages/events", s.handleEventsPage)
	mux.HandleFunc("GET /api/v1/reports/category", s.handleReportByCategory)
	mux.HandleFunc("GET /api/v1/reports/weekday", s.handleReportByWeekday)
	mux.HandleFunc("GET /api/v1/reports/workday", s.handleReportByWorkday)
	mux.HandleFunc("GET /api/v1/services/cashback", s.handleCashback)
	mux.HandleFunc("GET /api/v1/services/investment", s.handleInvestment)
	mux.HandleFunc("GET /api/v1/services/search", s.handleSearch)
	mux.HandleFunc("GET /api/v1/services/search/phones", s.handleSearchPhones)
	mux.HandleFunc("GET /api/v1/services/search/transfers", s.handleSearchTransfers)

	s.Server = http.Server{
		Addr:    addr,
		Handler: requestLogging(mux),
	}
	return s
}

// Caches exposes the page caches for registration with a cache.Manager.
func (s *Server) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.homeCache, s.eventsCache}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogging logs one line per request with method, path, status and
// duration.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

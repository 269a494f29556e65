package http

import (
	"context"
	"net/http"
	"time"
)

// handleHealth performs a liveness check with a storage probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	}

	status := http.StatusOK
	if count, err := s.source.CountTransactions(ctx); err != nil {
		health["status"] = "degraded"
		health["storage"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		health["transactions"] = count
	}

	writeJSON(w, status, health)
}

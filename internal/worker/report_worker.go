// Package worker persists report snapshots consumed from AMQP.
package worker

import (
	"fmt"
	"log/slog"

	"vypiska/internal/amqp"
	"vypiska/internal/reportstore"
)

// ReportWorker appends consumed snapshots to the report store.
type ReportWorker struct {
	store *reportstore.Store
}

func NewReportWorker(store *reportstore.Store) *ReportWorker {
	return &ReportWorker{store: store}
}

// HandleReport processes a single snapshot message. Duplicates are dropped
// by the store and acknowledged as handled.
func (w *ReportWorker) HandleReport(msg *amqp.ReportMessage) error {
	added, err := w.store.Append(msg.Name, msg.Payload)
	if err != nil {
		return fmt.Errorf("append report snapshot: %w", err)
	}

	if added {
		slog.Info("Report snapshot persisted",
			"report", msg.Name,
			"file", w.store.Path(msg.Name))
	} else {
		slog.Info("Report snapshot skipped",
			"report", msg.Name,
			"reason", "empty or duplicate")
	}
	return nil
}

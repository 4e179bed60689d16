package audit

import (
	"context"
	"log/slog"
)

// Worker drains the audit inbox and persists events. Store failures are
// logged and the event dropped so a sink outage cannot stall the pipeline;
// the Kafka sink's breaker handles sustained outages on its own.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed, dropping event",
					"action", event.Action, "error", err)
			}
		}
	}
}

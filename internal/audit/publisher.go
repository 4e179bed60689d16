package audit

import (
	"context"
	"time"

	dErrors "counsel/pkg/domain-errors"
)

// Publisher hands events to the background Worker. Emit stamps missing
// timestamps and enqueues without blocking: a saturated queue returns an
// error for the caller's fail-open handling instead of stalling the request
// path.
type Publisher struct {
	inbox chan<- Event
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

func (p *Publisher) Emit(_ context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	select {
	case p.inbox <- base:
		return nil
	default:
		return dErrors.New(dErrors.CodeInternal, "audit queue full, dropping event")
	}
}

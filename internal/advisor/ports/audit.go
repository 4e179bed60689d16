package ports

import (
	"context"

	"counsel/internal/audit"
)

// AuditPort defines the interface for emitting audit events.
// This matches the audit.Publisher surface but is defined here
// to maintain hexagonal boundaries.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

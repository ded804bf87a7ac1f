package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// AuditPublisher hands an audit event off for asynchronous persistence.
// Publish must not block on I/O.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

package ports

import (
	"context"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

// ClientStorage is the durable per-browser-context key/value store that
// stands in for the browser's localStorage.
type ClientStorage interface {
	// Get returns the value and whether it exists.
	Get(ctx context.Context, contextID, key string) (string, bool, error)
	Set(ctx context.Context, contextID, key, value string) error
	// SetMany writes every value or none of them.
	SetMany(ctx context.Context, contextID string, values map[string]string) error
	Delete(ctx context.Context, contextID string, keys ...string) error
	// Touch slides the expiry of the context's entries without changing them.
	Touch(ctx context.Context, contextID string) error
}

// LayoutRepository keeps the print-layout editor state of each browser context.
type LayoutRepository interface {
	// Load returns nil, nil when the context has no layout.
	Load(ctx context.Context, contextID string) (*domain.PrintLayout, error)
	Save(ctx context.Context, contextID string, layout *domain.PrintLayout) error
	Delete(ctx context.Context, contextID string) error
}

// PrintAuditRepository persists print-file submission records.
type PrintAuditRepository interface {
	Insert(ctx context.Context, job *domain.PrintJob) error
	ListByContext(ctx context.Context, contextID string, limit int64) ([]domain.PrintJob, error)
}

// PrintAuditor records print jobs without blocking the caller.
type PrintAuditor interface {
	Record(job domain.PrintJob)
}

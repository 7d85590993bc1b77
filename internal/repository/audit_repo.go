package repository

import (
	"context"

	"github.com/ricirt/dummy-predictor/internal/domain"
)

// AuditRepository persists prediction audit records.
// The pgx implementation is in pg_audit_repo.go; the webhook provider is a
// second implementation. Tests use a hand-written mock (mock_audit_repo.go).
//
// Save must be idempotent on record ID: workers retry failed writes.
type AuditRepository interface {
	Save(ctx context.Context, rec *domain.AuditRecord) error
}

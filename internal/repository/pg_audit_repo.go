package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ricirt/dummy-predictor/internal/domain"
)

type pgAuditRepository struct {
	pool *pgxpool.Pool
}

// NewPgAuditRepository returns an AuditRepository backed by PostgreSQL.
func NewPgAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &pgAuditRepository{pool: pool}
}

func (r *pgAuditRepository) Save(ctx context.Context, rec *domain.AuditRecord) error {
	// input is jsonb; a nil RawMessage must reach the driver as SQL NULL,
	// not as the JSON literal null.
	var input any
	if rec.Input != nil {
		input = string(rec.Input)
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO prediction_audit
			(id, correlation_id, method, has_input, input, prediction, remote_addr, created_at)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.CorrelationID, rec.Method, rec.HasInput, input,
		rec.Prediction, rec.RemoteAddr, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

package queue

import "github.com/ricirt/dummy-predictor/internal/domain"

// Item is the unit placed on the queue. The record is complete: there is no
// store to re-read it from, so workers write exactly what was enqueued.
type Item struct {
	Record *domain.AuditRecord
}

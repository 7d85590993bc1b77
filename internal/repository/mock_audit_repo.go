package repository

import (
	"context"
	"sync"

	"github.com/ricirt/dummy-predictor/internal/domain"
)

// MockAuditRepository is a hand-written, in-memory implementation of
// AuditRepository used in unit tests.
type MockAuditRepository struct {
	mu      sync.Mutex
	records map[string]*domain.AuditRecord
	order   []string
	calls   int

	// SaveErr is returned by the first FailTimes calls to Save
	// (every call when FailTimes is negative).
	SaveErr   error
	FailTimes int
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{records: make(map[string]*domain.AuditRecord)}
}

func (m *MockAuditRepository) Save(_ context.Context, rec *domain.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.SaveErr != nil && (m.FailTimes < 0 || m.calls <= m.FailTimes) {
		return m.SaveErr
	}

	if _, ok := m.records[rec.ID]; ok {
		return nil
	}
	clone := *rec
	m.records[rec.ID] = &clone
	m.order = append(m.order, rec.ID)
	return nil
}

// Records returns the saved records in insertion order.
func (m *MockAuditRepository) Records() []*domain.AuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditRecord, 0, len(m.order))
	for _, id := range m.order {
		clone := *m.records[id]
		out = append(out, &clone)
	}
	return out
}

// Calls returns how many times Save was invoked, failures included.
func (m *MockAuditRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ AuditRepository = (*MockAuditRepository)(nil)

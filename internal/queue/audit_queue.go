package queue

import (
	"context"

	"github.com/ricirt/dummy-predictor/internal/domain"
)

// AuditQueue is a bounded buffer between request handlers and audit workers.
// Handlers never wait on it: when the buffer is full the record is refused
// and the prediction is still served.
type AuditQueue struct {
	items chan Item
}

// New returns a queue holding at most size items (minimum 1).
func New(size int) *AuditQueue {
	if size < 1 {
		size = 1
	}
	return &AuditQueue{items: make(chan Item, size)}
}

// Enqueue places an item on the queue without blocking.
// Returns domain.ErrQueueFull when the buffer is at capacity.
func (q *AuditQueue) Enqueue(item Item) error {
	select {
	case q.items <- item:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Dequeue blocks until an item is available or ctx is cancelled.
// Returns (Item{}, false) when ctx is cancelled.
func (q *AuditQueue) Dequeue(ctx context.Context) (Item, bool) {
	select {
	case item := <-q.items:
		return item, true
	case <-ctx.Done():
		return Item{}, false
	}
}

// Depth returns the number of items waiting.
func (q *AuditQueue) Depth() int {
	return len(q.items)
}

// Capacity returns the maximum number of items the queue holds.
func (q *AuditQueue) Capacity() int {
	return cap(q.items)
}

package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/queue"
	"github.com/ricirt/dummy-predictor/internal/ratelimiter"
	"github.com/ricirt/dummy-predictor/internal/repository"
)

// Worker is a single goroutine that pulls audit records from the queue,
// waits on the sink limiter and writes them, retrying failed writes.
type Worker struct {
	id         int
	q          *queue.AuditQueue
	repo       repository.AuditRepository
	limiter    *ratelimiter.SinkLimiter
	maxRetries int
	backoff    []time.Duration
	logger     *zap.Logger

	// Hooks for metrics — injected by the pool so the worker stays metrics-agnostic.
	onWritten func(latency time.Duration)
	onFailed  func()
}

// NewWorker constructs a worker. onWritten and onFailed are optional (nil = no-op).
func NewWorker(
	id int,
	q *queue.AuditQueue,
	repo repository.AuditRepository,
	limiter *ratelimiter.SinkLimiter,
	maxRetries int,
	backoff []time.Duration,
	logger *zap.Logger,
	onWritten func(time.Duration),
	onFailed func(),
) *Worker {
	if onWritten == nil {
		onWritten = func(time.Duration) {}
	}
	if onFailed == nil {
		onFailed = func() {}
	}
	if len(backoff) == 0 {
		backoff = []time.Duration{time.Second}
	}
	return &Worker{
		id: id, q: q, repo: repo, limiter: limiter,
		maxRetries: maxRetries, backoff: backoff, logger: logger,
		onWritten: onWritten, onFailed: onFailed,
	}
}

// Run blocks until ctx is cancelled, writing one queue item per iteration.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("audit worker started", zap.Int("id", w.id))
	for {
		item, ok := w.q.Dequeue(ctx)
		if !ok {
			w.logger.Info("audit worker stopping", zap.Int("id", w.id))
			return
		}
		w.process(ctx, item)
	}
}

func (w *Worker) process(ctx context.Context, item queue.Item) {
	start := time.Now()
	rec := item.Record
	log := w.logger.With(
		zap.String("audit_id", rec.ID),
		zap.String("correlation_id", rec.CorrelationID),
	)

	for attempt := 0; ; attempt++ {
		// Block here until the sink limiter grants a token.
		if err := w.limiter.Wait(ctx); err != nil {
			// ctx cancelled while waiting — worker is shutting down.
			return
		}

		err := w.repo.Save(ctx, rec)
		if err == nil {
			elapsed := time.Since(start)
			w.onWritten(elapsed)
			log.Debug("audit record written", zap.Int("attempts", attempt+1), zap.Duration("latency", elapsed))
			return
		}

		if attempt >= w.maxRetries {
			w.onFailed()
			log.Error("audit record abandoned", zap.Int("attempts", attempt+1), zap.Error(err))
			return
		}

		delay := w.backoffFor(attempt)
		log.Warn("audit write failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Duration("retry_in", delay),
		)

		if !sleep(ctx, delay) {
			return
		}
	}
}

// backoffFor returns the delay before retry number attempt+1.
//
//	attempt 0 → backoff[0]
//	attempt 1 → backoff[1]
//	attempt N ≥ len(backoff) → last backoff entry (clamped)
func (w *Worker) backoffFor(attempt int) time.Duration {
	if attempt >= len(w.backoff) {
		attempt = len(w.backoff) - 1
	}
	return w.backoff[attempt]
}

// sleep waits for d or until ctx is cancelled. Reports whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}


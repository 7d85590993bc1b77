package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/config"
	"github.com/ricirt/dummy-predictor/internal/queue"
	"github.com/ricirt/dummy-predictor/internal/ratelimiter"
	"github.com/ricirt/dummy-predictor/internal/repository"
)

// MetricHooks carries the metric callback functions injected by main.
// Using a struct keeps the pool constructor signature clean.
type MetricHooks struct {
	OnWritten func(latency time.Duration)
	OnFailed  func()
}

// Pool manages the lifecycle of all audit workers.
// All workers share one queue and one sink limiter.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
}

// NewPool creates cfg.AuditWorkers identical workers.
func NewPool(
	cfg *config.Config,
	q *queue.AuditQueue,
	repo repository.AuditRepository,
	limiter *ratelimiter.SinkLimiter,
	logger *zap.Logger,
	hooks MetricHooks,
) *Pool {
	workers := make([]*Worker, cfg.AuditWorkers)

	for i := range workers {
		workers[i] = NewWorker(
			i, q, repo, limiter,
			cfg.AuditMaxRetries,
			cfg.AuditRetryBackoff,
			logger.With(zap.Int("worker_id", i)),
			hooks.OnWritten,
			hooks.OnFailed,
		)
	}

	return &Pool{workers: workers}
}

// Start launches all workers as goroutines.
// Cancelling ctx stops the whole pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Wait blocks until every worker has returned after ctx is cancelled.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

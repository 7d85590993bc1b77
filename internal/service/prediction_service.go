package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/domain"
	"github.com/ricirt/dummy-predictor/internal/queue"
)

// Hooks carries the metric callbacks injected by main. Nil fields are no-ops.
type Hooks struct {
	OnPrediction func(withInput bool)
	OnDropped    func()
}

// PredictionService answers prediction requests with the placeholder model
// and hands an audit record to the queue when one is wired.
// The response never depends on the audit outcome.
type PredictionService struct {
	q      *queue.AuditQueue
	logger *zap.Logger

	onPrediction func(withInput bool)
	onDropped    func()
}

// NewPredictionService builds the service. q may be nil, which disables
// auditing entirely.
func NewPredictionService(q *queue.AuditQueue, logger *zap.Logger, hooks Hooks) *PredictionService {
	if hooks.OnPrediction == nil {
		hooks.OnPrediction = func(bool) {}
	}
	if hooks.OnDropped == nil {
		hooks.OnDropped = func() {}
	}
	return &PredictionService{
		q:            q,
		logger:       logger,
		onPrediction: hooks.OnPrediction,
		onDropped:    hooks.OnDropped,
	}
}

// Predict returns the fixed dummy prediction, echoing req.Input when the
// request carried a well-typed JSON body.
func (s *PredictionService) Predict(ctx context.Context, req domain.PredictRequest) *domain.Prediction {
	p := &domain.Prediction{
		Prediction: domain.DummyLabel,
		Input:      req.Input,
	}

	s.onPrediction(p.HasInput())
	s.audit(req, p)
	return p
}

// audit enqueues a record of the prediction without blocking.
// A full queue drops the record; the caller's response is unaffected.
func (s *PredictionService) audit(req domain.PredictRequest, p *domain.Prediction) {
	if s.q == nil {
		return
	}

	rec := &domain.AuditRecord{
		ID:            uuid.New().String(),
		CorrelationID: req.CorrelationID,
		Method:        req.Method,
		HasInput:      p.HasInput(),
		Input:         p.Input,
		Prediction:    p.Prediction,
		RemoteAddr:    req.RemoteAddr,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.q.Enqueue(queue.Item{Record: rec}); err != nil {
		s.onDropped()
		s.logger.Warn("audit queue full: record dropped",
			zap.String("correlation_id", req.CorrelationID),
			zap.Error(err),
		)
		return
	}

	if ce := s.logger.Check(zap.DebugLevel, "audit record queued"); ce != nil {
		ce.Write(zap.String("audit_id", rec.ID), zap.Bool("has_input", rec.HasInput))
	}
}

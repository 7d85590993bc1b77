package domain

import "errors"

// Sentinel errors used throughout the application.
// None of them reach a /predict or /health caller; they surface in logs,
// metrics and startup failures.
var (
	ErrQueueFull          = errors.New("audit queue is at capacity")
	ErrInvalidAuditSink   = errors.New("invalid audit sink: must be none, postgres, or webhook")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres audit sink")
	ErrMissingWebhookURL  = errors.New("AUDIT_WEBHOOK_URL is required for the webhook audit sink")
	ErrSinkRejected       = errors.New("audit sink rejected record")
)

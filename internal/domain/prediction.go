package domain

import (
	"encoding/json"
	"time"
)

// DummyLabel is the only label the placeholder model ever produces.
const DummyLabel = "dummy"

// StatusOK is the body value reported by the liveness probe.
const StatusOK = "ok"

// Prediction is the response body of /predict.
//
// Input is kept as raw JSON so the caller's value is echoed without a
// decode/encode round trip. omitempty only drops a nil slice, so a JSON
// null body is still echoed as "input":null.
type Prediction struct {
	Prediction string          `json:"prediction"`
	Input      json.RawMessage `json:"input,omitempty"`
}

// HasInput reports whether the prediction echoes a request body.
func (p *Prediction) HasInput() bool {
	return p.Input != nil
}

// PredictRequest is what the HTTP layer hands to the prediction service.
// Input is nil when the request carried no well-typed JSON body.
type PredictRequest struct {
	Method        string
	Input         json.RawMessage
	CorrelationID string
	RemoteAddr    string
}

// AuditSink selects where audit records are written.
type AuditSink string

const (
	AuditSinkNone     AuditSink = "none"
	AuditSinkPostgres AuditSink = "postgres"
	AuditSinkWebhook  AuditSink = "webhook"
)

func (s AuditSink) IsValid() bool {
	switch s {
	case AuditSinkNone, AuditSinkPostgres, AuditSinkWebhook:
		return true
	}
	return false
}

// AuditRecord is the trace of a single served prediction.
type AuditRecord struct {
	ID            string          `json:"id"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Method        string          `json:"method"`
	HasInput      bool            `json:"has_input"`
	Input         json.RawMessage `json:"input,omitempty"`
	Prediction    string          `json:"prediction"`
	RemoteAddr    string          `json:"remote_addr,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

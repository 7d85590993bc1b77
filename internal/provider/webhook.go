package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ricirt/dummy-predictor/internal/domain"
	"github.com/ricirt/dummy-predictor/internal/repository"
)

// WebhookProvider forwards audit records by POSTing them as JSON to an
// external collector. The URL is injected from config so tests can point to
// a local server.
type WebhookProvider struct {
	url        string
	httpClient *http.Client
}

func NewWebhookProvider(url string, timeout time.Duration) *WebhookProvider {
	return &WebhookProvider{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Save posts the record and treats any 2xx response as accepted.
// The record ID travels in Idempotency-Key so a collector can drop the
// duplicates a retry may produce.
func (p *WebhookProvider) Save(ctx context.Context, rec *domain.AuditRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", rec.ID)
	if rec.CorrelationID != "" {
		req.Header.Set("X-Correlation-ID", rec.CorrelationID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", domain.ErrSinkRejected, resp.StatusCode)
	}

	return nil
}

// compile-time check that WebhookProvider can stand in for the database
var _ repository.AuditRepository = (*WebhookProvider)(nil)

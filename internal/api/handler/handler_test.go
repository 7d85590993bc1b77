package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/api/handler"
	"github.com/ricirt/dummy-predictor/internal/service"
)

func newPredictHandler() *handler.PredictHandler {
	return handler.NewPredictHandler(service.NewPredictionService(nil, zap.NewNop(), service.Hooks{}))
}

func TestHealth(t *testing.T) {
	h := handler.NewHealthHandler()

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(method, "/health", strings.NewReader("ignored")))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
				t.Fatalf("unexpected body: %s", got)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected application/json, got %q", ct)
			}
		})
	}
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name   string
		method string
		ct     string
		body   string
		want   string
	}{
		{"get", http.MethodGet, "", "", `{"prediction":"dummy"}`},
		{"get ignores json body", http.MethodGet, "application/json", `{"x":1}`, `{"prediction":"dummy"}`},
		{"post json object", http.MethodPost, "application/json", `{"x":1}`, `{"prediction":"dummy","input":{"x":1}}`},
		{"post json array", http.MethodPost, "application/json", `[1, "two", null]`, `{"prediction":"dummy","input":[1,"two",null]}`},
		{"post json null", http.MethodPost, "application/json", `null`, `{"prediction":"dummy","input":null}`},
		{"post plain text", http.MethodPost, "text/plain", `hello`, `{"prediction":"dummy"}`},
		{"post invalid json", http.MethodPost, "application/json", `{not json`, `{"prediction":"dummy"}`},
		{"post empty body", http.MethodPost, "application/json", ``, `{"prediction":"dummy"}`},
		{"post large number keeps precision", http.MethodPost, "application/json", `{"n":12345678901234567890}`, `{"prediction":"dummy","input":{"n":12345678901234567890}}`},
	}

	h := newPredictHandler()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/predict", strings.NewReader(tc.body))
			if tc.ct != "" {
				req.Header.Set("Content-Type", tc.ct)
			}
			rec := httptest.NewRecorder()
			h.Predict(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	if rec.Code != http.StatusNotFound || strings.TrimSpace(rec.Body.String()) != `{"error":"not found"}` {
		t.Fatalf("unexpected not found response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPut, "/predict", nil))
	if rec.Code != http.StatusMethodNotAllowed || strings.TrimSpace(rec.Body.String()) != `{"error":"method not allowed"}` {
		t.Fatalf("unexpected method not allowed response: %d %s", rec.Code, rec.Body.String())
	}
}

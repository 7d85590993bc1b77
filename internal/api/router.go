package api

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ricirt/dummy-predictor/internal/api/handler"
	apimw "github.com/ricirt/dummy-predictor/internal/api/middleware"
	"github.com/ricirt/dummy-predictor/internal/metrics"
	"github.com/ricirt/dummy-predictor/internal/service"
)

// Options tunes the application router.
type Options struct {
	MaxBodyBytes int64
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area:
// /health and /predict only. The scrape endpoint lives on NewMetricsServer.
func NewRouter(
	svc *service.PredictionService,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.RealIP)                         // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(opts.MaxBodyBytes)) // oversized bodies read as invalid JSON
	r.Use(apimw.CorrelationID)                  // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))
	r.Use(apimw.Instrument(m))

	// Recovered panics still pass through the logger and the request metrics.
	r.Use(chimw.Recoverer)
	if sentry.CurrentHub().Client() != nil {
		// report panics, then hand them on to Recoverer
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}

	// HEAD falls through to GET routes
	r.Use(chimw.GetHead)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// --- handler instances ---
	hh := handler.NewHealthHandler()
	ph := handler.NewPredictHandler(svc)

	// --- routes ---
	r.HandleFunc("/health", hh.Health) // every method
	r.Get("/predict", ph.Predict)
	r.Post("/predict", ph.Predict)

	return r
}

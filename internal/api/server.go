package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ricirt/dummy-predictor/internal/api/handler"
	"github.com/ricirt/dummy-predictor/internal/config"
)

// NewServer builds the HTTP server around handler. With H2C enabled the
// handler also accepts HTTP/2 over cleartext connections.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	if cfg.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}

// NewMetricsServer serves the Prometheus scrape endpoint on its own
// listener so the application port answers only /health and /predict.
func NewMetricsServer(cfg *config.Config, reg prometheus.Gatherer) *http.Server {
	r := chi.NewRouter()
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ricirt/dummy-predictor/internal/metrics"
)

// unmatchedRoute labels requests no route claimed, keeping label
// cardinality bounded no matter which paths clients probe.
const unmatchedRoute = "unmatched"

// Instrument records request counts and latency per chi route pattern.
// It must run inside the chi router so the route pattern is resolved by the
// time the handler returns.
func Instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
		})
	}
}

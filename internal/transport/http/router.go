// Package httptransport assembles the service router. It owns no business
// logic: feature handlers register themselves and this package wires the
// cross-cutting middleware and operational endpoints around them.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"counsel/internal/platform/metrics"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/platform/middleware/metadata"
	"counsel/pkg/platform/middleware/requestid"
	"counsel/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by feature handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports the health of an optional backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires middleware, operational endpoints, and feature handlers.
// Health checkers may be nil (the dependency is simply not configured).
func NewRouter(m *metrics.Metrics, checkers map[string]HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(m.Middleware)

	r.Get("/healthz", healthHandler(checkers))
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func healthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		deps := map[string]string{}
		for name, checker := range checkers {
			if checker == nil {
				deps[name] = "not configured"
				continue
			}
			if err := checker.Health(r.Context()); err != nil {
				deps[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := map[string]any{"status": "ok", "dependencies": deps}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}

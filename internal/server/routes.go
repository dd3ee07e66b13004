package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, fwd Forwarder, healthz http.Handler, limiter *IPRateLimiter) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Form Relay API", "/openapi.json", "/docs"))
	if healthz != nil {
		r.Mount("/healthz", healthz)
	}

	// Form trigger routes.
	r.Route("/api/submissions", func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimitMiddleware(limiter, logger))
		}
		r.Post("/", handleSubmit(logger, fwd))
		r.Post("/preview", handlePreview(fwd))
	})
}

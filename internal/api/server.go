// Package api exposes the projection engine and scenario store over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

// NewRouter wires every route onto a chi router.
func NewRouter(h *Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/projections", h.RunProjection)

		r.Get("/scenarios", h.ListScenarios)
		r.Get("/scenarios/active", h.GetActiveScenario)
		r.Get("/scenarios/{name}", h.GetScenario)
		r.Put("/scenarios/{name}", h.PutScenario)
		r.Delete("/scenarios/{name}", h.DeleteScenario)
		r.Post("/scenarios/{name}/projection", h.RunStoredProjection)
	})

	return router
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

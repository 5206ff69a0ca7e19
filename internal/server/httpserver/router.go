// Package httpserver exposes the contact API over HTTP: routing, middleware,
// the bearer-token gate, handlers and the JSON envelope.
package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Handlers      *Handlers
	Gate          *AuthGate
	Health        http.Handler
	Logger        logging.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	AuthRateLimit func(http.Handler) http.Handler // /signup and /login
	Metrics       bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Logger))
	r.Use(recoverMiddleware(cfg.Logger))
	if cfg.Metrics {
		r.Use(prometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(requireJSON)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	if cfg.Health != nil {
		r.Method(http.MethodGet, "/health", cfg.Health)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	h := cfg.Handlers

	r.Group(func(r chi.Router) {
		if cfg.AuthRateLimit != nil {
			r.Use(cfg.AuthRateLimit)
		}
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", cfg.Gate.Require(h.ListContacts))
		r.Post("/", cfg.Gate.Require(h.CreateContact))
		r.Get("/search", cfg.Gate.Require(h.SearchContacts))
	})

	r.Get("/user/details", cfg.Gate.Require(h.UserDetails))

	return r
}

// loggerMiddleware writes one access log line per request after it completes.
func loggerMiddleware(log logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info(r.Context(), "request",
				"request_id", chimid.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

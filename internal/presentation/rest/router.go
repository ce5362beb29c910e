package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arinherbz/chat-interferes-sub000/pkg/auth"
)

// RouterConfig holds what NewRouter mounts. Metrics and Limiter are optional.
type RouterConfig struct {
	API     *TradeInHandler
	Health  *HealthHandler
	Metrics http.Handler
	Limiter *RateLimiter
	JWT     *auth.JWTService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter builds the HTTP surface: unauthenticated probes and metrics at
// the root, the JSON API under /api/v1 behind bearer authentication.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	cfg.Health.Register(r)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Timeout))
		r.Use(auth.HTTPMiddleware(cfg.JWT))
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Middleware)
		}
		cfg.API.Register(r)
	})
	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

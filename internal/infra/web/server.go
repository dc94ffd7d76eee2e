package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"job-estimator/internal/domain"
)

// Dashboard is the view-state controller the server drives.
type Dashboard interface {
	State() domain.State
	SetPrompt(text string) domain.State
	StartEstimate(ctx context.Context) (<-chan struct{}, error)
	StartCapture(ctx context.Context) (<-chan struct{}, error)
}

type Options struct {
	Addr string

	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit      int
	AllowedOrigins []string
}

type Server struct {
	opts      Options
	dashboard Dashboard
	logger    *zap.Logger
	router    chi.Router

	mu      sync.Mutex
	server  *http.Server
	running bool
}

func NewServer(opts Options, dashboard Dashboard, logger *zap.Logger) *Server {
	s := &Server{
		opts:      opts,
		dashboard: dashboard,
		logger:    logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// No rate limiting on health check
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
		}

		r.Get("/", s.handleIndex)
		r.Post("/estimate", s.handleEstimateForm)
		r.Post("/voice", s.handleVoiceForm)

		r.Route("/api", func(r chi.Router) {
			r.Get("/state", s.handleState)
			r.Put("/prompt", s.handlePrompt)
			r.Post("/estimate", s.handleEstimate)
			r.Post("/voice", s.handleVoice)
		})
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("dashboard server starting", zap.String("addr", s.opts.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dashboard server error", zap.Error(err))
		}
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown failed, forcing close", zap.Error(err))
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("closing server: %w", err)
		}
	}

	s.running = false
	return nil
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

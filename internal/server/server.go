// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/logging"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// Version is reported by /health.
	Version = "1.0.0"

	shutdownTimeout = 5 * time.Second
	clientIdleAfter = 10 * time.Minute
)

// ============================================================================
// SERVER
// ============================================================================

// Server is the local admin API over the shared services.
type Server struct {
	svc     *app.Services
	cfg     config.ServerConfig
	logger  *zap.Logger
	tokens  *TokenIssuer
	limiter *RateLimiter
	metrics *Metrics
	engine  *gin.Engine
	started time.Time

	mu        sync.Mutex
	http      *http.Server
	scheduler *gocron.Scheduler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTokenIssuer replaces the issuer built from config.
func WithTokenIssuer(t *TokenIssuer) Option {
	return func(s *Server) { s.tokens = t }
}

// New builds the router and middleware for svc. Nothing listens until
// Start.
func New(svc *app.Services, cfg config.ServerConfig, opts ...Option) (*Server, error) {
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		metrics: NewMetrics(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)

	if s.tokens == nil {
		tokens, err := NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL.Duration)
		if err != nil {
			return nil, err
		}
		if cfg.JWTSecret == "" {
			s.logger.Warn("no jwt_secret configured; tokens are valid for this process only")
		}
		s.tokens = tokens
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.setupRoutes()
	s.refreshStats()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	r := s.engine
	r.Use(
		Recovery(s.logger),
		RequestLogger(s.logger),
		SecurityHeaders(),
		Instrument(s.metrics),
	)
	if len(s.cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api", RateLimit(s.limiter, s.logger))
	api.POST("/login", s.handleLogin)

	admin := api.Group("", RequireAdmin(s.tokens))
	admin.GET("/security/logs", s.handleLogs)
	admin.GET("/security/alerts", s.handleAlerts)
	admin.POST("/security/alerts/:id/resolve", s.handleResolveAlert)
	admin.GET("/security/stats", s.handleStats)
	admin.GET("/dashboard", s.handleDashboard)
	admin.GET("/users", s.handleUsers)
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Start listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	scheduler := gocron.NewScheduler(time.Local)
	refresh := s.cfg.StatsRefresh.Duration
	if refresh <= 0 {
		refresh = 15 * time.Second
	}
	if _, err := scheduler.Every(refresh).Do(s.refreshStats); err != nil {
		return fmt.Errorf("schedule stats refresh: %w", err)
	}
	if _, err := scheduler.Every(time.Minute).Do(s.sweepClients); err != nil {
		return fmt.Errorf("schedule rate limiter sweep: %w", err)
	}
	scheduler.StartAsync()

	s.mu.Lock()
	s.http = srv
	s.scheduler = scheduler
	s.mu.Unlock()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("admin api listening", zap.String("addr", ln.Addr().String()), zap.String("version", Version))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		scheduler.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("admin api shutting down")
	scheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ApplyConfig adopts the settings that can change while running.
func (s *Server) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.limiter.SetLimit(cfg.Server.RateLimit, cfg.Server.RateBurst)
	s.svc.ApplyConfig(cfg)
	s.refreshStats()
	s.logger.Info("server config reloaded",
		zap.Float64("rate_limit", cfg.Server.RateLimit),
		zap.Int("rate_burst", cfg.Server.RateBurst))
}

// refreshStats copies the monitor's stats into the gauges.
func (s *Server) refreshStats() {
	s.metrics.Observe(s.svc.Monitor.Stats(), s.svc.Sessions.Attempts())
}

func (s *Server) sweepClients() {
	remaining := s.limiter.Sweep(clientIdleAfter)
	s.metrics.RateClients.Set(float64(remaining))
}

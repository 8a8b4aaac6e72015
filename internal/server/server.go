// Package server wires the application together and runs the HTTP server.
//
// This is the composition root: New builds the session manager, the metrics
// collector, every service and every handler, and mounts them on a chi router.
// No other package constructs dependencies for another.
//
// ROUTES:
//
//	GET  /healthz                          liveness
//	GET  /metrics                          Prometheus exposition
//	GET  /api/session                      current user, page, view, menu
//	POST /api/session/login                sign in as a role
//	POST /api/session/logout               sign out
//	POST /api/navigate                     move to a page
//	GET  /api/view                         current view and its data
//	GET  /api/internships                  board, ?q=&type=
//	GET  /api/internships/types            filterable types
//	POST /api/internships                  post an internship
//	POST /api/internships/{id}/apply       apply
//	GET  /api/applications                 the caller's applications
//	GET  /api/logbook                      entries and summary
//	POST /api/logbook                      add an entry
//	GET  /api/notifications                inbox and unread count
//	POST /api/notifications/{id}/read      mark one read
//	POST /api/notifications/read-all       mark all read
//	GET  /api/students                     roster, ?q=
//	PUT  /api/students/{id}/status         set placement status
//	GET  /api/candidates                   candidates and decisions
//	POST /api/candidates/{id}/decision     shortlist or reject
//	PATCH /api/profile                     save settings
//	GET  /api/dashboard                    per-role stats
//	GET  /api/reports                      roster analytics
//
// Everything under /api runs behind session.Middleware and the per-client
// rate limiter.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/internhub/internal/auth"
	"github.com/sakif/internhub/internal/handler"
	"github.com/sakif/internhub/internal/metrics"
	"github.com/sakif/internhub/internal/middleware"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/service"
	"github.com/sakif/internhub/internal/session"
)

// Config holds server configuration, read from the environment in main.
type Config struct {
	Port int

	// SessionSecret signs the session cookie.
	SessionSecret string
	// SessionTTL is both the cookie lifetime and the idle timeout after
	// which a session's state is discarded.
	SessionTTL time.Duration
	// SecureCookies marks the session cookie Secure (HTTPS only).
	SecureCookies bool

	// SimulatedLatency delays apply, sign-in and profile saves.
	SimulatedLatency time.Duration
	// EnforceRoles redirects users away from other roles' pages.
	EnforceRoles bool

	RateLimitRPS   float64
	RateLimitBurst int
}

// Server owns the router and the long-lived state behind it.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	sessions *session.Manager
	limiter  *middleware.RateLimiter
	metrics  *metrics.Collector
	tokens   *auth.TokenService
}

// New builds a Server. It starts no goroutines; Start does.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = auth.DefaultTokenTTL
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 40
	}

	tokens, err := auth.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	collector := metrics.New()
	sessions := session.NewManager(session.Config{
		IdleTTL: cfg.SessionTTL,
		Latency: cfg.SimulatedLatency,
		Routing: router.Options{EnforceRoles: cfg.EnforceRoles},
	}, logger,
		session.WithObserver(collector),
		session.WithGauge(collector),
	)

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		sessions: sessions,
		limiter:  middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
		metrics:  collector,
		tokens:   tokens,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Sessions exposes the session manager, mainly for tests.
func (s *Server) Sessions() *session.Manager { return s.sessions }

func (s *Server) setupRoutes() {
	// Order matters: RealIP before anything that reads RemoteAddr, and
	// Recoverer inside Logger so a panic is still logged as a 500.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.metrics.Instrument)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	s.router.Handle("/metrics", s.metrics.Handler())

	internships := service.NewInternshipService(s.logger)
	logbook := service.NewLogbookService(s.logger)
	roster := service.NewRosterService(s.logger)
	dashboard := service.NewDashboardService()
	views := service.NewViewService(internships, logbook, roster, dashboard)

	sessionHandler := handler.NewSessionHandler(service.NewSessionService(s.logger), views, s.logger)
	internshipHandler := handler.NewInternshipHandler(internships, s.logger)
	logbookHandler := handler.NewLogbookHandler(logbook, s.logger)
	notificationHandler := handler.NewNotificationHandler(service.NewNotificationService(s.logger), s.logger)
	rosterHandler := handler.NewRosterHandler(roster, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboard, service.NewProfileService(s.logger), s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Handler)
		r.Use(session.Middleware(s.sessions, s.tokens, s.config.SecureCookies, s.logger))

		r.Get("/session", sessionHandler.HandleGet)
		r.Post("/session/login", sessionHandler.HandleLogin)
		r.Post("/session/logout", sessionHandler.HandleLogout)
		r.Post("/navigate", sessionHandler.HandleNavigate)
		r.Get("/view", sessionHandler.HandleView)

		r.Get("/internships", internshipHandler.HandleList)
		r.Get("/internships/types", internshipHandler.HandleTypes)
		r.Post("/internships", internshipHandler.HandleCreate)
		r.Post("/internships/{id}/apply", internshipHandler.HandleApply)
		r.Get("/applications", internshipHandler.HandleApplications)

		r.Get("/logbook", logbookHandler.HandleList)
		r.Post("/logbook", logbookHandler.HandleCreate)

		r.Get("/notifications", notificationHandler.HandleList)
		r.Post("/notifications/read-all", notificationHandler.HandleMarkAllRead)
		r.Post("/notifications/{id}/read", notificationHandler.HandleMarkRead)

		r.Get("/students", rosterHandler.HandleStudents)
		r.Put("/students/{id}/status", rosterHandler.HandleUpdateStatus)
		r.Get("/candidates", rosterHandler.HandleCandidates)
		r.Post("/candidates/{id}/decision", rosterHandler.HandleDecide)

		r.Patch("/profile", dashboardHandler.HandleUpdateProfile)
		r.Get("/dashboard", dashboardHandler.HandleDashboard)
		r.Get("/reports", dashboardHandler.HandleReports)
	})
}

// Start serves HTTP until SIGINT/SIGTERM, then shuts down gracefully: stop
// accepting connections, drain in-flight requests, then end every session so
// pending delayed updates are cancelled.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer s.sessions.Close()

	s.sessions.StartJanitor(ctx, sweepInterval(s.config.SessionTTL))
	s.limiter.StartCleanup(ctx, time.Minute, 10*time.Minute)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// WriteTimeout leaves room for simulated latency on top of the handler.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + s.config.SimulatedLatency,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.Duration("simulatedLatency", s.config.SimulatedLatency),
			slog.Bool("enforceRoles", s.config.EnforceRoles),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully", slog.Int("sessions", s.sessions.Len()))
	}

	return nil
}

// sweepInterval checks for idle sessions a few times per TTL, but not more
// than once a second.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}

// Package server wires the router, middleware, and all route definitions.
// It is the composition root: the database, services, and handlers are all
// constructed here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/linkhubhq/linkhub/internal/auth"
	"github.com/linkhubhq/linkhub/internal/handler"
	"github.com/linkhubhq/linkhub/internal/middleware"
	sqliteRepo "github.com/linkhubhq/linkhub/internal/repository/sqlite"
	"github.com/linkhubhq/linkhub/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories, then services, then handlers, then routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	linkService := service.NewLinkService(s.db.Links(), s.logger)
	themeService := service.NewThemeService(s.db.Themes(), s.logger)
	analyticsService := service.NewAnalyticsService(s.db.Users(), s.db.Links(), s.db.PageViews(), s.logger)
	contactService := service.NewContactService(s.db.Contacts(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	linkHandler := handler.NewLinkHandler(linkService, s.logger)
	themeHandler := handler.NewThemeHandler(themeService, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.logger)
	profileHandler := handler.NewProfileHandler(authService, linkService, themeService, analyticsService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public routes: no session required.
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/profiles/{username}", profileHandler.HandleGet)
		r.Post("/links/{id}/click", linkHandler.HandleClick)
		r.Post("/contact", contactHandler.HandleSubmit)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)
			r.Put("/me", authHandler.HandleUpdateProfile)

			r.Get("/links", linkHandler.HandleList)
			r.Post("/links", linkHandler.HandleCreate)
			r.Put("/links/reorder", linkHandler.HandleReorder)
			r.Put("/links/{id}", linkHandler.HandleUpdate)
			r.Delete("/links/{id}", linkHandler.HandleDelete)

			r.Get("/theme", themeHandler.HandleGet)
			r.Put("/theme", themeHandler.HandleUpdate)

			r.Get("/analytics", analyticsHandler.HandleSummary)
			r.Get("/analytics/views", analyticsHandler.HandleHistory)

			r.Get("/admin/contact", contactHandler.HandleList)
		})
	})

	return nil
}

// Start runs the HTTP server until a SIGINT/SIGTERM arrives, then drains
// in-flight requests before closing the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Package server wires the application together: storage scopes,
// services, handlers, routes, and the HTTP lifecycle.
//
// This is the composition root — every dependency is constructed here,
// in one place, and handed down. Handlers never touch the store;
// services never touch HTTP.
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

	"github.com/sakif/shop-ledger/internal/auth"
	"github.com/sakif/shop-ledger/internal/config"
	"github.com/sakif/shop-ledger/internal/handler"
	"github.com/sakif/shop-ledger/internal/middleware"
	"github.com/sakif/shop-ledger/internal/service"
	"github.com/sakif/shop-ledger/internal/store"
	"github.com/sakif/shop-ledger/internal/store/memory"
	"github.com/sakif/shop-ledger/internal/store/sqlite"
)

// Server owns the router, the durable database, and the config.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqlite.DB // closed on shutdown; flushes WAL, releases the file lock
}

// New builds the full dependency graph.
//
// STORAGE SCOPES:
// One SQLite file is the durable scope (collections, remembered
// sessions, settings). One in-process map is the ephemeral scope
// (one-time sessions only) — it deliberately forgets everything on
// restart.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.DBPath)
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
	durable := store.NewCollections(s.db)
	ephemeral := store.NewCollections(memory.New())

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	sessions := auth.NewSessionStore(durable, ephemeral)

	authService := service.NewAuthService(durable, sessions, tokens, passwords, s.logger)
	productService := service.NewProductService(durable, s.logger)
	saleService := service.NewSaleService(durable, s.logger)
	reportService := service.NewReportService(durable, s.logger)
	settingsService := service.NewSettingsService(durable)
	adminService := service.NewAdminService(durable, ephemeral, s.config.ClearPIN, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)
	saleHandler := handler.NewSaleHandler(saleService, s.logger)
	reportHandler := handler.NewReportHandler(reportService, s.logger)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	adminHandler := handler.NewAdminHandler(adminService, s.logger)

	// Global middleware, in order: request ID → real IP → panic
	// recovery → request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Route("/api", func(r chi.Router) {
		// Public: you can't be logged in before logging in.
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Everything else requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, sessions))

			r.Post("/auth/logout", authHandler.HandleLogout)
			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/products", productHandler.HandleList)
			r.Post("/products", productHandler.HandleCreate)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)

			r.Get("/sales", saleHandler.HandleList)
			r.Post("/sales", saleHandler.HandleRecord)

			r.Get("/dashboard", reportHandler.HandleDashboard)
			r.Get("/reports", reportHandler.HandleReport)
			r.Get("/reports/export", reportHandler.HandleExport)

			r.Get("/settings/theme", settingsHandler.HandleGetTheme)
			r.Put("/settings/theme", settingsHandler.HandleSetTheme)

			r.Post("/admin/clear/{target}", adminHandler.HandleClear)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database.
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

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

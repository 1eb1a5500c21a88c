// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root": the one place where the whole dependency
// chain is assembled —
//
//	sqlite.DB stores → GameService/ReviewService/StatsService → handlers → routes
//
// Each layer only receives what it needs: services get the repository
// interfaces (not the concrete sqlite.DB), handlers get the services.
// Keeping the wiring out of main.go makes the server testable and main
// minimal.
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
	"github.com/go-chi/cors"

	"github.com/sakif/game-shelf/internal/handler"
	"github.com/sakif/game-shelf/internal/middleware"
	sqliteRepo "github.com/sakif/game-shelf/internal/repository/sqlite"
	"github.com/sakif/game-shelf/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string

	// CORSOrigins lists the origins allowed to call the API. The SPA
	// frontend is served from a different origin, so the browser needs
	// these headers. Empty means allow any origin.
	CORSOrigins []string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown to flush the WAL and release the file
// lock.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all routes wired.
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
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and the resource routes.
//
// ROUTE STRUCTURE:
//
//	GET    /resources/games          → filtered, sorted listing
//	GET    /resources/games/{id}     → single game
//	POST   /resources/games          → create
//	PUT    /resources/games/{id}     → update (owner check via body userId)
//	DELETE /resources/games/{id}     → delete + review cascade (owner check via ?userId=)
//	GET    /resources/reviews        → filtered listing, game refs expanded
//	GET    /resources/reviews/{id}   → single review
//	POST   /resources/reviews        → create
//	PUT    /resources/reviews/{id}   → update
//	DELETE /resources/reviews/{id}   → delete
//	GET    /resources/stats          → per-user derived summary
//
// Middleware order matters: RequestID first so the logger can read the id,
// Recoverer before our logger so a panic still produces a log line with
// a 500 status.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// The per-table stores satisfy the repository interfaces; the
	// services receive them as those interfaces and never see the
	// sqlite package.
	gameService := service.NewGameService(s.db.Games, s.db.Reviews, s.logger)
	reviewService := service.NewReviewService(s.db.Reviews, s.logger)
	statsService := service.NewStatsService(gameService, reviewService)

	gameHandler := handler.NewGameHandler(gameService, s.logger)
	reviewHandler := handler.NewReviewHandler(reviewService, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)

	s.router.Route("/resources", func(r chi.Router) {
		r.Get("/games", gameHandler.HandleList)
		r.Get("/games/{id}", gameHandler.HandleGetByID)
		r.Post("/games", gameHandler.HandleCreate)
		r.Put("/games/{id}", gameHandler.HandleUpdate)
		r.Delete("/games/{id}", gameHandler.HandleDelete)

		r.Get("/reviews", reviewHandler.HandleList)
		r.Get("/reviews/{id}", reviewHandler.HandleGetByID)
		r.Post("/reviews", reviewHandler.HandleCreate)
		r.Put("/reviews/{id}", reviewHandler.HandleUpdate)
		r.Delete("/reviews/{id}", reviewHandler.HandleDelete)

		r.Get("/stats", statsHandler.HandleSummary)
	})
}

// Router exposes the configured router, mainly for tests that want to
// drive the full stack through httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to 30s for in-flight requests
// 3. Close the database connection
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

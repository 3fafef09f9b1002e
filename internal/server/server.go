// Package server wires the database, services, handlers and routes, and
// runs the HTTP server until SIGINT or SIGTERM.
//
// DEPENDENCY FLOW:
//
//	config.Config → sqlite.DB → Venue/Artist/ShowService → handlers → chi routes
//
// The sqlite.DB satisfies every repository interface, so one value is
// passed to all three services. This is the only place the concrete
// storage type is named.
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

	"github.com/sakif/fyyur/internal/auth"
	"github.com/sakif/fyyur/internal/config"
	"github.com/sakif/fyyur/internal/handler"
	"github.com/sakif/fyyur/internal/middleware"
	sqliteRepo "github.com/sakif/fyyur/internal/repository/sqlite"
	"github.com/sakif/fyyur/internal/service"
)

// Server owns the database connection; Start closes it on the way out.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	editor *auth.Editor // nil when editor auth is not configured
}

// New opens the database, runs migrations and registers every route.
func New(cfg *config.Config, logger *slog.Logger, opts ...service.Option) (*Server, error) {
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

	if cfg.AuthEnabled() {
		editor, err := newEditor(cfg)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring editor auth: %w", err)
		}
		s.editor = editor
	} else {
		logger.Warn("FYYUR_JWT_SECRET or FYYUR_EDITOR_PASSWORD_HASH not set, write routes are open")
	}

	s.setupRoutes(opts)
	return s, nil
}

func newEditor(cfg *config.Config) (*auth.Editor, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	return auth.NewEditor(cfg.EditorPasswordHash, auth.NewPasswordService(), tokens)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it itself; use Close only for
// a Server that was never started.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes registers:
//
//	GET    /healthz
//	POST   /auth/login, /auth/logout        (only with editor auth)
//	GET    /api/venues                       grouped by city
//	POST   /api/venues/search
//	GET    /api/venues/{id}
//	POST   /api/venues                       write
//	PUT    /api/venues/{id}                  write
//	DELETE /api/venues/{id}                  write, always 501
//	GET    /api/artists
//	POST   /api/artists/search
//	GET    /api/artists/{id}
//	POST   /api/artists                      write
//	PUT    /api/artists/{id}                 write
//	GET    /api/shows
//	POST   /api/shows                        write
//
// Searches are POSTs but read-only, so they stay outside the editor group.
func (s *Server) setupRoutes(opts []service.Option) {
	// Order matters: RequestID must run before Logger reads it, and
	// Recoverer sits inside Logger so a panic is still logged as a 500.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	venueService := service.NewVenueService(s.db, s.db, s.logger, opts...)
	artistService := service.NewArtistService(s.db, s.db, s.logger, opts...)
	showService := service.NewShowService(s.db, s.logger, opts...)

	venues := handler.NewVenueHandler(venueService, s.logger)
	artists := handler.NewArtistHandler(artistService, s.logger)
	shows := handler.NewShowHandler(showService, s.logger)
	health := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/healthz", health.HandleHealth)

	if s.editor != nil {
		authHandler := handler.NewAuthHandler(s.editor, s.config.SecureCookies, s.logger)
		s.router.Post("/auth/login", authHandler.HandleLogin)
		s.router.Post("/auth/logout", authHandler.HandleLogout)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/venues", venues.HandleList)
		r.Post("/venues/search", venues.HandleSearch)
		r.Get("/venues/{id}", venues.HandleGet)

		r.Get("/artists", artists.HandleList)
		r.Post("/artists/search", artists.HandleSearch)
		r.Get("/artists/{id}", artists.HandleGet)

		r.Get("/shows", shows.HandleList)

		r.Group(func(r chi.Router) {
			if s.editor != nil {
				r.Use(auth.RequireEditor(s.editor.Tokens()))
			}

			r.Post("/venues", venues.HandleCreate)
			r.Put("/venues/{id}", venues.HandleUpdate)
			r.Delete("/venues/{id}", venues.HandleDelete)

			r.Post("/artists", artists.HandleCreate)
			r.Put("/artists/{id}", artists.HandleUpdate)

			r.Post("/shows", shows.HandleCreate)
		})
	})
}

// Start serves until a signal arrives, then drains in-flight requests for
// up to ShutdownTimeout and closes the database.
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
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("env", s.config.Env),
			slog.String("database", s.config.DBPath),
			slog.Bool("editor_auth", s.editor != nil),
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

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/config"
	"github.com/EzraKL/RentalFinder/internal/http/handlers"
	"github.com/EzraKL/RentalFinder/internal/middleware"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	authHandler := handlers.NewAuthHandler(store, tokens)
	authHandler.Register(mux)

	listings := handlers.NewListingHandler(store, tokens)
	listings.Register(mux)

	inquiries := handlers.NewInquiryHandler(store)
	mux.Handle("/inquiries", middleware.RequireAuth(tokens, http.HandlerFunc(inquiries.Handle)))

	dashboard := handlers.NewDashboardHandler(store)
	mux.Handle("/dashboard/inquiries", middleware.RequireAuth(tokens, http.HandlerFunc(dashboard.Handle)))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}

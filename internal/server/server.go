// Package server wires the page handlers, middleware and static assets into
// one http.Handler.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/hbnb/internal/handler"
	"github.com/dukerupert/hbnb/internal/middleware"
	"github.com/dukerupert/hbnb/internal/page"
	"github.com/dukerupert/hbnb/internal/session"
	"github.com/dukerupert/hbnb/internal/view"
	"github.com/dukerupert/hbnb/web"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

type Server struct {
	store       *session.CookieStore
	authH       *handler.AuthHandler
	placeH      *handler.PlaceHandler
	reviewH     *handler.ReviewHandler
	rateLimiter *middleware.RateLimiter
	behindProxy bool
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithBehindProxy makes the login rate limiter key on X-Forwarded-For and
// X-Real-IP. Only enable it when a trusted proxy sets those headers.
func WithBehindProxy(enabled bool) Option {
	return func(s *Server) {
		s.behindProxy = enabled
	}
}

func New(b handler.Backend, store *session.CookieStore, logger *slog.Logger, opts ...Option) (*Server, error) {
	renderer, err := view.NewRenderer(web.Templates())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	s := &Server{
		store:       store,
		authH:       handler.NewAuthHandler(b, store, renderer, logger.With("component", "auth")),
		placeH:      handler.NewPlaceHandler(b, store, renderer, logger.With("component", "places")),
		reviewH:     handler.NewReviewHandler(b, store, renderer, logger.With("component", "reviews")),
		rateLimiter: middleware.NewRateLimiter(loginRateLimit, loginRateWindow),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RateLimiter returns the login rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.placeH.Feed)
	mux.HandleFunc("GET "+page.Feed.Path(), s.placeH.Feed)
	mux.HandleFunc("GET "+page.Login.Path(), s.authH.LoginPage)
	mux.Handle("POST "+page.Login.Path(), middleware.RateLimit(s.rateLimiter, middleware.ClientIP(s.behindProxy))(http.HandlerFunc(s.authH.Login)))
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET "+page.Detail.Path(), s.placeH.Detail)

	gate := middleware.RequireSession(page.Feed.Path())
	mux.Handle("GET "+page.Review.Path(), gate(http.HandlerFunc(s.reviewH.Form)))
	mux.Handle("POST "+page.Review.Path(), gate(http.HandlerFunc(s.reviewH.Submit)))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	mux.HandleFunc("GET /health", s.healthHandler)

	h := middleware.LoadSession(s.store)(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

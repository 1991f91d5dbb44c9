// Package handler serves the four pages. Each handler reads the session from
// the request context, makes at most one backend call, and then renders or
// redirects.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/hbnb/internal/backend"
	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/page"
)

// Backend is the subset of the REST client the handlers use.
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	ListPlaces(ctx context.Context, token string) ([]model.PlaceSummary, error)
	GetPlace(ctx context.Context, token, id string) (*model.Place, error)
	SubmitReview(ctx context.Context, token, placeID string, in model.ReviewInput) error
}

// TokenStore writes and clears the browser-held token.
type TokenStore interface {
	Set(w http.ResponseWriter, token string) error
	Clear(w http.ResponseWriter)
}

// Renderer executes a page template.
type Renderer interface {
	Render(w io.Writer, p page.Page, data any) error
}

func render(w http.ResponseWriter, rd Renderer, logger *slog.Logger, p page.Page, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.Render(w, p, data); err != nil {
		logger.Error("template render", "page", p.String(), "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// expired handles a 401 from the backend: the token is dropped and the user
// is sent to the login page. It reports whether err was a 401.
func expired(w http.ResponseWriter, r *http.Request, store TokenStore, logger *slog.Logger, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	logger.Info("session rejected by backend", "path", r.URL.Path)
	store.Clear(w)
	http.Redirect(w, r, page.Login.Path(), http.StatusSeeOther)
	return true
}

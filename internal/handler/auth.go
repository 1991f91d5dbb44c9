package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/page"
	"github.com/dukerupert/hbnb/internal/session"
	"github.com/dukerupert/hbnb/internal/view"
)

type AuthHandler struct {
	backend  Backend
	store    TokenStore
	renderer Renderer
	logger   *slog.Logger
}

func NewAuthHandler(b Backend, store TokenStore, rd Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		backend:  b,
		store:    store,
		renderer: rd,
		logger:   logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	render(w, h.renderer, h.logger, page.Login, view.LoginView{
		Base: view.NewBase(page.Login, sess.Authenticated()),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	email := r.FormValue("email")
	creds := model.Credentials{
		Email:    email,
		Password: r.FormValue("password"),
	}

	token, err := h.backend.Login(r.Context(), creds)
	if expired(w, r, h.store, h.logger, err) {
		return
	}
	if err == nil {
		err = h.store.Set(w, token)
	}
	if err != nil {
		h.logger.Warn("login failed", "error", err)
		v := view.LoginView{
			Base:  view.NewBase(page.Login, sess.Authenticated()),
			Email: email,
		}
		v.Alert = view.Failure(view.LoginFailed, err)
		render(w, h.renderer, h.logger, page.Login, v)
		return
	}

	h.logger.Info("user logged in")
	http.Redirect(w, r, page.Feed.Path(), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(w)
	http.Redirect(w, r, page.Feed.Path(), http.StatusSeeOther)
}

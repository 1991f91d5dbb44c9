package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/page"
	"github.com/dukerupert/hbnb/internal/session"
	"github.com/dukerupert/hbnb/internal/view"
)

// ReviewHandler serves the review form. Routes are expected to sit behind
// middleware.RequireSession.
type ReviewHandler struct {
	backend  Backend
	store    TokenStore
	renderer Renderer
	logger   *slog.Logger
}

func NewReviewHandler(b Backend, store TokenStore, rd Renderer, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		backend:  b,
		store:    store,
		renderer: rd,
		logger:   logger,
	}
}

func (h *ReviewHandler) Form(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	render(w, h.renderer, h.logger, page.Review, view.ReviewView{
		Base:    view.NewBase(page.Review, sess.Authenticated()),
		PlaceID: r.URL.Query().Get("place_id"),
	})
}

// Submit posts the review. place_id is passed through unchecked; a missing id
// is left for the backend to reject.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	placeID := r.FormValue("place_id")
	comment := r.FormValue("comment")
	rating := r.FormValue("rating")

	in := model.ReviewInput{
		Comment: comment,
		Rating:  model.ParseRating(rating),
	}

	err := h.backend.SubmitReview(r.Context(), sess.Token, placeID, in)
	if expired(w, r, h.store, h.logger, err) {
		return
	}
	if err != nil {
		h.logger.Warn("submit review", "place_id", placeID, "error", err)
		v := view.ReviewView{
			Base:    view.NewBase(page.Review, sess.Authenticated()),
			PlaceID: placeID,
			Comment: comment,
			Rating:  rating,
		}
		v.Alert = view.Failure(view.ReviewSubmitFailed, err)
		render(w, h.renderer, h.logger, page.Review, v)
		return
	}

	h.logger.Info("review submitted", "place_id", placeID)
	session.SetFlash(w, view.ReviewSubmitted)
	http.Redirect(w, r, page.Detail.Path()+"?place_id="+url.QueryEscape(placeID), http.StatusSeeOther)
}

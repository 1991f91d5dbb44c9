package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/hbnb/internal/page"
	"github.com/dukerupert/hbnb/internal/session"
	"github.com/dukerupert/hbnb/internal/view"
)

type PlaceHandler struct {
	backend  Backend
	store    TokenStore
	renderer Renderer
	logger   *slog.Logger
}

func NewPlaceHandler(b Backend, store TokenStore, rd Renderer, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{
		backend:  b,
		store:    store,
		renderer: rd,
		logger:   logger,
	}
}

// Feed lists places for a logged-in user. Anonymous users get the login link
// and no backend call.
func (h *PlaceHandler) Feed(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if !sess.Authenticated() {
		render(w, h.renderer, h.logger, page.Feed, view.NewFeed(false, nil))
		return
	}

	places, err := h.backend.ListPlaces(r.Context(), sess.Token)
	if expired(w, r, h.store, h.logger, err) {
		return
	}
	if err != nil {
		h.logger.Error("list places", "error", err)
		v := view.NewFeed(true, nil)
		v.Alert = view.Failure(view.PlacesFailed, err)
		render(w, h.renderer, h.logger, page.Feed, v)
		return
	}

	render(w, h.renderer, h.logger, page.Feed, view.NewFeed(true, places))
}

// Detail shows one place. Without place_id the page stays empty.
func (h *PlaceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	placeID := r.URL.Query().Get("place_id")

	v := view.DetailView{
		Base:    view.NewBase(page.Detail, sess.Authenticated()),
		PlaceID: placeID,
	}
	v.Flash = view.Success(session.PopFlash(w, r))

	if placeID == "" {
		render(w, h.renderer, h.logger, page.Detail, v)
		return
	}

	place, err := h.backend.GetPlace(r.Context(), sess.Token, placeID)
	if expired(w, r, h.store, h.logger, err) {
		return
	}
	var detail *view.PlaceDetail
	if err == nil {
		detail, err = view.NewPlaceDetail(place)
	}
	if err != nil {
		h.logger.Error("load place", "place_id", placeID, "error", err)
		v.Alert = view.Failure(view.PlaceDetailFailed, err)
		render(w, h.renderer, h.logger, page.Detail, v)
		return
	}

	v.Loaded = true
	v.Place = detail
	v.ShowAddReview = sess.Authenticated()
	v.AddReviewURL = page.Review.URL(placeID)
	render(w, h.renderer, h.logger, page.Detail, v)
}

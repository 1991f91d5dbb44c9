// Package view holds the data each page template renders and the builders that
// turn backend responses into it.
package view

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/page"
)

// Notification prefixes, one per failing operation.
const (
	LoginFailed        = "Login failed"
	PlacesFailed       = "Failed to load places"
	PlaceDetailFailed  = "Failed to load place details"
	ReviewSubmitFailed = "Failed to submit review"
)

// ReviewSubmitted is flashed on the detail page after a successful review.
const ReviewSubmitted = "Review submitted successfully!"

type AlertKind string

const (
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

// Alert is a blocking notification shown above the page content.
type Alert struct {
	Kind    AlertKind
	Message string
}

// Failure builds the error alert "<prefix>: <err>".
func Failure(prefix string, err error) *Alert {
	return &Alert{Kind: AlertError, Message: prefix + ": " + err.Error()}
}

func Success(msg string) *Alert {
	if msg == "" {
		return nil
	}
	return &Alert{Kind: AlertSuccess, Message: msg}
}

// Base is embedded by every page view and read by the layout. Flash carries a
// one-shot message from the previous request and is shown next to Alert.
type Base struct {
	Page          page.Page
	Title         string
	Authenticated bool
	Flash         *Alert
	Alert         *Alert
}

func NewBase(p page.Page, authenticated bool) Base {
	return Base{Page: p, Title: p.Title(), Authenticated: authenticated}
}

type LoginView struct {
	Base
	Email string
}

// Card is one listing in the feed.
type Card struct {
	ID        string
	Name      string
	Price     string
	DetailURL string
}

type FeedView struct {
	Base
	ShowLogin bool
	Cards     []Card
}

type ReviewCard struct {
	Comment string
	Author  string
	Rating  int
}

type PlaceDetail struct {
	Name        string
	Description string
	Price       string
	Amenities   []string
	Reviews     []ReviewCard
}

type DetailView struct {
	Base
	PlaceID       string
	Loaded        bool
	Place         *PlaceDetail
	ShowAddReview bool
	AddReviewURL  string
}

type ReviewView struct {
	Base
	PlaceID string
	Comment string
	Rating  string
}

// ErrReviewWithoutUser is returned for a review whose author was not embedded.
var ErrReviewWithoutUser = errors.New("review has no user")

// FormatPrice prints a price with the fewest digits that round-trip, so 100
// prints as "100" and 99.5 as "99.5".
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewFeed builds the feed. Cards are only listed for authenticated users.
func NewFeed(authenticated bool, places []model.PlaceSummary) FeedView {
	return FeedView{
		Base:      NewBase(page.Feed, authenticated),
		ShowLogin: !authenticated,
		Cards:     Cards(places),
	}
}

func Cards(places []model.PlaceSummary) []Card {
	cards := make([]Card, 0, len(places))
	for _, p := range places {
		id := string(p.ID)
		cards = append(cards, Card{
			ID:        id,
			Name:      p.Name,
			Price:     FormatPrice(p.PricePerNight),
			DetailURL: page.Detail.URL(id),
		})
	}
	return cards
}

// NewPlaceDetail converts a backend place. It fails if any review lacks its
// user, leaving nothing half-rendered.
func NewPlaceDetail(p *model.Place) (*PlaceDetail, error) {
	d := &PlaceDetail{
		Name:        p.Name,
		Description: p.Description,
		Price:       FormatPrice(p.PricePerNight),
		Amenities:   make([]string, 0, len(p.Amenities)),
		Reviews:     make([]ReviewCard, 0, len(p.Reviews)),
	}
	for _, a := range p.Amenities {
		d.Amenities = append(d.Amenities, a.Name)
	}
	for i, r := range p.Reviews {
		if r.User == nil {
			return nil, fmt.Errorf("review %d: %w", i, ErrReviewWithoutUser)
		}
		d.Reviews = append(d.Reviews, ReviewCard{
			Comment: r.Comment,
			Author:  r.User.FirstName,
			Rating:  r.Rating,
		})
	}
	return d, nil
}

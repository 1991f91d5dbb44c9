// Package page names the four pages of the site and maps them to paths and
// templates.
package page

import "net/url"

type Page int

const (
	Feed Page = iota
	Login
	Detail
	Review
)

var pages = [...]struct {
	path     string
	template string
	title    string
	name     string
}{
	Feed:   {"/index.html", "index.html", "HBnB - Places", "feed"},
	Login:  {"/login.html", "login.html", "HBnB - Login", "login"},
	Detail: {"/place.html", "place.html", "HBnB - Place Details", "detail"},
	Review: {"/add_review.html", "add_review.html", "HBnB - Add Review", "review"},
}

// All lists every page in declaration order.
func All() []Page {
	return []Page{Feed, Login, Detail, Review}
}

func (p Page) valid() bool {
	return p >= 0 && int(p) < len(pages)
}

// Path is the URL path the page is served at.
func (p Page) Path() string {
	if !p.valid() {
		return ""
	}
	return pages[p].path
}

// Template is the page's content template file name.
func (p Page) Template() string {
	if !p.valid() {
		return ""
	}
	return pages[p].template
}

func (p Page) Title() string {
	if !p.valid() {
		return ""
	}
	return pages[p].title
}

func (p Page) String() string {
	if !p.valid() {
		return "unknown"
	}
	return pages[p].name
}

// URL returns the page path with place_id set, or the bare path when placeID
// is empty.
func (p Page) URL(placeID string) string {
	if placeID == "" {
		return p.Path()
	}
	return p.Path() + "?place_id=" + url.QueryEscape(placeID)
}

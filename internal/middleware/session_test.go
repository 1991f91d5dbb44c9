package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/hbnb/internal/session"
)

func TestLoadSession(t *testing.T) {
	store := session.NewCookieStore(nil, false)

	var got session.Session
	var found bool
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/index.html", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !found || got.Token != "tok" {
		t.Errorf("session = %+v, %v", got, found)
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/index.html", nil))
	if !found || got.Authenticated() {
		t.Errorf("anonymous session = %+v, %v", got, found)
	}
}

func TestRequireSession(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := RequireSession("/index.html")(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/add_review.html", nil))
	if called {
		t.Error("anonymous request reached the handler")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/index.html" {
		t.Errorf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	req := httptest.NewRequest("GET", "/add_review.html", nil)
	req = req.WithContext(session.WithSession(req.Context(), session.Session{Token: "tok"}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Error("authenticated request did not reach the handler")
	}
}

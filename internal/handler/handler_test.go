package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/hbnb/internal/backend"
	"github.com/dukerupert/hbnb/internal/backendtest"
	"github.com/dukerupert/hbnb/internal/middleware"
	"github.com/dukerupert/hbnb/internal/session"
	"github.com/dukerupert/hbnb/internal/view"
	"github.com/dukerupert/hbnb/web"
)

type testEnv struct {
	api     *backendtest.Server
	store   *session.CookieStore
	auth    *AuthHandler
	places  *PlaceHandler
	reviews *ReviewHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	api := backendtest.New(t)
	api.AddUser("guest@hbnb.io", "secret", "Ada")

	rd, err := view.NewRenderer(web.Templates())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	client := backend.NewClient(api.BaseURL(), backend.WithTimeout(5*time.Second))
	store := session.NewCookieStore(nil, false)
	logger := slog.New(slog.DiscardHandler)

	return &testEnv{
		api:     api,
		store:   store,
		auth:    NewAuthHandler(client, store, rd, logger),
		places:  NewPlaceHandler(client, store, rd, logger),
		reviews: NewReviewHandler(client, store, rd, logger),
	}
}

// serve runs h behind LoadSession, the way the server mounts it.
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.LoadSession(e.store)(h).ServeHTTP(rec, req)
	return rec
}

func withToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("location = %q, want %q", got, want)
	}
}

func assertCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	c := responseCookie(rec, session.CookieName)
	if c == nil {
		t.Fatal("token cookie not touched")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("token cookie not cleared: value=%q max-age=%d", c.Value, c.MaxAge)
	}
}

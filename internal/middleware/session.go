package middleware

import (
	"net/http"

	"github.com/dukerupert/hbnb/internal/session"
)

// TokenReader is the read side of the session store.
type TokenReader interface {
	Read(r *http.Request) (string, bool)
}

// LoadSession re-reads the token on every request and exposes it through
// session.FromContext.
func LoadSession(store TokenReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := store.Read(r)
			ctx := session.WithSession(r.Context(), session.Session{Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession redirects anonymous requests to redirectTo with 303.
func RequireSession(redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, _ := session.FromContext(r.Context()); !s.Authenticated() {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

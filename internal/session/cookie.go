// Package session reads, writes and clears the bearer token that marks a
// user as logged in, in a browser cookie or in a file for the CLI.
package session

import (
	"net/http"
	"time"
)

// CookieName holds the bearer token in the browser.
const CookieName = "token"

// CookieStore keeps the session token in a browser cookie scoped to "/".
// With a Sealer the value is encrypted; a value that fails to open reads as
// absent.
type CookieStore struct {
	sealer *Sealer
	secure bool
}

// NewCookieStore returns a store. sealer may be nil to store the raw token.
func NewCookieStore(sealer *Sealer, secure bool) *CookieStore {
	return &CookieStore{sealer: sealer, secure: secure}
}

// Read returns the token carried by r, if any.
func (s *CookieStore) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	if s.sealer == nil {
		return c.Value, true
	}

	token, err := s.sealer.Open(c.Value)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Set writes a session-lifetime cookie holding token.
func (s *CookieStore) Set(w http.ResponseWriter, token string) error {
	value := token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			return err
		}
		value = sealed
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
	return nil
}

// Clear overwrites the cookie with an empty value that has already expired.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(1, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}

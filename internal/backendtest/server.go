// Package backendtest runs an in-process fake of the HBnB REST API for tests.
// It issues HS256 tokens on login, requires them for posting reviews (and for
// reads after RequireAuth) and records every request it receives.
package backendtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dukerupert/hbnb/internal/model"
)

// APIPrefix is the path the fake API is mounted under.
const APIPrefix = "/api/v1"

// Request is one request as seen by the fake.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

type user struct {
	id        string
	email     string
	password  string
	firstName string
}

type response struct {
	status int
	body   string
}

// Server is a fake HBnB backend. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	users    map[string]user
	places   []*model.Place
	requests []Request
	next     []response
	strict   bool
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		secret: []byte("backendtest-" + uuid.NewString()),
		users:  make(map[string]user),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to a backend client.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// AddUser registers credentials accepted by POST /auth/login.
func (s *Server) AddUser(email, password, firstName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = user{id: uuid.NewString(), email: email, password: password, firstName: firstName}
}

// AddPlace stores p and returns its id, generating one when p.ID is empty.
func (s *Server) AddPlace(p model.Place) model.PlaceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = model.PlaceID(uuid.NewString())
	}
	if p.Amenities == nil {
		p.Amenities = []model.Amenity{}
	}
	if p.Reviews == nil {
		p.Reviews = []model.Review{}
	}
	s.places = append(s.places, &p)
	return p.ID
}

// Place returns a copy of the stored place with the given id.
func (s *Server) Place(id model.PlaceID) (model.Place, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findPlace(string(id)); p != nil {
		return *p, true
	}
	return model.Place{}, false
}

// Token issues a valid access token for a registered user.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("backendtest: unknown user %q", email))
	}
	tok, err := s.issue(u)
	if err != nil {
		panic(err)
	}
	return tok
}

// RequireAuth makes GET /places and GET /places/{id} demand a valid token.
// The real backend serves them publicly.
func (s *Server) RequireAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strict = true
}

// RespondNext makes the next request, whatever it is, answer with status and
// the raw body.
func (s *Server) RespondNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = append(s.next, response{status: status, body: body})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the requests matching method and a path relative to the
// API prefix, e.g. RequestsTo("GET", "/places").
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == APIPrefix+path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	strict := s.strict
	var forced *response
	if len(s.next) > 0 {
		forced = &s.next[0]
		s.next = s.next[1:]
	}
	s.mu.Unlock()

	if forced != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(forced.status)
		io.WriteString(w, forced.body)
		return
	}

	path, ok := strings.CutPrefix(r.URL.Path, APIPrefix)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && path == "/auth/login":
		s.login(w, body)
	case len(parts) >= 1 && parts[0] == "places":
		u, ok := s.authenticate(r)
		if !ok && (strict || r.Method != http.MethodGet) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Missing or invalid token"})
			return
		}
		switch {
		case r.Method == http.MethodGet && len(parts) == 1:
			s.listPlaces(w)
		case r.Method == http.MethodGet && len(parts) == 2:
			s.getPlace(w, parts[1])
		case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "reviews":
			s.createReview(w, u, parts[1], body)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		}
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (s *Server) login(w http.ResponseWriter, body []byte) {
	var creds model.Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Input payload validation failed"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[creds.Email]
	s.mu.Unlock()
	if !ok || u.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	tok, err := s.issue(u)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{AccessToken: tok})
}

func (s *Server) listPlaces(w http.ResponseWriter) {
	s.mu.Lock()
	out := make([]model.PlaceSummary, 0, len(s.places))
	for _, p := range s.places {
		out = append(out, model.PlaceSummary{ID: p.ID, Name: p.Name, PricePerNight: p.PricePerNight})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getPlace(w http.ResponseWriter, id string) {
	s.mu.Lock()
	p := s.findPlace(id)
	var out model.Place
	if p != nil {
		out = *p
	}
	s.mu.Unlock()

	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Place not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createReview(w http.ResponseWriter, u user, placeID string, body []byte) {
	var in model.ReviewInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Input payload validation failed"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPlace(placeID)
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Place not found"})
		return
	}
	if in.Rating == nil || *in.Rating < 1 || *in.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Rating must be between 1 and 5"})
		return
	}
	p.Reviews = append(p.Reviews, model.Review{
		Comment: in.Comment,
		Rating:  *in.Rating,
		User:    &model.ReviewUser{FirstName: u.firstName},
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Review successfully created"})
}

// findPlace must be called with s.mu held.
func (s *Server) findPlace(id string) *model.Place {
	for _, p := range s.places {
		if string(p.ID) == id {
			return p
		}
	}
	return nil
}

func (s *Server) issue(u user) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.id,
		"email": u.email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticate(r *http.Request) (user, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return user{}, false
	}

	tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return user{}, false
	}

	email, _ := tok.Claims.(jwt.MapClaims)["email"].(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dukerupert/hbnb/internal/model"
)

// DefaultBaseURL is where the HBnB REST API listens in a local setup.
const DefaultBaseURL = "http://localhost:5000/api/v1"

const defaultTimeout = 30 * time.Second

// ErrNoToken is returned when a login succeeds but carries no access token.
var ErrNoToken = errors.New("no access token in login response")

// Client talks to the HBnB REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout bounds every backend call. Zero disables the timeout. It keeps
// the transport of a client set by WithHTTPClient and leaves that client
// unmodified.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		hc := *cl.httpClient
		hc.Timeout = d
		cl.httpClient = &hc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return "", err
	}

	var out model.LoginResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrNoToken
	}
	return out.AccessToken, nil
}

// ListPlaces returns the listing summaries visible to the token holder.
func (c *Client) ListPlaces(ctx context.Context, token string) ([]model.PlaceSummary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/places", nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, token)

	var places []model.PlaceSummary
	if err := c.do(req, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// GetPlace fetches one listing with its amenities and reviews. The bearer
// header is sent even when token is empty.
func (c *Client) GetPlace(ctx context.Context, token, id string) (*model.Place, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/places/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, token)

	var place model.Place
	if err := c.do(req, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

// SubmitReview posts a review for placeID. An empty placeID is not rejected
// here; the backend answers the malformed path.
func (c *Client) SubmitReview(ctx context.Context, token, placeID string, in model.ReviewInput) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/places/"+url.PathEscape(placeID)+"/reviews", in)
	if err != nil {
		return err
	}
	setBearer(req, token)

	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// do sends req and decodes a 2xx body into out when out is non-nil. Failed
// responses go through normalizeError.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned for any 401 from the backend. It is the only
// signal that the session token is no longer valid.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx, non-401 response carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// normalizeError converts a failed response into ErrUnauthorized, an
// *APIError, or a decode error when the body is not the expected JSON object.
func normalizeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode error response (status %d): %w", resp.StatusCode, err)
	}

	msg := http.StatusText(resp.StatusCode)
	switch {
	case body.Message != nil && *body.Message != "":
		msg = *body.Message
	case body.Error != nil && *body.Error != "":
		msg = *body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

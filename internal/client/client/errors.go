package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d: %s", e.Status, e.Message)
}

// Unwrap maps 401 to ErrUnauthorized (the token was rejected) and 403 to
// ErrForbidden (the token is valid but the action is not permitted).
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}
	return nil
}

// errorPayload covers the error shapes the backend produces.
type errorPayload struct {
	Message        string   `json:"message"`
	Detail         string   `json:"detail"`
	NonFieldErrors []string `json:"non_field_errors"`
}

func (p errorPayload) text() string {
	switch {
	case p.Message != "":
		return p.Message
	case p.Detail != "":
		return p.Detail
	case len(p.NonFieldErrors) > 0:
		return p.NonFieldErrors[0]
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	var p errorPayload
	_ = json.Unmarshal(body, &p)
	return &APIError{Status: status, Message: strings.TrimSpace(p.text())}
}

// MessageOf returns the human-readable server message carried by err,
// or "" when there is none.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

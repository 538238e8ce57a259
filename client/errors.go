package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured error response from the server.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("simgraph: %s (%d, request %s)", e.Message, e.Status, e.RequestID)
	}

	return fmt.Sprintf("simgraph: %s (%d)", e.Message, e.Status)
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status}

	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

// IsNotFound reports whether the error is a 404 from the server.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsInvalidRequest reports whether the error is a 400 from the server.
func IsInvalidRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

// IsRateLimited reports whether the error is a 429 from the server.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

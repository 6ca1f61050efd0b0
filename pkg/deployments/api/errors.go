package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError represents a non-success response from the deployment API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// NewStatusError creates a new StatusError.
func NewStatusError(statusCode int, message string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// errorResponse is the deployment API's error envelope.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decodeStatusError turns a non-success response into a StatusError,
// preferring the API's error envelope message when the body carries one.
func decodeStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(resp.Body)

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return NewStatusError(resp.StatusCode, envelope.Error.Message)
	}

	return NewStatusError(resp.StatusCode, strings.TrimSpace(string(body)))
}

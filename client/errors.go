package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidRefreshResponse is returned when the refresh endpoint answers
// without both a new access token and a new refresh token.
var ErrInvalidRefreshResponse = fmt.Errorf("invalid token refresh response: missing access or refresh token")

// APIError is a non-2xx response from the storefront API. Validation failures
// carry field-level messages in Fields.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
}

// FieldErrors flattens the field-level validation messages into one line per
// field, suitable for CLI output.
func (e *APIError) FieldErrors() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	lines := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", field, strings.Join(messages, ", ")))
	}
	return lines
}

// IsUnauthorized reports whether err is an APIError with HTTP status 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// newAPIError builds an APIError from a response body. The backend answers
// either {code, message, errors} or the ASP-style {title, errors: {field: [..]}}
// problem shape; anything else is kept as a raw body preview.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if len(body) == 0 {
		return apiErr
	}
	apiErr.Body = string(body[:min(len(body), 512)])

	var envelope struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Title   string              `json:"title"`
		Errors  json.RawMessage     `json:"errors"`
		Fields  map[string][]string `json:"-"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}
	switch {
	case envelope.Message != "":
		apiErr.Message = envelope.Message
	case envelope.Title != "":
		apiErr.Message = envelope.Title
	}
	if len(envelope.Errors) > 0 {
		var fields map[string][]string
		if err := json.Unmarshal(envelope.Errors, &fields); err == nil {
			apiErr.Fields = fields
		}
	}
	return apiErr
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

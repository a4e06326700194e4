package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxMessageLen = 500

// NetworkError is a transport-level failure: DNS, refused connection,
// timeout, or a cancelled context.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response. Message is extracted from the body when
// one is present.
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message returns the text shown to a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Network error: unable to reach the clinic server. Please try again."
	}
	return err.Error()
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status:  status,
		Message: extractMessage(status, body),
		Body:    string(body),
	}
}

// extractMessage prefers a JSON "message"/"error" field, then a JSON string,
// then the raw text body, then a status-based fallback.
func extractMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			for _, key := range []string{"message", "error", "detail"} {
				if s, ok := obj[key].(string); ok && s != "" {
					return truncate(s)
				}
			}
		} else {
			var s string
			if err := json.Unmarshal([]byte(trimmed), &s); err == nil && s != "" {
				return truncate(s)
			}
			if !strings.HasPrefix(trimmed, "<") {
				return truncate(trimmed)
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// truncate caps s at maxMessageLen bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// HTTPError carries a non-200 status and the response body so callers can report both.
type HTTPError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration // from the Retry-After header; zero if absent
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	return msg
}

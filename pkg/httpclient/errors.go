package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// maxBodyBytes bounds how much of an upstream body is read.
const maxBodyBytes = 8 << 20

// upstreamError covers the two error body shapes seen from JSON APIs:
// {"message": "..."} and {"error": {"message": "..."}}.
type upstreamError struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (u upstreamError) text() string {
	if u.Message != "" {
		return u.Message
	}
	var nested struct {
		Message string `json:"message"`
	}
	if len(u.Error) > 0 && json.Unmarshal(u.Error, &nested) == nil && nested.Message != "" {
		return nested.Message
	}
	var plain string
	if len(u.Error) > 0 && json.Unmarshal(u.Error, &plain) == nil {
		return plain
	}
	return ""
}

// ParseResponseError consumes and closes a non-2xx response and maps it to
// an error: 404 to NotFound, 400 to InvalidInput, 429 and 5xx to
// Unavailable, anything else to a plain error carrying the status.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	msg := strings.TrimSpace(string(body))
	var parsed upstreamError
	if json.Unmarshal(body, &parsed) == nil {
		if text := parsed.text(); text != "" {
			msg = text
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		path := ""
		if resp.Request != nil && resp.Request.URL != nil {
			path = resp.Request.URL.Path
		}
		return apperrors.NotFound(upstream+" resource", path)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", upstream, msg))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return apperrors.Unavailable(upstream, fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	default:
		return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, msg)
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

package integrations

import (
	"net/http"
	"time"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

const (
	httpTimeout = 15 * time.Second

	// DefaultMaxRateLimitWait caps how long a rate-limited request waits
	// for the quota to reset before its single retry.
	DefaultMaxRateLimitWait = time.Minute

	// lowQuota is the remaining request count that triggers a warning.
	lowQuota = 10
)

// Sentinel errors, wrapped with %w. Each carries an error code, so
// errors.GetCode and errors.HTTPStatus classify API failures.
var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New(errors.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New(errors.ErrCodeNetwork, "network error")

	// ErrRateLimited is returned when the API quota is still exhausted
	// after waiting for its reset.
	ErrRateLimited = errors.New(errors.ErrCodeRateLimited, "rate limited")

	// ErrUnauthorized is returned for rejected credentials.
	ErrUnauthorized = errors.New(errors.ErrCodeUnauthorized, "unauthorized")
)

// NewHTTPClient creates an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

package gridbase

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	retryBudget time.Duration
	assumedUser string
	logger      *zerolog.Logger
	tokenSource oauth2.TokenSource
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Connection pooling, TLS and
// per-request timeouts are its responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithRetryBudget bounds the total wall-clock time spent retrying a single
// rate-limited call. Without a budget, calls get exactly one attempt.
func WithRetryBudget(budget time.Duration) Option {
	return func(c *clientConfig) {
		c.retryBudget = budget
	}
}

// WithAssumedUser makes requests act on behalf of the given user's email
// address. Requires an admin-scoped token.
func WithAssumedUser(email string) Option {
	return func(c *clientConfig) {
		c.assumedUser = email
	}
}

// WithLogger sets the structured logger for request-level debug events.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}

// WithTokenSource authenticates with an oauth2 token source instead of a
// static token. The source is consulted each time a request is built, so
// expiring tokens refresh transparently.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(c *clientConfig) {
		c.tokenSource = src
	}
}

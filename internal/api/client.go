package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/gridbase/client-go/internal/apierrors"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.gridbase.io/2.0"

	// DefaultTimeout is the per-request timeout of the default HTTP client.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "gridbase-client-go"

	headerAssumeUser = "Assume-User"
	headerRequestID  = "X-Client-Request-Id"
)

// credentials is the auth material captured at request-build time. Either a
// static bearer token or an oauth2.TokenSource that is consulted per request.
type credentials struct {
	token  string
	source oauth2.TokenSource
}

// Client is the HTTP request dispatcher every resource accessor shares.
// It is safe for concurrent use; the access token and assumed user are
// plain shared state read at request-build time (last write visible to
// subsequently built requests, in-flight requests unaffected).
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	retryBudget time.Duration
	logger      zerolog.Logger

	// retryInitial is the first backoff interval; overridable in tests.
	retryInitial time.Duration

	creds       atomic.Pointer[credentials]
	assumedUser atomic.Pointer[string]
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRetryBudget sets the maximum total elapsed time spent retrying
// rate-limited responses for one logical call. Zero (the default) disables
// retries entirely.
func WithRetryBudget(budget time.Duration) Option {
	return func(c *Client) {
		c.retryBudget = budget
	}
}

// WithLogger sets the structured logger for request-level debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTokenSource sets an oauth2 token source consulted when each request is
// built, so expiring tokens refresh transparently.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(c *Client) {
		c.creds.Store(&credentials{source: src})
	}
}

// WithAssumedUser sets the email address of the user to act on behalf of.
func WithAssumedUser(email string) Option {
	return func(c *Client) {
		c.assumedUser.Store(&email)
	}
}

// New creates a new API client. The access token may be empty only if a
// token source option is supplied.
func New(accessToken string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:    defaultUserAgent,
		logger:       zerolog.Nop(),
		retryInitial: retryInitialInterval,
	}
	if accessToken != "" {
		c.creds.Store(&credentials{token: accessToken})
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.creds.Load() == nil {
		return nil, fmt.Errorf("access token or token source is required")
	}

	return c, nil
}

// SetAccessToken replaces the bearer token. Requests built after the call
// carry the new token; in-flight requests are unaffected.
func (c *Client) SetAccessToken(token string) {
	c.creds.Store(&credentials{token: token})
}

// SetAssumedUser sets the email address to act on behalf of. An empty value
// clears impersonation.
func (c *Client) SetAssumedUser(email string) {
	c.assumedUser.Store(&email)
}

// SetHTTPClient sets a custom HTTP client. Not safe to call concurrently
// with in-flight requests.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) bearerToken() (string, error) {
	creds := c.creds.Load()
	if creds == nil {
		return "", fmt.Errorf("no access token configured")
	}
	if creds.source != nil {
		tok, err := creds.source.Token()
		if err != nil {
			return "", fmt.Errorf("acquire access token: %w", err)
		}
		return tok.AccessToken, nil
	}
	return creds.token, nil
}

// requestDescriptor is one outgoing request: method, URL, encoded body and
// headers. Built once per logical call and immutable afterwards; retries
// re-send the identical descriptor.
type requestDescriptor struct {
	method string
	url    string
	body   []byte
	header http.Header
}

func (c *Client) newRequestDescriptor(method, path string, body []byte) (*requestDescriptor, error) {
	if strings.TrimSpace(path) == "" {
		return nil, apierrors.New(apierrors.KindNotFound, 0, apierrors.ErrorPayload{
			Message: "request path is empty; no such resource",
		})
	}

	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Authorization", "Bearer "+token)
	header.Set("Accept", "application/json")
	header.Set("User-Agent", c.userAgent)
	header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		header.Set("Content-Type", "application/json")
	}
	if assumed := c.assumedUser.Load(); assumed != nil && *assumed != "" {
		header.Set(headerAssumeUser, url.QueryEscape(*assumed))
	}

	return &requestDescriptor{
		method: method,
		url:    c.baseURL + "/" + strings.TrimPrefix(path, "/"),
		body:   body,
		header: header,
	}, nil
}

// execute sends the descriptor, retrying 503 responses on the backoff
// schedule until the retry budget runs out. Transport failures and every
// other status terminate immediately.
func (c *Client) execute(ctx context.Context, rd *requestDescriptor) (int, []byte, error) {
	bo := newBackOff(c.retryBudget, c.retryInitial)

	for attempt := 1; ; attempt++ {
		status, body, err := c.send(ctx, rd)
		if err != nil {
			return 0, nil, err
		}
		if status != http.StatusServiceUnavailable {
			return status, body, nil
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			c.logger.Debug().
				Str("request_id", rd.header.Get(headerRequestID)).
				Int("attempts", attempt).
				Msg("service unavailable, retry budget exhausted")
			return status, body, nil
		}

		c.logger.Debug().
			Str("request_id", rd.header.Get(headerRequestID)).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("service unavailable, backing off")

		if err := sleep(ctx, wait); err != nil {
			return 0, nil, &apierrors.TransportError{URL: rd.url, Err: err}
		}
	}
}

// send performs one physical attempt. The response body is always read to
// completion and the connection released before returning.
func (c *Client) send(ctx context.Context, rd *requestDescriptor) (int, []byte, error) {
	var reader io.Reader
	if rd.body != nil {
		reader = bytes.NewReader(rd.body)
	}

	req, err := http.NewRequestWithContext(ctx, rd.method, rd.url, reader)
	if err != nil {
		return 0, nil, &apierrors.TransportError{URL: rd.url, Err: err}
	}
	req.Header = rd.header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &apierrors.TransportError{URL: rd.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &apierrors.TransportError{URL: rd.url, Err: err}
	}
	return resp.StatusCode, body, nil
}

// roundTrip is the choke point every operation passes through: encode body,
// build descriptor, execute with retries, classify anything that is not a
// 200. The service uses no other 2xx code.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = EncodeBody(payload)
		if err != nil {
			return nil, err
		}
	}

	rd, err := c.newRequestDescriptor(method, path, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("request_id", rd.header.Get(headerRequestID)).
		Str("method", method).
		Str("url", rd.url).
		Msg("dispatching request")

	status, raw, err := c.execute(ctx, rd)
	if err != nil {
		c.logger.Debug().
			Str("request_id", rd.header.Get(headerRequestID)).
			Err(err).
			Msg("request failed")
		return nil, err
	}
	if status != http.StatusOK {
		cerr := classifyResponse(status, raw)
		c.logger.Debug().
			Str("request_id", rd.header.Get(headerRequestID)).
			Int("status", status).
			Err(cerr).
			Msg("request rejected")
		return nil, cerr
	}
	return raw, nil
}

// classifyResponse turns a non-200 response into a typed error. A failure
// body that cannot be parsed as an error payload is itself a decode failure
// and surfaces as a SerializationError; an absent body still classifies.
func classifyResponse(status int, body []byte) error {
	var payload apierrors.ErrorPayload
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return decodeErr(err)
		}
	}
	return apierrors.New(apierrors.Classify(status), status, payload)
}

package gridbase

import (
	"sync/atomic"

	"github.com/gridbase/client-go/internal/api"
)

// PageSpec selects a page of a collection. A nil PageSpec leaves the
// server's pagination defaults in effect.
type PageSpec = api.PageSpec

// Page is a paginated collection response.
type Page[T any] = api.Page[T]

// Client is the Gridbase API entry point. It owns one request dispatcher —
// and therefore one access token and one assumed-user setting — and hands
// out one accessor per resource family, constructed on first use.
//
// A single Client is safe for concurrent use from multiple goroutines.
type Client struct {
	api *api.Client

	// Accessor cache. First successful compare-and-swap wins; a losing
	// construction is discarded, which is harmless because accessors hold
	// no state beyond the shared dispatcher.
	sheets      atomic.Pointer[SheetsAPI]
	rows        atomic.Pointer[RowsAPI]
	columns     atomic.Pointer[ColumnsAPI]
	attachments atomic.Pointer[AttachmentsAPI]
	users       atomic.Pointer[UsersAPI]
}

// buildAPIClient creates and configures the request dispatcher from the
// given config.
func buildAPIClient(accessToken string, cfg *clientConfig) (*api.Client, error) {
	var apiOpts []api.Option
	if cfg.baseURL != "" {
		apiOpts = append(apiOpts, api.WithBaseURL(cfg.baseURL))
	}
	if cfg.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cfg.userAgent))
	}
	if cfg.retryBudget > 0 {
		apiOpts = append(apiOpts, api.WithRetryBudget(cfg.retryBudget))
	}
	if cfg.assumedUser != "" {
		apiOpts = append(apiOpts, api.WithAssumedUser(cfg.assumedUser))
	}
	if cfg.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(*cfg.logger))
	}
	if cfg.tokenSource != nil {
		apiOpts = append(apiOpts, api.WithTokenSource(cfg.tokenSource))
	}

	apiClient, err := api.New(accessToken, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// New creates a new Gridbase client with the given access token.
func New(accessToken string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if accessToken == "" && cfg.tokenSource == nil {
		return nil, ErrMissingAccessToken
	}

	apiClient, err := buildAPIClient(accessToken, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{api: apiClient}, nil
}

// SetAccessToken replaces the bearer token. Requests built after the call
// carry the new token; requests already in flight are unaffected.
func (c *Client) SetAccessToken(token string) {
	c.api.SetAccessToken(token)
}

// SetAssumedUser changes the user the client acts on behalf of. An empty
// value clears impersonation. Takes effect on the next request built.
func (c *Client) SetAssumedUser(email string) {
	c.api.SetAssumedUser(email)
}

// Sheets returns the sheet accessor.
func (c *Client) Sheets() *SheetsAPI {
	if s := c.sheets.Load(); s != nil {
		return s
	}
	s := &SheetsAPI{api: c.api}
	if c.sheets.CompareAndSwap(nil, s) {
		return s
	}
	return c.sheets.Load()
}

// Rows returns the row accessor.
func (c *Client) Rows() *RowsAPI {
	if r := c.rows.Load(); r != nil {
		return r
	}
	r := &RowsAPI{api: c.api}
	if c.rows.CompareAndSwap(nil, r) {
		return r
	}
	return c.rows.Load()
}

// Columns returns the column accessor.
func (c *Client) Columns() *ColumnsAPI {
	if col := c.columns.Load(); col != nil {
		return col
	}
	col := &ColumnsAPI{api: c.api}
	if c.columns.CompareAndSwap(nil, col) {
		return col
	}
	return c.columns.Load()
}

// Attachments returns the attachment accessor.
func (c *Client) Attachments() *AttachmentsAPI {
	if a := c.attachments.Load(); a != nil {
		return a
	}
	a := &AttachmentsAPI{api: c.api}
	if c.attachments.CompareAndSwap(nil, a) {
		return a
	}
	return c.attachments.Load()
}

// Users returns the user accessor.
func (c *Client) Users() *UsersAPI {
	if u := c.users.Load(); u != nil {
		return u
	}
	u := &UsersAPI{api: c.api}
	if c.users.CompareAndSwap(nil, u) {
		return u
	}
	return c.users.Load()
}

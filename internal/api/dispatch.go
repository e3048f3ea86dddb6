package api

import (
	"context"
	"net/http"
)

// Generic dispatch helpers. The response shape is a compile-time choice of
// the call site: bare object, bare-or-paginated list, or a {"result": ...}
// envelope around either.

// Get fetches a single resource.
func Get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[T](raw)
}

// GetList fetches a collection. The service returns either a bare array or
// the paginated wrapper; both decode to the plain slice.
func GetList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// GetPage fetches a collection preserving the pagination metadata.
func GetPage[T any](ctx context.Context, c *Client, path string) (*Page[T], error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[T](raw)
}

// Post creates a resource and unwraps the result envelope.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	raw, err := c.roundTrip(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeResult[T](raw)
}

// Put updates a resource and unwraps the result envelope.
func Put[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	raw, err := c.roundTrip(ctx, http.MethodPut, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeResult[T](raw)
}

// PostList creates resources in bulk; the request payload and the enveloped
// response list may be different types.
func PostList[S any](ctx context.Context, c *Client, path string, payload any) ([]S, error) {
	raw, err := c.roundTrip(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeResultList[S](raw)
}

// PutList updates resources in bulk, enveloped like PostList.
func PutList[S any](ctx context.Context, c *Client, path string, payload any) ([]S, error) {
	raw, err := c.roundTrip(ctx, http.MethodPut, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeResultList[S](raw)
}

// Delete removes a resource. The response body is still read and a non-200
// status still classifies, so a failed delete is never mistaken for success.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.roundTrip(ctx, http.MethodDelete, path, nil)
	return err
}

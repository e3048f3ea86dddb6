package gridbase

import (
	"context"
	"fmt"

	"github.com/gridbase/client-go/internal/api"
)

// UsersAPI exposes user operations.
type UsersAPI struct {
	api *api.Client
}

// Current returns the account behind the token, or behind the assumed user
// when impersonation is active.
func (u *UsersAPI) Current(ctx context.Context) (*User, error) {
	return api.Get[User](ctx, u.api, "users/me")
}

// Get returns a user by id.
func (u *UsersAPI) Get(ctx context.Context, userID int64) (*User, error) {
	return api.Get[User](ctx, u.api, fmt.Sprintf("users/%d", userID))
}

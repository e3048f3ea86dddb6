package gridbase

import (
	"context"
	"fmt"

	"github.com/gridbase/client-go/internal/api"
)

// SheetsAPI exposes sheet-level operations. Accessors hold no state of
// their own; every method goes through the client's shared dispatcher.
type SheetsAPI struct {
	api *api.Client
}

// List returns the sheets visible to the token, one page at a time.
func (s *SheetsAPI) List(ctx context.Context, page *PageSpec) (*Page[Sheet], error) {
	return api.GetPage[Sheet](ctx, s.api, page.Apply("sheets"))
}

// Get returns a sheet by id, including its columns and rows.
func (s *SheetsAPI) Get(ctx context.Context, sheetID int64) (*Sheet, error) {
	return api.Get[Sheet](ctx, s.api, fmt.Sprintf("sheets/%d", sheetID))
}

// Create creates a new sheet from the given definition. Any identity set on
// the argument is never sent; the server assigns one.
func (s *SheetsAPI) Create(ctx context.Context, sheet *Sheet) (*Sheet, error) {
	return api.Post[Sheet](ctx, s.api, "sheets", sheet)
}

// Update renames or reconfigures a sheet.
func (s *SheetsAPI) Update(ctx context.Context, sheetID int64, sheet *Sheet) (*Sheet, error) {
	return api.Put[Sheet](ctx, s.api, fmt.Sprintf("sheets/%d", sheetID), sheet)
}

// Delete removes a sheet.
func (s *SheetsAPI) Delete(ctx context.Context, sheetID int64) error {
	return api.Delete(ctx, s.api, fmt.Sprintf("sheets/%d", sheetID))
}

// ListShares returns who a sheet is shared with.
func (s *SheetsAPI) ListShares(ctx context.Context, sheetID int64) ([]Share, error) {
	return api.GetList[Share](ctx, s.api, fmt.Sprintf("sheets/%d/shares", sheetID))
}

// Share grants access to one or more users in a single call.
func (s *SheetsAPI) Share(ctx context.Context, sheetID int64, shares []Share) ([]Share, error) {
	return api.PostList[Share](ctx, s.api, fmt.Sprintf("sheets/%d/shares", sheetID), shares)
}

// UpdateShares changes the access level of existing shares in bulk.
func (s *SheetsAPI) UpdateShares(ctx context.Context, sheetID int64, shares []Share) ([]Share, error) {
	return api.PutList[Share](ctx, s.api, fmt.Sprintf("sheets/%d/shares", sheetID), shares)
}

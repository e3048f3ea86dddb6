package gridbase

import (
	"context"
	"fmt"

	"github.com/gridbase/client-go/internal/api"
)

// RowsAPI exposes row operations within a sheet.
type RowsAPI struct {
	api *api.Client
}

// Get returns a single row with its cells.
func (r *RowsAPI) Get(ctx context.Context, sheetID, rowID int64) (*Row, error) {
	return api.Get[Row](ctx, r.api, fmt.Sprintf("sheets/%d/rows/%d", sheetID, rowID))
}

// Add inserts rows into a sheet and returns them with their server-assigned
// identities and row numbers.
func (r *RowsAPI) Add(ctx context.Context, sheetID int64, rows []Row) ([]Row, error) {
	return api.PostList[Row](ctx, r.api, fmt.Sprintf("sheets/%d/rows", sheetID), rows)
}

// Update replaces the cells of an existing row.
func (r *RowsAPI) Update(ctx context.Context, sheetID, rowID int64, row *Row) (*Row, error) {
	return api.Put[Row](ctx, r.api, fmt.Sprintf("sheets/%d/rows/%d", sheetID, rowID), row)
}

// Delete removes a row.
func (r *RowsAPI) Delete(ctx context.Context, sheetID, rowID int64) error {
	return api.Delete(ctx, r.api, fmt.Sprintf("sheets/%d/rows/%d", sheetID, rowID))
}

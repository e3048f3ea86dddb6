package gridbase

import (
	"context"
	"fmt"

	"github.com/gridbase/client-go/internal/api"
)

// ColumnsAPI exposes column operations within a sheet.
type ColumnsAPI struct {
	api *api.Client
}

// List returns all columns of a sheet.
func (c *ColumnsAPI) List(ctx context.Context, sheetID int64) ([]Column, error) {
	return api.GetList[Column](ctx, c.api, fmt.Sprintf("sheets/%d/columns", sheetID))
}

// Get returns a single column.
func (c *ColumnsAPI) Get(ctx context.Context, sheetID, columnID int64) (*Column, error) {
	return api.Get[Column](ctx, c.api, fmt.Sprintf("sheets/%d/columns/%d", sheetID, columnID))
}

// Add appends a column to a sheet.
func (c *ColumnsAPI) Add(ctx context.Context, sheetID int64, column *Column) (*Column, error) {
	return api.Post[Column](ctx, c.api, fmt.Sprintf("sheets/%d/columns", sheetID), column)
}

// Update retitles or retypes a column.
func (c *ColumnsAPI) Update(ctx context.Context, sheetID, columnID int64, column *Column) (*Column, error) {
	return api.Put[Column](ctx, c.api, fmt.Sprintf("sheets/%d/columns/%d", sheetID, columnID), column)
}

// Delete removes a column and all of its cells.
func (c *ColumnsAPI) Delete(ctx context.Context, sheetID, columnID int64) error {
	return api.Delete(ctx, c.api, fmt.Sprintf("sheets/%d/columns/%d", sheetID, columnID))
}

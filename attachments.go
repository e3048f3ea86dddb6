package gridbase

import (
	"context"
	"fmt"

	"github.com/gridbase/client-go/internal/api"
)

// AttachmentsAPI exposes attachment operations. Upload mechanics (multipart
// bodies, alternate Accept types for export) live outside this SDK; only the
// JSON metadata surface is covered here.
type AttachmentsAPI struct {
	api *api.Client
}

// List returns the attachments of a sheet, one page at a time.
func (a *AttachmentsAPI) List(ctx context.Context, sheetID int64, page *PageSpec) (*Page[Attachment], error) {
	return api.GetPage[Attachment](ctx, a.api, page.Apply(fmt.Sprintf("sheets/%d/attachments", sheetID)))
}

// Get returns attachment metadata, including a short-lived download URL.
func (a *AttachmentsAPI) Get(ctx context.Context, sheetID, attachmentID int64) (*Attachment, error) {
	return api.Get[Attachment](ctx, a.api, fmt.Sprintf("sheets/%d/attachments/%d", sheetID, attachmentID))
}

// Delete removes an attachment.
func (a *AttachmentsAPI) Delete(ctx context.Context, sheetID, attachmentID int64) error {
	return api.Delete(ctx, a.api, fmt.Sprintf("sheets/%d/attachments/%d", sheetID, attachmentID))
}

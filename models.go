package gridbase

import "time"

// Identity fields are server-assigned and carry omitempty so zero values
// stay off the wire on reads; on writes the request layer strips them
// entirely, whatever their value.

// Sheet is a single sheet, optionally with its columns and rows.
type Sheet struct {
	ID            int64       `json:"id,omitempty"`
	Name          string      `json:"name,omitempty"`
	Permalink     string      `json:"permalink,omitempty"`
	AccessLevel   AccessLevel `json:"accessLevel,omitempty"`
	TotalRowCount int         `json:"totalRowCount,omitempty"`
	Columns       []Column    `json:"columns,omitempty"`
	Rows          []Row       `json:"rows,omitempty"`
	CreatedAt     *time.Time  `json:"createdAt,omitempty"`
	ModifiedAt    *time.Time  `json:"modifiedAt,omitempty"`
}

// Column describes one column of a sheet.
type Column struct {
	ID      int64      `json:"id,omitempty"`
	Index   int        `json:"index,omitempty"`
	Title   string     `json:"title,omitempty"`
	Type    ColumnType `json:"type,omitempty"`
	Primary bool       `json:"primary,omitempty"`
	Hidden  bool       `json:"hidden,omitempty"`
	Width   int        `json:"width,omitempty"`
	Options []string   `json:"options,omitempty"`
}

// Row is one row of a sheet. ToTop and ToBottom position new rows on
// insert and are ignored by the server otherwise.
type Row struct {
	ID         int64      `json:"id,omitempty"`
	SheetID    int64      `json:"sheetId,omitempty"`
	RowNumber  int        `json:"rowNumber,omitempty"`
	Cells      []Cell     `json:"cells,omitempty"`
	Locked     bool       `json:"locked,omitempty"`
	ToTop      bool       `json:"toTop,omitempty"`
	ToBottom   bool       `json:"toBottom,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

// Cell is a single cell value within a row.
type Cell struct {
	ColumnID     int64  `json:"columnId,omitempty"`
	Value        any    `json:"value,omitempty"`
	DisplayValue string `json:"displayValue,omitempty"`
	Formula      string `json:"formula,omitempty"`
}

// Attachment is a file or link attached to a sheet or row.
type Attachment struct {
	ID             int64          `json:"id,omitempty"`
	Name           string         `json:"name,omitempty"`
	URL            string         `json:"url,omitempty"`
	AttachmentType AttachmentType `json:"attachmentType,omitempty"`
	MimeType       string         `json:"mimeType,omitempty"`
	SizeInKB       int64          `json:"sizeInKb,omitempty"`
	CreatedAt      *time.Time     `json:"createdAt,omitempty"`
}

// Share grants a user access to a sheet. Share identities are strings.
type Share struct {
	ID          string      `json:"id,omitempty"`
	Email       string      `json:"email,omitempty"`
	AccessLevel AccessLevel `json:"accessLevel,omitempty"`
}

// User is an account on the service.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Admin     bool   `json:"admin,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

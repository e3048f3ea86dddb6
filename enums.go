package gridbase

import (
	"encoding/json"
	"fmt"
)

// Enumerations serialize to their symbolic names in both directions. An
// unrecognized name on decode is a failure, never a default value. Zero
// values are omitted from write bodies via omitempty on the model fields.

// AccessLevel is the permission a token holds on a resource.
type AccessLevel int

const (
	AccessLevelUnspecified AccessLevel = iota
	AccessLevelViewer
	AccessLevelCommenter
	AccessLevelEditor
	AccessLevelEditorShare
	AccessLevelAdmin
	AccessLevelOwner
)

var accessLevelNames = map[AccessLevel]string{
	AccessLevelViewer:      "VIEWER",
	AccessLevelCommenter:   "COMMENTER",
	AccessLevelEditor:      "EDITOR",
	AccessLevelEditorShare: "EDITOR_SHARE",
	AccessLevelAdmin:       "ADMIN",
	AccessLevelOwner:       "OWNER",
}

var accessLevelValues = invert(accessLevelNames)

func (a AccessLevel) String() string {
	if name, ok := accessLevelNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AccessLevel(%d)", int(a))
}

// MarshalJSON writes the symbolic name.
func (a AccessLevel) MarshalJSON() ([]byte, error) {
	name, ok := accessLevelNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown access level %d", int(a))
	}
	return json.Marshal(name)
}

// UnmarshalJSON requires an exact symbolic match.
func (a *AccessLevel) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	v, ok := accessLevelValues[name]
	if !ok {
		return fmt.Errorf("unknown access level %q", name)
	}
	*a = v
	return nil
}

// ColumnType is the data type of a column.
type ColumnType int

const (
	ColumnTypeUnspecified ColumnType = iota
	ColumnTypeTextNumber
	ColumnTypeDate
	ColumnTypeDateTime
	ColumnTypeCheckbox
	ColumnTypePicklist
	ColumnTypeContactList
)

var columnTypeNames = map[ColumnType]string{
	ColumnTypeTextNumber:  "TEXT_NUMBER",
	ColumnTypeDate:        "DATE",
	ColumnTypeDateTime:    "DATETIME",
	ColumnTypeCheckbox:    "CHECKBOX",
	ColumnTypePicklist:    "PICKLIST",
	ColumnTypeContactList: "CONTACT_LIST",
}

var columnTypeValues = invert(columnTypeNames)

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// MarshalJSON writes the symbolic name.
func (t ColumnType) MarshalJSON() ([]byte, error) {
	name, ok := columnTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown column type %d", int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON requires an exact symbolic match.
func (t *ColumnType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	v, ok := columnTypeValues[name]
	if !ok {
		return fmt.Errorf("unknown column type %q", name)
	}
	*t = v
	return nil
}

// AttachmentType distinguishes uploaded files from links.
type AttachmentType int

const (
	AttachmentTypeUnspecified AttachmentType = iota
	AttachmentTypeFile
	AttachmentTypeLink
)

var attachmentTypeNames = map[AttachmentType]string{
	AttachmentTypeFile: "FILE",
	AttachmentTypeLink: "LINK",
}

var attachmentTypeValues = invert(attachmentTypeNames)

func (t AttachmentType) String() string {
	if name, ok := attachmentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AttachmentType(%d)", int(t))
}

// MarshalJSON writes the symbolic name.
func (t AttachmentType) MarshalJSON() ([]byte, error) {
	name, ok := attachmentTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown attachment type %d", int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON requires an exact symbolic match.
func (t *AttachmentType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	v, ok := attachmentTypeValues[name]
	if !ok {
		return fmt.Errorf("unknown attachment type %q", name)
	}
	*t = v
	return nil
}

func invert[E comparable](names map[E]string) map[string]E {
	values := make(map[string]E, len(names))
	for v, name := range names {
		values[name] = v
	}
	return values
}

package api

import (
	"bytes"
	"encoding/json"

	"github.com/gridbase/client-go/internal/apierrors"
)

// identityField is the wire name of the server-assigned primary key.
// Write bodies never carry it; only the server assigns identities.
const identityField = "id"

// Identified lets a model override the field name stripped from write
// bodies, for resources whose primary key is not named "id".
type Identified interface {
	IdentityField() string
}

// EncodeBody serializes v for a write operation. The identity field is
// dropped regardless of its value; for slice payloads it is dropped from
// every element.
func EncodeBody(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &apierrors.SerializationError{Op: "encode", Err: err}
	}

	field := identityField
	if id, ok := v.(Identified); ok {
		field = id.IdentityField()
	}

	switch firstByte(raw) {
	case '{':
		return stripField(raw, field)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &apierrors.SerializationError{Op: "encode", Err: err}
		}
		for i, item := range items {
			if firstByte(item) != '{' {
				continue
			}
			stripped, err := stripField(item, field)
			if err != nil {
				return nil, err
			}
			items[i] = stripped
		}
		out, err := json.Marshal(items)
		if err != nil {
			return nil, &apierrors.SerializationError{Op: "encode", Err: err}
		}
		return out, nil
	default:
		// Scalars and null pass through untouched.
		return raw, nil
	}
}

func stripField(raw []byte, field string) ([]byte, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &apierrors.SerializationError{Op: "encode", Err: err}
	}
	delete(m, field)
	out, err := json.Marshal(m)
	if err != nil {
		return nil, &apierrors.SerializationError{Op: "encode", Err: err}
	}
	return out, nil
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// resultEnvelope is the {"result": ...} wrapper the service puts around
// create/update/delete responses.
type resultEnvelope[T any] struct {
	Result T `json:"result"`
}

// Page is the paginated collection wrapper.
type Page[T any] struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
	Data       []T `json:"data"`
}

func decodeErr(err error) error {
	return &apierrors.SerializationError{Op: "decode", Err: err}
}

func decodeObject[T any](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, decodeErr(err)
	}
	return &v, nil
}

// decodeList accepts either a bare JSON array or the paginated wrapper;
// the wrapper is the only object shape a collection endpoint returns.
func decodeList[T any](body []byte) ([]T, error) {
	if firstByte(body) == '{' {
		page, err := decodeObject[Page[T]](body)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	}
	var vs []T
	if err := json.Unmarshal(body, &vs); err != nil {
		return nil, decodeErr(err)
	}
	return vs, nil
}

func decodePage[T any](body []byte) (*Page[T], error) {
	if firstByte(body) == '[' {
		// Some list endpoints return a bare array when pagination is not
		// requested; normalize it into a single page.
		var vs []T
		if err := json.Unmarshal(body, &vs); err != nil {
			return nil, decodeErr(err)
		}
		return &Page[T]{Page: 1, PageSize: len(vs), TotalPages: 1, TotalCount: len(vs), Data: vs}, nil
	}
	return decodeObject[Page[T]](body)
}

func decodeResult[T any](body []byte) (*T, error) {
	env, err := decodeObject[resultEnvelope[T]](body)
	if err != nil {
		return nil, err
	}
	return &env.Result, nil
}

func decodeResultList[T any](body []byte) ([]T, error) {
	env, err := decodeObject[resultEnvelope[[]T]](body)
	if err != nil {
		return nil, err
	}
	return env.Result, nil
}

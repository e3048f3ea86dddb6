package api

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSpec selects a page of a collection endpoint. Zero-valued fields are
// omitted from the query string, leaving the server's defaults in effect.
type PageSpec struct {
	// Page is the 1-based page number.
	Page int
	// PageSize is the number of items per page.
	PageSize int
	// IncludeAll asks the server for the entire collection in one response.
	// When set, Page and PageSize are ignored.
	IncludeAll bool
}

// Apply appends the pagination query parameters to path.
func (p *PageSpec) Apply(path string) string {
	if p == nil {
		return path
	}

	q := url.Values{}
	if p.IncludeAll {
		q.Set("includeAll", "true")
	} else {
		if p.Page > 0 {
			q.Set("page", strconv.Itoa(p.Page))
		}
		if p.PageSize > 0 {
			q.Set("pageSize", strconv.Itoa(p.PageSize))
		}
	}
	if len(q) == 0 {
		return path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

package pagination

import (
	"net/http"
	"strconv"
)

// MaxPerPage caps the page size a client can request.
const MaxPerPage = 100

// Defaults applied when the query string is silent or unusable.
const (
	defaultPage    = 1
	defaultPerPage = 20
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page at the default size.
func DefaultParams() Params {
	return Params{Page: defaultPage, PerPage: defaultPerPage}
}

// FromRequest reads ?page= and ?per_page= from the request. Malformed,
// non-positive or over-cap values silently fall back to the defaults; a
// list endpoint should never 400 over pagination noise.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if v := positiveIntQuery(r, "page"); v > 0 {
		p.Page = v
	}
	if v := positiveIntQuery(r, "per_page"); v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// positiveIntQuery parses the named query value, returning 0 when it is
// absent, malformed or not positive.
func positiveIntQuery(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult assembles one page of a listing. Nil data is normalized to an
// empty slice so the JSON data field is always an array.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}

	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

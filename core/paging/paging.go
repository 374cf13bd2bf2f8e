// Package paging turns raw page/limit query input into safe skip/take
// offsets and wraps result pages in the uniform list envelope.
package paging

import (
	"net/url"
	"strconv"

	"wavefm/core/apperr"
)

const (
	// DefaultLimit is the page size used when the caller sends none.
	DefaultLimit = 10
	// DefaultMaxLimit caps the page size when the config provides no ceiling.
	DefaultMaxLimit = 20
)

// Params holds raw pagination input. Zero values mean "absent".
type Params struct {
	Page     int
	Limit    int
	MaxLimit int
}

// Resolved is the normalized pagination triple applied to queries.
type Resolved struct {
	Skip        int
	Take        int
	CurrentPage int
}

// ParseQuery extracts pagination parameters from a query string. An absent
// parameter falls back to its default; an explicitly supplied parameter that
// is not a positive integer is an InvalidArgument error, never a silent
// default.
func ParseQuery(query url.Values, maxLimit int) (Params, error) {
	p := Params{MaxLimit: maxLimit}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, apperr.New(apperr.InvalidArgument, "Page must be a positive integer if provided.")
		}
		p.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Params{}, apperr.New(apperr.InvalidArgument, "Limit must be a positive integer if provided.")
		}
		p.Limit = limit
	}

	return p, nil
}

// Resolve normalizes params into a skip/take/currentPage triple. The
// requested limit is clamped to MaxLimit, never rejected. CurrentPage echoes
// the caller's page: an out-of-range page yields an empty data slice with
// the requested page number, not a clamp and not an error.
func Resolve(p Params) Resolved {
	page := p.Page
	if page < 1 {
		page = 1
	}

	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	maxLimit := p.MaxLimit
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}

	take := limit
	if take > maxLimit {
		take = maxLimit
	}

	return Resolved{
		Skip:        (page - 1) * take,
		Take:        take,
		CurrentPage: page,
	}
}

// Page is the uniform envelope for every paginated response.
type Page[T any] struct {
	Data        []T   `json:"data"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPage wraps one page of rows. Total is the full matching row count, not
// the page size. A nil rows slice becomes an empty one so the envelope
// always serializes data as a JSON array.
func NewPage[T any](rows []T, total int64, take, currentPage int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	if take < 1 {
		take = 1
	}

	totalPages := int((total + int64(take) - 1) / int64(take))

	return Page[T]{
		Data:        rows,
		Limit:       take,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
	}
}

package common

import (
	"net/http"
	"strconv"

	apperrors "clouddictionary/pkg/errors"
)

// Page size bounds shared by every paged listing. Requests above
// MaxPageSize are clamped rather than rejected.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageRequest carries the caller's paging input.
type PageRequest struct {
	PageSize          int    `json:"pageSize,omitempty"`
	ContinuationToken string `json:"continuationToken,omitempty"`
}

// NewPageRequest creates a PageRequest, leaving size normalization to
// EffectivePageSize.
func NewPageRequest(pageSize int, token string) PageRequest {
	return PageRequest{PageSize: pageSize, ContinuationToken: token}
}

// EffectivePageSize returns the page size to use, with a default if not
// specified and MaxPageSize as the ceiling.
func (p PageRequest) EffectivePageSize() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return p.PageSize
	}
}

// Page is one page of results plus the token to request the next one.
// An empty token means the listing is exhausted.
type Page[T any] struct {
	Items             []T
	ContinuationToken string
}

// HasMore reports whether another page may follow.
func (p Page[T]) HasMore() bool {
	return p.ContinuationToken != ""
}

// ExtractPageRequest reads pageSize and continuationToken from the query
// string. defaultSize applies when pageSize is absent.
func ExtractPageRequest(r *http.Request, defaultSize int) (PageRequest, error) {
	query := r.URL.Query()
	req := PageRequest{
		PageSize:          defaultSize,
		ContinuationToken: query.Get("continuationToken"),
	}

	if raw := query.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return req, apperrors.NewValidationError("pageSize must be an integer")
		}
		if size > 0 {
			req.PageSize = size
		}
	}

	return req, nil
}

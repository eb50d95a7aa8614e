package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and sort orders.
const (
	DefaultLimit     = 0 // no limit
	DefaultOffset    = 0
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Validation errors.
var (
	ErrNegativeLimit        = errors.New("limit cannot be negative")
	ErrNegativeOffset       = errors.New("offset cannot be negative")
	ErrNegativePage         = errors.New("page cannot be negative")
	ErrNegativePageSize     = errors.New("page-size cannot be negative")
	ErrMixedPaginationModes = errors.New("--page and --offset are mutually exclusive")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page")
	ErrPageWithoutPageSize  = errors.New("--page requires --page-size")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'ect:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// PaginationParams holds CLI pagination flags. Two modes are supported and
// are mutually exclusive:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit is the maximum number of results; 0 means all.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Page is the 1-based page number; 0 disables page mode.
	Page int

	// PageSize is the number of results per page.
	PageSize int
}

// Validate checks that the parameters are non-negative and consistent.
func (p PaginationParams) Validate() error {
	switch {
	case p.Limit < 0:
		return ErrNegativeLimit
	case p.Offset < 0:
		return ErrNegativeOffset
	case p.Page < 0:
		return ErrNegativePage
	case p.PageSize < 0:
		return ErrNegativePageSize
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && p.PageSize == 0:
		return ErrPageWithoutPageSize
	default:
		return nil
	}
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled returns true if any pagination parameter is set.
func (p PaginationParams) IsEnabled() bool {
	return p.Limit > 0 || p.Offset > 0 || p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. An offset beyond the end
// yields an empty slice; a limit of 0 means the rest of the items.
func Apply[T any](p PaginationParams, items []T) []T {
	offset, limit := p.CalculateOffsetLimit()
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// An empty string yields the default (input order).
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

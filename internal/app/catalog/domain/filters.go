package domain

import (
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-core/internal/pkg/query"
)

// SortKey is a backend product sort key.
type SortKey string

const (
	SortTitle SortKey = "TITLE"
	SortPrice SortKey = "PRICE"
)

// Search fields understood by the backend query syntax.
const (
	FieldTitle       = "title"
	FieldProductType = "product_type"
	FieldVendor      = "vendor"
)

// ParseSortKey accepts "title"/"price" in any case.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToUpper(strings.TrimSpace(s))) {
	case "", SortTitle:
		return SortTitle, nil
	case SortPrice:
		return SortPrice, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want TITLE or PRICE)", s)
	}
}

// Sort is the ordering of a listing.
type Sort struct {
	Key     SortKey
	Reverse bool
}

// Filters is one listing configuration. Filters is comparable: two values are
// the same query session exactly when they are ==.
type Filters struct {
	Search   string
	Category string
	Vendor   string
	Sort     Sort
}

// DefaultFilters is the unfiltered listing sorted by title ascending.
func DefaultFilters() Filters {
	return Filters{Sort: Sort{Key: SortTitle}}
}

// Normalize trims text fields and defaults the sort key so that filters
// differing only in whitespace compare equal.
func (f Filters) Normalize() Filters {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	f.Vendor = strings.TrimSpace(f.Vendor)
	if f.Sort.Key == "" {
		f.Sort.Key = SortTitle
	}
	return f
}

// SearchQuery composes the backend query string: a title substring match,
// then category, then vendor. ok is false when no clause applies.
func (f Filters) SearchQuery() (string, bool) {
	return query.New().
		Where(query.Contains(FieldTitle, f.Search)).
		Where(query.Eq(FieldProductType, f.Category)).
		Where(query.Eq(FieldVendor, f.Vendor)).
		Build()
}

// Package catalog builds filtered, sorted, paginated views over the
// product, service, order, and contact collections. It translates untrusted
// query-string input into an allow-listed set of predicates; unrecognized
// filter keys and sort values are ignored rather than rejected.
package catalog

import (
	"net/url"
	"strconv"
)

// Pagination bounds. Page sizes are clamped server-side so a caller cannot
// request an unbounded result set.
const (
	MaxPageSize            = 100
	DefaultProductPageSize = 50
	DefaultAdminPageSize   = 20
)

// Sort is the closed set of supported sort orders. Unrecognized values fall
// back to SortNewest, the stable default.
type Sort string

const (
	SortName     Sort = "name"
	SortNameDesc Sort = "-name"
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
)

// ParseSort maps a raw query value to a Sort, falling back to SortNewest for
// anything outside the closed set (including the empty string).
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortName, SortNameDesc, SortNewest, SortOldest:
		return Sort(raw)
	}
	return SortNewest
}

// OrderBy returns the field and direction for this sort. The name field is
// the collection's display-name column (products: name, services: title).
// Ordering is deterministic for a fixed dataset; stores add the primary key
// as a tie-break.
func (s Sort) OrderBy() (field string, desc bool) {
	switch s {
	case SortName:
		return "name", false
	case SortNameDesc:
		return "name", true
	case SortOldest:
		return "created_at", false
	default:
		return "created_at", true
	}
}

// Page describes a 1-based page request with a clamped size.
type Page struct {
	Number int
	Size   int
}

// NewPage builds a Page from raw values, clamping the number to >= 1 and the
// size into [1, MaxPageSize]. Non-positive sizes take the given default.
func NewPage(number, size, defaultSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageCount returns the total number of pages for the filtered set:
// ceil(total / size).
func PageCount(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// ProductFilter is the allow-listed predicate set for the products collection.
// Search matches if any of name, description, or brand contains the term as a
// case-insensitive substring; results are not relevance-ranked.
type ProductFilter struct {
	Category string
	Featured *bool
	Search   string
}

// OrderFilter is the allow-listed predicate set for the orders collection.
type OrderFilter struct {
	Status   string
	Priority string
}

// ContactFilter is the allow-listed predicate set for the contact collection.
type ContactFilter struct {
	Status string
}

// ParseProductQuery extracts the product filter, sort, and page from query
// parameters. Unknown keys are ignored.
func ParseProductQuery(q url.Values) (ProductFilter, Sort, Page) {
	f := ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("featured"); raw != "" {
		v := raw == "true"
		f.Featured = &v
	}
	return f, ParseSort(q.Get("sort")), parsePage(q, DefaultProductPageSize)
}

// ParseOrderQuery extracts the order filter, sort, and page from query
// parameters.
func ParseOrderQuery(q url.Values) (OrderFilter, Sort, Page) {
	f := OrderFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}
	return f, ParseSort(q.Get("sort")), parsePage(q, DefaultAdminPageSize)
}

// ParseContactQuery extracts the contact filter and page from query
// parameters. Contact messages are always listed newest-first.
func ParseContactQuery(q url.Values) (ContactFilter, Page) {
	return ContactFilter{Status: q.Get("status")}, parsePage(q, DefaultAdminPageSize)
}

func parsePage(q url.Values, defaultSize int) Page {
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("limit"))
	return NewPage(number, size, defaultSize)
}

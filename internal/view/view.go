// Package view derives the visible page of products from the full
// collection. It is a pure projection: the same collection, search query,
// sort order, and page index always produce the same rows, which keeps
// pagination reproducible and the table snapshot-testable.
package view

import (
	"sort"
	"strings"

	"github.com/kestrel7/stockpile/internal/catalog"
)

// Field selects the sort column.
type Field string

const (
	ByTitle       Field = "title"
	ByDescription Field = "description"
	ByPrice       Field = "price"
)

// Fields lists the sortable columns in display order.
var Fields = []Field{ByTitle, ByDescription, ByPrice}

// Direction selects the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Query is the ephemeral, client-only view state.
type Query struct {
	Search   string
	Sort     Field
	Dir      Direction
	Page     int // zero-based, clamped by Apply
	PageSize int
}

// Result is the derived page of rows plus the totals pagination controls need.
type Result struct {
	Rows      []catalog.Product
	Total     int // filtered count across all pages
	Page      int // the page actually shown, after clamping
	PageCount int
}

// Apply filters, sorts, and paginates the given products.
//
// Filtering is a case-insensitive substring match over title or description;
// an empty query matches everything. Sorting is stable so that rows comparing
// equal on the chosen field keep their relative order. The page index is
// clamped to the last valid page, which matters after a delete shrinks the
// filtered set.
func Apply(products []catalog.Product, q Query) Result {
	filtered := Filter(products, q.Search)
	SortStable(filtered, q.Sort, q.Dir)

	size := q.PageSize
	if size <= 0 {
		size = 5
	}

	pageCount := (len(filtered) + size - 1) / size
	page := ClampPage(q.Page, len(filtered), size)

	start := page * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Rows:      filtered[start:end],
		Total:     len(filtered),
		Page:      page,
		PageCount: pageCount,
	}
}

// Filter returns the products whose title or description contains the query,
// ignoring case. An empty query returns every product. The input slice is not
// modified.
func Filter(products []catalog.Product, query string) []catalog.Product {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		out := make([]catalog.Product, len(products))
		copy(out, products)
		return out
	}

	var out []catalog.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), trimmed) {
			out = append(out, p)
			continue
		}
		if p.Description != "" && strings.Contains(strings.ToLower(p.Description), trimmed) {
			out = append(out, p)
		}
	}
	return out
}

// SortStable orders products in place by the given field and direction.
// Stability is part of the contract: ties keep the input's relative order.
func SortStable(products []catalog.Product, field Field, dir Direction) {
	cmp := comparator(field)
	sort.SliceStable(products, func(i, j int) bool {
		c := cmp(products[i], products[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
}

// comparator returns a three-way compare over the field's natural type:
// lexicographic for the string columns, numeric for price.
func comparator(field Field) func(a, b catalog.Product) int {
	switch field {
	case ByDescription:
		return func(a, b catalog.Product) int {
			return strings.Compare(a.Description, b.Description)
		}
	case ByPrice:
		return func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		}
	default:
		return func(a, b catalog.Product) int {
			return strings.Compare(a.Title, b.Title)
		}
	}
}

// ClampPage bounds a zero-based page index to [0, max(0, ceil(total/size)-1)].
func ClampPage(page, total, size int) int {
	if page < 0 {
		return 0
	}
	if size <= 0 || total <= 0 {
		return 0
	}
	last := (total+size-1)/size - 1
	if last < 0 {
		last = 0
	}
	if page > last {
		return last
	}
	return page
}

// NextField cycles to the next sortable column.
func NextField(f Field) Field {
	for i, candidate := range Fields {
		if candidate == f {
			return Fields[(i+1)%len(Fields)]
		}
	}
	return Fields[0]
}

// Package catalog holds the fixed set of predefined SQL queries offered by
// the query-runner page, grouped into ordered categories.
package catalog

import (
	"crossmarket/internal/domain"
)

// Chart hints advise the renderer which figure fits a query's result.
const (
	ChartLine    = "line"
	ChartBar     = "bar"
	ChartScatter = "scatter"
)

// Query is one predefined catalog entry. The (Category, Label) pair is the
// query's stable identifier across runs.
type Query struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	SQL      string `json:"sql"`
	Chart    string `json:"chart"`
}

// Catalog is the immutable query registry, seeded once at startup. All
// accessors return copies so callers cannot mutate the registry.
type Catalog struct {
	categories []string
	byCategory map[string][]Query
}

// New builds the catalog from the built-in query set: five categories,
// thirty queries.
func New() *Catalog {
	c := &Catalog{byCategory: make(map[string][]Query)}
	for _, q := range builtin() {
		if _, ok := c.byCategory[q.Category]; !ok {
			c.categories = append(c.categories, q.Category)
		}
		c.byCategory[q.Category] = append(c.byCategory[q.Category], q)
	}
	return c
}

// Categories returns the category names in presentation order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Queries returns the queries of one category in presentation order.
func (c *Catalog) Queries(category string) ([]Query, error) {
	qs, ok := c.byCategory[category]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "category", Name: category}
	}
	out := make([]Query, len(qs))
	copy(out, qs)
	return out, nil
}

// Get finds one query by its (category, label) identifier.
func (c *Catalog) Get(category, label string) (Query, error) {
	for _, q := range c.byCategory[category] {
		if q.Label == label {
			return q, nil
		}
	}
	return Query{}, &domain.NotFoundError{Kind: "query", Name: category + " / " + label}
}

// Len returns the total number of queries across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, qs := range c.byCategory {
		n += len(qs)
	}
	return n
}

// Package query composes Storefront search-syntax query strings.
//
// The Storefront API accepts a free-form `query` argument on connection fields
// (for example `title:*red* product_type:lip`). Clauses are implicitly ANDed
// when separated by a single space. A missing query argument and an empty one
// are treated differently by the backend, so Build reports absence explicitly
// instead of returning "".
package query

import (
	"fmt"
	"strings"
)

// Builder constructs a search query from ordered conditions.
// It is immutable: every method returns a new Builder.
type Builder struct {
	conditions []Condition
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{conditions: []Condition{}}
}

// Where appends a condition. Conditions render in the order they were added.
func (b *Builder) Where(condition Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.conditions = append(newBuilder.conditions, condition)
	return newBuilder
}

// Build renders the query. ok is false when no condition produced a clause,
// in which case the caller must omit the query argument entirely.
func (b *Builder) Build() (query string, ok bool) {
	clauses := make([]string, 0, len(b.conditions))
	for _, condition := range b.conditions {
		if condition == nil {
			continue
		}
		clause := condition.Clause()
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 0 {
		return "", false
	}
	return strings.Join(clauses, " "), true
}

// Len returns the number of conditions that will render a clause.
func (b *Builder) Len() int {
	n := 0
	for _, condition := range b.conditions {
		if condition != nil && condition.Clause() != "" {
			n++
		}
	}
	return n
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		conditions: make([]Condition, len(b.conditions)),
	}
	copy(newBuilder.conditions, b.conditions)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	q, ok := b.Build()
	if !ok {
		return "Query: <none>"
	}
	return fmt.Sprintf("Query: %s", q)
}

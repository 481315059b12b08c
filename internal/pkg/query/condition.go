package query

import (
	"fmt"
	"strings"
)

// Condition represents one search clause.
// Implementations return "" when they have nothing to contribute, and the
// Builder drops such clauses so no dangling whitespace is rendered.
type Condition interface {
	Clause() string
}

// eqCondition implements an exact field match (field:value).
type eqCondition struct {
	field string
	value string
}

// Eq creates a clause matching a field exactly.
// Example: Eq("vendor", "Acme") generates `vendor:Acme`
func Eq(field, value string) Condition {
	return &eqCondition{field: field, value: value}
}

// Clause renders the exact-match clause.
func (c *eqCondition) Clause() string {
	value := strings.TrimSpace(c.value)
	if c.field == "" || value == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.field, quote(value))
}

// containsCondition implements a substring match (field:*value*).
type containsCondition struct {
	field string
	value string
}

// Contains creates a substring-match clause.
// Example: Contains("title", "red") generates `title:*red*`
func Contains(field, value string) Condition {
	return &containsCondition{field: field, value: value}
}

// Clause renders the substring clause. Multi-word values are quoted with the
// wildcards inside the quotes.
func (c *containsCondition) Clause() string {
	value := strings.TrimSpace(c.value)
	if c.field == "" || value == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.field, quote("*"+value+"*"))
}

// quote wraps values the search syntax would otherwise split.
func quote(value string) string {
	if !strings.ContainsAny(value, " \t:\"") {
		return value
	}
	escaped := strings.ReplaceAll(value, `"`, `\"`)
	return `"` + escaped + `"`
}

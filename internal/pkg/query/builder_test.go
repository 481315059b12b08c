package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_NoConditions(t *testing.T) {
	q, ok := New().Build()

	assert.False(t, ok)
	assert.Empty(t, q)
}

func TestBuilder_SingleContains(t *testing.T) {
	q, ok := New().Where(Contains("title", "red")).Build()

	require.True(t, ok)
	assert.Equal(t, "title:*red*", q)
}

func TestBuilder_MultipleConditionsKeepOrder(t *testing.T) {
	q, ok := New().
		Where(Contains("title", "red")).
		Where(Eq("product_type", "lip")).
		Where(Eq("vendor", "Acme")).
		Build()

	require.True(t, ok)
	assert.Equal(t, "title:*red* product_type:lip vendor:Acme", q)
}

func TestBuilder_EmptyValuesAreDropped(t *testing.T) {
	q, ok := New().
		Where(Contains("title", "")).
		Where(Eq("product_type", "lip")).
		Where(Eq("vendor", "   ")).
		Build()

	require.True(t, ok)
	assert.Equal(t, "product_type:lip", q)
	assert.NotContains(t, q, "  ")
}

func TestBuilder_AllEmptyIsAbsent(t *testing.T) {
	b := New().
		Where(Contains("title", "")).
		Where(Eq("vendor", ""))

	_, ok := b.Build()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBuilder_NilConditionIgnored(t *testing.T) {
	q, ok := New().Where(nil).Where(Eq("vendor", "Acme")).Build()

	require.True(t, ok)
	assert.Equal(t, "vendor:Acme", q)
}

func TestBuilder_Immutability(t *testing.T) {
	base := New().Where(Eq("vendor", "Acme"))

	q1, _ := base.Where(Eq("product_type", "lip")).Build()
	q2, _ := base.Where(Eq("product_type", "eye")).Build()
	q3, _ := base.Build()

	assert.Equal(t, "vendor:Acme product_type:lip", q1)
	assert.Equal(t, "vendor:Acme product_type:eye", q2)
	assert.Equal(t, "vendor:Acme", q3)
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() string {
		q, _ := New().Where(Contains("title", "red")).Where(Eq("vendor", "Acme")).Build()
		return q
	}

	assert.Equal(t, build(), build())
}

func TestCondition_QuotesMultiWordValues(t *testing.T) {
	assert.Equal(t, `vendor:"Acme Cosmetics"`, Eq("vendor", "Acme Cosmetics").Clause())
	assert.Equal(t, `title:"*red lip*"`, Contains("title", "red lip").Clause())
	assert.Equal(t, `vendor:"a:b"`, Eq("vendor", "a:b").Clause())
	assert.Equal(t, `vendor:"say \"hi\""`, Eq("vendor", `say "hi"`).Clause())
}

func TestCondition_TrimsValue(t *testing.T) {
	assert.Equal(t, "title:*red*", Contains("title", "  red ").Clause())
}

func TestBuilder_String(t *testing.T) {
	assert.Equal(t, "Query: <none>", New().String())
	assert.Equal(t, "Query: vendor:Acme", New().Where(Eq("vendor", "Acme")).String())
}

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_SearchQuery(t *testing.T) {
	t.Run("empty filters have no query", func(t *testing.T) {
		q, ok := Filters{}.SearchQuery()
		assert.False(t, ok)
		assert.Empty(t, q)
	})

	t.Run("search only", func(t *testing.T) {
		q, ok := Filters{Search: "red"}.SearchQuery()
		require.True(t, ok)
		assert.Equal(t, "title:*red*", q)
	})

	t.Run("search and category in fixed order", func(t *testing.T) {
		q, ok := Filters{Category: "lip", Search: "red"}.SearchQuery()
		require.True(t, ok)
		assert.Equal(t, "title:*red* product_type:lip", q)
		assert.Equal(t, strings.TrimSpace(q), q, "no trailing whitespace")
	})

	t.Run("all clauses", func(t *testing.T) {
		q, ok := Filters{Search: "red", Category: "lip", Vendor: "Acme"}.SearchQuery()
		require.True(t, ok)
		assert.Equal(t, "title:*red* product_type:lip vendor:Acme", q)
	})

	t.Run("sort is not part of the query", func(t *testing.T) {
		q, ok := Filters{Sort: Sort{Key: SortPrice, Reverse: true}}.SearchQuery()
		assert.False(t, ok)
		assert.Empty(t, q)
	})
}

func TestFilters_Equality(t *testing.T) {
	a := Filters{Search: "red", Sort: Sort{Key: SortTitle}}
	b := Filters{Search: "red", Sort: Sort{Key: SortTitle}}
	c := Filters{Search: "red", Sort: Sort{Key: SortTitle, Reverse: true}}

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestFilters_Normalize(t *testing.T) {
	f := Filters{Search: "  red ", Vendor: " Acme"}.Normalize()

	assert.Equal(t, Filters{Search: "red", Vendor: "Acme", Sort: Sort{Key: SortTitle}}, f)
	assert.Equal(t, DefaultFilters(), Filters{}.Normalize())
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("price")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortTitle, k)

	_, err = ParseSortKey("created")
	assert.Error(t, err)
}

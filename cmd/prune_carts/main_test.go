package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaleStatement(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stmt := staleStatement(cutoff, "")
	assert.Equal(t, "SELECT storage_key, shop_domain, updated_at FROM cart_records WHERE updated_at < @cutoff ORDER BY updated_at", stmt.SQL)
	assert.Equal(t, cutoff, stmt.Params["cutoff"])
	assert.NotContains(t, stmt.Params, "shop")

	stmt = staleStatement(cutoff, "shop.example.com")
	assert.Contains(t, stmt.SQL, "AND shop_domain = @shop")
	assert.Equal(t, "shop.example.com", stmt.Params["shop"])
}

func TestBatches(t *testing.T) {
	var stale []staleCart
	for i := 0; i < 7; i++ {
		stale = append(stale, staleCart{StorageKey: fmt.Sprintf("k%d", i)})
	}

	got := batches(stale, 3)
	require.Len(t, got, 3)
	assert.Len(t, got[0], 3)
	assert.Len(t, got[2], 1)
	assert.Equal(t, "k6", got[2][0].StorageKey)

	assert.Empty(t, batches(nil, 3))
}

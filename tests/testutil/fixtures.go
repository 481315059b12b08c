package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_cart"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// NewTestCart builds a cart with one line per quantity given.
func NewTestCart(shopDomain string, quantities ...int) *domain.Cart {
	now := time.Now().UTC()
	cart := domain.NewCart(shopDomain, now)
	for i, qty := range quantities {
		cart.Add(domain.Item{
			ProductID:    fmt.Sprintf("p%d", i+1),
			VariantID:    fmt.Sprintf("v%d", i+1),
			Quantity:     qty,
			Title:        "Test Product",
			Price:        money.MustParse("10.00"),
			CurrencyCode: "USD",
			AddedAt:      now,
		})
	}
	return cart
}

// InsertCartRecord writes a cart_records row directly.
func InsertCartRecord(t *testing.T, client *spanner.Client, key string, cart *domain.Cart, version int64) {
	t.Helper()

	model := m_cart.NewModel()
	data := &m_cart.Data{
		StorageKey: key,
		CartID:     cart.ID,
		ShopDomain: cart.ShopDomain,
		Payload:    spanner.NullJSON{Value: m_cart.FromCart(cart), Valid: true},
		Version:    version,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to insert cart record")
}

// InsertRawCartRecord writes a row with an arbitrary JSON payload.
func InsertRawCartRecord(t *testing.T, client *spanner.Client, key string, payload any, version int64) {
	t.Helper()

	model := m_cart.NewModel()
	data := &m_cart.Data{
		StorageKey: key,
		CartID:     uuid.New().String(),
		ShopDomain: "shop.example.com",
		Payload:    spanner.NullJSON{Value: payload, Valid: true},
		Version:    version,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to insert raw cart record")
}

// CartRecordVersion reads the version column of a record.
func CartRecordVersion(t *testing.T, client *spanner.Client, key string) int64 {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_cart.TableName, spanner.Key{key}, []string{m_cart.Version})
	require.NoError(t, err, "cart record not found: %s", key)

	var version int64
	require.NoError(t, row.Columns(&version))
	return version
}

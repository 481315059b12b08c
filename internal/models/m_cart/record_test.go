package m_cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

func validRecord() *Record {
	return &Record{
		SchemaVersion: SchemaVersion,
		CartID:        "cart-1",
		ShopDomain:    "shop.example.com",
		Items: []Item{
			{ProductID: "p1", VariantID: "v1", Quantity: 2, Title: "Lip Tint", Price: "12.50", CurrencyCode: "USD"},
			{ProductID: "p1", VariantID: "v2", Quantity: 1, Title: "Lip Tint", Price: "15.00", CurrencyCode: "USD"},
		},
	}
}

func TestRecord_Validate(t *testing.T) {
	require.NoError(t, validRecord().Validate())

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"unknown schema", func(r *Record) { r.SchemaVersion = 99 }},
		{"missing cart id", func(r *Record) { r.CartID = "" }},
		{"missing product id", func(r *Record) { r.Items[0].ProductID = "" }},
		{"missing variant id", func(r *Record) { r.Items[1].VariantID = "" }},
		{"zero quantity", func(r *Record) { r.Items[0].Quantity = 0 }},
		{"unparseable price", func(r *Record) { r.Items[0].Price = "twelve" }},
		{"negative price", func(r *Record) { r.Items[0].Price = "-1" }},
		{"duplicate line", func(r *Record) { r.Items[1].VariantID = "v1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)
			assert.ErrorIs(t, r.Validate(), domain.ErrCorruptRecord)

			_, err := r.ToCart()
			assert.ErrorIs(t, err, domain.ErrCorruptRecord)
		})
	}
}

func TestRecord_CartConversion(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cart := &domain.Cart{
		ID:         "cart-1",
		ShopDomain: "shop.example.com",
		UpdatedAt:  added,
		Items: []domain.Item{{
			ProductID:    "p1",
			VariantID:    "v1",
			Quantity:     3,
			Handle:       "lip-tint",
			Title:        "Lip Tint",
			VariantTitle: "S / Red",
			Price:        money.MustParse("12.50"),
			CurrencyCode: "USD",
			ImageURL:     "https://cdn/lip.jpg",
			ImageAlt:     "Lip tint swatch",
			AddedAt:      added,
		}},
	}

	rec := FromCart(cart)
	assert.Equal(t, SchemaVersion, rec.SchemaVersion)
	assert.Equal(t, "12.50", rec.Items[0].Price)

	back, err := rec.ToCart()
	require.NoError(t, err)
	assert.Equal(t, cart.ID, back.ID)
	assert.Equal(t, cart.ShopDomain, back.ShopDomain)
	require.Len(t, back.Items, 1)
	assert.True(t, cart.Items[0].Price.Equals(back.Items[0].Price))
	back.Items[0].Price = cart.Items[0].Price
	assert.Equal(t, cart.Items, back.Items)
}

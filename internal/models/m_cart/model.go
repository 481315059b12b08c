package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the cart_records table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns read back by Load, in scan order.
func (m *Model) Columns() []string {
	return []string{StorageKey, CartID, ShopDomain, Payload, Version, UpdatedAt}
}

// InsertMut creates a Spanner mutation for the first save of a record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{StorageKey, CartID, ShopDomain, Payload, Version, UpdatedAt},
		[]interface{}{
			data.StorageKey,
			data.CartID,
			data.ShopDomain,
			data.Payload,
			data.Version,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation overwriting an existing record.
func (m *Model) UpdateMut(data *Data) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{StorageKey, CartID, ShopDomain, Payload, Version, UpdatedAt},
		[]interface{}{
			data.StorageKey,
			data.CartID,
			data.ShopDomain,
			data.Payload,
			data.Version,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a record.
func (m *Model) DeleteMut(storageKey string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{storageKey})
}

package m_cart

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the cart_records table.
type Data struct {
	StorageKey string
	CartID     string
	ShopDomain string
	Payload    spanner.NullJSON // Record
	Version    int64
	UpdatedAt  time.Time
}

package m_cart

// Field name constants for the cart_records table.
const (
	TableName = "cart_records"

	StorageKey = "storage_key"
	CartID     = "cart_id"
	ShopDomain = "shop_domain"
	Payload    = "payload"
	Version    = "version"
	UpdatedAt  = "updated_at"
)

// SchemaVersion of the persisted JSON record.
const SchemaVersion = 1

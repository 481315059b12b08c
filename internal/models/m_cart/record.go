package m_cart

import (
	"fmt"
	"time"

	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// Record is the persisted JSON shape of a cart. Prices are decimal strings.
type Record struct {
	SchemaVersion int       `json:"schema_version"`
	CartID        string    `json:"cart_id"`
	ShopDomain    string    `json:"shop_domain"`
	Items         []Item    `json:"items"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item is one persisted line.
type Item struct {
	ProductID    string    `json:"product_id"`
	VariantID    string    `json:"variant_id"`
	Quantity     int       `json:"quantity"`
	Handle       string    `json:"handle,omitempty"`
	Title        string    `json:"title"`
	VariantTitle string    `json:"variant_title,omitempty"`
	Price        string    `json:"price"`
	CurrencyCode string    `json:"currency_code,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImageAlt     string    `json:"image_alt,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// FromCart converts a cart to its record.
func FromCart(cart *domain.Cart) *Record {
	rec := &Record{
		SchemaVersion: SchemaVersion,
		CartID:        cart.ID,
		ShopDomain:    cart.ShopDomain,
		Items:         make([]Item, 0, len(cart.Items)),
		UpdatedAt:     cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		rec.Items = append(rec.Items, Item{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			Handle:       item.Handle,
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Price:        item.Price.Exact(),
			CurrencyCode: item.CurrencyCode,
			ImageURL:     item.ImageURL,
			ImageAlt:     item.ImageAlt,
			AddedAt:      item.AddedAt,
		})
	}
	return rec
}

// Validate checks the record shape before it is accepted as a cart.
func (r *Record) Validate() error {
	if r.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %d", domain.ErrCorruptRecord, r.SchemaVersion)
	}
	if r.CartID == "" {
		return fmt.Errorf("%w: missing cart id", domain.ErrCorruptRecord)
	}

	seen := make(map[[2]string]bool, len(r.Items))
	for i, item := range r.Items {
		if item.ProductID == "" || item.VariantID == "" {
			return fmt.Errorf("%w: item %d has no product or variant id", domain.ErrCorruptRecord, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", domain.ErrCorruptRecord, i, item.Quantity)
		}
		price, err := money.Parse(item.Price)
		if err != nil {
			return fmt.Errorf("%w: item %d price: %v", domain.ErrCorruptRecord, i, err)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: item %d has negative price", domain.ErrCorruptRecord, i)
		}
		key := [2]string{item.ProductID, item.VariantID}
		if seen[key] {
			return fmt.Errorf("%w: duplicate line %s/%s", domain.ErrCorruptRecord, item.ProductID, item.VariantID)
		}
		seen[key] = true
	}
	return nil
}

// ToCart validates the record and converts it to a cart.
func (r *Record) ToCart() (*domain.Cart, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		ID:         r.CartID,
		ShopDomain: r.ShopDomain,
		Items:      make([]domain.Item, 0, len(r.Items)),
		UpdatedAt:  r.UpdatedAt,
	}
	for _, item := range r.Items {
		cart.Items = append(cart.Items, domain.Item{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			Handle:       item.Handle,
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Price:        money.MustParse(item.Price),
			CurrencyCode: item.CurrencyCode,
			ImageURL:     item.ImageURL,
			ImageAlt:     item.ImageAlt,
			AddedAt:      item.AddedAt,
		})
	}
	return cart, nil
}

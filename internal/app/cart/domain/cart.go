package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	catalog "github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// Item is one product+variant line. Display fields are a snapshot taken when
// the line was first added so the cart renders without refetching.
type Item struct {
	ProductID    string
	VariantID    string
	Quantity     int
	Handle       string
	Title        string
	VariantTitle string
	Price        *money.Money
	CurrencyCode string
	ImageURL     string
	ImageAlt     string
	AddedAt      time.Time
}

// NewItem snapshots a variant of product as a line with the given quantity.
func NewItem(product *catalog.Product, variant *catalog.Variant, quantity int, now time.Time) (Item, error) {
	if product == nil || variant == nil || product.ID == "" || variant.ID == "" {
		return Item{}, ErrInvalidItem
	}
	if _, ok := product.VariantByID(variant.ID); !ok {
		return Item{}, fmt.Errorf("%w: variant %s does not belong to product %s", ErrInvalidItem, variant.ID, product.ID)
	}
	if !variant.Available {
		return Item{}, ErrVariantUnavailable
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}

	price := money.Zero()
	if variant.Price != nil {
		price = variant.Price.Copy()
	}

	item := Item{
		ProductID:    product.ID,
		VariantID:    variant.ID,
		Quantity:     quantity,
		Handle:       product.Handle,
		Title:        product.Title,
		VariantTitle: variant.Title,
		Price:        price,
		CurrencyCode: variant.CurrencyCode,
		AddedAt:      now,
	}
	if img, ok := product.FeaturedImage(); ok {
		item.ImageURL = img.URL
		item.ImageAlt = img.AltText
	}
	return item, nil
}

// Subtotal is price times quantity.
func (i Item) Subtotal() *money.Money {
	return i.Price.Times(i.Quantity)
}

func (i Item) matches(productID, variantID string) bool {
	return i.ProductID == productID && i.VariantID == variantID
}

// Cart is an ordered list of line items scoped to one shop.
// Insertion order is display order.
type Cart struct {
	ID         string
	ShopDomain string
	Items      []Item
	UpdatedAt  time.Time
}

// NewCart creates an empty cart for shopDomain.
func NewCart(shopDomain string, now time.Time) *Cart {
	return &Cart{
		ID:         uuid.New().String(),
		ShopDomain: shopDomain,
		Items:      []Item{},
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = make([]Item, len(c.Items))
	for idx, item := range c.Items {
		item.Price = item.Price.Copy()
		out.Items[idx] = item
	}
	return &out
}

// Find returns the line for productID+variantID.
func (c *Cart) Find(productID, variantID string) (Item, bool) {
	if idx := c.indexOf(productID, variantID); idx >= 0 {
		return c.Items[idx], true
	}
	return Item{}, false
}

// Add merges item into the cart. An existing line for the same product and
// variant gains item.Quantity and keeps its original snapshot.
func (c *Cart) Add(item Item) {
	if idx := c.indexOf(item.ProductID, item.VariantID); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets a line's quantity; n <= 0 removes the line. It reports
// whether the cart changed.
func (c *Cart) SetQuantity(productID, variantID string, n int) bool {
	idx := c.indexOf(productID, variantID)
	if idx < 0 {
		return false
	}
	if n <= 0 {
		c.removeAt(idx)
		return true
	}
	if c.Items[idx].Quantity == n {
		return false
	}
	c.Items[idx].Quantity = n
	return true
}

// Remove deletes a line. Absent lines are a no-op.
func (c *Cart) Remove(productID, variantID string) bool {
	idx := c.indexOf(productID, variantID)
	if idx < 0 {
		return false
	}
	c.removeAt(idx)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() bool {
	if len(c.Items) == 0 {
		return false
	}
	c.Items = []Item{}
	return true
}

// TotalItems sums quantities across lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums line subtotals.
func (c *Cart) TotalPrice() *money.Money {
	total := money.Zero()
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CurrencyCode of the first line, or empty for an empty cart.
func (c *Cart) CurrencyCode() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].CurrencyCode
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID, variantID string) int {
	for idx, item := range c.Items {
		if item.matches(productID, variantID) {
			return idx
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Items = append(c.Items[:idx:idx], c.Items[idx+1:]...)
}

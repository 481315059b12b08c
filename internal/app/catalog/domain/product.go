package domain

import (
	"strings"

	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// VariantTitleDelimiter joins option axes in a composite variant title ("S / Red").
const VariantTitleDelimiter = " / "

// DefaultVariantTitle is the title the backend gives the single variant of a
// product that has no options.
const DefaultVariantTitle = "Default Title"

// Image is one product image.
type Image struct {
	ID      string
	URL     string
	AltText string
}

// Variant is one purchasable option combination of a product.
type Variant struct {
	ID           string
	Title        string
	Price        *money.Money
	CurrencyCode string
	Available    bool
}

// OptionValues splits the composite title into positional axis values.
// A default-titled variant has no option values.
func (v *Variant) OptionValues() []string {
	if v.Title == "" || v.Title == DefaultVariantTitle {
		return nil
	}
	parts := strings.Split(v.Title, VariantTitleDelimiter)
	values := make([]string, len(parts))
	for i, part := range parts {
		values[i] = strings.TrimSpace(part)
	}
	return values
}

// Product is a read-only projection of a remote catalog product.
// It is re-created wholesale on every fetch and never mutated afterwards.
type Product struct {
	ID          string
	Handle      string
	Title       string
	Description string
	ProductType string
	Vendor      string
	Images      []Image
	Variants    []Variant

	// MinPrice is the backend's lowest variant price, used when the
	// product was fetched without variants.
	MinPrice         *money.Money
	MinPriceCurrency string
}

// DefaultVariant returns the first variant, which is the initial selection
// on a product page.
func (p *Product) DefaultVariant() (*Variant, bool) {
	if len(p.Variants) == 0 {
		return nil, false
	}
	return &p.Variants[0], true
}

// Price returns the default variant's price, falling back to MinPrice.
func (p *Product) Price() *money.Money {
	if v, ok := p.DefaultVariant(); ok && v.Price != nil {
		return v.Price.Copy()
	}
	if p.MinPrice != nil {
		return p.MinPrice.Copy()
	}
	return money.Zero()
}

// CurrencyCode returns the currency of Price.
func (p *Product) CurrencyCode() string {
	if v, ok := p.DefaultVariant(); ok && v.CurrencyCode != "" {
		return v.CurrencyCode
	}
	return p.MinPriceCurrency
}

// FeaturedImage returns the first image, if any.
func (p *Product) FeaturedImage() (Image, bool) {
	if len(p.Images) == 0 {
		return Image{}, false
	}
	return p.Images[0], true
}

// VariantByID finds a variant of this product.
func (p *Product) VariantByID(variantID string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// IsAvailable reports whether any variant can be purchased.
func (p *Product) IsAvailable() bool {
	for _, v := range p.Variants {
		if v.Available {
			return true
		}
	}
	return false
}

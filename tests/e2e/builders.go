package e2e

import (
	"fmt"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// ProductBuilder helps create catalog products for tests with a fluent interface
type ProductBuilder struct {
	id          string
	handle      string
	title       string
	productType string
	vendor      string
	variants    []domain.Variant
}

// NewProductBuilder creates a new builder with default values
func NewProductBuilder(handle string) *ProductBuilder {
	return &ProductBuilder{
		id:          "gid://shop/Product/" + handle,
		handle:      handle,
		title:       "Test Product",
		productType: "lip",
		vendor:      "Acme",
	}
}

// WithTitle sets the product title
func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.title = title
	return b
}

// WithType sets the product type
func (b *ProductBuilder) WithType(productType string) *ProductBuilder {
	b.productType = productType
	return b
}

// WithVendor sets the vendor
func (b *ProductBuilder) WithVendor(vendor string) *ProductBuilder {
	b.vendor = vendor
	return b
}

// WithVariant adds an available variant titled by its option values
func (b *ProductBuilder) WithVariant(title, price string) *ProductBuilder {
	return b.addVariant(title, price, true)
}

// WithSoldOutVariant adds a variant that cannot be purchased
func (b *ProductBuilder) WithSoldOutVariant(title, price string) *ProductBuilder {
	return b.addVariant(title, price, false)
}

func (b *ProductBuilder) addVariant(title, price string, available bool) *ProductBuilder {
	b.variants = append(b.variants, domain.Variant{
		ID:           fmt.Sprintf("%s/v%d", b.id, len(b.variants)+1),
		Title:        title,
		Price:        money.MustParse(price),
		CurrencyCode: "USD",
		Available:    available,
	})
	return b
}

// Build creates the product. Without variants it gets a single default one.
func (b *ProductBuilder) Build() domain.Product {
	if len(b.variants) == 0 {
		b.WithVariant(domain.DefaultVariantTitle, "10.00")
	}
	variants := append([]domain.Variant(nil), b.variants...)
	return domain.Product{
		ID:               b.id,
		Handle:           b.handle,
		Title:            b.title,
		ProductType:      b.productType,
		Vendor:           b.vendor,
		Images:           []domain.Image{{ID: b.id + "/img", URL: "https://cdn.example.com/" + b.handle + ".jpg"}},
		Variants:         variants,
		MinPrice:         variants[0].Price.Copy(),
		MinPriceCurrency: "USD",
	}
}

// catalogFixture is a small catalog spanning two types and two vendors.
func catalogFixture() []domain.Product {
	return []domain.Product{
		NewProductBuilder("velvet-lip").WithTitle("Velvet Lip").WithType("lip").WithVendor("Acme").
			WithVariant("S / Red", "12.00").
			WithSoldOutVariant("M / Red", "14.00").
			WithVariant("S / Blue", "12.00").
			Build(),
		NewProductBuilder("red-lip-oil").WithTitle("Red Lip Oil").WithType("lip").WithVendor("Glow").
			WithVariant(domain.DefaultVariantTitle, "9.50").Build(),
		NewProductBuilder("brow-gel").WithTitle("Brow Gel").WithType("brow").WithVendor("Acme").
			WithVariant(domain.DefaultVariantTitle, "18.00").Build(),
		NewProductBuilder("cheek-tint").WithTitle("Cheek Tint").WithType("cheek").WithVendor("Glow").
			WithVariant(domain.DefaultVariantTitle, "22.00").Build(),
		NewProductBuilder("argan-balm").WithTitle("Argan Balm").WithType("lip").WithVendor("Glow").
			WithVariant(domain.DefaultVariantTitle, "7.25").Build(),
	}
}

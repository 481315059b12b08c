package repo

import (
	"fmt"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_storefront"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// nodeToProduct converts a wire product to the domain projection.
func nodeToProduct(node *m_storefront.ProductNode) (*domain.Product, error) {
	if node.ID == "" || node.Handle == "" {
		return nil, fmt.Errorf("product is missing id or handle")
	}

	product := &domain.Product{
		ID:          node.ID,
		Handle:      node.Handle,
		Title:       node.Title,
		Description: node.Description,
		ProductType: node.ProductType,
		Vendor:      node.Vendor,
		Images:      []domain.Image{},
		Variants:    []domain.Variant{},
	}

	if node.PriceRange != nil && node.PriceRange.MinVariantPrice != nil {
		minPrice, err := money.Parse(node.PriceRange.MinVariantPrice.Amount)
		if err != nil {
			return nil, fmt.Errorf("product %s price range: %w", node.ID, err)
		}
		product.MinPrice = minPrice
		product.MinPriceCurrency = node.PriceRange.MinVariantPrice.CurrencyCode
	}

	if node.Images != nil {
		for _, edge := range node.Images.Edges {
			img := domain.Image{ID: edge.Node.ID, URL: edge.Node.URL}
			if edge.Node.AltText != nil {
				img.AltText = *edge.Node.AltText
			}
			product.Images = append(product.Images, img)
		}
	}

	if node.Variants != nil {
		for _, edge := range node.Variants.Edges {
			v := edge.Node
			if v.ID == "" {
				return nil, fmt.Errorf("product %s has a variant without id", node.ID)
			}
			if v.Price == nil {
				return nil, fmt.Errorf("variant %s has no price", v.ID)
			}
			price, err := money.Parse(v.Price.Amount)
			if err != nil {
				return nil, fmt.Errorf("variant %s price: %w", v.ID, err)
			}
			product.Variants = append(product.Variants, domain.Variant{
				ID:           v.ID,
				Title:        v.Title,
				Price:        price,
				CurrencyCode: v.Price.CurrencyCode,
				Available:    v.AvailableForSale,
			})
		}
	}

	return product, nil
}

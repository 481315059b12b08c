package http

import (
	cartdomain "github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-core/internal/pkg/money"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Price is a decimal amount with its currency.
type Price struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Variant represents a purchasable option combination.
type Variant struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Price     Price  `json:"price"`
	Available bool   `json:"available"`
}

// Product represents a catalog product in responses.
type Product struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ProductType string    `json:"product_type"`
	Vendor      string    `json:"vendor"`
	Price       Price     `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

// ListProductsResponse is one page of a listing.
type ListProductsResponse struct {
	Products    []Product `json:"products"`
	HasNextPage bool      `json:"has_next_page"`
	EndCursor   string    `json:"end_cursor,omitempty"`
}

// OptionValue is one selectable value of an option axis.
type OptionValue struct {
	Value      string `json:"value"`
	Selected   bool   `json:"selected"`
	Selectable bool   `json:"selectable"`
}

// Option is one option axis.
type Option struct {
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

// ProductViewResponse is a product page with the resolved selection.
type ProductViewResponse struct {
	Product   Product           `json:"product"`
	Options   []Option          `json:"options"`
	Selection map[string]string `json:"selection"`
	Selected  *Variant          `json:"selected_variant"`
}

// FiltersResponse lists the filter choices.
type FiltersResponse struct {
	Categories []string `json:"categories"`
	Vendors    []string `json:"vendors"`
}

// CartItem is one cart line.
type CartItem struct {
	ProductID    string `json:"product_id"`
	VariantID    string `json:"variant_id"`
	Handle       string `json:"handle,omitempty"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title,omitempty"`
	Quantity     int    `json:"quantity"`
	Price        Price  `json:"price"`
	Subtotal     Price  `json:"subtotal"`
	ImageURL     string `json:"image_url,omitempty"`
}

// CartResponse is the whole cart.
type CartResponse struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Total      Price      `json:"total"`
}

// AddItemRequest adds a product by handle. Unset options take the defaults.
type AddItemRequest struct {
	Handle   string            `json:"handle" binding:"required"`
	Options  map[string]string `json:"options"`
	Quantity int               `json:"quantity"`
}

// UpdateItemRequest sets a line's quantity; zero removes the line.
type UpdateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func toPrice(amount *money.Money, currency string) Price {
	return Price{Amount: amount.String(), CurrencyCode: currency}
}

func toVariant(v *domain.Variant) Variant {
	return Variant{
		ID:        v.ID,
		Title:     v.Title,
		Price:     toPrice(v.Price, v.CurrencyCode),
		Available: v.Available,
	}
}

func toProduct(p *domain.Product, withVariants bool) Product {
	out := Product{
		ID:          p.ID,
		Handle:      p.Handle,
		Title:       p.Title,
		Description: p.Description,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Price:       toPrice(p.Price(), p.CurrencyCode()),
	}
	if img, ok := p.FeaturedImage(); ok {
		out.ImageURL = img.URL
	}
	if withVariants {
		for i := range p.Variants {
			out.Variants = append(out.Variants, toVariant(&p.Variants[i]))
		}
	}
	return out
}

func toProducts(products []domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, toProduct(&products[i], false))
	}
	return out
}

func toProductView(view *get_product.ProductView) ProductViewResponse {
	resp := ProductViewResponse{
		Product:   toProduct(view.Product, true),
		Options:   []Option{},
		Selection: map[string]string(view.Selection.Clone()),
	}
	for _, axis := range view.Options.Axes() {
		opt := Option{Name: axis.Name}
		for _, value := range axis.Values {
			opt.Values = append(opt.Values, OptionValue{
				Value:      value,
				Selected:   view.Selection[axis.Name] == value,
				Selectable: view.Options.IsValueSelectable(axis.Name, value, view.Selection),
			})
		}
		resp.Options = append(resp.Options, opt)
	}
	if v, ok := view.Selected(); ok {
		selected := toVariant(v)
		resp.Selected = &selected
	}
	return resp
}

func toCart(cart *cartdomain.Cart) CartResponse {
	resp := CartResponse{
		Items: []CartItem{},
		Total: Price{Amount: "0.00"},
	}
	if cart == nil {
		return resp
	}
	resp.ID = cart.ID
	resp.TotalItems = cart.TotalItems()
	resp.Total = toPrice(cart.TotalPrice(), cart.CurrencyCode())
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, CartItem{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			Handle:       item.Handle,
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			Quantity:     item.Quantity,
			Price:        toPrice(item.Price, item.CurrencyCode),
			Subtotal:     toPrice(item.Subtotal(), item.CurrencyCode),
			ImageURL:     item.ImageURL,
		})
	}
	return resp
}

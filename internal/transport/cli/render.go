package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	cart "github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/get_product"
)

func price(amount fmt.Stringer, currency string) string {
	if currency == "" {
		return amount.String()
	}
	return amount.String() + " " + currency
}

func renderProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tTITLE\tTYPE\tVENDOR\tPRICE\t")
	for i := range products {
		p := &products[i]
		status := ""
		if !p.IsAvailable() {
			status = "sold out"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Handle, p.Title, p.ProductType, p.Vendor, price(p.Price(), p.CurrencyCode()), status)
	}
	tw.Flush()
}

func renderProductView(w io.Writer, view *get_product.ProductView) {
	p := view.Product
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "  id:     %s\n", p.ID)
	if p.Vendor != "" {
		fmt.Fprintf(w, "  vendor: %s\n", p.Vendor)
	}
	if p.ProductType != "" {
		fmt.Fprintf(w, "  type:   %s\n", p.ProductType)
	}
	if img, ok := p.FeaturedImage(); ok {
		fmt.Fprintf(w, "  image:  %s\n", img.URL)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}

	for _, axis := range view.Options.Axes() {
		values := make([]string, 0, len(axis.Values))
		for _, v := range axis.Values {
			label := v
			if v == view.Selection[axis.Name] {
				label = "[" + v + "]"
			}
			if !view.Options.IsValueSelectable(axis.Name, v, view.Selection) {
				label += " (unavailable)"
			}
			values = append(values, label)
		}
		fmt.Fprintf(w, "\n%s: %s", axis.Name, strings.Join(values, ", "))
	}
	if len(view.Options.Axes()) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tOPTIONS\tPRICE\tSTATUS\t")
	for i := range p.Variants {
		v := &p.Variants[i]
		status := "available"
		if !v.Available {
			status = "sold out"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", v.ID, v.Title, price(v.Price, v.CurrencyCode), status)
	}
	tw.Flush()

	if v, ok := view.Selected(); ok {
		fmt.Fprintf(w, "\nSelected: %s, %s\n", v.Title, price(v.Price, v.CurrencyCode))
	}
}

func renderList(w io.Writer, values []string) {
	if len(values) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

func renderCart(w io.Writer, c *cart.Cart) {
	if c == nil || c.IsEmpty() {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tVARIANT\tQTY\tPRICE\tSUBTOTAL\tIDS\t")
	for _, item := range c.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s %s\t\n",
			item.Title, item.VariantTitle, item.Quantity,
			price(item.Price, item.CurrencyCode), price(item.Subtotal(), item.CurrencyCode),
			item.ProductID, item.VariantID)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nItems: %d  Total: %s\n", c.TotalItems(), price(c.TotalPrice(), c.CurrencyCode()))
}

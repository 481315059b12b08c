package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_storefront"
)

// FakeStorefront is an httptest Storefront GraphQL backend over a fixed
// product list. It understands the search clauses the client emits, both
// sort keys, and offset cursors.
type FakeStorefront struct {
	Server *httptest.Server
	Token  string

	mu       sync.Mutex
	products []domain.Product
	latency  time.Duration
	queries  []string
}

// NewFakeStorefront starts a backend accepting token. It is closed on test cleanup.
func NewFakeStorefront(t *testing.T, token string, products ...domain.Product) *FakeStorefront {
	t.Helper()

	f := &FakeStorefront{Token: token, products: products}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to use as shop domain.
func (f *FakeStorefront) URL() string {
	return f.Server.URL
}

// SetLatency delays every response.
func (f *FakeStorefront) SetLatency(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latency = d
}

// SetProducts replaces the catalog.
func (f *FakeStorefront) SetProducts(products ...domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
}

// SearchQueries returns the products query strings received, "" for none.
func (f *FakeStorefront) SearchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *FakeStorefront) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(m_storefront.AccessTokenHeader) != f.Token {
		http.Error(w, `{"errors":[{"message":"Unauthorized"}]}`, http.StatusUnauthorized)
		return
	}

	var req m_storefront.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	latency := f.latency
	products := append([]domain.Product(nil), f.products...)
	f.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-r.Context().Done():
			return
		}
	}

	var data map[string]any
	switch {
	case strings.Contains(req.Query, "query ListProducts"):
		data = f.listProducts(products, req.Variables)
	case strings.Contains(req.Query, "query ProductByHandle"):
		data = map[string]any{"product": nil}
		handle, _ := req.Variables[m_storefront.VarHandle].(string)
		for i := range products {
			if products[i].Handle == handle {
				data["product"] = productJSON(&products[i])
			}
		}
	case strings.Contains(req.Query, "query ProductTypes"):
		edges := []any{}
		for _, p := range products {
			edges = append(edges, map[string]any{"node": p.ProductType})
		}
		data = map[string]any{"productTypes": map[string]any{"edges": edges}}
	case strings.Contains(req.Query, "query ProductVendors"):
		data = f.vendors(products, req.Variables)
	default:
		writeJSON(w, map[string]any{"errors": []any{map[string]any{"message": "unknown operation"}}})
		return
	}

	writeJSON(w, map[string]any{"data": data})
}

func (f *FakeStorefront) listProducts(products []domain.Product, vars map[string]any) map[string]any {
	q, hasQuery := vars[m_storefront.VarQuery].(string)
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	if hasQuery {
		products = filterProducts(products, q)
	}

	key, _ := vars[m_storefront.VarSortKey].(string)
	reverse, _ := vars[m_storefront.VarReverse].(bool)
	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		if domain.SortKey(key) == domain.SortPrice && !a.Price().Equals(b.Price()) {
			return a.Price().LessThan(b.Price())
		}
		return a.Title < b.Title
	})
	if reverse {
		for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
			products[i], products[j] = products[j], products[i]
		}
	}

	offset, first := window(vars, len(products))
	edges := []any{}
	for i := offset; i < offset+first && i < len(products); i++ {
		edges = append(edges, map[string]any{"node": productJSON(&products[i])})
	}
	return map[string]any{"products": connection(edges, offset+first, len(products))}
}

func (f *FakeStorefront) vendors(products []domain.Product, vars map[string]any) map[string]any {
	offset, first := window(vars, len(products))
	edges := []any{}
	for i := offset; i < offset+first && i < len(products); i++ {
		edges = append(edges, map[string]any{"node": map[string]any{"vendor": products[i].Vendor}})
	}
	return map[string]any{"products": connection(edges, offset+first, len(products))}
}

func window(vars map[string]any, total int) (offset, first int) {
	if v, ok := vars[m_storefront.VarFirst].(float64); ok {
		first = int(v)
	}
	if after, ok := vars[m_storefront.VarAfter].(string); ok {
		fmt.Sscanf(after, "c%d", &offset)
	}
	if offset > total {
		offset = total
	}
	return offset, first
}

func connection(edges []any, end, total int) map[string]any {
	info := map[string]any{"hasNextPage": false, "endCursor": nil}
	if end < total {
		info = map[string]any{"hasNextPage": true, "endCursor": fmt.Sprintf("c%d", end)}
	}
	return map[string]any{"pageInfo": info, "edges": edges}
}

func productJSON(p *domain.Product) map[string]any {
	images := []any{}
	for _, img := range p.Images {
		images = append(images, map[string]any{"node": map[string]any{"id": img.ID, "url": img.URL, "altText": img.AltText}})
	}
	variants := []any{}
	for _, v := range p.Variants {
		variants = append(variants, map[string]any{"node": map[string]any{
			"id":               v.ID,
			"title":            v.Title,
			"availableForSale": v.Available,
			"price":            map[string]any{"amount": v.Price.String(), "currencyCode": v.CurrencyCode},
		}})
	}
	return map[string]any{
		"id":          p.ID,
		"handle":      p.Handle,
		"title":       p.Title,
		"description": p.Description,
		"productType": p.ProductType,
		"vendor":      p.Vendor,
		"priceRange": map[string]any{"minVariantPrice": map[string]any{
			"amount": p.Price().String(), "currencyCode": p.CurrencyCode(),
		}},
		"images":   map[string]any{"edges": images},
		"variants": map[string]any{"edges": variants},
	}
}

// filterProducts applies space-separated field:value clauses. A value
// wrapped in * matches as a substring; all matching is case-insensitive.
func filterProducts(products []domain.Product, q string) []domain.Product {
	var out []domain.Product
	clauses := splitClauses(q)
	for _, p := range products {
		ok := true
		for _, c := range clauses {
			field, value, _ := strings.Cut(c, ":")
			value = strings.ReplaceAll(strings.Trim(value, `"`), `\"`, `"`)
			var target string
			switch field {
			case "title":
				target = p.Title
			case "product_type":
				target = p.ProductType
			case "vendor":
				target = p.Vendor
			}
			if !matchValue(target, value) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

func matchValue(target, value string) bool {
	target, value = strings.ToLower(target), strings.ToLower(value)
	if strings.HasPrefix(value, "*") && strings.HasSuffix(value, "*") && len(value) >= 2 {
		return strings.Contains(target, strings.Trim(value, "*"))
	}
	return target == value
}

func splitClauses(q string) []string {
	var clauses []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(q); i++ {
		ch := q[i]
		switch {
		case ch == '\\' && i+1 < len(q):
			cur.WriteByte(ch)
			i++
			cur.WriteByte(q[i])
		case ch == '"':
			inQuote = !inQuote
			cur.WriteByte(ch)
		case ch == ' ' && !inQuote:
			if cur.Len() > 0 {
				clauses = append(clauses, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(ch)
		}
	}
	if cur.Len() > 0 {
		clauses = append(clauses, cur.String())
	}
	return clauses
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

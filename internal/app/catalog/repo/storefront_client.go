package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_storefront"
)

const (
	defaultPageSize   = 12
	maxPageSize       = 250
	maxResponseBytes  = 10 << 20
	maxVendorPages    = 20
	defaultAPIVersion = "2024-01"
)

// StorefrontConfig configures the Storefront API client.
type StorefrontConfig struct {
	ShopDomain  string // "shop.myshopify.com", or a full base URL in tests
	AccessToken string
	APIVersion  string
	Timeout     time.Duration // per request; zero means no client-side deadline
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// StorefrontClient implements CatalogGateway over the Storefront GraphQL API.
type StorefrontClient struct {
	endpoint   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewStorefrontClient creates a new CatalogGateway implementation.
func NewStorefrontClient(cfg StorefrontConfig) (contracts.CatalogGateway, error) {
	return newStorefrontClient(cfg)
}

func newStorefrontClient(cfg StorefrontConfig) (*StorefrontClient, error) {
	domainName := strings.TrimRight(strings.TrimSpace(cfg.ShopDomain), "/")
	if domainName == "" {
		return nil, fmt.Errorf("shop domain is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	base := domainName
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &StorefrontClient{
		endpoint:   fmt.Sprintf("%s/api/%s/graphql.json", base, version),
		token:      cfg.AccessToken,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		logger:     logger.With("component", "storefront_client"),
	}, nil
}

// ListProducts retrieves one page of products.
func (c *StorefrontClient) ListProducts(ctx context.Context, req contracts.ListRequest) (*domain.Page, error) {
	const op = "ListProducts"

	first := req.First
	if first <= 0 {
		first = defaultPageSize
	}
	if first > maxPageSize {
		first = maxPageSize
	}

	vars := map[string]any{
		m_storefront.VarFirst:   first,
		m_storefront.VarReverse: req.Reverse,
	}
	if req.SortKey != "" {
		vars[m_storefront.VarSortKey] = string(req.SortKey)
	}
	if req.After != "" {
		vars[m_storefront.VarAfter] = req.After
	}
	if req.HasQuery {
		vars[m_storefront.VarQuery] = req.Query
	}

	data, err := execute[m_storefront.ProductsData](ctx, c, op, m_storefront.ListProductsQuery, vars)
	if err != nil {
		return nil, err
	}
	if data.Products == nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New("missing products connection"))
	}

	page := &domain.Page{
		Products: make([]domain.Product, 0, len(data.Products.Edges)),
		PageInfo: toPageInfo(data.Products.PageInfo),
	}
	for _, edge := range data.Products.Edges {
		product, err := nodeToProduct(&edge.Node)
		if err != nil {
			return nil, domain.NewCatalogError(op, domain.ErrProtocol, err)
		}
		page.Products = append(page.Products, *product)
	}

	if page.PageInfo.HasNextPage && page.PageInfo.EndCursor == "" {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New("next page advertised without cursor"))
	}

	return page, nil
}

// GetProductByHandle retrieves a single product.
func (c *StorefrontClient) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	const op = "GetProductByHandle"

	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, domain.NewCatalogError(op, domain.ErrProductNotFound, nil)
	}

	data, err := execute[m_storefront.ProductData](ctx, c, op, m_storefront.ProductByHandleQuery, map[string]any{
		m_storefront.VarHandle: handle,
	})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.NewCatalogError(op, domain.ErrProductNotFound, fmt.Errorf("handle %q", handle))
	}

	product, err := nodeToProduct(data.Product)
	if err != nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, err)
	}
	return product, nil
}

// ListProductTypes retrieves the distinct product types.
func (c *StorefrontClient) ListProductTypes(ctx context.Context) ([]string, error) {
	const op = "ListProductTypes"

	data, err := execute[m_storefront.ProductTypesData](ctx, c, op, m_storefront.ProductTypesQuery, map[string]any{
		m_storefront.VarFirst: maxPageSize,
	})
	if err != nil {
		return nil, err
	}
	if data.ProductTypes == nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New("missing productTypes connection"))
	}

	values := make([]string, 0, len(data.ProductTypes.Edges))
	for _, edge := range data.ProductTypes.Edges {
		values = append(values, edge.Node)
	}
	return distinctSorted(values), nil
}

// ListVendors retrieves the distinct vendors by paging through products.
func (c *StorefrontClient) ListVendors(ctx context.Context) ([]string, error) {
	const op = "ListVendors"

	var values []string
	after := ""
	for page := 0; page < maxVendorPages; page++ {
		vars := map[string]any{m_storefront.VarFirst: maxPageSize}
		if after != "" {
			vars[m_storefront.VarAfter] = after
		}

		data, err := execute[m_storefront.VendorsData](ctx, c, op, m_storefront.ProductVendorsQuery, vars)
		if err != nil {
			return nil, err
		}
		if data.Products == nil {
			return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New("missing products connection"))
		}

		for _, edge := range data.Products.Edges {
			values = append(values, edge.Node.Vendor)
		}

		info := toPageInfo(data.Products.PageInfo)
		if !info.HasNextPage || info.EndCursor == "" {
			return distinctSorted(values), nil
		}
		after = info.EndCursor
	}

	c.logger.Warn("vendor scan truncated", "pages", maxVendorPages)
	return distinctSorted(values), nil
}

// execute posts one GraphQL document and decodes its data into T.
func execute[T any](ctx context.Context, c *StorefrontClient, op, document string, vars map[string]any) (*T, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(m_storefront.Request{Query: document, Variables: vars})
	if err != nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewCatalogError(op, domain.ErrNetwork, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(m_storefront.AccessTokenHeader, c.token)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, op, err)
	}

	c.logger.Debug("storefront request",
		"op", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := domain.ErrProtocol
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			kind = domain.ErrNetwork
		}
		return nil, domain.NewCatalogError(op, kind, fmt.Errorf("http status %d", resp.StatusCode))
	}

	var envelope m_storefront.Response[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, fmt.Errorf("failed to decode response: %w", err))
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New(strings.Join(messages, "; ")))
	}

	if envelope.Data == nil {
		return nil, domain.NewCatalogError(op, domain.ErrProtocol, errors.New("response has no data"))
	}

	return envelope.Data, nil
}

// transportError classifies a failed round trip. A context deadline, ours or
// the caller's, is a timeout.
func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewCatalogError(op, domain.ErrTimeout, err)
	}
	return domain.NewCatalogError(op, domain.ErrNetwork, err)
}

func toPageInfo(info m_storefront.PageInfo) domain.PageInfo {
	out := domain.PageInfo{HasNextPage: info.HasNextPage}
	if info.EndCursor != nil {
		out.EndCursor = *info.EndCursor
	}
	return out
}

// distinctSorted drops blanks and duplicates and sorts lexicographically so the
// order is stable across calls regardless of backend ordering.
func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	cartcontracts "github.com/light-bringer/storefront-core/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	cartrepo "github.com/light-bringer/storefront-core/internal/app/cart/repo"
	"github.com/light-bringer/storefront-core/internal/app/cart/store"
	"github.com/light-bringer/storefront-core/internal/app/cart/usecases/add_to_cart"
	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/featured"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/list_filters"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/list_products"
	catalogrepo "github.com/light-bringer/storefront-core/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-core/internal/config"
	"github.com/light-bringer/storefront-core/internal/pkg/clock"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config        config.Config
	Logger        *slog.Logger
	SpannerClient *spanner.Client // nil unless CART_STORAGE=spanner

	Gateway contracts.CatalogGateway
	Cart    *store.Store

	GetProduct  *get_product.Query
	ListFilters *list_filters.Query
	Featured    *featured.Query
	AddToCart   *add_to_cart.Interactor
}

// NewServiceOptions creates and wires up all application dependencies and
// brings the cart store to its ready state.
func NewServiceOptions(ctx context.Context, cfg config.Config, log *slog.Logger) (*ServiceOptions, error) {
	// 1. Create the catalog gateway
	gateway, err := catalogrepo.NewStorefrontClient(catalogrepo.StorefrontConfig{
		ShopDomain:  cfg.ShopDomain,
		AccessToken: cfg.AccessToken,
		APIVersion:  cfg.APIVersion,
		Timeout:     cfg.Timeout,
		Logger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storefront client: %w", err)
	}

	// 2. Create cart storage
	var spannerClient *spanner.Client
	var storage cartcontracts.CartStorage
	switch cfg.CartStorage {
	case config.StorageSpanner:
		spannerClient, err = spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		storage = cartrepo.NewSpannerStorage(spannerClient, cfg.StorageKey)
	default:
		storage, err = cartrepo.NewFileStorage(cfg.StorageDir, cfg.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create cart storage: %w", err)
		}
	}

	opts, err := Wire(ctx, cfg, log, gateway, storage)
	if err != nil {
		if spannerClient != nil {
			spannerClient.Close()
		}
		return nil, err
	}
	opts.SpannerClient = spannerClient
	return opts, nil
}

// Wire builds the application over the given gateway and storage.
func Wire(ctx context.Context, cfg config.Config, log *slog.Logger, gateway contracts.CatalogGateway, storage cartcontracts.CartStorage) (*ServiceOptions, error) {
	if log == nil {
		log = slog.Default()
	}

	// 1. Create the cart store and run its startup sequence
	cartStore := store.NewStore(storage, clock.NewRealClock(), log)
	if err := cartStore.Init(domain.Credentials{ShopDomain: cfg.ShopDomain, AccessToken: cfg.AccessToken}); err != nil {
		return nil, fmt.Errorf("failed to initialize cart: %w", err)
	}
	if err := cartStore.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to rehydrate cart: %w", err)
	}

	// 2. Create queries and use cases
	return &ServiceOptions{
		Config:      cfg,
		Logger:      log,
		Gateway:     gateway,
		Cart:        cartStore,
		GetProduct:  get_product.NewQuery(gateway),
		ListFilters: list_filters.NewQuery(gateway),
		Featured:    featured.NewQuery(gateway, featured.DefaultCount),
		AddToCart:   add_to_cart.NewInteractor(gateway, cartStore),
	}, nil
}

// NewListing starts a product listing session.
func (s *ServiceOptions) NewListing(pageSize int) *list_products.Session {
	if pageSize <= 0 {
		pageSize = s.Config.PageSize
	}
	return list_products.NewSession(s.Gateway, pageSize)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}

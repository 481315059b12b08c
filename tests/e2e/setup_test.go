package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/cart/contracts"
	cartrepo "github.com/light-bringer/storefront-core/internal/app/cart/repo"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	catalogrepo "github.com/light-bringer/storefront-core/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-core/internal/config"
	"github.com/light-bringer/storefront-core/internal/pkg/logger"
	"github.com/light-bringer/storefront-core/internal/services"
	"github.com/light-bringer/storefront-core/tests/testutil"
)

const testToken = "e2e-storefront-token"

// Suite holds a wired application over a fake storefront backend.
type Suite struct {
	Backend *testutil.FakeStorefront
	Config  config.Config
	Storage contracts.CartStorage
	App     *services.ServiceOptions
}

// setupTest wires the application against a fake backend serving products.
func setupTest(t *testing.T, products ...domain.Product) *Suite {
	t.Helper()

	if len(products) == 0 {
		products = catalogFixture()
	}
	backend := testutil.NewFakeStorefront(t, testToken, products...)

	cfg := config.Config{
		AppEnv:      "test",
		ShopDomain:  backend.URL(),
		AccessToken: testToken,
		APIVersion:  "2024-01",
		Timeout:     2 * time.Second,
		PageSize:    2,
		CartStorage: config.StorageFile,
		StorageDir:  t.TempDir(),
		StorageKey:  "cart",
	}
	return wire(t, backend, cfg)
}

// restart wires a fresh application over the same backend and storage
// directory, as a second process launch would.
func (s *Suite) restart(t *testing.T, mutate func(cfg *config.Config)) *Suite {
	t.Helper()

	cfg := s.Config
	if mutate != nil {
		mutate(&cfg)
	}
	return wire(t, s.Backend, cfg)
}

func wire(t *testing.T, backend *testutil.FakeStorefront, cfg config.Config) *Suite {
	t.Helper()

	log := logger.Discard()
	gateway, err := catalogrepo.NewStorefrontClient(catalogrepo.StorefrontConfig{
		ShopDomain:  cfg.ShopDomain,
		AccessToken: cfg.AccessToken,
		APIVersion:  cfg.APIVersion,
		Timeout:     cfg.Timeout,
		Logger:      log,
	})
	require.NoError(t, err)

	storage, err := cartrepo.NewFileStorage(cfg.StorageDir, cfg.StorageKey)
	require.NoError(t, err)

	app, err := services.Wire(ctx(), cfg, log, gateway, storage)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	return &Suite{Backend: backend, Config: cfg, Storage: storage, App: app}
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}

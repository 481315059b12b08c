package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/cart/repo"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/config"
	"github.com/light-bringer/storefront-core/internal/pkg/logger"
	svc "github.com/light-bringer/storefront-core/internal/services"
	"github.com/light-bringer/storefront-core/tests/testutil"
)

func newRunner(t *testing.T, gw *testutil.FakeGateway) (*Runner, *bytes.Buffer) {
	t.Helper()

	cfg := config.Config{
		ShopDomain:  "shop.example.com",
		AccessToken: "tok",
		Timeout:     time.Second,
		PageSize:    2,
		CartStorage: config.StorageFile,
		StorageDir:  t.TempDir(),
		StorageKey:  "cart",
	}
	storage, err := repo.NewFileStorage(cfg.StorageDir, cfg.StorageKey)
	require.NoError(t, err)

	opts, err := svc.Wire(context.Background(), cfg, logger.Discard(), gw, storage)
	require.NoError(t, err)

	var out bytes.Buffer
	return NewRunner(opts, &out), &out
}

func catalogFixture() *testutil.FakeGateway {
	tint := testutil.NewTestProduct("p1", "lip-tint",
		testutil.NewTestVariant("v1", "S / Red", "12.00"),
		testutil.NewTestVariant("v2", "M / Blue", "14.00"),
	)
	products := append([]domain.Product{tint}, testutil.NewTestProducts(4)[1:]...)
	gw := testutil.NewFakeGateway(products...)
	gw.Types = []string{"eye", "lip"}
	gw.Vendors = []string{"Acme"}
	return gw
}

func TestRunner_Usage(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	assert.ErrorIs(t, r.Run(context.Background(), nil), ErrUsage)
	assert.Contains(t, out.String(), "usage: storefront")

	assert.ErrorIs(t, r.Run(context.Background(), []string{"bogus"}), ErrUsage)
}

func TestRunner_Products(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	require.NoError(t, r.Run(context.Background(), []string{"products"}))
	assert.Contains(t, out.String(), "lip-tint")
	assert.Contains(t, out.String(), "More products available")

	out.Reset()
	require.NoError(t, r.Run(context.Background(), []string{"products", "-all"}))
	assert.Contains(t, out.String(), "product-4")
	assert.NotContains(t, out.String(), "More products available")
}

func TestRunner_ProductsQueryEcho(t *testing.T) {
	gw := catalogFixture()
	r, out := newRunner(t, gw)

	require.NoError(t, r.Run(context.Background(), []string{"products", "-search", "red lip", "-sort", "price", "-reverse"}))
	assert.Contains(t, out.String(), `Query: title:"*red lip*"`)

	req := gw.Requests()[0]
	assert.Equal(t, domain.SortPrice, req.SortKey)
	assert.True(t, req.Reverse)
}

func TestRunner_ProductsBadSort(t *testing.T) {
	r, _ := newRunner(t, catalogFixture())
	assert.ErrorIs(t, r.Run(context.Background(), []string{"products", "-sort", "rating"}), ErrUsage)
}

func TestRunner_Product(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	require.NoError(t, r.Run(context.Background(), []string{"product", "lip-tint"}))
	s := out.String()
	assert.Contains(t, s, "size: [S], M (unavailable)", "M only exists in Blue")
	assert.Contains(t, s, "Selected: S / Red, 12.00 USD")
}

func TestRunner_ProductNotFoundShowsFeatured(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	require.NoError(t, r.Run(context.Background(), []string{"product", "missing"}))
	s := out.String()
	assert.Contains(t, s, `"missing" was not found`)
	assert.Contains(t, s, "lip-tint")
}

func TestRunner_Filters(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	require.NoError(t, r.Run(context.Background(), []string{"filters"}))
	assert.Contains(t, out.String(), "Categories:\n  eye\n  lip\n")
	assert.Contains(t, out.String(), "Vendors:\n  Acme\n")
}

func TestRunner_NetworkErrorIsReported(t *testing.T) {
	gw := catalogFixture()
	gw.Err = domain.NewCatalogError("ListProducts", domain.ErrNetwork, nil)
	r, out := newRunner(t, gw)

	err := r.Run(context.Background(), []string{"featured"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Contains(t, out.String(), "Could not reach the store")
}

func TestRunner_Cart(t *testing.T) {
	r, out := newRunner(t, catalogFixture())
	ctx := context.Background()

	require.NoError(t, r.Run(ctx, []string{"cart"}))
	assert.Contains(t, out.String(), "Your cart is empty.")

	out.Reset()
	require.NoError(t, r.Run(ctx, []string{"cart", "add", "lip-tint", "-qty", "2"}))
	assert.Contains(t, out.String(), "Added 2 x Product lip-tint (S / Red)")
	assert.Contains(t, out.String(), "Items: 2  Total: 24.00 USD")

	out.Reset()
	require.NoError(t, r.Run(ctx, []string{"cart", "add", "-size", "M", "-color", "Blue", "lip-tint"}))
	assert.Contains(t, out.String(), "Items: 3  Total: 38.00 USD")

	out.Reset()
	require.NoError(t, r.Run(ctx, []string{"cart", "set", "p1", "v1", "1"}))
	assert.Contains(t, out.String(), "Items: 2  Total: 26.00 USD")

	out.Reset()
	require.NoError(t, r.Run(ctx, []string{"cart", "remove", "p1", "v2"}))
	assert.Contains(t, out.String(), "Items: 1  Total: 12.00 USD")

	out.Reset()
	require.NoError(t, r.Run(ctx, []string{"cart", "clear"}))
	assert.Contains(t, out.String(), "Your cart is empty.")
}

func TestRunner_CartAddInvalidSelection(t *testing.T) {
	r, out := newRunner(t, catalogFixture())

	err := r.Run(context.Background(), []string{"cart", "add", "lip-tint", "-color", "Blue"})
	assert.ErrorIs(t, err, cart.ErrSelectionIncomplete)
	assert.Contains(t, out.String(), "Cannot add to cart")
}

func TestRunner_CartUsage(t *testing.T) {
	r, _ := newRunner(t, catalogFixture())
	ctx := context.Background()

	assert.ErrorIs(t, r.Run(ctx, []string{"cart", "add"}), ErrUsage)
	assert.ErrorIs(t, r.Run(ctx, []string{"cart", "add", "lip-tint", "-qty", "0"}), ErrUsage)
	assert.ErrorIs(t, r.Run(ctx, []string{"cart", "set", "p1", "v1", "x"}), ErrUsage)
	assert.ErrorIs(t, r.Run(ctx, []string{"cart", "remove", "p1"}), ErrUsage)
	assert.ErrorIs(t, r.Run(ctx, []string{"cart", "explode"}), ErrUsage)
}

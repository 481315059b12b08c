package e2e

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/cart/usecases/add_to_cart"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

// TestConcurrentAddToCart tests many goroutines adding the same product.
// Expected: every add lands on one merged line and the stored record agrees.
func TestConcurrentAddToCart(t *testing.T) {
	ctx := context.Background()
	suite := setupTest(t)

	adds := 20
	var wg sync.WaitGroup
	errs := make(chan error, adds)

	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.App.AddToCart.Execute(ctx, &add_to_cart.Request{Handle: "brow-gel"})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items := suite.App.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, adds, items[0].Quantity)
	assert.Equal(t, "360.00", suite.App.Cart.TotalPrice().String())

	stored, err := suite.Storage.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, adds, stored.TotalItems(), "last write must reflect every mutation")
}

// TestReadDuringWrite tests readers observing the cart while it is mutated.
// Expected: readers only ever see whole lines, never a partially applied mutation.
func TestReadDuringWrite(t *testing.T) {
	ctx := context.Background()
	suite := setupTest(t)

	var readerWg sync.WaitGroup
	var writerWg sync.WaitGroup
	stopReading := make(chan struct{})
	inconsistentReads := 0
	var inconsistentMutex sync.Mutex

	// Reader goroutine
	readerWg.Add(1)
	go func() {
		defer readerWg.Done()
		for {
			select {
			case <-stopReading:
				return
			default:
				cart := suite.App.Cart.Cart()
				sum := 0
				for _, item := range cart.Items {
					if item.Quantity < 1 || item.Price == nil {
						inconsistentMutex.Lock()
						inconsistentReads++
						inconsistentMutex.Unlock()
					}
					sum += item.Quantity
				}
				if sum != cart.TotalItems() {
					inconsistentMutex.Lock()
					inconsistentReads++
					inconsistentMutex.Unlock()
				}
				time.Sleep(1 * time.Millisecond) // Small delay between reads
			}
		}
	}()

	// Writer goroutine
	writerWg.Add(1)
	go func() {
		defer writerWg.Done()
		for _, handle := range []string{"argan-balm", "brow-gel", "cheek-tint", "argan-balm", "red-lip-oil"} {
			_, _ = suite.App.AddToCart.Execute(ctx, &add_to_cart.Request{Handle: handle})
			time.Sleep(2 * time.Millisecond)
		}
	}()

	writerWg.Wait()
	close(stopReading)
	readerWg.Wait()

	assert.Equal(t, 0, inconsistentReads, "Should never see inconsistent state during reads")
	assert.Equal(t, 5, suite.App.Cart.TotalItems())
	assert.Len(t, suite.App.Cart.Items(), 4)
}

// TestConcurrentListingApplies tests overlapping filter changes on one listing.
// Expected: the listing settles on the filters of the most recent Apply.
func TestConcurrentListingApplies(t *testing.T) {
	ctx := context.Background()
	suite := setupTest(t)
	suite.Backend.SetLatency(5 * time.Millisecond)

	listing := suite.App.NewListing(10)
	defer listing.Close()

	categories := []string{"lip", "brow", "cheek", "lip", "brow"}
	var wg sync.WaitGroup
	for _, category := range categories {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			_, err := listing.Apply(ctx, domain.Filters{Category: category})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrStaleResponse)
			}
		}(category)
	}
	wg.Wait()

	// Whatever won, the snapshot is internally consistent
	snapshot := listing.Snapshot()
	for _, p := range snapshot.Products {
		assert.Equal(t, snapshot.Filters.Category, p.ProductType)
	}

	result, err := listing.Apply(ctx, domain.Filters{Category: "cheek"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cheek-tint"}, handles(result.Products))
}

func TestNoDataRaces(t *testing.T) {
	ctx := context.Background()
	suite := setupTest(t)

	listing := suite.App.NewListing(0)
	defer listing.Close()

	var wg sync.WaitGroup
	operations := 12

	for i := 0; i < operations; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Mix of read and write operations
			switch idx % 4 {
			case 0:
				_, _ = listing.Apply(ctx, domain.DefaultFilters())
			case 1:
				_, _ = suite.App.AddToCart.Execute(ctx, &add_to_cart.Request{Handle: "cheek-tint"})
			case 2:
				_ = suite.App.Cart.TotalPrice()
				_ = listing.Snapshot()
			case 3:
				_, _ = listing.LoadMore(ctx)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, operations/4, suite.App.Cart.TotalItems())
}

package list_products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/tests/testutil"
)

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSession_ApplyReplaces(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.NewTestProducts(5)...)
	s := NewSession(gw, 2)
	ctx := context.Background()

	res, err := s.Apply(ctx, domain.DefaultFilters())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(res.Products))
	assert.True(t, res.HasMore())

	_, err = s.LoadMore(ctx)
	require.NoError(t, err)

	res, err = s.Apply(ctx, domain.Filters{Search: "red"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(res.Products), "apply starts over")
	assert.Equal(t, "red", res.Filters.Search)

	reqs := gw.Requests()
	last := reqs[len(reqs)-1]
	assert.Empty(t, last.After)
	assert.True(t, last.HasQuery)
	assert.Equal(t, "title:*red*", last.Query)
}

func TestSession_LoadMoreAppendsUntilExhausted(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.NewTestProducts(5)...)
	s := NewSession(gw, 2)
	ctx := context.Background()

	_, err := s.Apply(ctx, domain.DefaultFilters())
	require.NoError(t, err)

	res, err := s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(res.Products))

	res, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(res.Products))
	assert.False(t, res.HasMore())

	_, err = s.LoadMore(ctx)
	assert.ErrorIs(t, err, domain.ErrNoMorePages)

	reqs := gw.Requests()
	assert.Len(t, reqs, 3)
	assert.Equal(t, "c2", reqs[1].After)
	assert.Equal(t, "c4", reqs[2].After)
}

func TestSession_LoadMoreBeforeApply(t *testing.T) {
	s := NewSession(testutil.NewFakeGateway(), 2)
	_, err := s.LoadMore(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoMorePages)
}

func TestSession_LoadAll(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.NewTestProducts(7)...)
	s := NewSession(gw, 3)

	res, err := s.LoadAll(context.Background(), domain.DefaultFilters())
	require.NoError(t, err)
	assert.Len(t, res.Products, 7)
	assert.False(t, res.HasMore())
	assert.Len(t, gw.Requests(), 3)
}

func TestSession_AppendSkipsDuplicates(t *testing.T) {
	all := testutil.NewTestProducts(3)
	gw := testutil.NewFakeGateway()
	gw.ListFunc = func(_ context.Context, req contracts.ListRequest) (*domain.Page, error) {
		if req.After == "" {
			return &domain.Page{Products: all[:2], PageInfo: domain.PageInfo{HasNextPage: true, EndCursor: "x"}}, nil
		}
		// the boundary row repeats on the next page
		return &domain.Page{Products: all[1:3]}, nil
	}
	s := NewSession(gw, 2)

	res, err := s.LoadAll(context.Background(), domain.DefaultFilters())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(res.Products))
}

func TestSession_FailureKeepsState(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.NewTestProducts(4)...)
	s := NewSession(gw, 2)
	ctx := context.Background()

	_, err := s.Apply(ctx, domain.DefaultFilters())
	require.NoError(t, err)

	gw.Err = domain.NewCatalogError("ListProducts", domain.ErrNetwork, errors.New("connection reset"))

	_, err = s.LoadMore(ctx)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	_, err = s.Apply(ctx, domain.Filters{Vendor: "Other"})
	assert.ErrorIs(t, err, domain.ErrNetwork)

	snap := s.Snapshot()
	assert.Equal(t, []string{"p1", "p2"}, ids(snap.Products))
	assert.Equal(t, "c2", snap.PageInfo.EndCursor)
	assert.Equal(t, domain.DefaultFilters(), snap.Filters)
}

// A slow response for filters A that arrives after filters B was applied
// must not overwrite B's results.
func TestSession_StaleApplyIsDiscarded(t *testing.T) {
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	gw := testutil.NewFakeGateway()
	gw.ListFunc = func(ctx context.Context, req contracts.ListRequest) (*domain.Page, error) {
		if req.Query == "vendor:A" {
			close(slowStarted)
			<-slowRelease // ignores cancellation, like a response already on the wire
			return &domain.Page{Products: []domain.Product{testutil.NewTestProduct("a1", "a-1")}}, nil
		}
		return &domain.Page{Products: []domain.Product{testutil.NewTestProduct("b1", "b-1")}}, nil
	}
	s := NewSession(gw, 2)
	ctx := context.Background()

	errA := make(chan error, 1)
	go func() {
		_, err := s.Apply(ctx, domain.Filters{Vendor: "A"})
		errA <- err
	}()
	<-slowStarted

	res, err := s.Apply(ctx, domain.Filters{Vendor: "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, ids(res.Products))

	close(slowRelease)
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, domain.ErrStaleResponse)
	case <-time.After(2 * time.Second):
		t.Fatal("stale apply did not return")
	}

	snap := s.Snapshot()
	assert.Equal(t, []string{"b1"}, ids(snap.Products))
	assert.Equal(t, "B", snap.Filters.Vendor)
}

func TestSession_ApplyCancelsPreviousFetch(t *testing.T) {
	started := make(chan struct{})
	gw := testutil.NewFakeGateway()
	gw.ListFunc = func(ctx context.Context, req contracts.ListRequest) (*domain.Page, error) {
		if req.Query == "vendor:A" {
			close(started)
			<-ctx.Done()
			return nil, domain.NewCatalogError("ListProducts", domain.ErrNetwork, ctx.Err())
		}
		return &domain.Page{}, nil
	}
	s := NewSession(gw, 2)

	errA := make(chan error, 1)
	go func() {
		_, err := s.Apply(context.Background(), domain.Filters{Vendor: "A"})
		errA <- err
	}()
	<-started

	_, err := s.Apply(context.Background(), domain.Filters{Vendor: "B"})
	require.NoError(t, err)

	select {
	case err := <-errA:
		assert.ErrorIs(t, err, domain.ErrStaleResponse)
	case <-time.After(2 * time.Second):
		t.Fatal("previous fetch was not cancelled")
	}
}

func TestSession_StaleLoadMoreIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	products := testutil.NewTestProducts(4)

	gw := testutil.NewFakeGateway()
	gw.ListFunc = func(_ context.Context, req contracts.ListRequest) (*domain.Page, error) {
		if req.After != "" {
			close(started)
			<-release
		}
		return testutil.PageOf(products, req), nil
	}
	s := NewSession(gw, 2)
	ctx := context.Background()

	_, err := s.Apply(ctx, domain.DefaultFilters())
	require.NoError(t, err)

	errMore := make(chan error, 1)
	go func() {
		_, err := s.LoadMore(ctx)
		errMore <- err
	}()
	<-started

	gw.ListFunc = func(_ context.Context, req contracts.ListRequest) (*domain.Page, error) {
		return testutil.PageOf(products[2:], req), nil
	}
	res, err := s.Apply(ctx, domain.Filters{Category: "eye"})
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errMore, domain.ErrStaleResponse)
	assert.Equal(t, ids(res.Products), ids(s.Snapshot().Products))
	assert.Equal(t, []string{"p3", "p4"}, ids(res.Products))
}

func TestSession_Close(t *testing.T) {
	started := make(chan struct{})
	gw := testutil.NewFakeGateway()
	gw.ListFunc = func(ctx context.Context, _ contracts.ListRequest) (*domain.Page, error) {
		close(started)
		<-ctx.Done()
		return nil, domain.NewCatalogError("ListProducts", domain.ErrNetwork, ctx.Err())
	}
	s := NewSession(gw, 2)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Apply(context.Background(), domain.DefaultFilters())
		errc <- err
	}()
	<-started
	s.Close()

	assert.ErrorIs(t, <-errc, domain.ErrStaleResponse)
	assert.Empty(t, s.Snapshot().Products)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.NewTestProducts(2)...)
	s := NewSession(gw, 2)

	res, err := s.Apply(context.Background(), domain.DefaultFilters())
	require.NoError(t, err)
	res.Products[0].ID = "mutated"

	assert.Equal(t, "p1", s.Snapshot().Products[0].ID)
}

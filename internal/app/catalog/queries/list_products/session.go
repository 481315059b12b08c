package list_products

import (
	"context"
	"sync"

	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

const defaultPageSize = 12

// Result is the applied state of a listing.
type Result struct {
	Filters  domain.Filters
	Products []domain.Product
	PageInfo domain.PageInfo
}

// HasMore reports whether LoadMore can make progress.
func (r Result) HasMore() bool {
	return r.PageInfo.HasNextPage && r.PageInfo.EndCursor != ""
}

func (r Result) clone() Result {
	out := r
	out.Products = append([]domain.Product(nil), r.Products...)
	return out
}

// Session accumulates product pages for one listing view.
//
// Every Apply starts a new generation: the previous generation's fetches are
// cancelled and any of their late responses are discarded with
// domain.ErrStaleResponse. A continuation is also discarded when the cursor it
// was issued with is no longer the applied EndCursor.
type Session struct {
	gateway  contracts.CatalogGateway
	pageSize int

	mu        sync.Mutex
	seq       uint64
	gen       context.Context
	genCancel context.CancelFunc
	applied   bool
	state     Result
}

// NewSession creates a listing session. A non-positive page size uses the default.
func NewSession(gateway contracts.CatalogGateway, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	gen, cancel := context.WithCancel(context.Background())
	return &Session{
		gateway:   gateway,
		pageSize:  pageSize,
		gen:       gen,
		genCancel: cancel,
		state:     Result{Filters: domain.DefaultFilters()},
	}
}

// Apply replaces the listing with the first page for filters.
func (s *Session) Apply(ctx context.Context, filters domain.Filters) (Result, error) {
	const op = "Apply"
	filters = filters.Normalize()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.genCancel()
	s.gen, s.genCancel = context.WithCancel(context.Background())
	gen := s.gen
	s.mu.Unlock()

	page, err := s.fetch(ctx, gen, contracts.RequestFor(filters, s.pageSize, ""))

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return Result{}, domain.NewCatalogError(op, domain.ErrStaleResponse, nil)
	}
	if err != nil {
		return Result{}, err
	}

	s.applied = true
	s.state = Result{
		Filters:  filters,
		Products: dedupe(nil, page.Products),
		PageInfo: page.PageInfo,
	}
	return s.state.clone(), nil
}

// LoadMore appends the next page of the applied listing.
func (s *Session) LoadMore(ctx context.Context) (Result, error) {
	const op = "LoadMore"

	s.mu.Lock()
	if !s.applied || !s.state.HasMore() {
		s.mu.Unlock()
		return Result{}, domain.NewCatalogError(op, domain.ErrNoMorePages, nil)
	}
	seq := s.seq
	gen := s.gen
	filters := s.state.Filters
	cursor := s.state.PageInfo.EndCursor
	s.mu.Unlock()

	page, err := s.fetch(ctx, gen, contracts.RequestFor(filters, s.pageSize, cursor))

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.state.PageInfo.EndCursor != cursor {
		return Result{}, domain.NewCatalogError(op, domain.ErrStaleResponse, nil)
	}
	if err != nil {
		return Result{}, err
	}

	s.state.Products = dedupe(s.state.Products, page.Products)
	s.state.PageInfo = page.PageInfo
	return s.state.clone(), nil
}

// LoadAll applies filters and follows the cursor chain to its end.
func (s *Session) LoadAll(ctx context.Context, filters domain.Filters) (Result, error) {
	result, err := s.Apply(ctx, filters)
	if err != nil {
		return Result{}, err
	}
	for result.HasMore() {
		if result, err = s.LoadMore(ctx); err != nil {
			return Result{}, err
		}
	}
	return result, nil
}

// Snapshot returns a copy of the applied state.
func (s *Session) Snapshot() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Close cancels in-flight fetches. Their responses become stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.genCancel()
}

// fetch runs one request bound to both the caller's context and the
// generation it was issued in.
func (s *Session) fetch(ctx, gen context.Context, req contracts.ListRequest) (*domain.Page, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(gen, cancel)
	defer func() {
		stop()
		cancel()
	}()
	return s.gateway.ListProducts(fetchCtx, req)
}

// dedupe appends incoming products not already present by ID.
func dedupe(existing, incoming []domain.Product) []domain.Product {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]domain.Product, 0, len(existing)+len(incoming))
	for _, p := range existing {
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range incoming {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

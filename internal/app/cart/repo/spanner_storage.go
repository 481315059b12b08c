package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-core/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_cart"
	"github.com/light-bringer/storefront-core/internal/pkg/committer"
)

// SpannerStorage keeps the cart record in one cart_records row. Saves are
// guarded by the row's version so two processes sharing a storage key cannot
// silently overwrite each other.
type SpannerStorage struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_cart.Model
	key       string

	mu      sync.Mutex
	version int64 // last version loaded or written; zero means no row
}

// NewSpannerStorage creates a new CartStorage backed by Spanner.
func NewSpannerStorage(client *spanner.Client, key string) contracts.CartStorage {
	return newSpannerStorage(client, key)
}

func newSpannerStorage(client *spanner.Client, key string) *SpannerStorage {
	return &SpannerStorage{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_cart.NewModel(),
		key:       key,
	}
}

// Load reads the record row.
func (s *SpannerStorage) Load(ctx context.Context) (*domain.Cart, error) {
	row, err := s.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{s.key}, s.model.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			s.setVersion(0)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read cart record: %w", domain.ErrStorage, err)
	}

	var data m_cart.Data
	if err := row.Columns(&data.StorageKey, &data.CartID, &data.ShopDomain, &data.Payload, &data.Version, &data.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: failed to parse cart record: %w", domain.ErrStorage, err)
	}
	// The row exists even if its payload is bad; the next save overwrites it.
	s.setVersion(data.Version)

	rec, err := decodePayload(data.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrStorage, domain.ErrCorruptRecord, err)
	}

	cart, err := rec.ToCart()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return cart, nil
}

// Save writes the record, bumping its version.
func (s *SpannerStorage) Save(ctx context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := &m_cart.Data{
		StorageKey: s.key,
		CartID:     cart.ID,
		ShopDomain: cart.ShopDomain,
		Payload:    spanner.NullJSON{Value: m_cart.FromCart(cart), Valid: true},
		Version:    s.version + 1,
	}

	plan := committer.NewPlan()
	if s.version == 0 {
		plan.Add(s.model.InsertMut(data))
	} else {
		plan.Add(s.model.UpdateMut(data))
	}

	err := s.committer.ApplyWithVersionCheck(ctx, committer.VersionCheck{
		Table:    m_cart.TableName,
		Key:      spanner.Key{s.key},
		Column:   m_cart.Version,
		Expected: s.version,
	}, plan)
	if err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			// Adopt the current version so the next save overwrites the other writer.
			if current, rerr := s.readVersion(ctx); rerr == nil {
				s.version = current
			}
			return fmt.Errorf("%w: cart was modified by another process: %w", domain.ErrStorage, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.version = data.Version
	return nil
}

// Delete removes the record row.
func (s *SpannerStorage) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := committer.NewPlan()
	plan.Add(s.model.DeleteMut(s.key))
	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	s.version = 0
	return nil
}

// readVersion returns the row's current version, zero when the row is gone.
func (s *SpannerStorage) readVersion(ctx context.Context) (int64, error) {
	row, err := s.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{s.key}, []string{m_cart.Version})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return 0, nil
		}
		return 0, err
	}
	var version int64
	if err := row.Columns(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *SpannerStorage) setVersion(v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = v
}

// decodePayload re-encodes the generic JSON value read from Spanner into a Record.
func decodePayload(payload spanner.NullJSON) (*m_cart.Record, error) {
	if !payload.Valid {
		return nil, errors.New("payload is null")
	}
	raw, err := json.Marshal(payload.Value)
	if err != nil {
		return nil, err
	}
	var rec m_cart.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

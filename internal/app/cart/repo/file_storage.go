package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/light-bringer/storefront-core/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/models/m_cart"
)

// FileStorage keeps the cart record in <dir>/<key>.json.
type FileStorage struct {
	dir  string
	path string
}

// NewFileStorage creates the storage directory if needed.
func NewFileStorage(dir, key string) (contracts.CartStorage, error) {
	return newFileStorage(dir, key)
}

func newFileStorage(dir, key string) (*FileStorage, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return nil, fmt.Errorf("invalid storage key %q", key)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStorage{
		dir:  dir,
		path: filepath.Join(dir, key+".json"),
	}, nil
}

// Path of the record file.
func (s *FileStorage) Path() string {
	return s.path
}

// Load reads and validates the stored record.
func (s *FileStorage) Load(_ context.Context) (*domain.Cart, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrStorage, s.path, err)
	}

	var rec m_cart.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrStorage, domain.ErrCorruptRecord, err)
	}

	cart, err := rec.ToCart()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return cart, nil
}

// Save writes the record to a temp file and renames it into place so a crash
// never leaves a half-written record.
func (s *FileStorage) Save(_ context.Context, cart *domain.Cart) error {
	raw, err := json.MarshalIndent(m_cart.FromCart(cart), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode cart: %w", domain.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write cart: %w", domain.ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to sync cart: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace cart: %w", domain.ErrStorage, err)
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

// Catalog error kinds as sentinel values
var (
	// ErrNetwork is a transport failure: no usable response arrived.
	ErrNetwork = errors.New("catalog: network failure")
	// ErrProtocol is a malformed or unexpected response.
	ErrProtocol = errors.New("catalog: unexpected response")
	// ErrProductNotFound means no product matches the handle.
	ErrProductNotFound = errors.New("product not found")
	// ErrTimeout means the request exceeded its deadline.
	ErrTimeout = errors.New("catalog: request timed out")

	// ErrStaleResponse marks a response dropped because a newer query
	// superseded it. It is never shown to users.
	ErrStaleResponse = errors.New("catalog: stale response discarded")
	// ErrNoMorePages is returned by continuation when the chain is exhausted.
	ErrNoMorePages = errors.New("catalog: no more pages")
)

// CatalogError is the single error type returned by catalog operations.
type CatalogError struct {
	Op   string // e.g. "ListProducts"
	Kind error  // one of the sentinels above
	Err  error  // underlying cause, may be nil
}

// NewCatalogError builds a CatalogError.
func NewCatalogError(op string, kind, err error) *CatalogError {
	return &CatalogError{Op: op, Kind: kind, Err: err}
}

func (e *CatalogError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsUserVisible reports whether the error should surface as an inline
// message. Stale discards are silent.
func IsUserVisible(err error) bool {
	return err != nil && !errors.Is(err, ErrStaleResponse)
}

package domain

import "errors"

var (
	// ErrStorage means the persisted cart could not be read or written.
	ErrStorage = errors.New("cart storage failure")

	// ErrCorruptRecord means a persisted cart failed shape validation.
	ErrCorruptRecord = errors.New("corrupt cart record")

	// ErrNotReady is returned by cart mutations before the store is rehydrated.
	ErrNotReady = errors.New("cart store is not ready")

	// ErrCredentialsMismatch is returned when the store is re-initialized
	// with different credentials.
	ErrCredentialsMismatch = errors.New("credentials already initialized with different values")

	// ErrInvalidCredentials is returned for blank shop domain or token.
	ErrInvalidCredentials = errors.New("shop domain and access token are required")

	// ErrVariantUnavailable is returned when adding a variant that is not for sale.
	ErrVariantUnavailable = errors.New("variant is not available for sale")

	// ErrSelectionIncomplete is returned when options do not resolve to a variant.
	ErrSelectionIncomplete = errors.New("option selection does not match a variant")

	// ErrInvalidItem is returned for a line item that cannot be added.
	ErrInvalidItem = errors.New("invalid cart item")

	// ErrInvalidQuantity is returned for a non-positive quantity on add.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

package testutil

import (
	"time"

	"github.com/light-bringer/storefront-core/internal/pkg/clock"
)

// Epoch is the starting time of clocks handed out by NewMockClock, so cart
// timestamps in assertions are reproducible.
var Epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// NewMockClock creates a controllable clock starting at Epoch.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Epoch)
}

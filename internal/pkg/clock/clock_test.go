package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)

	clk.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clk.Now())
}

func TestRetentionCutoff(t *testing.T) {
	clk := NewMockClock(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), RetentionCutoff(clk, 90))
}

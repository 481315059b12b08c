// Package money holds exact decimal amounts for catalog prices and cart totals.
package money

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// ErrInvalidAmount is returned when a decimal amount string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid money amount")

// decimalPattern is the plain decimal form the storefront emits.
var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Storefront amounts arrive as decimal strings ("19.99"); keeping them rational
// avoids float drift when quantities are multiplied and summed.
type Money struct {
	rat *big.Rat
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Parse creates a Money from a plain decimal string such as "19.99" or "7".
// Fractions and exponent forms are rejected.
func Parse(amount string) (*Money, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if !decimalPattern.MatchString(amount) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	rat, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return &Money{rat: rat}, nil
}

// MustParse is Parse for literals in tests and fixtures. It panics on bad input.
func MustParse(amount string) *Money {
	m, err := Parse(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoney creates a Money from numerator and denominator.
// Example: NewMoney(1999, 100) represents 19.99
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.value(), other.value())}
}

// Times multiplies the amount by an integer quantity.
func (m *Money) Times(quantity int) *Money {
	q := new(big.Rat).SetInt64(int64(quantity))
	return &Money{rat: new(big.Rat).Mul(m.value(), q)}
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.value().Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.value().Sign() < 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.value().Cmp(other.value()) == 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.value().Cmp(other.value()) < 0
}

// String renders the amount with two decimal places, the format used for
// persistence and display.
func (m *Money) String() string {
	return m.value().FloatString(2)
}

// Exact renders the amount without rounding, with at least two decimal
// places. Parse reads it back to an equal value. Amounts that are not finite
// decimals, which only NewMoney can build, render as a fraction.
func (m *Money) Exact() string {
	r := m.value()
	den := new(big.Int).Set(r.Denom())
	places := 0
	for _, factor := range []int64{2, 5} {
		f := big.NewInt(factor)
		count := 0
		mod := new(big.Int)
		for {
			q, rem := new(big.Int).QuoRem(den, f, mod)
			if rem.Sign() != 0 {
				break
			}
			den = q
			count++
		}
		if count > places {
			places = count
		}
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return r.RatString()
	}
	if places < 2 {
		places = 2
	}
	return r.FloatString(places)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.value())}
}

// value treats a nil receiver or zero struct as zero.
func (m *Money) value() *big.Rat {
	if m == nil || m.rat == nil {
		return new(big.Rat)
	}
	return m.rat
}

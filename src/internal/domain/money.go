package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "$"

// Money holds an amount in integer minor units (cents).
type Money struct {
	units int64
}

func ParseMoney(value string) (Money, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return Money{}, fmt.Errorf("amount is required")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", raw)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("amount cannot be negative")
	}

	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has more than two decimal places", raw)
	}

	return Money{units: shifted.IntPart()}, nil
}

func MustParseMoney(value string) Money {
	m, err := ParseMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{units: m.units + other.units}
}

func (m Money) Sub(other Money) (Money, error) {
	if m.units < other.units {
		return Money{}, fmt.Errorf("amount would go negative")
	}
	return Money{units: m.units - other.units}, nil
}

// Cmp returns -1, 0 or 1 like decimal.Cmp.
func (m Money) Cmp(other Money) int {
	switch {
	case m.units < other.units:
		return -1
	case m.units > other.units:
		return 1
	default:
		return 0
	}
}

func (m Money) IsZero() bool {
	return m.units == 0
}

func (m Money) IsPositive() bool {
	return m.units > 0
}

// Decimal renders the amount with exactly two fraction digits, no symbol.
func (m Money) Decimal() string {
	return decimal.New(m.units, -2).StringFixed(2)
}

// String renders the amount in the wire format, e.g. "$1000.00".
func (m Money) String() string {
	return CurrencySymbol + m.Decimal()
}

// Package core provides money parsing and handling utilities.
//
// This file contains the decimal-backed Money type and the parser used for
// amounts typed by a user.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is a currency amount. The zero value is 0.
//
// Division is exact: the divisor is kept alongside the decimal numerator and
// only applied when the amount is rendered or encoded, so normalizing a
// charge by its billing cycle stays linear in the charge.
type Money struct {
	d decimal.Decimal
	// q is the pending divisor. Zero and one both mean none.
	q int64
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d: d}
}

func MoneyFromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

func MoneyFromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f)}
}

// ParseMoney converts a decimal string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs, exponents and anything other than digits and one separator are
// rejected.
//
// Examples:
//
//	ParseMoney("12.34") -> 12.34, nil
//	ParseMoney("12,34") -> 12.34, nil
//	ParseMoney("-1")    -> 0, ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	digits := 0
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return Money{}, ErrInvalidAmount
			}
			digits++
		}
	}
	if digits == 0 {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

// Validate rejects negative amounts. Zero is a valid amount.
func (m Money) Validate() error {
	if m.d.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal applies any pending divisor with decimal.DivisionPrecision digits.
func (m Money) Decimal() decimal.Decimal {
	if m.divisor() == 1 {
		return m.d
	}
	return m.d.Div(decimal.NewFromInt(m.q))
}

func (m Money) divisor() int64 {
	if m.q <= 1 {
		return 1
	}
	return m.q
}

func (m Money) Add(o Money) Money {
	p, q := m.divisor(), o.divisor()
	if p == q {
		return Money{d: m.d.Add(o.d), q: m.q}
	}
	l := lcm(p, q)
	return Money{
		d: m.d.Mul(decimal.NewFromInt(l / p)).Add(o.d.Mul(decimal.NewFromInt(l / q))),
		q: l,
	}
}

func (m Money) Sub(o Money) Money {
	if m.divisor() == o.divisor() {
		return Money{d: m.d.Sub(o.d), q: m.q}
	}
	return m.Add(o.Mul(-1))
}

func (m Money) Mul(n int64) Money { return Money{d: m.d.Mul(decimal.NewFromInt(n)), q: m.q} }

// Div divides by n without rounding. n must not be zero.
func (m Money) Div(n int64) Money {
	if n == 0 {
		panic("core: money division by zero")
	}
	d := m.d
	if n < 0 {
		d, n = d.Neg(), -n
	}
	if n == 1 {
		return Money{d: d, q: m.q}
	}
	return Money{d: d, q: m.divisor() * n}
}

// Cmp compares exact values.
func (m Money) Cmp(o Money) int {
	return m.d.Mul(decimal.NewFromInt(o.divisor())).Cmp(o.d.Mul(decimal.NewFromInt(m.divisor())))
}

func (m Money) Equal(o Money) bool { return m.Cmp(o) == 0 }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

// Float64 returns the nearest float64 value, for chart series and display.
// Use Money for calculations.
func (m Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

func (m Money) String() string {
	return m.Decimal().String()
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money{d: d}
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}

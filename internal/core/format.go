package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const displayDateLayout = "Jan 02, 2006"

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders m as US dollars with thousands grouping, e.g.
// "$1,234.56" or "-$5.00". Cents come from the rounded decimal, never from a
// float.
func FormatCurrency(m Money) string {
	v := m.Decimal().Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	whole := v.Truncate(0)
	cents := v.Sub(whole).Shift(2).IntPart()
	// Whole dollars must fit an int64.
	return fmt.Sprintf("%s$%s.%02d", sign, usPrinter.Sprintf("%v", whole.IntPart()), cents)
}

// FormatDate renders t as "Jan 02, 2006".
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

package core

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// isoLayout matches the millisecond ISO-8601 strings stored by earlier
// versions of the app.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

const dateOnlyLayout = "2006-01-02"

// Date is a calendar timestamp. Time of day is carried but filtering treats
// it as a plain instant.
type Date struct {
	time.Time
}

// NewDate returns local midnight of the given calendar day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)}
}

// ParseDate accepts RFC 3339 timestamps or date-only strings. Date-only input
// is interpreted as local midnight.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.ParseInLocation(dateOnlyLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(isoLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

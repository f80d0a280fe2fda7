package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"library-admin/internal/timeutil"
)

// Date is a calendar date as exchanged with the REST backend ("2006-01-02").
// A value decoded from an RFC 3339 timestamp keeps its instant and encodes
// back as a timestamp. The zero value means "absent" and encodes as JSON null.
type Date struct {
	time.Time
	instant bool
}

// NewDate wraps t as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate accepts a YYYY-MM-DD date (midnight in the business time zone)
// or an RFC 3339 timestamp (kept as the exact instant). Empty input yields
// the zero Date.
func ParseDate(value string) (Date, error) {
	if value == "" {
		return Date{}, nil
	}
	if t, err := timeutil.ParseDate(value); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return Date{Time: t, instant: true}, nil
}

// Ptr returns the underlying time, or nil when the date is absent.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// IsInstant reports whether the date carries a time of day.
func (d Date) IsInstant() bool {
	return d.instant
}

// String formats the calendar day in the business time zone as YYYY-MM-DD,
// or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.In(timeutil.Location).Format(timeutil.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if d.instant {
		return []byte(strconv.Quote(d.Format(time.RFC3339Nano))), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

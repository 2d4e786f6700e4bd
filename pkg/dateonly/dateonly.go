// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

/*
Package dateonly provides a calendar-date value type for the API wire format.

The legacy contract serializes release dates and birthdays as plain
"2006-01-02" strings with no time or zone component. Embedding [time.Time]
keeps the comparison helpers (Before, After) available to domain logic.
*/
package dateonly

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for all calendar dates in the API.
const Layout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
type Date struct {
	time.Time
}

// New constructs a Date from year, month, and day in UTC.
func New(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse reads a "2006-01-02" string into a Date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("dateonly: invalid date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

// FromTime truncates a [time.Time] to its calendar date in UTC.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return FromTime(time.Now().UTC())
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

// String returns the wire representation.
func (d Date) String() string {
	return d.Time.Format(Layout)
}

// MarshalJSON implements [json.Marshaler] using the date-only layout.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements [json.Unmarshaler], accepting "2006-01-02" strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*d = Date{}
		return nil
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

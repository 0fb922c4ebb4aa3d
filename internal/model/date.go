package model

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// DisplayLayout is the human format used in tables.
const DisplayLayout = "January 02, 2006"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateLayout,
}

// Date is a backend timestamp or date. It decodes any of the formats the
// backend emits and encodes as YYYY-MM-DD, or null when zero.
type Date struct {
	time.Time
}

// NewDate truncates t to a calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s with any supported layout.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// ISO returns the date as YYYY-MM-DD, or "" when zero.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Display returns the date as "January 02, 2006", or "-" when zero.
func (d Date) Display() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(DisplayLayout)
}

// Package table holds the list-view helpers shared by every entity page:
// search, exact-match filters, status tabs with counts and number display.
package table

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Search keeps the rows where any of the fields returned by fields contains
// q, ignoring case. An empty q keeps every row.
func Search[T any](rows []T, q string, fields func(T) []string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	return Filter(rows, func(row T) bool {
		for _, f := range fields(row) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	})
}

// Filter keeps the rows for which keep returns true.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Equal returns a filter matching rows whose value equals want exactly. An
// empty want matches every row.
func Equal[T any](want string, value func(T) string) func(T) bool {
	return func(row T) bool {
		return want == "" || value(row) == want
	}
}

// Contains returns a filter matching rows whose values include want exactly.
// An empty want matches every row.
func Contains[T any](want string, values func(T) []string) func(T) bool {
	return func(row T) bool {
		if want == "" {
			return true
		}
		for _, v := range values(row) {
			if v == want {
				return true
			}
		}
		return false
	}
}

// All combines filters; a row is kept when every filter keeps it.
func All[T any](filters ...func(T) bool) func(T) bool {
	return func(row T) bool {
		for _, f := range filters {
			if !f(row) {
				return false
			}
		}
		return true
	}
}

// Comma formats n with thousands separators.
func Comma(n int) string {
	return humanize.Comma(int64(n))
}

// Money formats an amount with thousands separators and two decimals.
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// Distinct returns the distinct non-empty values in first-seen order, for
// building filter dropdowns.
func Distinct[T any](rows []T, values func(T) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		for _, v := range values(row) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

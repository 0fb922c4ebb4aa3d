// Package form reads submitted HTML forms into backend payloads. It only
// checks that required fields are present and that emails and dates are
// well formed; everything else is forwarded to the backend as entered.
package form

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/konzola/internal/model"
)

// Messages shown next to invalid fields.
const (
	MsgRequired = "This is required."
	MsgEmail    = "Please enter a valid email."
	MsgNumber   = "Please enter a number."
	MsgDate     = "Please enter a valid date."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps field names to the first problem found with them.
type Errors map[string]string

// Add records msg for field unless it already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Get returns the error for field or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Form wraps submitted values and collects field errors while they are read.
type Form struct {
	values url.Values
	Errors Errors
}

// New wraps values.
func New(values url.Values) *Form {
	return &Form{values: values, Errors: Errors{}}
}

// Valid reports whether no errors were recorded.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Get returns the trimmed value of field.
func (f *Form) Get(field string) string {
	return strings.TrimSpace(f.values.Get(field))
}

// List returns the non-empty trimmed values of a repeated field.
func (f *Form) List(field string) []string {
	var out []string
	for _, v := range f.values[field] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Required records an error for every field left empty.
func (f *Form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" && len(f.List(field)) == 0 {
			f.Errors.Add(field, MsgRequired)
		}
	}
}

// Email records an error when field is set but is not an email address.
func (f *Form) Email(field string) {
	if v := f.Get(field); v != "" && !emailPattern.MatchString(v) {
		f.Errors.Add(field, MsgEmail)
	}
}

// Optional returns the value of field, or nil when it is empty so that it
// encodes as JSON null.
func (f *Form) Optional(field string) *string {
	v := f.Get(field)
	if v == "" {
		return nil
	}
	return &v
}

// Int returns field as an integer, recording an error when it is set but not
// a number. Empty fields return 0.
func (f *Form) Int(field string) int64 {
	v := f.OptionalInt(field)
	if v == nil {
		return 0
	}
	return *v
}

// OptionalInt returns field as an integer or nil when it is empty.
func (f *Form) OptionalInt(field string) *int64 {
	v := f.Get(field)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.Errors.Add(field, MsgNumber)
		return nil
	}
	return &n
}

// IntList returns a repeated field as integers, or nil when none were sent.
func (f *Form) IntList(field string) []int64 {
	raw := f.List(field)
	if len(raw) == 0 {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			f.Errors.Add(field, MsgNumber)
			continue
		}
		out = append(out, n)
	}
	return out
}

// OptionalDecimal returns field as a decimal or nil when it is empty.
func (f *Form) OptionalDecimal(field string) *decimal.Decimal {
	v := f.Get(field)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		f.Errors.Add(field, MsgNumber)
		return nil
	}
	return &d
}

// Bool reports whether a checkbox field was ticked.
func (f *Form) Bool(field string) bool {
	switch strings.ToLower(f.Get(field)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Date returns field as a date, recording an error when it is set but does
// not parse.
func (f *Form) Date(field string) model.Date {
	v := f.Get(field)
	if v == "" {
		return model.Date{}
	}
	d, err := model.ParseDate(v)
	if err != nil {
		f.Errors.Add(field, MsgDate)
		return model.Date{}
	}
	return d
}

// OptionalDate returns field as YYYY-MM-DD or nil when it is empty.
func (f *Form) OptionalDate(field string) *string {
	d := f.Date(field)
	if d.IsZero() {
		return nil
	}
	iso := d.ISO()
	return &iso
}

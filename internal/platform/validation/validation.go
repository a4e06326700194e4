// Package validation holds the field-scoped error map used by form drafts
// and the per-character input filters for name, age and contact fields.
package validation

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const ContactDigits = 11

// Errors maps a form field to its message. A nil Errors is empty and safe
// to read.
type Errors map[string]string

func (e Errors) Set(field, msg string) {
	e[field] = msg
}

// Clear removes the error for one field only.
func (e Errors) Clear(field string) {
	delete(e, field)
}

func (e Errors) Has(field string) bool {
	return e[field] != ""
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Any() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Error lets a non-empty Errors travel as an error value. Fields are listed
// in sorted order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f, msg := range e {
		if msg != "" {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for i, f := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
	}
	return b.String()
}

// DigitsOnly drops every non-digit rune. The second result reports whether
// anything was dropped.
func DigitsOnly(s string) (string, bool) {
	return keep(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

// LettersOnly keeps ASCII letters and spaces.
func LettersOnly(s string) (string, bool) {
	return keep(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' '
	})
}

// IsName reports whether s is made of letters and spaces only.
func IsName(s string) bool {
	_, dropped := LettersOnly(s)
	return !dropped
}

func keep(s string, ok func(rune) bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	dropped := false
	for _, r := range s {
		if ok(r) {
			b.WriteRune(r)
		} else {
			dropped = true
		}
	}
	return b.String(), dropped
}

// ValidateAge returns "" for an age between 1 and 120.
func ValidateAge(age string) string {
	age = strings.TrimSpace(age)
	if age == "" {
		return "Age is required"
	}
	n, err := strconv.Atoi(age)
	if err != nil || n < 1 || n > 120 {
		return "Please enter a valid age (1-120)"
	}
	return ""
}

// ValidateContact returns "" for an 11-digit contact number.
func ValidateContact(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "Contact number is required"
	}
	if len(contact) != ContactDigits || strings.IndexFunc(contact, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return "Contact number must be 11 digits"
	}
	return ""
}

// Required sets msg on field when value is blank and reports whether it did.
func (e Errors) Required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		e.Set(field, msg)
		return true
	}
	return false
}

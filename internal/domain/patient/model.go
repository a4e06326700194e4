package patient

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Patient is the backend's patient record. Updates always send a full
// replacement copy.
type Patient struct {
	ID        int    `json:"patientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	ContactNo string `json:"contactNo"`
	Address   string `json:"address"`
}

// FullName joins first and last name with a single space.
func (p Patient) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Initials returns the first letter of each name part.
func (p Patient) Initials() string {
	var b strings.Builder
	for _, part := range []string{p.FirstName, p.LastName} {
		part = strings.TrimSpace(part)
		if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// SplitName splits a display name at the first space into first and last
// name.
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

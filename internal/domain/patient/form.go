package patient

import (
	"strconv"
	"strings"

	"github.com/clinicaflow/console/internal/platform/validation"
)

// Form field names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldContactNo = "contactNo"
	FieldAddress   = "address"
)

// Form is the add/edit draft for a patient, also used to join the queue.
// Name fields keep letters and spaces only, age and contact keep digits
// only; the filtering happens as each value is set.
type Form struct {
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Age       string            `json:"age"`
	Gender    string            `json:"gender"`
	ContactNo string            `json:"contactNo"`
	Address   string            `json:"address"`
	Errors    validation.Errors `json:"errors,omitempty"`
}

func NewForm() *Form {
	return &Form{Errors: validation.Errors{}}
}

// FormFrom fills a draft from an existing record for editing.
func FormFrom(p Patient) *Form {
	f := NewForm()
	f.FirstName = p.FirstName
	f.LastName = p.LastName
	if p.Age > 0 {
		f.Age = strconv.Itoa(p.Age)
	}
	f.Gender = p.Gender
	f.ContactNo = p.ContactNo
	f.Address = p.Address
	return f
}

// Set updates one field. Rejected characters are dropped and flagged on
// that field; otherwise only that field's error is cleared.
func (f *Form) Set(field, value string) {
	if f.Errors == nil {
		f.Errors = validation.Errors{}
	}

	var dropped bool
	switch field {
	case FieldFirstName, FieldLastName:
		value, dropped = validation.LettersOnly(value)
		if dropped {
			f.Errors.Set(field, "Name can only contain letters")
		}
	case FieldAge:
		value, dropped = validation.DigitsOnly(value)
		if dropped {
			f.Errors.Set(field, "Age can only contain numbers")
		}
	case FieldContactNo:
		value, dropped = validation.DigitsOnly(value)
		if len(value) > validation.ContactDigits {
			value = value[:validation.ContactDigits]
		}
		if dropped {
			f.Errors.Set(field, "Contact number can only contain numbers")
		}
	}
	if !dropped {
		f.Errors.Clear(field)
	}

	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldAge:
		f.Age = value
	case FieldGender:
		f.Gender = value
	case FieldContactNo:
		f.ContactNo = value
	case FieldAddress:
		f.Address = value
	}
}

// Validate recomputes every field error and returns the result. The form's
// own Errors are replaced.
func (f *Form) Validate() validation.Errors {
	errs := validation.Errors{}
	if !errs.Required(FieldFirstName, f.FirstName, "First name is required") && !validation.IsName(f.FirstName) {
		errs.Set(FieldFirstName, "Name can only contain letters")
	}
	if !errs.Required(FieldLastName, f.LastName, "Last name is required") && !validation.IsName(f.LastName) {
		errs.Set(FieldLastName, "Name can only contain letters")
	}
	if msg := validation.ValidateAge(f.Age); msg != "" {
		errs.Set(FieldAge, msg)
	}
	if f.Gender != GenderMale && f.Gender != GenderFemale {
		errs.Set(FieldGender, "Gender is required")
	}
	if msg := validation.ValidateContact(f.ContactNo); msg != "" {
		errs.Set(FieldContactNo, msg)
	}
	f.Errors = errs
	return errs.Clone()
}

// Patient validates the draft and builds the record to submit. id is kept
// as given so edits send a full replacement copy.
func (f *Form) Patient(id int) (Patient, validation.Errors) {
	if errs := f.Validate(); errs.Any() {
		return Patient{}, errs
	}
	age, _ := strconv.Atoi(f.Age)
	return Patient{
		ID:        id,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Age:       age,
		Gender:    f.Gender,
		ContactNo: f.ContactNo,
		Address:   strings.TrimSpace(f.Address),
	}, nil
}

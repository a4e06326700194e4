package staff

import (
	"strconv"
	"strings"

	"github.com/clinicaflow/console/internal/platform/validation"
)

// Form is the add/edit staff draft.
type Form struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Specialty  string `json:"specialty"`
	ContactNo  string `json:"contactNo"`
	Department string `json:"department"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
}

// FormFrom seeds a draft from a directory row, dropping display fallbacks.
func FormFrom(m Member) Form {
	f := Form{Name: m.Name, Role: m.Role, Specialty: m.Specialty, ContactNo: m.Contact, Department: m.Department, Gender: m.Gender}
	if f.Specialty == NoSpecialty {
		f.Specialty = ""
	}
	if f.ContactNo == NoContact {
		f.ContactNo = ""
	}
	if m.Age > 0 {
		f.Age = strconv.Itoa(m.Age)
	}
	return f
}

func (f Form) Validate() validation.Errors {
	errs := validation.Errors{}
	if !errs.Required("name", f.Name, "Name is required") && !validation.IsName(f.Name) {
		errs.Set("name", "Name can only contain letters")
	}
	if !errs.Required("role", f.Role, "Role is required") && canonicalRole(f.Role) == "" {
		errs.Set("role", "Role must be Doctor, Nurse or Staff")
	}
	if f.ContactNo != "" {
		if msg := validation.ValidateContact(f.ContactNo); msg != "" {
			errs.Set("contactNo", msg)
		}
	}
	if f.Age != "" {
		if msg := validation.ValidateAge(f.Age); msg != "" {
			errs.Set("age", msg)
		}
	}
	return errs
}

// Request converts a validated draft into the backend body.
func (f Form) Request() Request {
	age, _ := strconv.Atoi(f.Age)
	return Request{
		Name:       strings.TrimSpace(f.Name),
		Role:       canonicalRole(f.Role),
		Specialty:  strings.TrimSpace(f.Specialty),
		ContactNo:  f.ContactNo,
		Department: strings.TrimSpace(f.Department),
		Age:        age,
		Gender:     f.Gender,
	}
}

func canonicalRole(role string) string {
	for _, r := range []string{RoleDoctor, RoleNurse, RoleStaff} {
		if strings.EqualFold(strings.TrimSpace(role), r) {
			return r
		}
	}
	return ""
}

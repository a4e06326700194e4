package consultation

import (
	"strconv"
	"strings"
	"time"

	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/validation"
)

// Form field names.
const (
	FieldPatientID    = "patientId"
	FieldName         = "name"
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldDoctor       = "doctor"
	FieldDate         = "date"
	FieldSymptoms     = "symptoms"
	FieldDiagnosis    = "diagnosis"
	FieldPrescription = "prescription"
	FieldRemarks      = "remarks"
)

// Template is a canned set of consultation details.
type Template struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Remarks      string `json:"remarks"`
}

var Templates = []Template{
	{
		ID:           1,
		Name:         "Fever / Common Cold",
		Symptoms:     "Fever, runny nose, cough, sore throat",
		Diagnosis:    "Upper respiratory tract infection",
		Prescription: "Paracetamol 500mg every 6 hours, rest, plenty of fluids",
		Remarks:      "Monitor temperature, return if symptoms worsen",
	},
	{
		ID:           2,
		Name:         "Headache",
		Symptoms:     "Persistent headache, sensitivity to light",
		Diagnosis:    "Tension headache",
		Prescription: "Ibuprofen 400mg as needed, stress management",
		Remarks:      "Avoid triggers, maintain hydration",
	},
	{
		ID:           3,
		Name:         "Hypertension",
		Symptoms:     "Elevated blood pressure, occasional dizziness",
		Diagnosis:    "Stage 1 Hypertension",
		Prescription: "Lisinopril 10mg daily, lifestyle modifications",
		Remarks:      "Regular BP monitoring, low sodium diet",
	},
}

// Doctor is one option of the doctor picker.
type Doctor struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DoctorLabel resolves a picker value to its label: "" when nothing is
// selected, "Not found" when the value matches no doctor.
func DoctorLabel(doctors []Doctor, value string) string {
	if value == "" {
		return ""
	}
	for _, d := range doctors {
		if d.Value == value {
			return d.Label
		}
	}
	return "Not found"
}

// Form is the new-consultation draft: patient info plus consultation
// details.
type Form struct {
	PatientID    string            `json:"patientId"`
	Name         string            `json:"name"`
	Age          string            `json:"age"`
	Gender       string            `json:"gender"`
	Doctor       string            `json:"doctor"`
	Date         string            `json:"date"`
	Symptoms     string            `json:"symptoms"`
	Diagnosis    string            `json:"diagnosis"`
	Prescription string            `json:"prescription"`
	Remarks      string            `json:"remarks"`
	Errors       validation.Errors `json:"errors,omitempty"`
}

func NewForm() *Form {
	return &Form{Errors: validation.Errors{}}
}

// SetPatientInfo updates a patient-info field. Name keeps letters and
// spaces, age and patient id keep digits; rejected characters are dropped
// and flagged on that field.
func (f *Form) SetPatientInfo(field, value string) {
	f.ensureErrors()

	var dropped bool
	switch field {
	case FieldName:
		value, dropped = validation.LettersOnly(value)
		if dropped {
			f.Errors.Set(field, "Name can only contain letters")
		}
		f.Name = value
	case FieldAge:
		value, dropped = validation.DigitsOnly(value)
		if dropped {
			f.Errors.Set(field, "Age can only contain numbers")
		}
		f.Age = value
	case FieldPatientID:
		value, dropped = validation.DigitsOnly(value)
		if dropped {
			f.Errors.Set(field, "Patient ID can only contain numbers")
		}
		f.PatientID = value
	case FieldGender:
		f.Gender = value
	case FieldDoctor:
		f.Doctor = value
	case FieldDate:
		f.Date = strings.TrimSpace(value)
	default:
		return
	}
	if !dropped {
		f.Errors.Clear(field)
	}
}

// SetDetail updates a consultation-detail field and clears its error.
func (f *Form) SetDetail(field, value string) {
	f.ensureErrors()
	switch field {
	case FieldSymptoms:
		f.Symptoms = value
	case FieldDiagnosis:
		f.Diagnosis = value
	case FieldPrescription:
		f.Prescription = value
	case FieldRemarks:
		f.Remarks = value
	default:
		return
	}
	f.Errors.Clear(field)
}

// ApplyTemplate copies a template's details into the draft.
func (f *Form) ApplyTemplate(id int) bool {
	for _, t := range Templates {
		if t.ID == id {
			f.SetDetail(FieldSymptoms, t.Symptoms)
			f.SetDetail(FieldDiagnosis, t.Diagnosis)
			f.SetDetail(FieldPrescription, t.Prescription)
			f.SetDetail(FieldRemarks, t.Remarks)
			return true
		}
	}
	return false
}

// Validate recomputes all field errors and stores them on the form.
func (f *Form) Validate() validation.Errors {
	errs := f.check()
	f.Errors = errs
	return errs.Clone()
}

// IsValid reports whether the draft would pass Validate, without touching
// its errors.
func (f *Form) IsValid() bool {
	return !f.check().Any()
}

func (f *Form) check() validation.Errors {
	errs := validation.Errors{}
	if !errs.Required(FieldName, f.Name, "Patient name is required") && !validation.IsName(f.Name) {
		errs.Set(FieldName, "Name can only contain letters")
	}
	if _, dropped := validation.DigitsOnly(f.Age); dropped {
		errs.Set(FieldAge, "Age can only contain numbers")
	}
	errs.Required(FieldDoctor, f.Doctor, "Doctor selection is required")
	if !errs.Required(FieldDate, f.Date, "Date is required") {
		if _, err := listview.ParseDay(f.Date, time.UTC); err != nil {
			errs.Set(FieldDate, "Date must be in YYYY-MM-DD format")
		}
	}
	errs.Required(FieldSymptoms, f.Symptoms, "Symptoms are required")
	errs.Required(FieldDiagnosis, f.Diagnosis, "Diagnosis is required")
	return errs
}

// Request builds the add-consultation body.
func (f *Form) Request() Request {
	patientID, _ := strconv.Atoi(f.PatientID)
	staffID, _ := strconv.Atoi(f.Doctor)
	return Request{
		PatientID:          patientID,
		StaffID:            staffID,
		Symptoms:           strings.TrimSpace(f.Symptoms),
		Diagnosis:          strings.TrimSpace(f.Diagnosis),
		MedicinePrescribed: strings.TrimSpace(f.Prescription),
		Remarks:            strings.TrimSpace(f.Remarks),
		ConsultationDate:   f.Date,
	}
}

// Reset clears the draft back to empty.
func (f *Form) Reset() {
	*f = Form{Errors: validation.Errors{}}
}

func (f *Form) ensureErrors() {
	if f.Errors == nil {
		f.Errors = validation.Errors{}
	}
}

package consultation

import "testing"

func filledForm() *Form {
	f := NewForm()
	f.SetPatientInfo(FieldPatientID, "1")
	f.SetPatientInfo(FieldName, "Maria Santos")
	f.SetPatientInfo(FieldAge, "45")
	f.SetPatientInfo(FieldGender, "Female")
	f.SetPatientInfo(FieldDoctor, "2")
	f.SetPatientInfo(FieldDate, "2025-06-05")
	f.SetDetail(FieldSymptoms, "Cough")
	f.SetDetail(FieldDiagnosis, "Bronchitis")
	return f
}

func TestForm_SetPatientInfoFilters(t *testing.T) {
	f := NewForm()

	f.SetPatientInfo(FieldName, "Ana2")
	if f.Name != "Ana" || f.Errors.Get(FieldName) != "Name can only contain letters" {
		t.Errorf("expected filtered name with error, got %q %q", f.Name, f.Errors.Get(FieldName))
	}

	f.SetPatientInfo(FieldAge, "3x")
	if f.Age != "3" || f.Errors.Get(FieldAge) != "Age can only contain numbers" {
		t.Errorf("expected filtered age with error, got %q %q", f.Age, f.Errors.Get(FieldAge))
	}

	f.SetPatientInfo(FieldName, "Ana")
	if f.Errors.Has(FieldName) {
		t.Error("expected name error cleared by a clean value")
	}
	if !f.Errors.Has(FieldAge) {
		t.Error("expected age error untouched")
	}
}

func TestForm_ValidateMessages(t *testing.T) {
	f := NewForm()
	errs := f.Validate()

	want := map[string]string{
		FieldName:      "Patient name is required",
		FieldDoctor:    "Doctor selection is required",
		FieldDate:      "Date is required",
		FieldSymptoms:  "Symptoms are required",
		FieldDiagnosis: "Diagnosis is required",
	}
	for field, msg := range want {
		if errs.Get(field) != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, errs.Get(field))
		}
	}
	if errs.Has(FieldPrescription) || errs.Has(FieldRemarks) {
		t.Error("expected prescription and remarks optional")
	}
}

func TestForm_IsValidDoesNotTouchErrors(t *testing.T) {
	f := NewForm()
	if f.IsValid() {
		t.Error("expected empty form invalid")
	}
	if f.Errors.Any() {
		t.Errorf("expected IsValid to leave errors alone, got %v", f.Errors)
	}
	if !filledForm().IsValid() {
		t.Error("expected filled form valid")
	}
}

func TestForm_SetDetailClearsOnlyThatField(t *testing.T) {
	f := NewForm()
	f.Validate()
	f.SetDetail(FieldSymptoms, "Fever")
	if f.Errors.Has(FieldSymptoms) {
		t.Error("expected symptoms error cleared")
	}
	if !f.Errors.Has(FieldDiagnosis) {
		t.Error("expected diagnosis error kept")
	}
}

func TestForm_ApplyTemplate(t *testing.T) {
	f := NewForm()
	f.Validate()
	if !f.ApplyTemplate(2) {
		t.Fatal("expected template 2 to exist")
	}
	if f.Diagnosis != "Tension headache" || f.Prescription != "Ibuprofen 400mg as needed, stress management" {
		t.Errorf("unexpected details %+v", f)
	}
	if f.Errors.Has(FieldSymptoms) || f.Errors.Has(FieldDiagnosis) {
		t.Error("expected template to clear detail errors")
	}
	if f.ApplyTemplate(99) {
		t.Error("expected unknown template to be rejected")
	}
}

func TestForm_RequestAndReset(t *testing.T) {
	f := filledForm()
	req := f.Request()
	if req.PatientID != 1 || req.StaffID != 2 || req.ConsultationDate != "2025-06-05" || req.Symptoms != "Cough" {
		t.Errorf("unexpected request %+v", req)
	}
	f.Reset()
	if f.Name != "" || f.Symptoms != "" || f.Errors == nil || f.Errors.Any() {
		t.Errorf("expected empty draft after reset, got %+v", f)
	}
}

func TestDoctorLabel(t *testing.T) {
	doctors := []Doctor{{Value: "1", Label: "Dr. Cruz"}, {Value: "2", Label: "Dr. Reyes"}}
	if got := DoctorLabel(doctors, ""); got != "" {
		t.Errorf("expected empty label, got %q", got)
	}
	if got := DoctorLabel(doctors, "2"); got != "Dr. Reyes" {
		t.Errorf("expected Dr. Reyes, got %q", got)
	}
	if got := DoctorLabel(doctors, "9"); got != "Not found" {
		t.Errorf("expected Not found, got %q", got)
	}
}

package consultation

import (
	"testing"
	"time"

	"github.com/clinicaflow/console/internal/domain/patient"
)

func TestNormalize_MissingPatient(t *testing.T) {
	v := Normalize(Record{ConsultationID: 7, Diagnosis: "Flu"})
	if v.PatientName != UnknownPatient {
		t.Errorf("expected %q, got %q", UnknownPatient, v.PatientName)
	}
	if v.Doctor != UnknownDoctor {
		t.Errorf("expected %q, got %q", UnknownDoctor, v.Doctor)
	}
	if v.Gender != NotAvailable {
		t.Errorf("expected %q, got %q", NotAvailable, v.Gender)
	}
	if v.Time != NoTime || v.Date != "" {
		t.Errorf("expected no date and %q, got %q %q", NoTime, v.Date, v.Time)
	}
	if v.Diagnosis != "Flu" {
		t.Errorf("expected diagnosis carried over, got %q", v.Diagnosis)
	}
}

func TestNormalize_FullRecord(t *testing.T) {
	r := Record{
		ConsultationID:     3,
		Patient:            &patient.Patient{ID: 9, FirstName: "Maria", LastName: "Santos", Age: 45, Gender: "Female"},
		MedicalStaff:       &StaffRef{StaffID: 2, Name: " Dr. Cruz "},
		ConsultationDate:   "2025-06-01T14:05:00Z",
		Symptoms:           "Cough",
		MedicinePrescribed: "Rest",
	}
	v := normalizeIn(r, time.UTC)

	if v.PatientName != "Maria Santos" || v.PatientID != 9 || v.Age != 45 {
		t.Errorf("unexpected patient fields %+v", v)
	}
	if v.Doctor != "Dr. Cruz" {
		t.Errorf("expected trimmed doctor name, got %q", v.Doctor)
	}
	if v.Date != "2025-06-01" || v.Time != "02:05 PM" {
		t.Errorf("expected 2025-06-01 02:05 PM, got %s %s", v.Date, v.Time)
	}
	if v.Prescription != "Rest" {
		t.Errorf("expected prescription mapped, got %q", v.Prescription)
	}
}

func TestSplitDate(t *testing.T) {
	tests := []struct {
		raw, date, clock string
	}{
		{"", "", NoTime},
		{"2025-01-03", "2025-01-03", NoTime},
		{"2025-01-03T08:15:00", "2025-01-03", "08:15 AM"},
		{"2025-01-03T20:15", "2025-01-03", "08:15 PM"},
		{"2025-01-03 09:00:00", "2025-01-03", "09:00 AM"},
		{"2025-01-03T09:00:00.000+0000", "2025-01-03", NoTime},
		{"not a date", "", NoTime},
	}
	for _, tt := range tests {
		date, clock := splitDate(tt.raw, time.UTC)
		if date != tt.date || clock != tt.clock {
			t.Errorf("splitDate(%q): expected %q %q, got %q %q", tt.raw, tt.date, tt.clock, date, clock)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	records := []Record{
		{ConsultationID: 1},
		{ConsultationID: 2, ConsultationDate: "2025-06-01"},
		{
			ConsultationID:   3,
			Patient:          &patient.Patient{ID: 4, FirstName: "Juan", LastName: "Dela Cruz", Age: 30, Gender: "Male"},
			MedicalStaff:     &StaffRef{Name: "Dr. Reyes"},
			ConsultationDate: "2025-06-01T10:30:00",
			Diagnosis:        "Tension headache",
			Remarks:          "Hydrate",
		},
	}
	for _, r := range records {
		once := normalizeIn(r, time.UTC)
		twice := normalizeIn(once.Record(), time.UTC)
		if once != twice {
			t.Errorf("normalize not idempotent for %d:\nonce:  %+v\ntwice: %+v", r.ConsultationID, once, twice)
		}
	}
}

func TestNormalizeAll_NewestFirst(t *testing.T) {
	views := NormalizeAll([]Record{{ConsultationID: 2}, {ConsultationID: 10}, {ConsultationID: 5}})
	if len(views) != 3 || views[0].ID != 10 || views[1].ID != 5 || views[2].ID != 2 {
		t.Errorf("expected ids 10,5,2, got %+v", views)
	}
}

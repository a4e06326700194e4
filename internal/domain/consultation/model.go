package consultation

import "github.com/clinicaflow/console/internal/domain/patient"

// Fallback literals used when a record's nested objects are missing.
const (
	UnknownPatient = "Unknown Patient"
	UnknownDoctor  = "Unknown"
	NotAvailable   = "N/A"
	NoTime         = "--:--"
)

// StaffRef is the attending staff member nested in a consultation.
type StaffRef struct {
	StaffID int    `json:"staffID,omitempty"`
	Name    string `json:"name"`
}

// Record is a consultation as the backend returns it.
type Record struct {
	ConsultationID     int              `json:"consultationID"`
	Patient            *patient.Patient `json:"patient"`
	MedicalStaff       *StaffRef        `json:"medicalStaff"`
	ConsultationDate   string           `json:"consultationDate"`
	Diagnosis          string           `json:"diagnosis"`
	Symptoms           string           `json:"symptoms"`
	MedicinePrescribed string           `json:"medicinePrescribed"`
	Remarks            string           `json:"remarks"`
}

// View is the flat display shape of a consultation.
type View struct {
	ID           int    `json:"id"`
	PatientID    int    `json:"patientId,omitempty"`
	PatientName  string `json:"patientName"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Doctor       string `json:"doctor"`
	Diagnosis    string `json:"diagnosis"`
	Symptoms     string `json:"symptoms"`
	Prescription string `json:"prescription"`
	Remarks      string `json:"remarks"`
}

// Request is the body sent to add or update a consultation.
type Request struct {
	PatientID          int    `json:"patientId,omitempty"`
	StaffID            int    `json:"staffId,omitempty"`
	Symptoms           string `json:"symptoms"`
	Diagnosis          string `json:"diagnosis"`
	MedicinePrescribed string `json:"medicinePrescribed"`
	Remarks            string `json:"remarks"`
	ConsultationDate   string `json:"consultationDate"`
}

package queue

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/clinicaflow/console/internal/domain/patient"
)

// Queue statuses. Transitions belong to the backend.
const (
	StatusWaiting    = "WAITING"
	StatusConsulting = "CONSULTING"
	StatusServing    = "SERVING"
	StatusCompleted  = "COMPLETED"
)

// Display fallbacks.
const (
	Unassigned     = "Unassigned"
	NoArrivalTime  = "--:--"
	UnknownPatient = "Unknown Patient"
	NoneServing    = "--"
)

// ValidStatus reports whether s is a known queue status.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusConsulting, StatusServing, StatusCompleted:
		return true
	}
	return false
}

// Number is a queue ticket number. The backend stores it as a string, so
// it is written quoted and read from either a JSON number or a string.
// Strings without digits read as 0.
type Number int

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.Itoa(int(n)))), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, _ := strconv.Atoi(strings.TrimLeft(strings.TrimSpace(s), "#"))
		*n = Number(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Entry is a queue item as the backend returns it.
type Entry struct {
	ID             int              `json:"id"`
	QueueNumber    Number           `json:"queueNumber"`
	Patient        *patient.Patient `json:"patient"`
	Status         string           `json:"status"`
	AssignedDoctor *string          `json:"assignedDoctor"`
	ArrivalTime    string           `json:"arrivalTime"`
}

// View is the display row of a queue entry.
type View struct {
	ID          int    `json:"id"`
	QueueNumber int    `json:"queueNumber"`
	PatientID   int    `json:"patientId,omitempty"`
	Initials    string `json:"initials"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender,omitempty"`
	AssignedTo  string `json:"assignedTo"`
	ArrivalTime string `json:"arrivalTime"`
	Status      string `json:"status"`

	source Entry
}

// Source returns the backend entry the view was built from.
func (v View) Source() Entry {
	return v.source
}

// doctor is the assigned doctor as stored, without the display fallback.
func (v View) doctor() string {
	if v.source.AssignedDoctor == nil {
		return ""
	}
	return strings.TrimSpace(*v.source.AssignedDoctor)
}

// JoinRequest is the public queue-join body.
type JoinRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	ContactNo string `json:"contactNo"`
	Address   string `json:"address"`
}

// Ticket is the backend's answer to a queue join.
type Ticket struct {
	QueueNumber   Number `json:"queueNumber"`
	PatientName   string `json:"patientName"`
	Status        string `json:"status"`
	EstimatedTime string `json:"estimatedTime"`
}

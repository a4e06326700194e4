package staff

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/domain/consultation"
	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/validation"
)

// -- Mock Backend --

type mockBackend struct {
	mu           sync.Mutex
	records      []Record
	created      []Request
	availability map[int]string
	writes       int
	failWith     error
	listErr      error
}

func newMockBackend(seed ...Record) *mockBackend {
	return &mockBackend{records: seed, availability: map[int]string{}}
}

func (m *mockBackend) List(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockBackend) Create(_ context.Context, req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWith != nil {
		return m.failWith
	}
	m.created = append(m.created, req)
	m.records = append(m.records, Record{StaffID: 100 + len(m.records), Name: req.Name, Role: req.Role})
	return nil
}

func (m *mockBackend) Update(_ context.Context, id int, req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.records {
		if m.records[i].StaffID == id {
			m.records[i].Name = req.Name
			m.records[i].Role = req.Role
			m.records[i].Specialty = req.Specialty
		}
	}
	return nil
}

func (m *mockBackend) SetAvailability(_ context.Context, id int, availability string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWith != nil {
		return m.failWith
	}
	m.availability[id] = availability
	for i := range m.records {
		if m.records[i].StaffID == id {
			m.records[i].Availability = availability
		}
	}
	return nil
}

func seedRecords() []Record {
	return []Record{
		{StaffID: 1, Name: "Jose Cruz", Role: "Doctor", Specialty: "Pediatrics", Availability: "available", UserAccount: &Account{AccountID: 7, Username: "jcruz@clinic.ph"}},
		{StaffID: 2, Name: "Liza Reyes", Role: "nurse", Availability: "busy"},
		{StaffID: 3, Name: "Mark Lim", Role: "Doctor", Availability: "offline"},
		{StaffID: 12, Name: "Rosa Tan", Role: "Staff"},
	}
}

func newTestDirectory(b Backend) *Directory {
	return NewDirectory(b, listview.Options{Logger: zerolog.Nop(), Now: func() time.Time {
		return time.Date(2025, 6, 5, 9, 0, 0, 0, time.Local)
	}})
}

func TestNormalize(t *testing.T) {
	m := Normalize(seedRecords()[0])
	if m.ID != 1 || m.Email != "jcruz@clinic.ph" || m.AccountID != 7 {
		t.Errorf("unexpected account mapping %+v", m)
	}
	if m.Status != StatusAvailable || m.Department != DefaultDepartment || m.Contact != NoContact {
		t.Errorf("unexpected defaults %+v", m)
	}

	m = Normalize(Record{StaffID: 3, Availability: "offline"})
	if m.Status != StatusOffDuty || m.Availability != "offline" {
		t.Errorf("expected offline to display as Off Duty, got %q/%q", m.Status, m.Availability)
	}
	if m.Specialty != NoSpecialty {
		t.Errorf("expected %q, got %q", NoSpecialty, m.Specialty)
	}

	m = Normalize(Record{StaffID: 4})
	if m.Availability != StatusAvailable || m.Status != StatusAvailable {
		t.Errorf("expected missing availability to default to Available, got %+v", m)
	}
}

func TestDirectory_RoleFilterMatchesStoredCase(t *testing.T) {
	d := newTestDirectory(newMockBackend(
		Record{StaffID: 1, Name: "Jose Cruz", Role: "doctor"},
		Record{StaffID: 2, Name: "Liza Reyes", Role: "Nurse"},
		Record{StaffID: 3, Name: "Mark Lim", Role: "Doctor"},
	))
	d.Mount(context.Background())

	d.FilterRole("Doctor")
	got := d.Snapshot().Members
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected only the Doctor stored as \"Doctor\", got %+v", got)
	}

	d.FilterRole("doctor")
	got = d.Snapshot().Members
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only the doctor stored as \"doctor\", got %+v", got)
	}

	d.FilterRole("nurse")
	if got = d.Snapshot().Members; len(got) != 0 {
		t.Errorf("expected no match for \"nurse\", got %+v", got)
	}
}

func TestDirectory_StatusAliases(t *testing.T) {
	d := newTestDirectory(newMockBackend(seedRecords()...))
	d.Mount(context.Background())

	d.FilterStatus(StatusOffDuty)
	got := d.Snapshot().Members
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected offline doctor under Off Duty, got %+v", got)
	}

	d.FilterStatus(StatusAvailable)
	d.FilterRole(RoleDoctor)
	got = d.Snapshot().Members
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected the available doctor, got %+v", got)
	}
	if !d.HasActiveFilters() {
		t.Error("expected active filters")
	}

	d.ClearFilters()
	if d.HasActiveFilters() || len(d.Snapshot().Members) != 4 {
		t.Error("expected filters cleared")
	}
}

func TestDirectory_SearchAndStats(t *testing.T) {
	d := newTestDirectory(newMockBackend(seedRecords()...))
	d.Mount(context.Background())

	d.Search("1")
	if got := d.Snapshot().Members; len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected exact staff id match, got %+v", got)
	}

	d.Search("pediatrics")
	if got := d.Snapshot().Members; len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected specialty match, got %+v", got)
	}

	d.Search("")
	want := map[string]int{"total": 4, "doctors": 2, "nurses": 1, "available": 2}
	for _, s := range d.Snapshot().Stats {
		if s.Value != want[s.Key] {
			t.Errorf("stat %s: expected %d, got %d", s.Key, want[s.Key], s.Value)
		}
	}
}

func TestDirectory_DoctorOptions(t *testing.T) {
	d := newTestDirectory(newMockBackend(seedRecords()...))
	d.Mount(context.Background())

	opts := d.DoctorOptions()
	if len(opts) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(opts))
	}
	if consultation.DoctorLabel(opts, "3") != "Mark Lim" {
		t.Errorf("expected label lookup by staff id, got %q", consultation.DoctorLabel(opts, "3"))
	}
}

func TestDirectory_AddValidation(t *testing.T) {
	b := newMockBackend(seedRecords()...)
	d := newTestDirectory(b)
	d.Mount(context.Background())

	_, err := d.Add(context.Background(), Form{Name: "Dr 2", Role: "Janitor", ContactNo: "123"})
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, field := range []string{"name", "role", "contactNo"} {
		if !errs.Has(field) {
			t.Errorf("expected error on %s", field)
		}
	}
	if b.writes != 0 {
		t.Errorf("expected no backend write, got %d", b.writes)
	}

	fb, err := d.Add(context.Background(), Form{Name: "Carla Diaz", Role: "nurse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Title != "Staff Added" || b.created[0].Role != RoleNurse {
		t.Errorf("expected canonical role sent, got %+v / %+v", fb, b.created)
	}
	if len(d.Snapshot().Members) != 5 {
		t.Error("expected refreshed directory")
	}
}

func TestDirectory_SetAvailability(t *testing.T) {
	b := newMockBackend(seedRecords()...)
	d := newTestDirectory(b)
	d.Mount(context.Background())

	if _, err := d.SetAvailability(context.Background(), 4, "sleeping"); err == nil {
		t.Error("expected unknown availability rejected")
	}

	fb, err := d.SetAvailability(context.Background(), 2, "Offline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.availability[2] != AvailabilityOffline {
		t.Errorf("expected offline stored, got %q", b.availability[2])
	}
	if m, _ := d.Get(2); m.Status != StatusOffDuty {
		t.Errorf("expected refreshed status Off Duty, got %q", m.Status)
	}
	if fb.Message != "Staff availability is now Off Duty." {
		t.Errorf("unexpected message %q", fb.Message)
	}
}

func TestDirectory_UpdateFailure(t *testing.T) {
	b := newMockBackend(seedRecords()...)
	d := newTestDirectory(b)
	d.Mount(context.Background())

	b.failWith = &apiclient.APIError{Status: http.StatusConflict, Message: "stale record"}
	fb, err := d.Update(context.Background(), 1, FormFrom(d.Snapshot().Members[0]))
	if err == nil {
		t.Fatal("expected error")
	}
	if fb.Title != "Update Failed" || fb.Message != "stale record" {
		t.Errorf("unexpected feedback %+v", fb)
	}
}

package consultation

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/domain/patient"
	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/validation"
)

var matcher = listview.Matcher[View]{
	ID:       func(v View) int { return v.ID },
	Text:     func(v View) []string { return []string{v.PatientName, v.Doctor, v.Diagnosis} },
	Category: func(v View) string { return v.Doctor },
	Date:     func(v View) string { return v.Date },
}

// History is the patient-history page view-model. Its categorical filter is
// the attending doctor.
type History struct {
	backend Backend
	model   *listview.Model[View]
}

func NewHistory(backend Backend, opts listview.Options) *History {
	if opts.Name == "" {
		opts.Name = "consultations"
	}
	h := &History{backend: backend}
	h.model = listview.NewModel(func(ctx context.Context) ([]View, error) {
		records, err := backend.List(ctx)
		if err != nil {
			return nil, err
		}
		return NormalizeAll(records), nil
	}, opts)
	return h
}

func (h *History) Model() *listview.Model[View] { return h.model }

func (h *History) Mount(ctx context.Context) error   { return h.model.Mount(ctx) }
func (h *History) Refresh(ctx context.Context) error { return h.model.Refresh(ctx) }
func (h *History) Close()                            { h.model.Close() }

func (h *History) Search(q string)       { h.model.SetSearch(q) }
func (h *History) FilterDoctor(d string) { h.model.SetCategory(d) }
func (h *History) FilterDate(d string)   { h.model.SetDate(d) }
func (h *History) ClearFilters()         { h.model.ClearFilters() }

type Snapshot struct {
	State         listview.State[View]
	Consultations []View
	Stats         []listview.Stat
	Doctors       []string
}

func (h *History) Snapshot() Snapshot {
	st := h.model.State()
	now := h.model.Now()
	filtered := matcher.Filter(st.Items, st.Filters, now)
	return Snapshot{
		State:         st,
		Consultations: filtered,
		Stats:         Stats(st.Items, filtered, now),
		Doctors:       Doctors(st.Items),
	}
}

// Stats builds the history cards. Total Visits counts every consultation;
// This Week and Unique Patients follow the filters.
func Stats(all, visible []View, now time.Time) []listview.Stat {
	return []listview.Stat{
		{Key: "total", Title: "Total Visits", Value: listview.Count(all, nil), SubText: "All consultations"},
		{Key: "thisWeek", Title: "This Week", Value: listview.CountSince(visible, func(v View) string { return v.Date }, now, 7), SubText: "Recent consultations"},
		{Key: "uniquePatients", Title: "Unique Patients", Value: listview.Unique(visible, func(v View) string { return v.PatientName }), SubText: "Individual patients"},
	}
}

// Doctors lists the doctor filter options present in list.
func Doctors(list []View) []string {
	return listview.Distinct(list, func(v View) string {
		if v.Doctor == UnknownDoctor {
			return ""
		}
		return v.Doctor
	})
}

// Get returns the cached consultation with the given id.
func (h *History) Get(id int) (View, bool) {
	for _, v := range h.model.State().Items {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// TodayCount returns how many consultations fall on the model's today.
func (h *History) TodayCount() int {
	today := h.model.Now().Format(listview.DateLayout)
	return listview.Count(h.model.State().Items, func(v View) bool { return v.Date == today })
}

// Edit is the editable subset of a recorded consultation.
type Edit struct {
	Date         string `json:"date"`
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Remarks      string `json:"remarks"`
}

// EditFrom seeds an Edit with a view's current values.
func EditFrom(v View) Edit {
	return Edit{Date: v.Date, Symptoms: v.Symptoms, Diagnosis: v.Diagnosis, Prescription: v.Prescription, Remarks: v.Remarks}
}

func (e Edit) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Required(FieldDate, e.Date, "Date is required")
	errs.Required(FieldSymptoms, e.Symptoms, "Symptoms are required")
	errs.Required(FieldDiagnosis, e.Diagnosis, "Diagnosis is required")
	return errs
}

func (e Edit) request() Request {
	return Request{
		Symptoms:           strings.TrimSpace(e.Symptoms),
		Diagnosis:          strings.TrimSpace(e.Diagnosis),
		MedicinePrescribed: strings.TrimSpace(e.Prescription),
		Remarks:            strings.TrimSpace(e.Remarks),
		ConsultationDate:   e.Date,
	}
}

// Update validates e and saves it over consultation id.
func (h *History) Update(ctx context.Context, id int, e Edit) (listview.Feedback, error) {
	if errs := e.Validate(); errs.Any() {
		return listview.Feedback{}, errs
	}
	return h.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return h.backend.Update(ctx, id, e.request())
	}, listview.Feedback{
		Title:   "Consultation Updated",
		Message: "The consultation record has been updated successfully.",
	}, "Update Failed")
}

func (h *History) Delete(ctx context.Context, id int) (listview.Feedback, error) {
	return h.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return h.backend.Delete(ctx, id)
	}, listview.Feedback{
		Title:   "Consultation Deleted",
		Message: "The consultation record has been removed.",
	}, "Delete Failed")
}

// Intake drives the new-consultation screen: patient lookup, draft
// validation and submission.
type Intake struct {
	backend  Backend
	patients patient.Backend
	history  *History
	logger   zerolog.Logger
}

// NewIntake wires the screen. history may be nil; when set it is refreshed
// after every saved consultation.
func NewIntake(backend Backend, patients patient.Backend, history *History, logger zerolog.Logger) *Intake {
	return &Intake{
		backend:  backend,
		patients: patients,
		history:  history,
		logger:   logger.With().Str("view", "consultation_intake").Logger(),
	}
}

// LookupPatient fills the draft's patient fields from f.PatientID. A miss
// is a field error on the draft, not a returned error.
func (i *Intake) LookupPatient(ctx context.Context, f *Form) (bool, error) {
	f.ensureErrors()
	id, err := strconv.Atoi(f.PatientID)
	if err != nil || id <= 0 {
		f.Errors.Set(FieldPatientID, "Enter a valid patient ID")
		return false, nil
	}

	p, ok, err := patient.Find(ctx, i.patients, id)
	if err != nil {
		return false, err
	}
	if !ok {
		f.Errors.Set(FieldPatientID, "Patient not found")
		return false, nil
	}

	f.Name = p.FullName()
	f.Age = ""
	if p.Age > 0 {
		f.Age = strconv.Itoa(p.Age)
	}
	f.Gender = p.Gender
	for _, field := range []string{FieldPatientID, FieldName, FieldAge, FieldGender} {
		f.Errors.Clear(field)
	}
	return true, nil
}

// Save validates the draft and creates the consultation. An invalid draft
// returns validation.Errors and makes no backend call. On success the draft
// is reset; on failure it is left as it was.
func (i *Intake) Save(ctx context.Context, f *Form) (listview.Feedback, error) {
	if errs := f.Validate(); errs.Any() {
		return listview.Feedback{}, errs
	}

	if err := i.backend.Create(ctx, f.Request()); err != nil {
		i.logger.Warn().Err(err).Msg("save consultation failed")
		return listview.Feedback{
			Type:    listview.FeedbackError,
			Title:   "Save Failed",
			Message: apiclient.Message(err),
		}, err
	}

	f.Reset()
	if i.history != nil {
		if err := i.history.Refresh(ctx); err != nil && !errors.Is(err, listview.ErrClosed) {
			i.logger.Warn().Err(err).Msg("refresh history after save failed")
		}
	}
	return listview.Feedback{
		Type:    listview.FeedbackSuccess,
		Title:   "Consultation Saved",
		Message: "The consultation has been recorded successfully.",
	}, nil
}

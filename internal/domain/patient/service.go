package patient

import (
	"context"
	"strings"

	"github.com/clinicaflow/console/internal/platform/listview"
)

var matcher = listview.Matcher[Patient]{
	ID:       func(p Patient) int { return p.ID },
	Text:     func(p Patient) []string { return []string{p.FullName(), p.Address, p.ContactNo} },
	Category: func(p Patient) string { return p.Gender },
}

// Registry is the patient list page view-model: gender is its categorical
// filter.
type Registry struct {
	backend Backend
	model   *listview.Model[Patient]
}

func NewRegistry(backend Backend, opts listview.Options) *Registry {
	if opts.Name == "" {
		opts.Name = "patients"
	}
	r := &Registry{backend: backend}
	r.model = listview.NewModel(backend.List, opts)
	return r
}

func (r *Registry) Model() *listview.Model[Patient] { return r.model }

func (r *Registry) Mount(ctx context.Context) error   { return r.model.Mount(ctx) }
func (r *Registry) Refresh(ctx context.Context) error { return r.model.Refresh(ctx) }
func (r *Registry) Close() { r.model.Close() }

func (r *Registry) Search(q string) { r.model.SetSearch(q) }
func (r *Registry) FilterGender(g string) { r.model.SetCategory(g) }
func (r *Registry) ClearFilters() { r.model.ClearFilters() }

// Snapshot is a consistent read of the page.
type Snapshot struct {
	State    listview.State[Patient]
	Patients []Patient
	Stats    []listview.Stat
}

func (r *Registry) Snapshot() Snapshot {
	st := r.model.State()
	filtered := matcher.Filter(st.Items, st.Filters, r.model.Now())
	return Snapshot{State: st, Patients: filtered, Stats: Stats(st.Items, filtered)}
}

// Stats builds the Total/Male/Female cards. Total counts every patient;
// the gender cards count the visible ones.
func Stats(all, visible []Patient) []listview.Stat {
	isGender := func(g string) func(Patient) bool {
		return func(p Patient) bool { return strings.EqualFold(p.Gender, g) }
	}
	return []listview.Stat{
		{Key: "total", Title: "Total Patients", Value: listview.Count(all, nil), SubText: "Registered patients"},
		{Key: "male", Title: "Male Patients", Value: listview.Count(visible, isGender(GenderMale))},
		{Key: "female", Title: "Female Patients", Value: listview.Count(visible, isGender(GenderFemale))},
	}
}

// Add validates the draft and, if it passes, creates the patient. Invalid
// drafts return validation.Errors without touching the backend.
func (r *Registry) Add(ctx context.Context, f *Form) (listview.Feedback, error) {
	p, errs := f.Patient(0)
	if errs.Any() {
		return listview.Feedback{}, errs
	}
	return r.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		_, err := r.backend.Create(ctx, p)
		return err
	}, listview.Feedback{
		Title:   "Patient Added",
		Message: "The patient has been successfully registered.",
	}, "Add Failed")
}

// Update validates the draft and replaces patient id.
func (r *Registry) Update(ctx context.Context, id int, f *Form) (listview.Feedback, error) {
	p, errs := f.Patient(id)
	if errs.Any() {
		return listview.Feedback{}, errs
	}
	return r.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return r.backend.Update(ctx, id, p)
	}, listview.Feedback{
		Title:   "Patient Updated",
		Message: "Patient details have been successfully updated.",
	}, "Update Failed")
}

func (r *Registry) Delete(ctx context.Context, id int) (listview.Feedback, error) {
	return r.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return r.backend.Delete(ctx, id)
	}, listview.Feedback{
		Title:   "Patient Deleted",
		Message: "The patient record has been removed.",
	}, "Delete Failed")
}

// Get returns the cached patient with the given id.
func (r *Registry) Get(id int) (Patient, bool) {
	for _, p := range r.model.State().Items {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}

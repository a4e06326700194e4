package queue

import (
	"context"
	"strconv"
	"strings"

	"github.com/clinicaflow/console/internal/domain/patient"
	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/validation"
)

// Search matches the patient and doctor names; an all-digit query matches
// the ticket number exactly.
var matcher = listview.Matcher[View]{
	ID:       func(v View) int { return v.QueueNumber },
	Text:     func(v View) []string { return []string{v.Name, v.doctor()} },
	Category: func(v View) string { return v.Status },
}

// Board is the queue page view-model. It is refreshed by a poller and its
// categorical filter is the queue status.
type Board struct {
	backend Backend
	model   *listview.Model[View]
}

func NewBoard(backend Backend, opts listview.Options) *Board {
	if opts.Name == "" {
		opts.Name = "queue"
	}
	b := &Board{backend: backend}
	b.model = listview.NewModel(func(ctx context.Context) ([]View, error) {
		entries, err := backend.List(ctx)
		if err != nil {
			return nil, err
		}
		return NormalizeAll(entries), nil
	}, opts)
	return b
}

func (b *Board) Model() *listview.Model[View] { return b.model }

func (b *Board) Mount(ctx context.Context) error {
	if err := b.model.Mount(ctx); err != nil {
		b.loadFailed()
		return err
	}
	return nil
}

// Refresh re-fetches the queue. A failed load also raises the load-failure
// feedback.
func (b *Board) Refresh(ctx context.Context) error {
	if err := b.model.Refresh(ctx); err != nil {
		b.loadFailed()
		return err
	}
	return nil
}

func (b *Board) loadFailed() {
	b.model.SetFeedback(listview.Feedback{
		Type:    listview.FeedbackError,
		Title:   "Failed to Load Queue",
		Message: "Unable to fetch queue data. Please try again.",
	})
}

func (b *Board) Close() { b.model.Close() }

func (b *Board) Search(q string)       { b.model.SetSearch(q) }
func (b *Board) FilterStatus(s string) { b.model.SetCategory(s) }
func (b *Board) ClearFilters()         { b.model.ClearFilters() }

type Snapshot struct {
	State      listview.State[View]
	Entries    []View
	Stats      []listview.Stat
	NowServing string
}

func (b *Board) Snapshot() Snapshot {
	st := b.model.State()
	filtered := matcher.Filter(st.Items, st.Filters, b.model.Now())
	return Snapshot{
		State:      st,
		Entries:    filtered,
		Stats:      Stats(st.Items),
		NowServing: NowServing(st.Items),
	}
}

// Stats counts the whole queue per status.
func Stats(all []View) []listview.Stat {
	buckets := listview.Buckets(all, func(v View) string { return v.Status })
	return []listview.Stat{
		{Key: "total", Title: "Total Patients", Value: len(all), SubText: "Registered today"},
		{Key: "waiting", Title: "Waiting", Value: buckets[StatusWaiting], SubText: "In queue"},
		{Key: "serving", Title: "Serving", Value: buckets[StatusServing], SubText: "Called to the counter"},
		{Key: "consulting", Title: "Consulting", Value: buckets[StatusConsulting], SubText: "In progress"},
		{Key: "completed", Title: "Completed", Value: buckets[StatusCompleted], SubText: "Discharged"},
	}
}

// Get returns the cached row with the given entry id.
func (b *Board) Get(id int) (View, bool) {
	for _, v := range b.model.State().Items {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// Edit is the queue row edit dialog.
type Edit struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Age            string `json:"age"`
	Status         string `json:"status"`
	AssignedDoctor string `json:"assignedDoctor"`
}

// EditFrom seeds an Edit from a display row.
func EditFrom(v View) Edit {
	e := Edit{Status: v.Status}
	if p := v.source.Patient; p != nil {
		e.FirstName, e.LastName = p.FirstName, p.LastName
	} else {
		e.FirstName, e.LastName = patient.SplitName(v.Name)
	}
	if v.Age > 0 {
		e.Age = strconv.Itoa(v.Age)
	}
	if v.AssignedTo != Unassigned {
		e.AssignedDoctor = v.AssignedTo
	}
	return e
}

func (e Edit) Validate() validation.Errors {
	errs := validation.Errors{}
	const missing = "Please fill in all required fields"
	errs.Required("firstName", e.FirstName, missing)
	errs.Required("lastName", e.LastName, missing)
	if e.Status != "" && !ValidStatus(e.Status) {
		errs.Set("status", "Unknown queue status")
	}
	if _, dropped := validation.DigitsOnly(e.Age); dropped {
		errs.Set("age", "Age can only contain numbers")
	}
	return errs
}

// apply overlays the edit on the backend entry. The rest of the entry is
// sent back unchanged.
func (e Edit) apply(src Entry) Entry {
	out := src
	if e.Status != "" {
		out.Status = e.Status
	}

	doctor := strings.TrimSpace(e.AssignedDoctor)
	if doctor == "" || doctor == Unassigned {
		out.AssignedDoctor = nil
	} else {
		out.AssignedDoctor = &doctor
	}

	var p patient.Patient
	if src.Patient != nil {
		p = *src.Patient
	}
	p.FirstName = strings.TrimSpace(e.FirstName)
	p.LastName = strings.TrimSpace(e.LastName)
	if age, err := strconv.Atoi(e.Age); err == nil && age > 0 {
		p.Age = age
	}
	out.Patient = &p
	return out
}

// Update sends the edited entry. The row must be in the cached list.
func (b *Board) Update(ctx context.Context, id int, e Edit) (listview.Feedback, error) {
	if errs := e.Validate(); errs.Any() {
		return listview.Feedback{}, errs
	}
	v, ok := b.Get(id)
	if !ok {
		return listview.Feedback{}, ErrEntryNotFound
	}
	payload := e.apply(v.source)
	return b.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return b.backend.Update(ctx, id, payload)
	}, listview.Feedback{
		Title:   "Patient Updated",
		Message: "Patient details have been successfully updated.",
	}, "Update Failed")
}

func (b *Board) Delete(ctx context.Context, id int) (listview.Feedback, error) {
	return b.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return b.backend.Delete(ctx, id)
	}, listview.Feedback{
		Title:   "Patient Deleted",
		Message: "Patient has been successfully removed from the queue.",
	}, "Delete Failed")
}

// Join validates the walk-in form and takes a ticket. The board is
// refreshed when the join succeeds.
func (b *Board) Join(ctx context.Context, f *patient.Form) (Ticket, error) {
	p, errs := f.Patient(0)
	if errs.Any() {
		return Ticket{}, errs
	}
	req := JoinRequest{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Age:       p.Age,
		Gender:    p.Gender,
		ContactNo: p.ContactNo,
		Address:   p.Address,
	}

	var ticket Ticket
	err := b.model.Mutate(ctx, func(ctx context.Context) error {
		var err error
		ticket, err = b.backend.Join(ctx, req)
		return err
	})
	if err != nil {
		return Ticket{}, err
	}
	if ticket.PatientName == "" {
		ticket.PatientName = p.FullName()
	}
	return ticket, nil
}

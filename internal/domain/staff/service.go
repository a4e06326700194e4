package staff

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/clinicaflow/console/internal/domain/consultation"
	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/validation"
)

// statusAliases maps a status filter to the stored values it accepts.
var statusAliases = map[string][]string{
	StatusAvailable: {AvailabilityAvailable},
	StatusBusy:      {AvailabilityBusy},
	StatusOffDuty:   {AvailabilityOffline, "off duty"},
}

var baseMatcher = listview.Matcher[Member]{
	ID: func(m Member) int { return m.ID },
	Text: func(m Member) []string {
		return []string{m.Name, m.Email, m.Specialty, m.Role, m.Department}
	},
	Category: func(m Member) string { return m.Role },
}

// MatchStatus applies the availability filter, accepting the stored
// aliases of each display status.
func MatchStatus(m Member, filter string) bool {
	if filter == "" || filter == listview.CategoryAll {
		return true
	}
	accepted, ok := statusAliases[filter]
	if !ok {
		accepted = []string{strings.ToLower(filter)}
	}
	for _, want := range accepted {
		if strings.EqualFold(m.Availability, want) || strings.EqualFold(m.Status, want) {
			return true
		}
	}
	return false
}

// Directory is the staff page view-model. The model's category filter is
// the role; the availability filter is a second categorical dimension.
type Directory struct {
	backend Backend
	model   *listview.Model[Member]

	mu     sync.Mutex
	status string
}

func NewDirectory(backend Backend, opts listview.Options) *Directory {
	if opts.Name == "" {
		opts.Name = "staff"
	}
	d := &Directory{backend: backend, status: listview.CategoryAll}
	d.model = listview.NewModel(func(ctx context.Context) ([]Member, error) {
		records, err := backend.List(ctx)
		if err != nil {
			return nil, err
		}
		return NormalizeAll(records), nil
	}, opts)
	return d
}

func (d *Directory) Model() *listview.Model[Member] { return d.model }

func (d *Directory) Mount(ctx context.Context) error   { return d.model.Mount(ctx) }
func (d *Directory) Refresh(ctx context.Context) error { return d.model.Refresh(ctx) }
func (d *Directory) Close()                            { d.model.Close() }

func (d *Directory) Search(q string)        { d.model.SetSearch(q) }
func (d *Directory) FilterRole(role string) { d.model.SetCategory(role) }

func (d *Directory) FilterStatus(status string) {
	if status == "" {
		status = listview.CategoryAll
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

func (d *Directory) StatusFilter() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Directory) ClearFilters() {
	d.model.ClearFilters()
	d.FilterStatus(listview.CategoryAll)
}

// HasActiveFilters includes the availability filter.
func (d *Directory) HasActiveFilters() bool {
	return d.model.State().Filters.Active() || d.StatusFilter() != listview.CategoryAll
}

type Snapshot struct {
	State        listview.State[Member]
	Members      []Member
	Stats        []listview.Stat
	StatusFilter string
}

func (d *Directory) Snapshot() Snapshot {
	st := d.model.State()
	status := d.StatusFilter()
	m := baseMatcher.And(func(m Member) bool { return MatchStatus(m, status) })
	filtered := m.Filter(st.Items, st.Filters, d.model.Now())
	return Snapshot{State: st, Members: filtered, Stats: Stats(st.Items, filtered), StatusFilter: status}
}

// Stats builds the directory cards. Total Staff counts everyone; the role
// and availability cards follow the filters.
func Stats(all, visible []Member) []listview.Stat {
	role := func(r string) func(Member) bool {
		return func(m Member) bool { return strings.EqualFold(m.Role, r) }
	}
	return []listview.Stat{
		{Key: "total", Title: "Total Staff", Value: listview.Count(all, nil), SubText: "All medical staff"},
		{Key: "doctors", Title: "Doctors", Value: listview.Count(visible, role(RoleDoctor)), SubText: "Medical physicians"},
		{Key: "nurses", Title: "Nurses", Value: listview.Count(visible, role(RoleNurse)), SubText: "Nursing staff"},
		{Key: "available", Title: "Available Now", Value: listview.Count(visible, func(m Member) bool {
			return strings.EqualFold(m.Availability, AvailabilityAvailable)
		}), SubText: "Currently active"},
	}
}

// Get returns the cached member with the given staff id.
func (d *Directory) Get(id int) (Member, bool) {
	for _, m := range d.model.State().Items {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// DoctorOptions lists the loaded doctors for the consultation doctor picker.
func (d *Directory) DoctorOptions() []consultation.Doctor {
	out := make([]consultation.Doctor, 0)
	for _, m := range d.model.State().Items {
		if strings.EqualFold(m.Role, RoleDoctor) {
			out = append(out, consultation.Doctor{Value: strconv.Itoa(m.ID), Label: m.Name})
		}
	}
	return out
}

func (d *Directory) Add(ctx context.Context, f Form) (listview.Feedback, error) {
	if errs := f.Validate(); errs.Any() {
		return listview.Feedback{}, errs
	}
	return d.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return d.backend.Create(ctx, f.Request())
	}, listview.Feedback{
		Title:   "Staff Added",
		Message: "The staff member has been added.",
	}, "Add Failed")
}

func (d *Directory) Update(ctx context.Context, id int, f Form) (listview.Feedback, error) {
	if errs := f.Validate(); errs.Any() {
		return listview.Feedback{}, errs
	}
	return d.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return d.backend.Update(ctx, id, f.Request())
	}, listview.Feedback{
		Title:   "Staff Updated",
		Message: "Staff details have been successfully updated.",
	}, "Update Failed")
}

// SetAvailability stores one of "available", "busy" or "offline".
func (d *Directory) SetAvailability(ctx context.Context, id int, availability string) (listview.Feedback, error) {
	availability = strings.ToLower(strings.TrimSpace(availability))
	if !slices.Contains([]string{AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline}, availability) {
		errs := validation.Errors{}
		errs.Set("availability", "Availability must be available, busy or offline")
		return listview.Feedback{}, errs
	}
	return d.model.MutateWithFeedback(ctx, func(ctx context.Context) error {
		return d.backend.SetAvailability(ctx, id, availability)
	}, listview.Feedback{
		Title:   "Availability Updated",
		Message: "Staff availability is now " + statusOf(availability) + ".",
	}, "Update Failed")
}

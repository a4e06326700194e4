package staff

import (
	"sort"
	"strings"
)

// Normalize maps a backend record to a directory row.
func Normalize(r Record) Member {
	m := Member{
		ID:           r.StaffID,
		Name:         strings.TrimSpace(r.Name),
		Role:         r.Role,
		Specialty:    orDefault(r.Specialty, NoSpecialty),
		Contact:      orDefault(r.ContactNo, NoContact),
		Department:   orDefault(r.Department, DefaultDepartment),
		Availability: orDefault(r.Availability, StatusAvailable),
		Age:          r.Age,
		Gender:       r.Gender,
	}
	m.Status = statusOf(m.Availability)
	if a := r.UserAccount; a != nil {
		m.Email = a.Username
		m.AccountID = a.AccountID
	}
	return m
}

// statusOf maps a stored availability to its display status. Unknown
// values are shown as stored.
func statusOf(availability string) string {
	switch strings.ToLower(strings.TrimSpace(availability)) {
	case AvailabilityAvailable:
		return StatusAvailable
	case AvailabilityBusy:
		return StatusBusy
	case AvailabilityOffline, strings.ToLower(StatusOffDuty):
		return StatusOffDuty
	}
	return availability
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// NormalizeAll maps every record, ordered by staff id.
func NormalizeAll(records []Record) []Member {
	out := make([]Member, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

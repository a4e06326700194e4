package queue

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "03:04 PM"

var arrivalLayouts = []string{
	clockLayout,
	"15:04:05",
	"15:04:05.999999999",
	"15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Normalize maps a backend entry to its display row.
func Normalize(e Entry) View {
	v := View{
		ID:          e.ID,
		QueueNumber: int(e.QueueNumber),
		Name:        UnknownPatient,
		AssignedTo:  Unassigned,
		ArrivalTime: arrivalClock(e.ArrivalTime),
		Status:      strings.ToUpper(strings.TrimSpace(e.Status)),
		source:      e,
	}
	if p := e.Patient; p != nil {
		v.PatientID = p.ID
		if name := p.FullName(); name != "" {
			v.Name = name
		}
		v.Initials = p.Initials()
		v.Age = p.Age
		v.Gender = p.Gender
	}
	if e.AssignedDoctor != nil {
		if d := strings.TrimSpace(*e.AssignedDoctor); d != "" {
			v.AssignedTo = d
		}
	}
	return v
}

// arrivalClock renders the arrival as a 12-hour clock. Values in no known
// layout are shown as received.
func arrivalClock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoArrivalTime
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(time.Local).Format(clockLayout)
	}
	for _, layout := range arrivalLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.Format(clockLayout)
		}
	}
	return raw
}

// NormalizeAll maps every entry and orders the rows by ticket number.
func NormalizeAll(entries []Entry) []View {
	out := make([]View, 0, len(entries))
	for _, e := range entries {
		out = append(out, Normalize(e))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QueueNumber < out[j].QueueNumber })
	return out
}

// NowServing returns the ticket on the "now serving" display: the first
// entry being served, then the first in consultation, then the first
// waiting. "--" when none apply.
func NowServing(list []View) string {
	for _, status := range []string{StatusServing, StatusConsulting, StatusWaiting} {
		for _, v := range list {
			if v.Status == status {
				return strconv.Itoa(v.QueueNumber)
			}
		}
	}
	return NoneServing
}

package consultation

import (
	"sort"
	"strings"
	"time"

	"github.com/clinicaflow/console/internal/domain/patient"
	"github.com/clinicaflow/console/internal/platform/listview"
)

const timeLayout = "03:04 PM"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Normalize maps a backend record to its display shape. It never fails:
// missing nested objects become the fallback literals.
func Normalize(r Record) View {
	return normalizeIn(r, time.Local)
}

func normalizeIn(r Record, loc *time.Location) View {
	v := View{
		ID:           r.ConsultationID,
		PatientName:  UnknownPatient,
		Gender:       NotAvailable,
		Doctor:       UnknownDoctor,
		Time:         NoTime,
		Diagnosis:    r.Diagnosis,
		Symptoms:     r.Symptoms,
		Prescription: r.MedicinePrescribed,
		Remarks:      r.Remarks,
	}

	if p := r.Patient; p != nil {
		v.PatientID = p.ID
		if name := p.FullName(); name != "" {
			v.PatientName = name
		}
		if p.Gender != "" {
			v.Gender = p.Gender
		}
		v.Age = p.Age
	}

	if s := r.MedicalStaff; s != nil && strings.TrimSpace(s.Name) != "" {
		v.Doctor = strings.TrimSpace(s.Name)
	}

	v.Date, v.Time = splitDate(r.ConsultationDate, loc)
	return v
}

// splitDate extracts the calendar day and, when present, the clock time. A
// bare YYYY-MM-DD is read as midnight in loc so the day never shifts.
func splitDate(raw string, loc *time.Location) (date, clock string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", NoTime
	}

	if len(raw) == len(listview.DateLayout) {
		d, err := listview.ParseDay(raw, loc)
		if err != nil {
			return "", NoTime
		}
		return d.Format(listview.DateLayout), NoTime
	}

	for _, layout := range timestampLayouts {
		var t time.Time
		var err error
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, raw)
			t = t.In(loc)
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err == nil {
			return t.Format(listview.DateLayout), t.Format(timeLayout)
		}
	}

	// Unknown suffix: keep a leading calendar day if there is one.
	if len(raw) > len(listview.DateLayout) {
		if d, err := listview.ParseDay(raw[:len(listview.DateLayout)], loc); err == nil {
			return d.Format(listview.DateLayout), NoTime
		}
	}
	return "", NoTime
}

// Record rebuilds a backend-shaped record from a view. Normalizing the
// result yields the same view.
func (v View) Record() Record {
	first, last := patient.SplitName(v.PatientName)
	r := Record{
		ConsultationID: v.ID,
		Patient: &patient.Patient{
			ID:        v.PatientID,
			FirstName: first,
			LastName:  last,
			Age:       v.Age,
			Gender:    v.Gender,
		},
		MedicalStaff:       &StaffRef{Name: v.Doctor},
		ConsultationDate:   v.Date,
		Diagnosis:          v.Diagnosis,
		Symptoms:           v.Symptoms,
		MedicinePrescribed: v.Prescription,
		Remarks:            v.Remarks,
	}
	if v.Date != "" && v.Time != NoTime && v.Time != "" {
		if t, err := time.Parse(timeLayout, v.Time); err == nil {
			r.ConsultationDate = v.Date + "T" + t.Format("15:04:05")
		}
	}
	return r
}

// NormalizeAll maps every record and sorts newest first by id.
func NormalizeAll(records []Record) []View {
	out := make([]View, 0, len(records))
	for _, r := range records {
		out = append(out, Normalize(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

package listview

import (
	"strconv"
	"strings"
	"time"
)

const (
	CategoryAll = "all"

	DateThisWeek  = "thisWeek"
	DateThisMonth = "thisMonth"
	DateToday     = "today"

	// DateLayout is the calendar-day format used by every date filter.
	DateLayout = "2006-01-02"
)

// FilterState is the per-page search and filter input.
type FilterState struct {
	SearchQuery string `json:"search"`
	Category    string `json:"category"`
	DateFilter  string `json:"date"`
}

// DefaultFilters returns the cleared filter state.
func DefaultFilters() FilterState {
	return FilterState{Category: CategoryAll}
}

// Clear resets every filter to its default.
func (f *FilterState) Clear() {
	*f = DefaultFilters()
}

// Active reports whether any filter narrows the list.
func (f FilterState) Active() bool {
	return f.SearchQuery != "" || (f.Category != "" && f.Category != CategoryAll) || f.DateFilter != ""
}

// Matcher decides whether a record passes a FilterState. Accessors left nil
// disable the corresponding dimension: a nil Category ignores the
// categorical filter, a nil Date makes every record dateless.
type Matcher[T any] struct {
	ID       func(T) int
	Text     func(T) []string
	Category func(T) string
	Date     func(T) string

	extra []func(T) bool
}

// And returns a copy of m that additionally requires pred.
func (m Matcher[T]) And(pred func(T) bool) Matcher[T] {
	extra := make([]func(T) bool, 0, len(m.extra)+1)
	extra = append(extra, m.extra...)
	m.extra = append(extra, pred)
	return m
}

// Match reports whether rec passes search, category, date and every extra
// predicate.
func (m Matcher[T]) Match(rec T, f FilterState, today time.Time) bool {
	var id int
	if m.ID != nil {
		id = m.ID(rec)
	}
	var text []string
	if m.Text != nil {
		text = m.Text(rec)
	}
	if !MatchSearch(id, text, f.SearchQuery) {
		return false
	}

	if m.Category != nil && !MatchCategory(m.Category(rec), f.Category) {
		return false
	}

	var date string
	if m.Date != nil {
		date = m.Date(rec)
	}
	if !MatchDate(date, f.DateFilter, today) {
		return false
	}

	for _, pred := range m.extra {
		if !pred(rec) {
			return false
		}
	}
	return true
}

// Filter returns the records of list that match f, in order. The result
// never aliases list.
func (m Matcher[T]) Filter(list []T, f FilterState, today time.Time) []T {
	out := make([]T, 0, len(list))
	for _, rec := range list {
		if m.Match(rec, f, today) {
			out = append(out, rec)
		}
	}
	return out
}

// MatchSearch applies the free-text query. An all-digit query matches the
// numeric id exactly; anything else is a case-insensitive substring match
// over fields.
func MatchSearch(id int, fields []string, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if isDigits(query) {
		n, err := strconv.Atoi(query)
		return err == nil && n == id
	}
	q := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// MatchCategory is exact, case-sensitive equality unless filter is "all" or
// empty.
func MatchCategory(value, filter string) bool {
	return filter == "" || filter == CategoryAll || value == filter
}

// MatchDate applies the date selector to a YYYY-MM-DD date. today is taken
// at calendar-day granularity in its own location.
func MatchDate(date, filter string, today time.Time) bool {
	if filter == "" {
		return true
	}
	if date == "" {
		return false
	}

	day, err := ParseDay(date, today.Location())
	if err != nil {
		return false
	}
	start := StartOfDay(today)

	switch filter {
	case DateThisWeek:
		return !day.Before(start.AddDate(0, 0, -7)) && !day.After(start)
	case DateThisMonth:
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		return !day.Before(first) && !day.After(start)
	case DateToday:
		return day.Equal(start)
	default:
		return date == filter
	}
}

// ParseDay reads a YYYY-MM-DD string as midnight in loc.
func ParseDay(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// StartOfDay truncates t to local midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

package listview

import "time"

// Stat is one summary card.
type Stat struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Value   int    `json:"value"`
	SubText string `json:"sub_text,omitempty"`
}

// Count returns the number of records satisfying pred, or len(list) when
// pred is nil.
func Count[T any](list []T, pred func(T) bool) int {
	if pred == nil {
		return len(list)
	}
	n := 0
	for _, rec := range list {
		if pred(rec) {
			n++
		}
	}
	return n
}

// CountSince counts records whose YYYY-MM-DD date is on or after the
// calendar day days before now. Dateless or unparsable records are not
// counted.
func CountSince[T any](list []T, date func(T) string, now time.Time, days int) int {
	cutoff := StartOfDay(now).AddDate(0, 0, -days)
	return Count(list, func(rec T) bool {
		d := date(rec)
		if d == "" {
			return false
		}
		day, err := ParseDay(d, now.Location())
		return err == nil && !day.Before(cutoff)
	})
}

// Unique returns the number of distinct non-empty keys in list.
func Unique[T any](list []T, key func(T) string) int {
	seen := make(map[string]struct{}, len(list))
	for _, rec := range list {
		if k := key(rec); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Buckets counts records per key.
func Buckets[T any](list []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, rec := range list {
		out[key(rec)]++
	}
	return out
}

// Distinct returns the distinct non-empty keys of list in first-seen order.
func Distinct[T any](list []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0)
	for _, rec := range list {
		k := key(rec)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

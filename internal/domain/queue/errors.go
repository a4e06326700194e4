package queue

import "errors"

// ErrEntryNotFound is returned when an edit targets a row that is not in the
// loaded queue.
var ErrEntryNotFound = errors.New("queue entry not found")

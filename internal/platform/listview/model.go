// Package listview is the page view-model core shared by every list screen:
// the fetch lifecycle, the search/filter predicate engine and the summary
// card aggregator.
//
// A Model owns one page's fetched list. Network calls run outside its lock;
// every state transition happens under it. Each fetch is tagged with a
// generation number and only the newest issued fetch may apply its result,
// so a slow poll tick can never overwrite the refresh that followed a
// mutation. After Close, late responses are dropped.
package listview

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/telemetry"
)

// Status is the fetch lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrClosed is returned by operations on a closed Model.
var ErrClosed = errors.New("view model closed")

// FetchFunc loads and normalizes the full list.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Feedback types.
const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"
)

// Feedback is the outcome message shown after a mutation.
type Feedback struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Options configures a Model.
type Options struct {
	// Name labels logs and metrics.
	Name   string
	Logger zerolog.Logger
	// Now overrides the clock used for "today" and load timestamps.
	Now func() time.Time
}

// State is a consistent copy of a Model's fields.
type State[T any] struct {
	Status   Status
	Items    []T
	Error    string
	Feedback *Feedback
	Filters  FilterState
	LoadedAt time.Time
}

// Model is safe for concurrent use.
type Model[T any] struct {
	name   string
	fetch  FetchFunc[T]
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	status   Status
	items    []T
	errMsg   string
	feedback *Feedback
	filters  FilterState
	loadedAt time.Time
	issued   uint64
	closed   bool
	onChange []func([]T)

	// notifyMu orders listener calls; notified is the newest generation
	// delivered to them.
	notifyMu sync.Mutex
	notified uint64
}

func NewModel[T any](fetch FetchFunc[T], opts Options) *Model[T] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Model[T]{
		name:    opts.Name,
		fetch:   fetch,
		logger:  opts.Logger.With().Str("view", opts.Name).Logger(),
		now:     now,
		status:  StatusIdle,
		filters: DefaultFilters(),
	}
}

// Name returns the model's label.
func (m *Model[T]) Name() string {
	return m.name
}

// Now returns the model's clock reading.
func (m *Model[T]) Now() time.Time {
	return m.now()
}

// Mount issues the first fetch. It is a no-op once the model has left idle.
func (m *Model[T]) Mount(ctx context.Context) error {
	m.mu.Lock()
	idle := m.status == StatusIdle
	m.mu.Unlock()
	if !idle {
		return nil
	}
	return m.Refresh(ctx)
}

// Refresh re-fetches the list. On failure the previous list is kept and the
// error message is stored. A result superseded by a newer fetch, or landing
// after Close, is discarded and Refresh returns nil.
func (m *Model[T]) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.issued++
	gen := m.issued
	m.status = StatusLoading
	m.mu.Unlock()

	items, err := m.fetch(ctx)

	m.mu.Lock()
	if m.closed || gen != m.issued {
		m.mu.Unlock()
		telemetry.RecordRefresh(m.name, "stale")
		m.logger.Debug().Uint64("generation", gen).Msg("discarding stale fetch")
		return nil
	}

	if err != nil {
		m.status = StatusError
		m.errMsg = apiclient.Message(err)
		m.mu.Unlock()
		telemetry.RecordRefresh(m.name, "error")
		m.logger.Warn().Err(err).Msg("fetch failed")
		return err
	}

	m.items = items
	m.status = StatusReady
	m.errMsg = ""
	m.loadedAt = m.now()
	listeners := slices.Clone(m.onChange)
	snapshot := slices.Clone(items)
	m.mu.Unlock()

	telemetry.RecordRefresh(m.name, "ok")
	m.notify(gen, listeners, snapshot)
	return nil
}

// notify delivers items to listeners unless a newer generation has already
// been delivered.
func (m *Model[T]) notify(gen uint64, listeners []func([]T), items []T) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	if gen <= m.notified {
		m.logger.Debug().Uint64("generation", gen).Msg("skipping superseded change notification")
		return
	}
	m.notified = gen
	for _, fn := range listeners {
		fn(items)
	}
}

// Mutate runs call and, only if it succeeds, a sequential Refresh. A failed
// call leaves the model untouched and its error is returned. A refresh
// failure after a successful call is recorded in the model's state, not
// returned.
func (m *Model[T]) Mutate(ctx context.Context, call func(ctx context.Context) error) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if err := call(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("mutation failed")
		return err
	}

	if err := m.Refresh(ctx); err != nil && !errors.Is(err, ErrClosed) {
		m.logger.Warn().Err(err).Msg("refresh after mutation failed")
	}
	return nil
}

// MutateWithFeedback is Mutate plus the outcome message: ok on success, or
// an error Feedback titled failTitle carrying the backend's message.
func (m *Model[T]) MutateWithFeedback(ctx context.Context, call func(ctx context.Context) error, ok Feedback, failTitle string) (Feedback, error) {
	err := m.Mutate(ctx, call)
	fb := ok
	if err != nil {
		fb = Feedback{Type: FeedbackError, Title: failTitle, Message: apiclient.Message(err)}
	} else if fb.Type == "" {
		fb.Type = FeedbackSuccess
	}
	m.SetFeedback(fb)
	return fb, err
}

func (m *Model[T]) SetFeedback(fb Feedback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = &fb
}

func (m *Model[T]) DismissFeedback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = nil
}

// SetSearch, SetCategory, SetDate and ClearFilters are local only.

func (m *Model[T]) SetSearch(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters.SearchQuery = q
}

func (m *Model[T]) SetCategory(c string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c == "" {
		c = CategoryAll
	}
	m.filters.Category = c
}

func (m *Model[T]) SetDate(d string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters.DateFilter = d
}

// SetFilters replaces the whole filter state.
func (m *Model[T]) SetFilters(f FilterState) {
	if f.Category == "" {
		f.Category = CategoryAll
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = f
}

func (m *Model[T]) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters.Clear()
}

// OnChange registers fn to run, outside the lock, with every freshly
// applied list.
func (m *Model[T]) OnChange(fn func([]T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// State returns a copy of the model's current state.
func (m *Model[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State[T]{
		Status:   m.status,
		Items:    slices.Clone(m.items),
		Error:    m.errMsg,
		Filters:  m.filters,
		LoadedAt: m.loadedAt,
	}
	if m.feedback != nil {
		fb := *m.feedback
		s.Feedback = &fb
	}
	return s
}

// Close marks the model unmounted. In-flight fetches finish but their
// results are dropped.
func (m *Model[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

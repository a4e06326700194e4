package listview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/validation"
)

func queryContext(target string) echo.Context {
	e := echo.New()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
}

func TestApplyQuery(t *testing.T) {
	m := NewModel(func(context.Context) ([]int, error) { return nil, nil }, Options{Logger: zerolog.Nop()})
	m.SetDate(DateToday)
	m.SetFeedback(Feedback{Type: FeedbackSuccess, Title: "Saved"})

	ApplyQuery(queryContext("/x?search=ana&doctor=Dr.%20Cruz"), m, "doctor")
	f := m.State().Filters
	if f.SearchQuery != "ana" || f.Category != "Dr. Cruz" || f.DateFilter != DateToday {
		t.Errorf("unexpected filters %+v", f)
	}

	ApplyQuery(queryContext("/x?clear=1&dismiss=1"), m, "doctor")
	s := m.State()
	if s.Filters.Active() {
		t.Errorf("expected cleared filters, got %+v", s.Filters)
	}
	if s.Feedback != nil {
		t.Errorf("expected feedback dismissed, got %+v", s.Feedback)
	}
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validation.Errors{"name": "required"}, http.StatusUnprocessableEntity},
		{"client error", &apiclient.APIError{Status: http.StatusConflict, Message: "exists"}, http.StatusConflict},
		{"server error", &apiclient.APIError{Status: http.StatusInternalServerError, Message: "boom"}, http.StatusBadGateway},
		{"network", &apiclient.NetworkError{Method: "GET", Path: "/api/queue", Err: errors.New("refused")}, http.StatusServiceUnavailable},
		{"closed", ErrClosed, http.StatusServiceUnavailable},
		{"other", errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPError(tt.err).Code; got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	c := queryContext("/")
	c.SetParamNames("id")
	c.SetParamValues("12")
	if id, err := ParseID(c, "id"); err != nil || id != 12 {
		t.Errorf("expected 12, got %d (%v)", id, err)
	}

	c.SetParamValues("0")
	if _, err := ParseID(c, "id"); err == nil {
		t.Error("expected error for non-positive id")
	}
}

func TestNewListResponse_EmptyMessageOnlyWhenReady(t *testing.T) {
	c := queryContext("/?limit=1")
	ready := State[int]{Status: StatusReady, Filters: DefaultFilters()}
	resp := NewListResponse(c, ready, nil, []int{}, "Nothing here")
	if resp.EmptyMessage != "Nothing here" {
		t.Errorf("expected empty message, got %q", resp.EmptyMessage)
	}

	loading := State[int]{Status: StatusLoading, Filters: DefaultFilters()}
	if resp := NewListResponse(c, loading, nil, []int{}, "Nothing here"); resp.EmptyMessage != "" {
		t.Errorf("expected no empty message while loading, got %q", resp.EmptyMessage)
	}

	resp = NewListResponse(c, ready, nil, []int{1, 2, 3}, "Nothing here")
	if resp.Total != 3 || resp.Limit != 1 || !resp.HasMore {
		t.Errorf("unexpected page %+v", resp.Response)
	}
}

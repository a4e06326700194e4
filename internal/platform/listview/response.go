package listview

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/validation"
	"github.com/clinicaflow/console/pkg/pagination"
)

// ListResponse is the JSON shape of every list page: lifecycle state, stat
// cards and filters alongside one page of the filtered records.
type ListResponse struct {
	Status           Status      `json:"status"`
	Error            string      `json:"error,omitempty"`
	Feedback         *Feedback   `json:"feedback,omitempty"`
	Stats            []Stat      `json:"stats"`
	Filters          FilterState `json:"filters"`
	HasActiveFilters bool        `json:"has_active_filters"`
	EmptyMessage     string      `json:"empty_message,omitempty"`
	*pagination.Response
}

// NewListResponse pages filtered according to the request's limit/offset.
func NewListResponse[T any](c echo.Context, state State[T], stats []Stat, filtered []T, emptyMessage string) *ListResponse {
	resp := &ListResponse{
		Status:           state.Status,
		Error:            state.Error,
		Feedback:         state.Feedback,
		Stats:            stats,
		Filters:          state.Filters,
		HasActiveFilters: state.Filters.Active(),
		Response:         pagination.Page(filtered, pagination.FromContext(c)),
	}
	if state.Status == StatusReady && len(filtered) == 0 {
		resp.EmptyMessage = emptyMessage
	}
	return resp
}

// ApplyQuery copies the search/category/date query parameters present on
// the request into the model's filters. Absent parameters leave the current
// value in place; "clear=1" resets first and "dismiss=1" drops the pending
// feedback message.
func ApplyQuery[T any](c echo.Context, m *Model[T], categoryParam string) {
	if c.QueryParam("clear") == "1" {
		m.ClearFilters()
	}
	if c.QueryParam("dismiss") == "1" {
		m.DismissFeedback()
	}
	q := c.QueryParams()
	if _, ok := q["search"]; ok {
		m.SetSearch(c.QueryParam("search"))
	}
	if categoryParam != "" {
		if _, ok := q[categoryParam]; ok {
			m.SetCategory(c.QueryParam(categoryParam))
		}
	}
	if _, ok := q["date"]; ok {
		m.SetDate(c.QueryParam("date"))
	}
}

// HTTPError maps a view-model or backend error onto the BFF's HTTP status
// codes. Field errors become 422 with the error map in the body.
func HTTPError(err error) *echo.HTTPError {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{
			"message": "validation failed",
			"errors":  verrs,
		})
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status >= 500 || status < 400 {
			status = http.StatusBadGateway
		}
		return echo.NewHTTPError(status, apiErr.Message)
	}

	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) || errors.Is(err, ErrClosed) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, apiclient.Message(err))
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// ParseID reads a positive integer path parameter.
func ParseID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

package staff

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/listview"
)

type Handler struct {
	directory *Directory
}

func NewHandler(directory *Directory) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/staff", h.ListStaff)
	g.GET("/staff/doctors", h.ListDoctors)
	g.GET("/staff/:id", h.GetStaff)
	g.POST("/staff", h.CreateStaff)
	g.PUT("/staff/:id", h.UpdateStaff)
	g.PUT("/staff/:id/availability", h.SetAvailability)
}

type listResponse struct {
	*listview.ListResponse
	StatusFilter string `json:"status_filter"`
}

func (h *Handler) ListStaff(c echo.Context) error {
	ctx := c.Request().Context()
	listview.ApplyQuery(c, h.directory.Model(), "role")
	if _, ok := c.QueryParams()["status"]; ok {
		h.directory.FilterStatus(c.QueryParam("status"))
	}
	if c.QueryParam("clear") == "1" {
		h.directory.FilterStatus(listview.CategoryAll)
	}
	if c.QueryParam("refresh") == "1" {
		h.directory.Refresh(ctx)
	} else {
		h.directory.Mount(ctx)
	}

	snap := h.directory.Snapshot()
	resp := listview.NewListResponse(c, snap.State, snap.Stats, snap.Members, "No staff members found")
	resp.HasActiveFilters = h.directory.HasActiveFilters()
	if snap.State.Status == listview.StatusError {
		resp.Error = "Failed to load staff data. Please try again."
	}
	return c.JSON(http.StatusOK, listResponse{ListResponse: resp, StatusFilter: snap.StatusFilter})
}

// ListDoctors serves the consultation doctor picker.
func (h *Handler) ListDoctors(c echo.Context) error {
	h.directory.Mount(c.Request().Context())
	return c.JSON(http.StatusOK, h.directory.DoctorOptions())
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	h.directory.Mount(c.Request().Context())
	m, ok := h.directory.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) CreateStaff(c echo.Context) error {
	var f Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.directory.Add(c.Request().Context(), f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"feedback": fb})
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	var f Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.directory.Update(c.Request().Context(), id, f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

type availabilityRequest struct {
	Availability string `json:"availability"`
}

func (h *Handler) SetAvailability(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.directory.SetAvailability(c.Request().Context(), id, req.Availability)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

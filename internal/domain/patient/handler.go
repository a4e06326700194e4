package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/listview"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/:id", h.GetPatient)
	g.POST("/patients", h.CreatePatient)
	g.PUT("/patients/:id", h.UpdatePatient)
	g.DELETE("/patients/:id", h.DeletePatient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()
	m := h.registry.Model()
	listview.ApplyQuery(c, m, "gender")
	if c.QueryParam("refresh") == "1" {
		h.registry.Refresh(ctx)
	} else {
		h.registry.Mount(ctx)
	}

	snap := h.registry.Snapshot()
	return c.JSON(http.StatusOK, listview.NewListResponse(c, snap.State, snap.Stats, snap.Patients, "No patients found"))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	h.registry.Mount(c.Request().Context())
	p, ok := h.registry.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	f := NewForm()
	if err := c.Bind(f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.registry.Add(c.Request().Context(), f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"feedback": fb})
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	f := NewForm()
	if err := c.Bind(f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.registry.Update(c.Request().Context(), id, f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	fb, err := h.registry.Delete(c.Request().Context(), id)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

package consultation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/listview"
)

type Handler struct {
	history *History
	intake  *Intake
}

func NewHandler(history *History, intake *Intake) *Handler {
	return &Handler{history: history, intake: intake}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/consultations", h.ListConsultations)
	g.GET("/consultations/templates", h.ListTemplates)
	g.GET("/consultations/:id", h.GetConsultation)
	g.POST("/consultations", h.CreateConsultation)
	g.POST("/consultations/lookup", h.LookupPatient)
	g.PUT("/consultations/:id", h.UpdateConsultation)
	g.DELETE("/consultations/:id", h.DeleteConsultation)
}

type listResponse struct {
	*listview.ListResponse
	Doctors    []string `json:"doctors"`
	TodayCount int      `json:"today_count"`
}

func (h *Handler) ListConsultations(c echo.Context) error {
	ctx := c.Request().Context()
	listview.ApplyQuery(c, h.history.Model(), "doctor")
	if c.QueryParam("refresh") == "1" {
		h.history.Refresh(ctx)
	} else {
		h.history.Mount(ctx)
	}

	snap := h.history.Snapshot()
	return c.JSON(http.StatusOK, listResponse{
		ListResponse: listview.NewListResponse(c, snap.State, snap.Stats, snap.Consultations, "No consultations found"),
		Doctors:      snap.Doctors,
		TodayCount:   h.history.TodayCount(),
	})
}

func (h *Handler) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, Templates)
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	h.history.Mount(c.Request().Context())
	v, ok := h.history.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
	}
	return c.JSON(http.StatusOK, v)
}

type createRequest struct {
	Form
	TemplateID int `json:"templateId"`
}

// CreateConsultation accepts a full draft. A non-zero templateId fills the
// details before validation.
func (h *Handler) CreateConsultation(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f := &req.Form
	if req.TemplateID != 0 && !f.ApplyTemplate(req.TemplateID) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown template")
	}
	fb, err := h.intake.Save(c.Request().Context(), f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"feedback": fb})
}

func (h *Handler) LookupPatient(c echo.Context) error {
	f := NewForm()
	if err := c.Bind(f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	found, err := h.intake.LookupPatient(c.Request().Context(), f)
	if err != nil {
		return listview.HTTPError(err)
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{
			"message": f.Errors.Get(FieldPatientID),
			"errors":  f.Errors,
		})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	var e Edit
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fb, err := h.history.Update(c.Request().Context(), id, e)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

func (h *Handler) DeleteConsultation(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	fb, err := h.history.Delete(c.Request().Context(), id)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

package queue

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/domain/patient"
	"github.com/clinicaflow/console/internal/platform/listview"
)

type Handler struct {
	board *Board
}

func NewHandler(board *Board) *Handler {
	return &Handler{board: board}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/queue", h.ListQueue)
	g.POST("/queue/refresh", h.RefreshQueue)
	g.POST("/queue/join", h.JoinQueue)
	g.PUT("/queue/:id", h.UpdateEntry)
	g.DELETE("/queue/:id", h.DeleteEntry)
}

type listResponse struct {
	*listview.ListResponse
	NowServing string `json:"now_serving"`
}

func (h *Handler) ListQueue(c echo.Context) error {
	ctx := c.Request().Context()
	listview.ApplyQuery(c, h.board.Model(), "status")
	if c.QueryParam("refresh") == "1" {
		h.board.Refresh(ctx)
	} else {
		h.board.Mount(ctx)
	}
	return h.respond(c)
}

// RefreshQueue re-fetches and clears the search, like the refresh button.
func (h *Handler) RefreshQueue(c echo.Context) error {
	h.board.Search("")
	h.board.Refresh(c.Request().Context())
	return h.respond(c)
}

func (h *Handler) respond(c echo.Context) error {
	snap := h.board.Snapshot()
	return c.JSON(http.StatusOK, listResponse{
		ListResponse: listview.NewListResponse(c, snap.State, snap.Stats, snap.Entries, "No patients in queue"),
		NowServing:   snap.NowServing,
	})
}

func (h *Handler) JoinQueue(c echo.Context) error {
	f := patient.NewForm()
	if err := c.Bind(f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ticket, err := h.board.Join(c.Request().Context(), f)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"queueNumber":   int(ticket.QueueNumber),
		"patientName":   ticket.PatientName,
		"status":        ticket.Status,
		"estimatedTime": ticket.EstimatedTime,
	})
}

func (h *Handler) UpdateEntry(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	var e Edit
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.board.Mount(c.Request().Context())
	fb, err := h.board.Update(c.Request().Context(), id, e)
	if errors.Is(err, ErrEntryNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	id, err := listview.ParseID(c, "id")
	if err != nil {
		return err
	}
	fb, err := h.board.Delete(c.Request().Context(), id)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"feedback": fb})
}

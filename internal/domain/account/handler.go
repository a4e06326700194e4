package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/session", h.Login)
	g.GET("/session", h.GetSession)
	g.DELETE("/session", h.Logout)
	g.POST("/account/password", h.ChangePassword)
}

func (h *Handler) Login(c echo.Context) error {
	var creds Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Login(c.Request().Context(), creds)
	if err != nil {
		return listview.HTTPError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

// GetSession returns the signed-in account's profile.
func (h *Handler) GetSession(c echo.Context) error {
	p, err := h.svc.Current(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Logout(c echo.Context) error {
	h.svc.Logout()
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var pc PasswordChange
	if err := c.Bind(&pc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	text, err := h.svc.ChangePassword(c.Request().Context(), pc)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": text})
}

func httpError(err error) *echo.HTTPError {
	if errors.Is(err, session.ErrNoSession) {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return listview.HTTPError(err)
}

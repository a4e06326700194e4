package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/config"
	"github.com/clinicaflow/console/internal/domain/account"
	"github.com/clinicaflow/console/internal/domain/consultation"
	"github.com/clinicaflow/console/internal/domain/patient"
	"github.com/clinicaflow/console/internal/domain/queue"
	"github.com/clinicaflow/console/internal/domain/staff"
	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/auth"
	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/middleware"
	"github.com/clinicaflow/console/internal/platform/session"
	"github.com/clinicaflow/console/internal/platform/telemetry"
	"github.com/clinicaflow/console/internal/platform/websocket"
)

const version = "0.1.0"

// app holds one process's view-models. Filter state lives here, so every
// BFF client of the process shares it.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	sessions *session.MemoryStore
	api      *apiclient.Client

	patients *patient.Registry
	history  *consultation.History
	intake   *consultation.Intake
	board    *queue.Board
	staff    *staff.Directory
	account  *account.Service
}

func newApp(cfg *config.Config, logger zerolog.Logger, transport http.RoundTripper) *app {
	sessions := session.NewMemoryStore()
	api := apiclient.New(apiclient.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.APITimeout(),
		RequestsPerSecond: cfg.OutboundRPS,
		Tokens:            sessions,
		Transport:         transport,
	}, logger)

	opts := func(name string) listview.Options {
		return listview.Options{Name: name, Logger: logger}
	}

	patientBackend := patient.NewHTTPBackend(api)
	consultationBackend := consultation.NewHTTPBackend(api)
	history := consultation.NewHistory(consultationBackend, opts("consultations"))

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		api:      api,
		patients: patient.NewRegistry(patientBackend, opts("patients")),
		history:  history,
		intake:   consultation.NewIntake(consultationBackend, patientBackend, history, logger),
		board:    queue.NewBoard(queue.NewHTTPBackend(api), opts("queue")),
		staff:    staff.NewDirectory(staff.NewHTTPBackend(api), opts("staff")),
		account:  account.NewService(account.NewHTTPBackend(api), sessions, logger),
	}
}

// close unmounts every view-model so late responses are dropped.
func (a *app) close() {
	a.patients.Close()
	a.history.Close()
	a.board.Close()
	a.staff.Close()
}

// useToken installs a session for a bearer token handed to the CLI.
func (a *app) useToken(token string) {
	if token == "" {
		return
	}
	s, err := session.FromToken(token)
	if err != nil {
		s = session.Session{Token: token}
	}
	a.sessions.Set(s)
}

// server builds the BFF: middleware, health and metrics, the websocket
// stream and every domain's routes.
func (a *app) server(hub *websocket.Hub) *echo.Echo {
	cfg := a.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(middleware.Metrics())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		body := map[string]any{
			"status":  "ok",
			"version": version,
		}
		if hub != nil {
			body["ws_clients"] = hub.ClientCount()
			body["queue_subscribers"] = hub.TopicCount(queue.Topic)
		}
		return c.JSON(http.StatusOK, body)
	})
	e.GET("/metrics", echo.WrapHandler(telemetry.Handler()))

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitRPS > 0 {
		rateLimitCfg.RequestsPerSecond = cfg.RateLimitRPS
		rateLimitCfg.BurstSize = cfg.RateLimitBurst
	}

	api := e.Group("")
	api.Use(middleware.RateLimit(rateLimitCfg))
	if cfg.IsDev() {
		api.Use(auth.DevPassthrough())
	} else {
		api.Use(auth.RequireSession(a.sessions))
	}
	api.Use(middleware.RequestTimeout(cfg.APITimeout() + cfg.APITimeout()/2))

	account.NewHandler(a.account).RegisterRoutes(api)
	patient.NewHandler(a.patients).RegisterRoutes(api)
	consultation.NewHandler(a.history, a.intake).RegisterRoutes(api)
	queue.NewHandler(a.board).RegisterRoutes(api)
	staff.NewHandler(a.staff).RegisterRoutes(api)

	if hub != nil {
		ws := websocket.NewWebSocketHandler(hub, websocket.HandlerOptions{
			AllowedOrigins: cfg.CORSOrigins,
			Snapshot:       a.snapshot,
		})
		ws.RegisterRoutes(api)
	}

	return e
}

// snapshot serves the initial frame of a websocket topic.
func (a *app) snapshot(topic string) (any, bool) {
	switch topic {
	case queue.Topic:
		return a.board.Live(), true
	default:
		return nil, false
	}
}

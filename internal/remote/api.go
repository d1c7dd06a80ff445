// ABOUTME: REST control API for a running engine
// ABOUTME: Echo routes for tracks, state, playback, volume and guided sessions
package remote

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/neurosonic/neurosonic-go/internal/version"
	"github.com/neurosonic/neurosonic-go/pkg/catalog"
	"github.com/neurosonic/neurosonic-go/pkg/mixer"
	"github.com/neurosonic/neurosonic-go/pkg/neurosonic"
)

// APIServer exposes the playback controller over HTTP
type APIServer struct {
	ctrl *neurosonic.Controller
	hub  *Hub
	echo *echo.Echo
}

// NewAPIServer constructs an APIServer and registers all routes
func NewAPIServer(ctrl *neurosonic.Controller, hub *Hub) *APIServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[api] %s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if hub == nil {
		hub = NewHub()
	}
	s := &APIServer{ctrl: ctrl, hub: hub, echo: e}
	s.registerRoutes()
	return s
}

func (s *APIServer) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/api/tracks", s.handleTracks)
	s.echo.GET("/api/state", s.handleState)
	s.echo.POST("/api/play", s.handlePlay)
	s.echo.POST("/api/stop", s.handleStop)
	s.echo.PUT("/api/volume", s.handleVolume)
	s.echo.PUT("/api/mute", s.handleMute)
	s.echo.PUT("/api/locale", s.handleLocale)
	s.echo.POST("/api/session", s.handleSession)
	s.echo.GET("/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler, for embedding or tests
func (s *APIServer) Handler() http.Handler {
	return s.echo
}

// Hub returns the event hub fed by this server
func (s *APIServer) Hub() *Hub {
	return s.hub
}

// Run starts the HTTP server on addr and blocks until ctx is cancelled
func (s *APIServer) Run(ctx context.Context, addr string) {
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Printf("[api] server error: %v", err)
		}
	}()
	<-ctx.Done()
	s.hub.Close()
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutCtx); err != nil {
		log.Printf("[api] shutdown: %v", err)
	}
}

// HealthResponse is the payload for GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Product   string `json:"product"`
	Version   string `json:"version"`
	Listeners int    `json:"listeners"`
}

func (s *APIServer) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Product:   version.Product,
		Version:   version.Version,
		Listeners: s.hub.Len(),
	})
}

func (s *APIServer) handleTracks(c echo.Context) error {
	cat := s.ctrl.Catalog()

	category := catalog.Category(strings.ToLower(c.QueryParam("category")))
	if category == "" {
		return c.JSON(http.StatusOK, cat.All())
	}
	for _, known := range catalog.Categories() {
		if known == category {
			return c.JSON(http.StatusOK, cat.ListByCategory(category))
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
}

// StateResponse is the payload for GET /api/state
type StateResponse struct {
	Controller   neurosonic.ControllerState `json:"controller"`
	Session      neurosonic.SessionStatus   `json:"session"`
	Capabilities neurosonic.Capabilities    `json:"capabilities"`
	MasterGain   float64                    `json:"master_gain"`
	Nodes        []mixer.NodeInfo           `json:"nodes"`
}

func (s *APIServer) handleState(c echo.Context) error {
	engine := s.ctrl.Engine()
	nodes := engine.ActiveNodes()
	if nodes == nil {
		nodes = []mixer.NodeInfo{}
	}
	return c.JSON(http.StatusOK, StateResponse{
		Controller:   s.ctrl.State(),
		Session:      engine.Session().Status(),
		Capabilities: engine.Capabilities(),
		MasterGain:   engine.MasterGain(),
		Nodes:        nodes,
	})
}

// PlayRequest is the body for POST /api/play
type PlayRequest struct {
	ID string `json:"id"`
}

func (s *APIServer) handlePlay(c echo.Context) error {
	var req PlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id must not be empty")
	}
	if !s.ctrl.Play(id) {
		log.Printf("[api] unknown track %q", id)
		return echo.NewHTTPError(http.StatusNotFound, "unknown track")
	}
	return c.JSON(http.StatusOK, s.ctrl.State())
}

func (s *APIServer) handleStop(c echo.Context) error {
	s.ctrl.Stop()
	return c.JSON(http.StatusOK, s.ctrl.State())
}

// VolumeRequest is the body for PUT /api/volume
type VolumeRequest struct {
	Volume *float64 `json:"volume"`
}

func (s *APIServer) handleVolume(c echo.Context) error {
	var req VolumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Volume == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "volume is required")
	}
	s.ctrl.SetVolume(*req.Volume)
	return c.JSON(http.StatusOK, s.ctrl.State())
}

// MuteRequest is the body for PUT /api/mute
type MuteRequest struct {
	Muted bool `json:"muted"`
}

func (s *APIServer) handleMute(c echo.Context) error {
	var req MuteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.ctrl.Engine().Mute(req.Muted)
	return c.NoContent(http.StatusNoContent)
}

// LocaleRequest is the body for PUT /api/locale and POST /api/session
type LocaleRequest struct {
	Locale string `json:"locale"`
}

func (s *APIServer) bindLocale(c echo.Context) (catalog.Locale, error) {
	var req LocaleRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Locale == "" {
		return s.ctrl.Locale(), nil
	}
	l, err := catalog.ParseLocale(req.Locale)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return l, nil
}

func (s *APIServer) handleLocale(c echo.Context) error {
	l, err := s.bindLocale(c)
	if err != nil {
		return err
	}
	s.ctrl.SetLocale(l)
	return c.JSON(http.StatusOK, s.ctrl.State())
}

func (s *APIServer) handleSession(c echo.Context) error {
	l, err := s.bindLocale(c)
	if err != nil {
		return err
	}
	if !s.ctrl.StartGuidedSession(l) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "guided session unavailable")
	}
	return c.JSON(http.StatusOK, s.ctrl.State())
}

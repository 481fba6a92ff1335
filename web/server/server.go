package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Limits bound what a single request may ask for
type Limits struct {
	MaxWidth           int `json:"maxWidth"`
	MaxHeight          int `json:"maxHeight"`
	MaxSamplesPerPixel int `json:"maxSamplesPerPixel"`
	MaxDepth           int `json:"maxDepth"`
}

// DefaultLimits returns the limits used by New
func DefaultLimits() Limits {
	return Limits{
		MaxWidth:           2000,
		MaxHeight:          2000,
		MaxSamplesPerPixel: 10000,
		MaxDepth:           1000,
	}
}

// Server serves the render API
type Server struct {
	echo    *echo.Echo
	logger  log.Logger
	console *Console
	limits  Limits
	renders atomic.Int64
}

// New creates a server with its routes registered
func New(logger log.Logger, limits Limits) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		logger:  logger,
		console: NewConsole(200),
		limits:  limits,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.requestLogger)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/console", s.handleConsole)
	e.POST("/api/render", s.handleRender)
	e.POST("/api/inspect", s.handleInspect)
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.logger.Noticef("Starting web server on http://%s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs one line per request
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Infof("%s %s -> %d (%v)", c.Request().Method, c.Request().URL.Path,
			c.Response().Status, time.Since(start).Round(time.Millisecond))
		return nil
	}
}

func errorResponse(message string) map[string]string {
	return map[string]string{"error": message}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

// handleSceneConfig returns the default settings for a scene along with the request limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.New(sceneName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	}

	config := sceneObj.SamplingConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":    config.Width,
			"height":   config.Height,
			"spp":      config.SamplesPerPixel,
			"depth":    config.MaxDepth,
			"tileSize": config.EffectiveTileSize(),
		},
		"limits": s.limits,
	})
}

// handleConsole returns buffered log messages newer than ?since=
func (s *Server) handleConsole(c echo.Context) error {
	var since int64
	if err := echo.QueryParamsBinder(c).Int64("since", &since).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("Invalid since parameter"))
	}
	return c.JSON(http.StatusOK, s.console.Since(since))
}

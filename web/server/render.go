package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest selects a scene and overrides its settings. Zero values keep the
// scene's own settings.
type RenderRequest struct {
	Scene       string             `json:"scene"`       // Built-in scene name, ignored when Description is set
	Description *scene.Description `json:"description"` // Inline scene
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	SPP         int                `json:"spp"`
	Depth       *int               `json:"depth"`
	Seed        *uint64            `json:"seed"`
	Workers     int                `json:"workers"`
	TileSize    int                `json:"tileSize"`
	Format      string             `json:"format"` // png (default), bmp or tiff
}

// buildScene resolves the request into a preprocessed scene
func (s *Server) buildScene(req *RenderRequest) (*scene.Scene, error) {
	var (
		sceneObj *scene.Scene
		err      error
	)
	if req.Description != nil {
		sceneObj, err = req.Description.Build()
	} else {
		name := req.Scene
		if name == "" {
			name = "default"
		}
		sceneObj, err = scene.New(name)
	}
	if err != nil {
		return nil, err
	}

	config := &sceneObj.SamplingConfig
	if req.Width != 0 {
		config.Width = req.Width
	}
	if req.Height != 0 {
		config.Height = req.Height
	}
	if req.SPP != 0 {
		config.SamplesPerPixel = req.SPP
	}
	if req.Depth != nil {
		config.MaxDepth = *req.Depth
	}
	if req.Seed != nil {
		*config = config.WithSeed(*req.Seed)
	}
	if req.Workers != 0 {
		config.Workers = req.Workers
	}
	if req.TileSize != 0 {
		config.TileSize = req.TileSize
	}

	if err := s.checkLimits(*config); err != nil {
		return nil, err
	}
	if err := sceneObj.Preprocess(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

func (s *Server) checkLimits(config scene.SamplingConfig) error {
	switch {
	case config.Width > s.limits.MaxWidth:
		return fmt.Errorf("%w: width %d exceeds %d", scene.ErrInvalidConfig, config.Width, s.limits.MaxWidth)
	case config.Height > s.limits.MaxHeight:
		return fmt.Errorf("%w: height %d exceeds %d", scene.ErrInvalidConfig, config.Height, s.limits.MaxHeight)
	case config.SamplesPerPixel > s.limits.MaxSamplesPerPixel:
		return fmt.Errorf("%w: spp %d exceeds %d", scene.ErrInvalidConfig, config.SamplesPerPixel, s.limits.MaxSamplesPerPixel)
	case config.MaxDepth > s.limits.MaxDepth:
		return fmt.Errorf("%w: depth %d exceeds %d", scene.ErrInvalidConfig, config.MaxDepth, s.limits.MaxDepth)
	}
	return nil
}

// handleRender renders the requested scene and returns the encoded image.
// Render statistics are reported in X-Render-* headers.
func (s *Server) handleRender(c echo.Context) error {
	var req RenderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("Invalid request: "+err.Error()))
	}

	format := output.FormatPNG
	if req.Format != "" {
		var err error
		if format, err = output.FormatFromPath("render." + req.Format); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		}
	}

	sceneObj, err := s.buildScene(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	r, err := renderer.NewRenderer(sceneObj, nil, NewWebLogger(renderID, s.logger, s.console))
	switch {
	case errors.Is(err, renderer.ErrInsufficientMemory):
		return c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error()))
	case err != nil:
		return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	}

	buffer, stats, err := r.Render(c.Request().Context())
	if err != nil {
		// The client went away, nobody is left to answer
		s.logger.Noticef("[%s] %v", renderID, err)
		return err
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, output.ToImage(buffer), format); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Seed", strconv.FormatUint(stats.Seed, 10))
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

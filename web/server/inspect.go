package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectRequest asks what the center ray of one pixel hits
type InspectRequest struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit          bool                   `json:"hit"`
	T            float64                `json:"t,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	FrontFace    bool                   `json:"frontFace"`
	MaterialType string                 `json:"materialType,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo returns the type name and parameters of a material
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	props := map[string]interface{}{}
	switch mat.Kind {
	case material.KindLambertian:
		props["albedo"] = vecArray(mat.Albedo)
	case material.KindMetal:
		props["albedo"] = vecArray(mat.Albedo)
		props["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		props["refractiveIndex"] = mat.RefractiveIndex
	}
	return mat.Kind.String(), props
}

// inspectPixel traces the lens-center ray through the middle of pixel (x, y)
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResult {
	config := sceneObj.SamplingConfig
	s := (float64(x) + 0.5) / float64(config.Width)
	t := (float64(config.Height-1-y) + 0.5) / float64(config.Height)

	// The middle of the sample square maps to the center of the lens
	ray := sceneObj.Camera.GetRay(s, t, centerSampler{})

	var hit material.HitRecord
	if !sceneObj.Hit(ray, ray.TMin, ray.TMax, &hit) {
		return InspectResult{}
	}

	materialType, props := extractMaterialInfo(hit.Material)
	return InspectResult{
		Hit:          true,
		T:            hit.T,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		FrontFace:    hit.FrontFace,
		MaterialType: materialType,
		Properties:   props,
	}
}

// handleInspect reports what a pixel of a built-in scene sees
func (s *Server) handleInspect(c echo.Context) error {
	var req InspectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse("Invalid request: "+err.Error()))
	}

	sceneObj, err := s.buildScene(&RenderRequest{Scene: req.Scene, Width: req.Width, Height: req.Height})
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	}

	config := sceneObj.SamplingConfig
	if req.X < 0 || req.Y < 0 || req.X >= config.Width || req.Y >= config.Height {
		return c.JSON(http.StatusBadRequest, errorResponse("Pixel coordinates out of bounds"))
	}
	return c.JSON(http.StatusOK, inspectPixel(sceneObj, req.X, req.Y))
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// centerSampler always returns the middle of the sample domain
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

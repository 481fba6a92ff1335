package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene builds an open-topped box from quads, lit by the sky through the
// missing ceiling, with a rotated mirror block and a glass ball inside
func NewQuadsScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	samplingConfig := defaultSamplingConfig()
	samplingConfig.Width = 300
	samplingConfig.Height = 300

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.02)
	glass := material.NewDielectric(1.5)

	primitives := []geometry.Primitive{
		// Floor
		geometry.NewQuadPrimitive(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), white),
		// Back wall
		geometry.NewQuadPrimitive(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white),
		// Left wall (red)
		geometry.NewQuadPrimitive(core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red),
		// Right wall (green)
		geometry.NewQuadPrimitive(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(0, 555, 0), green),
	}

	// Tall block, turned 15 degrees
	primitives = append(primitives,
		geometry.NewBox(core.NewVec3(368, 165, 351), core.NewVec3(82.5, 165, 82.5), 0.2618, mirror)...)
	primitives = append(primitives,
		geometry.NewSpherePrimitive(core.NewVec3(190, 90, 190), 90, glass))

	return &Scene{
		CameraConfig:   cameraConfig,
		Primitives:     primitives,
		Background:     NewGradientBackground(core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.2, 0.2, 0.25)),
		SamplingConfig: samplingConfig,
	}
}

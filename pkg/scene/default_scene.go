package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// defaultSamplingConfig is shared by the built-in scenes unless they need more
func defaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// NewDefaultScene creates a small red sphere resting on a very large gray ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2), // Slightly above and behind the sphere
		LookAt: core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:     core.NewVec3(0, 1, 0),    // Standard up direction
		VFov:   40.0,
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))

	return &Scene{
		CameraConfig: cameraConfig,
		Primitives: []geometry.Primitive{
			geometry.NewSpherePrimitive(core.NewVec3(0, -1000, 0), 1000, ground), // Top of the ground at y=0
			geometry.NewSpherePrimitive(core.NewVec3(0, 0.5, -1), 0.5, red),
		},
		Background:     NewSkyBackground(),
		SamplingConfig: defaultSamplingConfig(),
	}
}

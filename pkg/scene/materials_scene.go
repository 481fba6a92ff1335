package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMaterialsScene lines up every material: diffuse, mirror, brushed gold, solid
// glass and a hollow glass shell around a blue ball
func NewMaterialsScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:   core.NewVec3(0, 0.75, 2),
		LookAt:   core.NewVec3(0, 0.5, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Aperture: 0.05, // Gentle depth of field, focused on the center sphere
	}

	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	hollowCenter := core.NewVec3(-0.5, 0.25, -0.5)

	return &Scene{
		CameraConfig: cameraConfig,
		Primitives: []geometry.Primitive{
			NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGround),
			geometry.NewSpherePrimitive(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
			geometry.NewSpherePrimitive(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
			geometry.NewSpherePrimitive(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
			geometry.NewSpherePrimitive(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),

			// Negative radius flips the inner surface so the shell is hollow
			geometry.NewSpherePrimitive(hollowCenter, 0.25, glass),
			geometry.NewSpherePrimitive(hollowCenter, -0.24, glass),
			geometry.NewSpherePrimitive(hollowCenter, 0.20, lambertianBlue),
		},
		Background:     NewSkyBackground(),
		SamplingConfig: defaultSamplingConfig(),
	}
}

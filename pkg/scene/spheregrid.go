package scene

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// sphereGridSeed fixes the layout so the scene is identical on every run
const sphereGridSeed = 1337

// NewSphereGridScene scatters a grid of small spheres with jittered positions and
// mixed materials around three large feature spheres
func NewSphereGridScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	samplingConfig := defaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 50

	primitives := []geometry.Primitive{
		NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	random := rand.New(rand.NewPCG(sphereGridSeed, 0))
	const gridHalf = 11
	const radius = 0.2

	for i := -gridHalf; i < gridHalf; i++ {
		for j := -gridHalf; j < gridHalf; j++ {
			center := core.NewVec3(
				float64(i)+0.9*random.Float64(),
				radius,
				float64(j)+0.9*random.Float64(),
			)
			// Keep clear of the large feature sphere on the right
			if center.Subtract(core.NewVec3(4, radius, 0)).Length() <= 0.9 {
				continue
			}

			// Hue follows the x position, chroma the z position
			hue := float64(i+gridHalf) / float64(2*gridHalf) * 360.0
			chroma := 0.05 + float64(j+gridHalf)/float64(2*gridHalf)*0.2
			color := oklchToRGB(0.7, chroma, hue)

			var mat *material.Material
			switch choose := random.Float64(); {
			case choose < 0.8:
				mat = material.NewLambertian(color.MultiplyVec(color))
			case choose < 0.95:
				mat = material.NewMetal(color, 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}
			primitives = append(primitives, geometry.NewSpherePrimitive(center, radius, mat))
		}
	}

	primitives = append(primitives,
		geometry.NewSpherePrimitive(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSpherePrimitive(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSpherePrimitive(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		CameraConfig:   cameraConfig,
		Primitives:     primitives,
		Background:     NewSkyBackground(),
		SamplingConfig: samplingConfig,
	}
}

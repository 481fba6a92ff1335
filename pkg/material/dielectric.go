package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterDielectric chooses between reflection and refraction with probability
// given by the Fresnel term. Clear glass never tints, so attenuation is white.
func (m *Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Entering the material (air to glass) or leaving it
	refractionRatio := m.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	// Always draw, so the stream advances the same way whichever branch is taken
	u := sampler.Get1D()

	direction, refracts := core.Refract(unitDirection, hit.Normal, refractionRatio)
	if !refracts || Reflectance(cosTheta, refractionRatio) > u {
		direction = core.Reflect(unitDirection, hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0

	// Matched indices form no interface at all
	if r0 == 0 {
		return 0
	}
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

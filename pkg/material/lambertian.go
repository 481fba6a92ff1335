package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// scatterLambertian offsets the normal by a uniform unit vector, which yields a
// cosine-weighted direction. The attenuation is the albedo itself because the
// cosine term and the pdf cancel.
func (m *Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// The unit vector can land almost exactly opposite the normal
	if direction.NearZero() {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}

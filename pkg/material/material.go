package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material is a closed set of surface models. Only the fields relevant to Kind are
// meaningful. Materials are immutable once built and shared across workers.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal
	Fuzz            float64   // Metal, in [0, 1]
	RefractiveIndex float64   // Dielectric
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Kind: KindLambertian, Albedo: albedo}
}

// NewMetal creates a metal material; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Material {
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Material{Kind: KindMetal, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric creates a clear refractive material such as glass (1.5) or water (1.33)
func NewDielectric(refractiveIndex float64) *Material {
	return &Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// Scatter samples an outgoing ray for rayIn arriving at hit.
// It returns false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

func (m *Material) String() string {
	switch m.Kind {
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%.2f)", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric(ior=%.3f)", m.RefractiveIndex)
	default:
		return fmt.Sprintf("%s(albedo=%v)", m.Kind, m.Albedo)
	}
}

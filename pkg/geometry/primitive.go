package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boxEpsilon widens primitive bounds so slab-test rounding never culls a real hit
const boxEpsilon = 1e-7

// Kind identifies the geometry held by a Primitive
type Kind int

const (
	KindSphere Kind = iota
	KindQuad
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindQuad:
		return "quad"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Primitive is a renderable surface: one shape plus the material it scatters with.
// The set of shapes is closed, so intersection dispatches on Kind instead of
// going through an interface.
type Primitive struct {
	Kind     Kind
	Sphere   Sphere
	Quad     Quad
	Material *material.Material
}

// NewSpherePrimitive wraps a sphere
func NewSpherePrimitive(center core.Vec3, radius float64, mat *material.Material) Primitive {
	return Primitive{Kind: KindSphere, Sphere: NewSphere(center, radius), Material: mat}
}

// NewQuadPrimitive wraps a quad
func NewQuadPrimitive(corner, u, v core.Vec3, mat *material.Material) Primitive {
	return Primitive{Kind: KindQuad, Quad: NewQuad(corner, u, v), Material: mat}
}

// Hit fills hit with the closest intersection in (tMin, tMax). hit is left untouched
// when there is none.
func (p *Primitive) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	var ok bool
	switch p.Kind {
	case KindSphere:
		ok = p.Sphere.Hit(ray, tMin, tMax, hit)
	case KindQuad:
		ok = p.Quad.Hit(ray, tMin, tMax, hit)
	}
	if ok {
		hit.Material = p.Material
	}
	return ok
}

// BoundingBox returns the slightly widened bounds of the shape
func (p *Primitive) BoundingBox() core.AABB {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.BoundingBox().Expand(boxEpsilon)
	case KindQuad:
		return p.Quad.BoundingBox().Expand(boxEpsilon)
	default:
		return core.AABB{}
	}
}

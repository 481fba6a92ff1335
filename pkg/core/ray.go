package core

import "math"

// ShadowEpsilon is the minimum ray parameter accepted as a hit. Secondary rays start
// exactly on a surface; ignoring hits closer than this avoids self-intersection acne.
const ShadowEpsilon = 0.001

// Ray represents a ray with an origin, a direction and a valid parametric interval
type Ray struct {
	Origin    Vec3
	Direction Vec3 // Not required to be unit length
	TMin      float64
	TMax      float64
}

// NewRay creates a new ray valid over (ShadowEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: ShadowEpsilon, TMax: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

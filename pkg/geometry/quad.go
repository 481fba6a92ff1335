package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// flatPadding gives axis-aligned quads a non-zero thickness in their bounding box
const flatPadding = 1e-4

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Unit normal, U × V direction
	D      float64   // Plane equation constant: normal · p = D
	W      core.Vec3 // Cached (U × V) / |U × V|² for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Parallel or zero edges produce a degenerate quad that is never hit.
func NewQuad(corner, u, v core.Vec3) Quad {
	cross := u.Cross(v)
	q := Quad{Corner: corner, U: u, V: v}

	lengthSquared := cross.LengthSquared()
	if lengthSquared == 0 {
		return q
	}

	q.Normal = cross.Normalize()
	q.D = q.Normal.Dot(corner)
	q.W = cross.Multiply(1.0 / lengthSquared)
	return q
}

// IsDegenerate reports whether the edges span no area
func (q Quad) IsDegenerate() bool {
	return q.Normal == (core.Vec3{})
}

// Hit tests if a ray intersects with the quad within (tMin, tMax)
func (q Quad) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	if q.IsDegenerate() {
		return false
	}

	// Parallel to the plane
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= tMin || t >= tMax {
		return false
	}

	// Barycentric bounds check in the (U, V) frame
	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	hit.T = t
	hit.Point = hitPoint
	hit.SetFaceNormal(ray, q.Normal)
	return true
}

// BoundingBox returns the box around all four corners
func (q Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Pad(flatPadding)
}

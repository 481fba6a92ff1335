package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HitList tests every primitive in turn. It is the reference the BVH is checked against.
type HitList struct {
	Primitives []Primitive
}

// NewHitList creates a hit list over primitives
func NewHitList(primitives []Primitive) *HitList {
	return &HitList{Primitives: primitives}
}

// Hit returns the closest intersection over all primitives
func (l *HitList) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax

	for i := range l.Primitives {
		if l.Primitives[i].Hit(ray, tMin, closestSoFar, hit) {
			hitAnything = true
			closestSoFar = hit.T
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all primitive bounds
func (l *HitList) BoundingBox() core.AABB {
	if len(l.Primitives) == 0 {
		return core.AABB{}
	}
	box := l.Primitives[0].BoundingBox()
	for i := 1; i < len(l.Primitives); i++ {
		box = box.Union(l.Primitives[i].BoundingBox())
	}
	return box
}

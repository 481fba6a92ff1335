package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: config.MaxDepth}
}

// MaxDepth returns the bounce limit
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor computes the color for a single camera ray. Non-finite or negative
// components are replaced by zero so one bad sample cannot poison a pixel.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return sanitize(pt.rayColor(ray, s, sampler, pt.maxDepth))
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !s.Hit(ray, ray.TMin, ray.TMax, &hit) {
		return s.Background.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	// Nothing can come back through a black surface
	if scatter.Attenuation == (core.Vec3{}) {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, s, sampler, depth-1))
}

// sanitize zeroes NaN, infinite and negative components
func sanitize(c core.Vec3) core.Vec3 {
	return core.NewVec3(sanitizeComponent(c.X), sanitizeComponent(c.Y), sanitizeComponent(c.Z))
}

func sanitizeComponent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

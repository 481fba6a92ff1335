package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_ScattersIntoHemisphere(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	hit := upHit(lambertian)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	sampler := core.NewRandomSampler(42, 0)

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered below the surface: %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Expected origin %v, got %v", hit.Point, scatter.Scattered.Origin)
		}
	}
}

func TestLambertian_CosineWeighted(t *testing.T) {
	// E[cos θ] for a cosine-weighted hemisphere is 2/3
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	hit := upHit(lambertian)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	sampler := core.NewRandomSampler(7, 0)

	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		sum += scatter.Scattered.Direction.Normalize().Dot(hit.Normal)
	}
	mean := sum / n

	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine near 0.667, got %f", mean)
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	hit := upHit(lambertian)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// (0, 0) maps to the unit vector (0, 0, 1); use a normal opposite to it
	hit.Normal = core.NewVec3(0, 0, -1)
	scatter, ok := lambertian.Scatter(ray, hit, constSampler(0))
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to the normal, got %v", scatter.Scattered.Direction)
	}
}

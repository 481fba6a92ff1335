package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the XZ plane, Z × X faces +Y
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))
	if quad.Normal != core.NewVec3(0, 1, 0) {
		t.Fatalf("Expected +Y normal, got %v", quad.Normal)
	}

	tests := []struct {
		name        string
		ray         core.Ray
		expectHit   bool
		expectT     float64
		expectFront bool
	}{
		{"center from above", core.NewRay(core.NewVec3(0.5, 2, 0.5), core.NewVec3(0, -1, 0)), true, 2, true},
		{"center from below", core.NewRay(core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0)), true, 1, false},
		{"outside bounds", core.NewRay(core.NewVec3(1.5, 2, 0.5), core.NewVec3(0, -1, 0)), false, 0, false},
		{"parallel", core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)), false, 0, false},
		{"pointing away", core.NewRay(core.NewVec3(0.5, 2, 0.5), core.NewVec3(0, 1, 0)), false, 0, false},
		{"oblique", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.5, -1, 0.5)), true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			got := quad.Hit(tt.ray, tt.ray.TMin, tt.ray.TMax, &hit)
			if got != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, got)
			}
			if !got {
				return
			}
			if math.Abs(hit.T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectT, hit.T)
			}
			if hit.FrontFace != tt.expectFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectFront, hit.FrontFace)
			}
		})
	}
}

func TestQuad_Degenerate(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0))
	if !quad.IsDegenerate() {
		t.Fatal("Expected parallel edges to give a degenerate quad")
	}

	var hit material.HitRecord
	ray := core.NewRay(core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0))
	if quad.Hit(ray, ray.TMin, ray.TMax, &hit) {
		t.Error("Degenerate quad must never be hit")
	}
}

func TestQuad_BoundingBoxIsPadded(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2))
	box := quad.BoundingBox()

	if box.Size().Y <= 0 {
		t.Errorf("Expected non-zero thickness, got %v", box.Size())
	}
	if box.Min.X != -1 || box.Max.X != 1 || box.Min.Z != -1 || box.Max.Z != 1 {
		t.Errorf("Unexpected extent %v", box)
	}
}

func TestPrimitive_HitSetsMaterial(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(0.8, 0.1, 0.1))
	blue := material.NewLambertian(core.NewVec3(0.1, 0.1, 0.8))

	primitives := []Primitive{
		NewSpherePrimitive(core.NewVec3(0, 0, -3), 1, red),
		NewQuadPrimitive(core.NewVec3(-5, -5, -10), core.NewVec3(10, 0, 0), core.NewVec3(0, 10, 0), blue),
	}

	tests := []struct {
		name     string
		ray      core.Ray
		expected *material.Material
	}{
		{"sphere in front of wall", core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), red},
		{"wall beside sphere", core.NewRay(core.Vec3{}, core.NewVec3(0.4, 0, -1)), blue},
	}

	list := NewHitList(primitives)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			if !list.Hit(tt.ray, tt.ray.TMin, tt.ray.TMax, &hit) {
				t.Fatal("Expected hit")
			}
			if hit.Material != tt.expected {
				t.Errorf("Expected material %v, got %v", tt.expected, hit.Material)
			}
		})
	}
}

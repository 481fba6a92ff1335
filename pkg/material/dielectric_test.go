package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_MatchedIndexPassesStraightThrough(t *testing.T) {
	glass := NewDielectric(1.0)
	direction := core.NewVec3(1, -2, 0.5).Normalize()
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), direction)

	for _, frontFace := range []bool{true, false} {
		hit := upHit(glass)
		hit.FrontFace = frontFace
		sampler := core.NewRandomSampler(5, 0)
		for i := 0; i < 100; i++ {
			scatter, ok := glass.Scatter(rayIn, hit, sampler)
			if !ok {
				t.Fatal("Dielectric should always scatter")
			}
			got := scatter.Scattered.Direction.Normalize()
			if got.Subtract(direction).Length() > 1e-12 {
				t.Fatalf("Expected undeviated ray %v, got %v", direction, got)
			}
		}
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))

	scatter, ok := glass.Scatter(rayIn, upHit(glass), core.NewRandomSampler(1, 0))
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
	}
}

func TestDielectric_ReflectsAndRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	hit := upHit(glass)

	// u = 0 always loses against the Fresnel term, u just below 1 always wins
	reflected, _ := glass.Scatter(rayIn, hit, constSampler(0))
	if reflected.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflection above the surface, got %v", reflected.Scattered.Direction)
	}

	refracted, _ := glass.Scatter(rayIn, hit, constSampler(0.999))
	dir := refracted.Scattered.Direction.Normalize()
	if dir.Y >= 0 {
		t.Fatalf("Expected refraction into the surface, got %v", dir)
	}
	// Snell: sin(out) = sin(45°) / 1.5
	if expected := math.Sin(math.Pi/4) / 1.5; math.Abs(dir.X-expected) > 1e-9 {
		t.Errorf("Expected sin(out)=%f, got %f", expected, dir.X)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving the glass at a grazing angle
	rayIn := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(1, 0.2, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0),
		FrontFace: false,
		Material:  glass,
	}

	for _, u := range []float64{0, 0.5, 0.999} {
		scatter, _ := glass.Scatter(rayIn, hit, constSampler(u))
		if scatter.Scattered.Direction.Y >= 0 {
			t.Errorf("u=%f: expected reflection back into the glass, got %v", u, scatter.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence glass to air", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched indices", 0.3, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

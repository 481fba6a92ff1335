package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"scale", a.Multiply(2), NewVec3(2, 4, 6)},
		{"component multiply", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Expected length 5, got %f", got)
	}
}

func TestVec3_NormalizeZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}

	unit := NewVec3(0, 3, 4).Normalize()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Length())
	}
}

func TestVec3_NearZeroAndFinite(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).NearZero() {
		t.Error("Expected 1e-3 not to be near zero")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN vector to be non-finite")
	}
	if NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Expected Inf vector to be non-finite")
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	got := Reflect(v, n)
	if !vecNear(got, NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1,1,0), got %v", got)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("matched indices pass straight through", func(t *testing.T) {
		in := NewVec3(1, -1, 0).Normalize()
		out, ok := Refract(in, n, 1.0)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if !vecNear(out, in, 1e-12) {
			t.Errorf("Expected %v, got %v", in, out)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		in := NewVec3(1, -1, 0).Normalize() // 45 degrees
		eta := 1.0 / 1.5
		out, ok := Refract(in, n, eta)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinIn := math.Sin(math.Pi / 4)
		sinOut := out.Normalize().X
		if math.Abs(sinOut-eta*sinIn) > 1e-12 {
			t.Errorf("Expected sin(out)=%f, got %f", eta*sinIn, sinOut)
		}
		if math.Abs(out.Length()-1) > 1e-12 {
			t.Errorf("Expected unit output, got length %f", out.Length())
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		// Leaving glass at a grazing angle
		in := NewVec3(1, -0.2, 0).Normalize()
		if _, ok := Refract(in, n, 1.5); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

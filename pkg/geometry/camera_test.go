package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func defaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2.0,
	}
}

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	config := defaultCameraConfig()
	config.Center = core.NewVec3(3, 2, 5)
	config.LookAt = core.NewVec3(-1, 0, 0)
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, nil)
	expected := config.LookAt.Subtract(config.Center).Normalize()
	if ray.Direction.Normalize().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction.Normalize())
	}
	if camera.Forward().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward %v, got %v", expected, camera.Forward())
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	camera, err := NewCamera(defaultCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	// 90° vertical fov at focus distance 1: viewport is 2 high and 4 wide
	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, nil)
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_DefocusBlurKeepsFocusPlaneSharp(t *testing.T) {
	config := defaultCameraConfig()
	config.Aperture = 0.5
	config.FocusDistance = 4
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	sampler := core.NewRandomSampler(8, 0)
	var target core.Vec3
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.3, 0.7, sampler)

		if ray.Origin.Subtract(config.Center).Length() > config.Aperture/2+1e-12 {
			t.Fatalf("Ray origin %v outside the lens", ray.Origin)
		}
		// Every ray for the same (s, t) converges on one point of the focus plane
		onPlane := ray.At(1)
		if math.Abs(onPlane.Z+4) > 1e-9 {
			t.Fatalf("Expected point on focus plane z=-4, got %v", onPlane)
		}
		if i == 0 {
			target = onPlane
		} else if onPlane.Subtract(target).Length() > 1e-9 {
			t.Fatalf("Expected all rays through %v, got %v", target, onPlane)
		}
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := defaultCameraConfig()
	config.LookAt = core.NewVec3(0, 0, -7)
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, nil)
	if math.Abs(ray.Direction.Length()-7) > 1e-9 {
		t.Errorf("Expected viewport on the look-at plane at distance 7, got %f", ray.Direction.Length())
	}
}

func TestNewCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"center equals look-at", func(c *CameraConfig) { c.LookAt = c.Center }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"fov too wide", func(c *CameraConfig) { c.VFov = 180 }},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }},
		{"NaN fov", func(c *CameraConfig) { c.VFov = math.NaN() }},
		{"infinite fov", func(c *CameraConfig) { c.VFov = math.Inf(1) }},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -1 }},
		{"NaN aperture", func(c *CameraConfig) { c.Aperture = math.NaN() }},
		{"infinite aperture", func(c *CameraConfig) { c.Aperture = math.Inf(1) }},
		{"NaN focus distance", func(c *CameraConfig) { c.FocusDistance = math.NaN() }},
		{"infinite focus distance", func(c *CameraConfig) { c.FocusDistance = math.Inf(1) }},
		{"focus distance overflows viewport", func(c *CameraConfig) { c.FocusDistance = math.MaxFloat64 / 2 }},
		{"non-finite center", func(c *CameraConfig) { c.Center = core.NewVec3(math.Inf(1), 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultCameraConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrDegenerateCamera) {
				t.Errorf("Expected ErrDegenerateCamera, got %v", err)
			}
		})
	}
}

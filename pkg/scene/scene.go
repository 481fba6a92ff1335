package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidConfig is wrapped by every settings validation failure
var ErrInvalidConfig = errors.New("scene: invalid config")

// DefaultTileSize is used when SamplingConfig.TileSize is 0
const DefaultTileSize = 16

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Primitives     []geometry.Primitive // Objects in the scene
	Background     Background
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth, 0 renders black
	Seed            *uint64 // Render seed, nil draws a fresh one per render
	Workers         int     // Worker goroutines, 0 picks one per logical CPU
	TileSize        int     // Tile edge in pixels, 0 means DefaultTileSize
}

// Validate checks the settings before any rendering work starts
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.TileSize < 0:
		return fmt.Errorf("%w: tile size must not be negative, got %d", ErrInvalidConfig, c.TileSize)
	}
	return nil
}

// EffectiveTileSize resolves the default tile size
func (c SamplingConfig) EffectiveTileSize() int {
	if c.TileSize == 0 {
		return DefaultTileSize
	}
	return c.TileSize
}

// WithSeed returns a copy of c with a fixed seed
func (c SamplingConfig) WithSeed(seed uint64) SamplingConfig {
	c.Seed = &seed
	return c
}

// NewGroundQuad creates a large horizontal quad centered at center with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) geometry.Primitive {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuadPrimitive(corner, u, v, mat)
}

// Preprocess validates the settings, builds the camera and the BVH. After it returns
// the scene is treated as read-only by the renderer.
func (s *Scene) Preprocess() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return err
	}

	cameraConfig := s.CameraConfig
	// Without an explicit ratio the viewport follows the image shape
	if cameraConfig.AspectRatio <= 0 {
		cameraConfig.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
	}
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	s.Camera = camera

	for i := range s.Primitives {
		if s.Primitives[i].Material == nil {
			return fmt.Errorf("%w: primitive %d has no material", ErrInvalidConfig, i)
		}
	}

	s.BVH = geometry.NewBVH(s.Primitives)
	return nil
}

// Hit finds the closest surface along ray within (tMin, tMax)
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return s.BVH.Hit(ray, tMin, tMax, hit)
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

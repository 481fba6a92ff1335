package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// BackgroundKind selects how escaped rays are colored
type BackgroundKind int

const (
	BackgroundGradient BackgroundKind = iota
	BackgroundUniform
)

// Background is the radiance seen by rays that leave the scene
type Background struct {
	Kind   BackgroundKind
	Top    core.Vec3 // Gradient color straight up, or the uniform color
	Bottom core.Vec3 // Gradient color straight down
}

// NewGradientBackground blends from bottom to top on the ray's vertical direction
func NewGradientBackground(top, bottom core.Vec3) Background {
	return Background{Kind: BackgroundGradient, Top: top, Bottom: bottom}
}

// NewUniformBackground returns the same radiance in every direction
func NewUniformBackground(color core.Vec3) Background {
	return Background{Kind: BackgroundUniform, Top: color, Bottom: color}
}

// NewSkyBackground is the blue-to-white sky used by the built-in scenes
func NewSkyBackground() Background {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Color returns the background radiance for a ray that hit nothing
func (b Background) Color(ray core.Ray) core.Vec3 {
	if b.Kind == BackgroundUniform {
		return b.Top
	}

	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrDegenerateCamera is returned when a camera configuration cannot form a view basis
var ErrDegenerateCamera = errors.New("geometry: degenerate camera")

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the plane in focus, <= 0 focuses on LookAt
}

// Camera generates primary rays with optional depth of field
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera builds the view basis and the viewport on the focus plane
func NewCamera(config CameraConfig) (*Camera, error) {
	if !config.Center.IsFinite() || !config.LookAt.IsFinite() || !config.Up.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite position or orientation", ErrDegenerateCamera)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("%w: vertical fov %v outside (0, 180)", ErrDegenerateCamera, config.VFov)
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio %v must be positive", ErrDegenerateCamera, config.AspectRatio)
	}
	if !(config.Aperture >= 0) || math.IsInf(config.Aperture, 0) {
		return nil, fmt.Errorf("%w: aperture %v must be finite and non-negative", ErrDegenerateCamera, config.Aperture)
	}
	if math.IsNaN(config.FocusDistance) || math.IsInf(config.FocusDistance, 0) {
		return nil, fmt.Errorf("%w: focus distance %v is not finite", ErrDegenerateCamera, config.FocusDistance)
	}

	viewDir := config.Center.Subtract(config.LookAt)
	if viewDir.NearZero() {
		return nil, fmt.Errorf("%w: center and look-at coincide", ErrDegenerateCamera)
	}
	w := viewDir.Normalize()

	side := config.Up.Cross(w)
	if side.NearZero() {
		return nil, fmt.Errorf("%w: up vector is parallel to the view direction", ErrDegenerateCamera)
	}
	u := side.Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = viewDir.Length()
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	origin := config.Center
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	// Huge but finite inputs can still overflow the viewport
	if !horizontal.IsFinite() || !vertical.IsFinite() || !lowerLeftCorner.IsFinite() {
		return nil, fmt.Errorf("%w: viewport overflows at focus distance %v", ErrDegenerateCamera, focusDistance)
	}

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where (0,0) is the lower-left
// corner and (1,1) the upper-right. A thin lens draws two values from sampler; a
// pinhole camera draws none.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

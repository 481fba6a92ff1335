package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox returns the six quad faces of a box centered at center. Size holds
// half-extents, so (1,1,1) creates a 2x2x2 box. The box is turned by angleY radians
// about the vertical axis. Every face normal points out of the box.
func NewBox(center, size core.Vec3, angleY float64, mat *material.Material) []Primitive {
	// Corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	sin, cos := math.Sincos(angleY)
	for i := range corners {
		scaled := corners[i].MultiplyVec(size)
		rotated := core.NewVec3(
			cos*scaled.X+sin*scaled.Z,
			scaled.Y,
			-sin*scaled.X+cos*scaled.Z,
		)
		corners[i] = rotated.Add(center)
	}

	face := func(corner, uEnd, vEnd int) Primitive {
		return NewQuadPrimitive(
			corners[corner],
			corners[uEnd].Subtract(corners[corner]),
			corners[vEnd].Subtract(corners[corner]),
			mat,
		)
	}

	return []Primitive{
		face(4, 5, 7), // front (+Z)
		face(1, 0, 2), // back (-Z)
		face(5, 1, 6), // right (+X)
		face(0, 4, 3), // left (-X)
		face(7, 6, 3), // top (+Y)
		face(0, 1, 4), // bottom (-Y)
	}
}

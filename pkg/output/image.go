package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ToImage converts a linear pixel buffer to an 8-bit image with gamma 2
func ToImage(buffer *renderer.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(buffer.At(x, y)))
		}
	}
	return img
}

// Vec3ToColor converts a linear color to RGBA with gamma correction and clamping
func Vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: encodeComponent(c.X),
		G: encodeComponent(c.Y),
		B: encodeComponent(c.Z),
		A: 255,
	}
}

// encodeComponent applies gamma 2 and maps [0,1] to [0,255]. NaN maps to 0.
func encodeComponent(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	v = math.Min(math.Sqrt(v), 1)
	return uint8(255*v + 0.5)
}

package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// bytesPerPixel is the in-memory size of one linear RGB pixel
const bytesPerPixel = 24

// PixelBuffer holds linear RGB radiance, row-major with (0,0) at the top left
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewPixelBuffer creates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pix[y*b.Width+x]
}

// Set stores the color of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, c core.Vec3) {
	b.Pix[y*b.Width+x] = c
}

// AverageLuminance returns the mean luminance of the linear pixels
func (b *PixelBuffer) AverageLuminance() float64 {
	if len(b.Pix) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range b.Pix {
		total += c.Luminance()
	}
	return total / float64(len(b.Pix))
}

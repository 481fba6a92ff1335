package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int           // Image width
	Height       int           // Image height
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Tiles        int           // Number of tiles the image was split into
	TilesDone    int           // Tiles finished before the render returned
	Workers      int           // Worker goroutines used
	Seed         uint64        // Seed the render actually used
	Duration     time.Duration // Wall time of Render
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// SamplesPerSecond returns the sample throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Rows returns the stats as label/value pairs for table output
func (s RenderStats) Rows() [][]string {
	return [][]string{
		{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"Pixels", fmt.Sprintf("%d", s.TotalPixels)},
		{"Samples", fmt.Sprintf("%d", s.TotalSamples)},
		{"Samples/pixel", fmt.Sprintf("%.1f", s.AverageSamples())},
		{"Tiles", fmt.Sprintf("%d/%d", s.TilesDone, s.Tiles)},
		{"Workers", fmt.Sprintf("%d", s.Workers)},
		{"Seed", fmt.Sprintf("%d", s.Seed)},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
		{"Samples/sec", fmt.Sprintf("%.0f", s.SamplesPerSecond())},
	}
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

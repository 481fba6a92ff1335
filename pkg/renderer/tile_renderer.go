package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileRenderer renders the pixels of one tile using an integrator. Each pixel owns a
// random stream derived from the render seed, so a pixel's value does not depend on
// which worker renders it or on how the image is tiled.
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within bounds into buffer. The sampler is reseeded
// for every pixel; it only carries state between calls to avoid allocations.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buffer *PixelBuffer, sampler *core.RandomSampler, seed uint64) int {
	samples := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buffer.Set(x, y, tr.RenderPixel(x, y, sampler, seed))
			samples += tr.scene.SamplingConfig.SamplesPerPixel
		}
	}
	return samples
}

// RenderPixel averages SamplesPerPixel radiance estimates for pixel (x, y).
// Per sample the stream is consumed as pixel jitter, then lens, then integrator.
func (tr *TileRenderer) RenderPixel(x, y int, sampler *core.RandomSampler, seed uint64) core.Vec3 {
	config := tr.scene.SamplingConfig
	width, height := config.Width, config.Height
	sampler.Reseed(core.PixelSeed(seed, y*width+x), 0)

	var ps PixelStats
	for i := 0; i < config.SamplesPerPixel; i++ {
		jitter := sampler.Get2D()
		// Image rows run top to bottom, viewport t runs bottom to top
		s := (float64(x) + jitter.X) / float64(width)
		t := (float64(height-1-y) + jitter.Y) / float64(height)

		ray := tr.scene.Camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}
	return ps.GetColor()
}

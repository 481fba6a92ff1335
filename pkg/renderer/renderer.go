package renderer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ProgressFunc is called after each finished tile with the number of tiles done
type ProgressFunc func(done, total int)

// Renderer splits an image into tiles and renders them on a pool of workers
type Renderer struct {
	scene        *scene.Scene
	integrator   integrator.Integrator
	tileRenderer *TileRenderer
	workers      int
	logger       core.Logger
	progress     ProgressFunc
}

// NewRenderer validates the scene settings and checks host resources. A scene that has
// not been preprocessed is preprocessed here. A nil integrator selects path tracing.
// No goroutines are started until Render.
func NewRenderer(s *scene.Scene, integratorInst integrator.Integrator, logger core.Logger) (*Renderer, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", scene.ErrInvalidConfig)
	}

	if s.Camera == nil || s.BVH == nil {
		if err := s.Preprocess(); err != nil {
			return nil, err
		}
	} else if err := s.SamplingConfig.Validate(); err != nil {
		return nil, err
	}

	config := s.SamplingConfig
	if err := checkMemory(config.Width, config.Height, logger); err != nil {
		return nil, err
	}

	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(config)
	}

	r := &Renderer{
		scene:        s,
		integrator:   integratorInst,
		tileRenderer: NewTileRenderer(s, integratorInst),
		workers:      resolveWorkers(config.Workers, logger),
		logger:       logger,
	}
	return r, nil
}

// SetProgress installs a callback invoked from the goroutine running Render
func (r *Renderer) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Workers returns the size of the worker pool Render will start
func (r *Renderer) Workers() int {
	return r.workers
}

// Render produces the image. With a fixed seed the result is bit-identical across runs,
// worker counts and tile sizes. When ctx is cancelled the workers stop after their
// current tile and Render returns ctx.Err() with no buffer.
func (r *Renderer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	start := time.Now()
	config := r.scene.SamplingConfig
	seed := r.resolveSeed()
	tiles := NewTileGrid(config.Width, config.Height, config.EffectiveTileSize())

	stats := RenderStats{
		Width:   config.Width,
		Height:  config.Height,
		Tiles:   len(tiles),
		Workers: min(r.workers, len(tiles)),
		Seed:    seed,
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	r.logger.Infof("Rendering %dx%d, %d spp, depth %d, %d tiles on %d workers, seed %d",
		config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, stats.Tiles, stats.Workers, seed)

	buffer := NewPixelBuffer(config.Width, config.Height)
	pool := NewWorkerPool(r.tileRenderer, stats.Workers, len(tiles))
	pool.Start(ctx)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Buffer: buffer, Seed: seed})
	}
	pool.Close()

	for result := range pool.Results() {
		stats.TilesDone++
		stats.TotalPixels += tiles[result.TileID].Bounds.Dx() * tiles[result.TileID].Bounds.Dy()
		stats.TotalSamples += result.Samples
		if r.progress != nil {
			r.progress(stats.TilesDone, stats.Tiles)
		}
	}
	stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		r.logger.Noticef("Render cancelled after %d/%d tiles", stats.TilesDone, stats.Tiles)
		return nil, stats, err
	}

	r.logger.Infof("Render finished in %v (%.0f samples/sec)", stats.Duration, stats.SamplesPerSecond())
	return buffer, stats, nil
}

// resolveSeed returns the configured seed or draws a fresh one
func (r *Renderer) resolveSeed() uint64 {
	if r.scene.SamplingConfig.Seed != nil {
		return *r.scene.SamplingConfig.Seed
	}
	seed := rand.Uint64()
	r.logger.Debugf("No seed configured, drew %d", seed)
	return seed
}

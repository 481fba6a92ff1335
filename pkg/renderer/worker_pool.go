package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	Buffer *PixelBuffer // Shared output, tiles never overlap
	Seed   uint64
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID  int
	Samples int
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	sampler      *core.RandomSampler
	taskQueue    <-chan TileTask
	resultQueue  chan<- TileResult
}

// NewWorkerPool creates a pool of numWorkers workers whose queues can hold
// maxTasks tiles without blocking
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, maxTasks int) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			tileRenderer: tileRenderer,
			sampler:      core.NewRandomSampler(0, 0),
			taskQueue:    wp.taskQueue,
			resultQueue:  wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers. Results are closed once every worker has exited.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// SubmitTask queues a tile task
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Close signals that no more tasks will be submitted
func (wp *WorkerPool) Close() {
	close(wp.taskQueue)
}

// Results returns the channel of completed tiles
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// run is the main worker loop. Cancellation is checked between tiles.
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			return
		}

		samples := w.tileRenderer.RenderTileBounds(task.Tile.Bounds, task.Buffer, w.sampler, task.Seed)
		w.resultQueue <- TileResult{TileID: task.Tile.ID, Samples: samples}
	}
}

package renderer

import (
	"runtime"
	"sync"

	"github.com/arvhn/go-tracekernel/pkg/kernel"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

// BlockTask is one dispatch block: a kernel.BlockWidth x kernel.BlockHeight
// group of invocations, clipped to the image edge.
type BlockTask struct {
	X0, Y0 int
	Params kernel.Params
}

// BlockResult reports a finished block.
type BlockResult struct {
	DroppedPushes int
}

// WorkerPool runs kernel invocations block by block on a fixed set of
// goroutines. Blocks never overlap, so workers write disjoint texels and the
// shared accumulation image needs no locking within a frame.
type WorkerPool struct {
	world       *scene.Scene
	img         *kernel.Image
	taskQueue   chan BlockTask
	resultQueue chan BlockResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool writing into img. numWorkers <= 0 means one
// worker per CPU.
func NewWorkerPool(world *scene.Scene, img *kernel.Image, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	maxBlocks := ((img.Width + kernel.BlockWidth - 1) / kernel.BlockWidth) *
		((img.Height + kernel.BlockHeight - 1) / kernel.BlockHeight)

	return &WorkerPool{
		world:       world,
		img:         img,
		taskQueue:   make(chan BlockTask, maxBlocks),
		resultQueue: make(chan BlockResult, maxBlocks),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop shuts the pool down after draining queued tasks.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a block for rendering.
func (wp *WorkerPool) SubmitTask(task BlockTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed block result.
func (wp *WorkerPool) GetResult() (BlockResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		dropped := 0
		for y := task.Y0; y < task.Y0+kernel.BlockHeight && y < wp.img.Height; y++ {
			for x := task.X0; x < task.X0+kernel.BlockWidth && x < wp.img.Width; x++ {
				dropped += kernel.Invoke(task.Params, wp.world, wp.img, x, y)
			}
		}
		wp.resultQueue <- BlockResult{DroppedPushes: dropped}
	}
}

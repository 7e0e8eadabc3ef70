// Package renderer is the host collaborator around the kernel: it owns the
// frame counter and accumulation lifecycle, groups invocations into dispatch
// blocks, runs them on a worker pool with a full-dispatch barrier between
// frames, and converts the accumulation image for display or disk.
package renderer

import (
	"fmt"
	"time"

	logging "github.com/op/go-logging"

	"github.com/arvhn/go-tracekernel/pkg/kernel"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

var log = logging.MustGetLogger("tracekernel")

// Config controls a progressive render.
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	BounceCount     int
	NumWorkers      int // 0 = one per CPU
}

// ProgressiveRenderer refines the accumulation image frame by frame. Scene
// buffers stay immutable for the lifetime of the renderer; the frame counter
// and the reset-on-input policy live here, not in the kernel.
type ProgressiveRenderer struct {
	world        *scene.Scene
	params       kernel.Params
	img          *kernel.Image
	pool         *WorkerPool
	frame        uint32
	inputChanged bool
	started      bool
}

// NewProgressiveRenderer validates the parameter block once up front and
// prepares the pool. Validation failures (zero sample count and friends)
// surface here rather than as NaN texels mid-dispatch.
func NewProgressiveRenderer(world *scene.Scene, camera scene.Camera, sky scene.SkyColors, config Config) (*ProgressiveRenderer, error) {
	params := kernel.Params{
		SamplesPerPixel: config.SamplesPerPixel,
		BounceCount:     config.BounceCount,
		FocalLength:     camera.FocalLength,
		Sky:             sky,
		CameraPosition:  camera.Position,
		CameraTransform: camera.Transform,
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("renderer: invalid image size %dx%d", config.Width, config.Height)
	}

	img := kernel.NewImage(config.Width, config.Height)
	return &ProgressiveRenderer{
		world:  world,
		params: params,
		img:    img,
		pool:   NewWorkerPool(world, img, config.NumWorkers),
	}, nil
}

// NotifyInputChanged schedules an accumulation reset before the next frame,
// for camera moves or parameter edits.
func (pr *ProgressiveRenderer) NotifyInputChanged() {
	pr.inputChanged = true
}

// Image exposes the accumulation buffer. Only read it between frames; during
// a dispatch the workers own it.
func (pr *ProgressiveRenderer) Image() *kernel.Image {
	return pr.img
}

// FrameCounter returns the index the next RenderFrame call will run as.
func (pr *ProgressiveRenderer) FrameCounter() uint32 {
	return pr.frame
}

// RenderFrame runs one full dispatch: every block of every pixel exactly
// once, then a barrier. The accumulation weight 1/(frame+1) makes each frame
// an exact incremental step of the running mean.
func (pr *ProgressiveRenderer) RenderFrame() FrameStats {
	if pr.inputChanged {
		pr.img.Reset()
		pr.frame = 0
		pr.inputChanged = false
		log.Debug("accumulation reset on input change")
	}

	params := pr.params
	params.FrameCounter = pr.frame
	params.InputChanged = false

	if !pr.started {
		pr.pool.Start()
		pr.started = true
	}

	start := time.Now()
	blocks := 0
	for y := 0; y < pr.img.Height; y += kernel.BlockHeight {
		for x := 0; x < pr.img.Width; x += kernel.BlockWidth {
			pr.pool.SubmitTask(BlockTask{X0: x, Y0: y, Params: params})
			blocks++
		}
	}

	stats := FrameStats{
		Frame:   pr.frame,
		Blocks:  blocks,
		Samples: pr.img.Width * pr.img.Height * params.SamplesPerPixel,
	}
	// Full-dispatch barrier: the next frame must not start until every block
	// of this one has landed.
	for i := 0; i < blocks; i++ {
		result, ok := pr.pool.GetResult()
		if !ok {
			break
		}
		stats.DroppedPushes += result.DroppedPushes
	}
	stats.Duration = time.Since(start)

	if stats.DroppedPushes > 0 {
		log.Warningf("frame %d: %d BVH stack pushes dropped, image may be missing geometry",
			pr.frame, stats.DroppedPushes)
	}

	pr.frame++
	return stats
}

// Render runs frames consecutive dispatches and returns the summed stats.
func (pr *ProgressiveRenderer) Render(frames int) RenderStats {
	var total RenderStats
	for i := 0; i < frames; i++ {
		stats := pr.RenderFrame()
		total.Add(stats)
		log.Infof("frame %d/%d: %d samples in %v", i+1, frames, stats.Samples, stats.Duration)
	}
	return total
}

// Close shuts down the worker pool.
func (pr *ProgressiveRenderer) Close() {
	if pr.started {
		pr.pool.Stop()
	}
}

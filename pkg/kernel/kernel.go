// Package kernel is the per-pixel compute entry point: it builds the primary
// ray for a pixel, runs the path integrator a configured number of times,
// and blends the mean into the persistent accumulation image as an exact
// incremental running average across frames.
package kernel

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/integrator"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

// Block dimensions group invocations for locality; invocations within a
// block stay fully independent.
const (
	BlockWidth  = 8
	BlockHeight = 4
)

// Params is the per-dispatch parameter block the host supplies. Scene
// buffers and the accumulation image are passed alongside it; everything
// here is read-only for the duration of a dispatch.
type Params struct {
	FrameCounter    uint32
	SamplesPerPixel int
	BounceCount     int
	FocalLength     float32
	Sky             scene.SkyColors
	CameraPosition  core.Vec3
	CameraTransform mgl32.Mat4
	InputChanged    bool
}

// ErrNoSamples rejects dispatches that would divide by a zero sample count.
var ErrNoSamples = errors.New("kernel: samples per pixel must be positive")

// Validate rejects parameter blocks the kernel cannot run. A zero sample
// count in particular would silently produce NaN texels, so it fails fast
// here instead.
func (p Params) Validate() error {
	if p.SamplesPerPixel <= 0 {
		return ErrNoSamples
	}
	if p.BounceCount < 0 {
		return fmt.Errorf("kernel: negative bounce count %d", p.BounceCount)
	}
	if p.FocalLength <= 0 {
		return fmt.Errorf("kernel: focal length %v must be positive", p.FocalLength)
	}
	return nil
}

// PrimaryRay maps a pixel to its camera ray: pixel coordinates go to a
// plane with both axes divided by the image width (preserving aspect), the
// pinhole direction is (x, y, focal), and only the direction is rotated by
// the camera transform. The origin is the camera position untouched.
func (p Params) PrimaryRay(x, y, width, height int) core.Ray {
	u := (float32(x) - float32(width)/2) / float32(width)
	v := (float32(y) - float32(height)/2) / float32(width)

	local := core.NewVec3(u, v, p.FocalLength).Normalize()
	direction := core.FromMgl(p.CameraTransform.Mul4x1(local.Mgl(0)))

	return core.NewRay(p.CameraPosition, direction)
}

// Invoke runs one kernel invocation: the read-modify-write of a single
// accumulation texel. The sampler seed mixes the pixel index with the frame
// counter so every (pixel, frame) pair gets its own stream, and all
// SamplesPerPixel integrator runs reuse the identical primary ray; variance
// reduction comes from frame-to-frame accumulation, not primary-ray jitter.
//
// The returned count is the number of BVH stack pushes dropped during this
// invocation's traversals (zero for depth-bounded trees).
func Invoke(p Params, world *scene.Scene, img *Image, x, y int) int {
	pixelIndex := uint32(y*img.Width + x)
	state := core.NewSamplerState(pixelIndex, p.FrameCounter)

	ray := p.PrimaryRay(x, y, img.Width, img.Height)

	var sum core.Vec3
	dropped := 0
	for s := 0; s < p.SamplesPerPixel; s++ {
		radiance, d := integrator.Trace(ray, world, p.Sky, p.BounceCount, &state)
		sum = sum.Add(radiance)
		dropped += d
	}
	sample := sum.Divide(float32(p.SamplesPerPixel))

	// Incremental running mean: frame 0 replaces, frame n blends at 1/(n+1).
	weight := 1 / float32(p.FrameCounter+1)
	blended := img.At(x, y).Multiply(1 - weight).Add(sample.Multiply(weight))
	img.Set(x, y, blended)

	return dropped
}

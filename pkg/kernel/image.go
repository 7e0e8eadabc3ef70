package kernel

import "github.com/arvhn/go-tracekernel/pkg/core"

// Image is the persistent accumulation buffer: one floating-point RGB texel
// per kernel invocation. It survives across frames and is mutated in place,
// one read-modify-write per texel per invocation. Resetting it (for camera
// moves and the like) is the host's job.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage allocates a zeroed accumulation image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the texel at integer coordinates (x, y).
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the texel at integer coordinates (x, y).
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// Reset zeroes every texel, discarding the accumulated history.
func (img *Image) Reset() {
	clear(img.Pixels)
}

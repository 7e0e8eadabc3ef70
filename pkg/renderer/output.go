package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/kernel"
)

// vec3ToColor converts a linear radiance texel to a display color with
// gamma 2.0 and clamping.
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.GammaCorrect(2.0).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// ToRGBA converts the accumulation image for display. Texel row 0 is the
// bottom of the frame (the primary-ray plane has +y up), so rows flip here.
func ToRGBA(img *kernel.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, img.Height-1-y, vec3ToColor(img.At(x, y)))
		}
	}
	return out
}

// WritePNG tonemaps the accumulation image and writes it to path.
func WritePNG(img *kernel.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderer: create output: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, ToRGBA(img)); err != nil {
		return fmt.Errorf("renderer: encode png: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/arvhn/go-tracekernel/pkg/renderer"
	"github.com/arvhn/go-tracekernel/pkg/scene"
)

// RenderFlags are the options of the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene",
		Value: "default",
		Usage: "scene to render: 'default' or 'cornell'",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 640,
		Usage: "output image width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 360,
		Usage: "output image height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 4,
		Usage: "integrator samples per pixel per frame",
	},
	cli.IntFlag{
		Name:  "bounces",
		Value: 4,
		Usage: "maximum ray bounce count",
	},
	cli.IntFlag{
		Name:  "frames",
		Value: 32,
		Usage: "number of accumulation frames",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "parallel workers (0 = one per CPU)",
	},
	cli.StringFlag{
		Name:  "out",
		Value: "render.png",
		Usage: "output PNG path",
	},
}

func loadScene(name string) (*scene.Scene, scene.Camera, scene.SkyColors, error) {
	switch name {
	case "default":
		return scene.NewDefaultScene()
	case "cornell":
		return scene.NewCornellScene()
	default:
		return nil, scene.Camera{}, scene.SkyColors{}, fmt.Errorf("unknown scene %q", name)
	}
}

// Render progressively refines the selected scene and writes a PNG.
func Render(ctx *cli.Context) error {
	SetupLogging(ctx)

	world, camera, sky, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}

	pr, err := renderer.NewProgressiveRenderer(world, camera, sky, renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		BounceCount:     ctx.Int("bounces"),
		NumWorkers:      ctx.Int("workers"),
	})
	if err != nil {
		return err
	}
	defer pr.Close()

	frames := ctx.Int("frames")
	logger.Noticef("rendering %q: %dx%d, %d spp x %d frames",
		ctx.String("scene"), ctx.Int("width"), ctx.Int("height"), ctx.Int("spp"), frames)

	stats := pr.Render(frames)
	logger.Noticef("done: %d frames, %d samples, %v", stats.Frames, stats.Samples, stats.Duration)
	if stats.DroppedPushes > 0 {
		logger.Warningf("%d BVH stack pushes were dropped; output may be incomplete", stats.DroppedPushes)
	}

	out := ctx.String("out")
	if err := renderer.WritePNG(pr.Image(), out); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/arvhn/go-tracekernel/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "tracekernel"
	app.Usage = "progressive path-tracing compute kernel"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "progressively render a scene to a PNG",
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
		{
			Name:   "info",
			Usage:  "describe a scene's buffers and BVH profile",
			Flags:  cmd.InfoFlags,
			Action: cmd.Info,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

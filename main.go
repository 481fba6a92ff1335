package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/cmd"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
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
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a built-in scene or a JSON scene description to an image file.
Flags override the scene's own settings. The output format follows the file
extension: .png, .bmp, .tif or .tiff.`,
			ArgsUsage: "[scene-name|scene.json]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum number of bounces per path",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Usage: "render seed; omit for a fresh random seed",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = one per logical CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge in pixels",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename (default output/<scene>/render_<timestamp>.png)",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "export",
			Usage:     "write a scene as a JSON description",
			ArgsUsage: "scene-name [out.json]",
			Action:    cmd.ExportScene,
		},
		{
			Name:  "serve",
			Usage: "serve the HTTP render API",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "localhost:8080",
					Usage: "listen address",
				},
				cli.IntFlag{
					Name:  "max-size",
					Usage: "largest width or height a request may ask for",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

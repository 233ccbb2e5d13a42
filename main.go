package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	os.Exit(run(os.Args))
}

// run executes the CLI and returns the process exit code
func run(args []string) int {
	if err := newApp().Run(args); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render JSON scenes with ambient occlusion"
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

	renderFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "output image; the extension selects png or exr (default: <scene>.png)",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "parallel workers, 0 for one per CPU and 1 for serial rendering",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: 32,
			Usage: "edge length of the square tiles handed to workers",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "override the scene's random seed",
		},
		cli.IntFlag{
			Name:  "samples",
			Usage: "override the scene's number of samples per pixel",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene file to an image",
			Description: `
Parse a JSON scene, trace every sample pass and write the averaged image.
The output format is chosen from the file extension (.png or .exr).`,
			ArgsUsage: "scene.json",
			Flags:     renderFlags,
			Action:    renderScene,
		},
		{
			Name:      "info",
			Usage:     "parse a scene file and print a summary",
			ArgsUsage: "scene.json",
			Action:    sceneInfo,
		},
	}

	// A bare scene path renders it
	app.ArgsUsage = "scene.json"
	app.Action = renderScene
	app.Flags = append(app.Flags, renderFlags...)

	return app
}

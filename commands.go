package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-ao-raytracer/pkg/loaders"
	"github.com/df07/go-ao-raytracer/pkg/log"
	"github.com/df07/go-ao-raytracer/pkg/renderer"
	"github.com/df07/go-ao-raytracer/pkg/scene"
)

// loadSceneArg loads the single scene file named on the command line
func loadSceneArg(ctx *cli.Context) (string, *scene.Scene, error) {
	if ctx.NArg() != 1 {
		return "", nil, errors.New("expected exactly one scene file argument")
	}

	path := ctx.Args().First()
	sc, err := loaders.LoadScene(path)
	if err != nil {
		return "", nil, err
	}
	return path, sc, nil
}

// defaultOutputPath replaces the scene file's extension with .png
func defaultOutputPath(scenePath string) string {
	return strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + ".png"
}

// Render flags are accepted both before and after the command name. A value
// given to the command wins over one given to the app.
func flagIsSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func useGlobal(ctx *cli.Context, name string) bool {
	return !ctx.IsSet(name) && ctx.GlobalIsSet(name)
}

func intFlag(ctx *cli.Context, name string) int {
	if useGlobal(ctx, name) {
		return ctx.GlobalInt(name)
	}
	return ctx.Int(name)
}

func uint64Flag(ctx *cli.Context, name string) uint64 {
	if useGlobal(ctx, name) {
		return ctx.GlobalUint64(name)
	}
	return ctx.Uint64(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if useGlobal(ctx, name) {
		return ctx.GlobalString(name)
	}
	return ctx.String(name)
}

// Render a scene file to an image.
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	scenePath, sc, err := loadSceneArg(ctx)
	if err != nil {
		return err
	}

	if flagIsSet(ctx, "seed") {
		sc.Seed = uint64Flag(ctx, "seed")
	}
	if flagIsSet(ctx, "samples") {
		samples := intFlag(ctx, "samples")
		if samples <= 0 {
			return fmt.Errorf("--samples must be positive, got %d", samples)
		}
		sc.Integrator.NumSamples = samples
	}

	output := stringFlag(ctx, "output")
	if output == "" {
		output = defaultOutputPath(scenePath)
	}
	if err := renderer.CheckOutputFormat(output); err != nil {
		return err
	}

	config := renderer.Config{
		NumWorkers: intFlag(ctx, "workers"),
		TileSize:   intFlag(ctx, "tile-size"),
	}
	rt, err := renderer.NewRaytracer(sc, config, log.Printer{Logger: logger})
	if err != nil {
		return err
	}

	// Ctrl-C abandons the render without writing a partial image
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := rt.Render(renderCtx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := img.Save(output); err != nil {
		return err
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("render statistics\n%s", buf.String())
	logger.Noticef("image saved as %s", output)
	return nil
}

// Parse a scene file and print a summary table.
func sceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	_, sc, err := loadSceneArg(ctx)
	if err != nil {
		return err
	}

	writeSceneSummary(ctx.App.Writer, sc)
	return nil
}

func writeSceneSummary(w io.Writer, sc *scene.Scene) {
	width, height := sc.Camera.Resolution()
	accel := sc.Objects.Acceleration()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Setting", "Value"})

	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", width, height)})
	table.Append([]string{"Integrator", sc.Integrator.Kind})
	table.Append([]string{"Samples per pixel", fmt.Sprintf("%d", sc.Integrator.NumSamples)})
	table.Append([]string{"Ray recursion limit", fmt.Sprintf("%d", sc.Integrator.RecursionLimit)})
	table.Append([]string{"Seed", fmt.Sprintf("%d", sc.Seed)})
	table.Append([]string{"Objects", fmt.Sprintf("%d", sc.Objects.Len())})
	table.Append([]string{"Acceleration", accel.Kind.String()})

	if bvh := sc.Objects.BVH(); bvh != nil {
		stats := bvh.Stats()
		table.Append([]string{"Axis selection", accel.AxisSelection.String()})
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", stats.TotalNodes, stats.LeafNodes)})
		table.Append([]string{"BVH depth", fmt.Sprintf("max %d, avg %.1f", stats.MaxDepth, stats.AvgDepth)})
	}

	table.Render()
}

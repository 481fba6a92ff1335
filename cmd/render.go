package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFrame renders a still frame of a built-in scene or a JSON scene file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneArg := "default"
	if ctx.NArg() > 0 {
		sceneArg = ctx.Args().First()
	}

	sc, err := LoadScene(sceneArg)
	if err != nil {
		return err
	}
	applyRenderFlags(ctx, &sc.SamplingConfig)

	outPath := ctx.String("out")
	if outPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join("output", sceneLabel(sceneArg), fmt.Sprintf("render_%s.png", timestamp))
	}
	// Fail on a bad extension before spending time on the render
	if _, err := output.FormatFromPath(outPath); err != nil {
		return err
	}

	logger.Noticef("preparing scene %q", sceneArg)
	start := time.Now()
	r, err := renderer.NewRenderer(sc, nil, logger)
	if err != nil {
		return err
	}
	bvhStats := sc.BVH.Stats()
	logger.Infof("built BVH over %d primitives in %v: %d nodes, %d leaves, depth %d",
		bvhStats.Primitives, time.Since(start), bvhStats.Nodes, bvhStats.Leaves, bvhStats.MaxDepth)

	r.SetProgress(progressLogger())

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buffer, stats, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	if err := output.WriteFile(outPath, output.ToImage(buffer)); err != nil {
		return err
	}

	displayRenderStats(ctx, stats, buffer)
	logger.Noticef("render saved as %s", outPath)
	return nil
}

// applyRenderFlags copies the flags the user actually set over the scene settings
func applyRenderFlags(ctx *cli.Context, config *scene.SamplingConfig) {
	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		config.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		*config = config.WithSeed(ctx.Uint64("seed"))
	}
	if ctx.IsSet("workers") {
		config.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("tile-size") {
		config.TileSize = ctx.Int("tile-size")
	}
}

// progressLogger reports every tenth of the render
func progressLogger() renderer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile != lastDecile {
			lastDecile = decile
			logger.Infof("progress: %d/%d tiles (%d%%)", done, total, done*100/total)
		}
	}
}

func displayRenderStats(ctx *cli.Context, stats renderer.RenderStats, buffer *renderer.PixelBuffer) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk(stats.Rows())
	table.SetFooter([]string{"Mean luminance", fmt.Sprintf("%.4f", buffer.AverageLuminance())})
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// LoadScene resolves a built-in scene name or a path to a JSON scene description
func LoadScene(nameOrPath string) (*scene.Scene, error) {
	if nameOrPath == "" {
		return nil, errors.New("missing scene name")
	}
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		desc, err := scene.LoadFile(nameOrPath)
		if err != nil {
			return nil, err
		}
		return desc.Build()
	}
	return scene.New(nameOrPath)
}

// sceneLabel names a scene argument for output paths
func sceneLabel(nameOrPath string) string {
	base := filepath.Base(nameOrPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	return writeSceneTable(ctx.App.Writer)
}

func writeSceneTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Primitives", "Resolution", "Description"})
	for _, info := range scene.List() {
		sceneObj, err := scene.New(info.ID)
		if err != nil {
			return err
		}
		config := sceneObj.SamplingConfig
		table.Append([]string{
			info.ID,
			info.DisplayName,
			fmt.Sprintf("%d", sceneObj.PrimitiveCount()),
			fmt.Sprintf("%dx%d", config.Width, config.Height),
			info.Description,
		})
	}
	table.Render()
	return nil
}

// ExportScene writes a scene as a JSON description, to a file or to stdout.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() < 1 {
		return errors.New("missing scene argument")
	}
	sceneObj, err := LoadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	desc := scene.Describe(sceneObj)

	if ctx.NArg() < 2 {
		return scene.Save(ctx.App.Writer, desc)
	}

	path := ctx.Args().Get(1)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.Save(file, desc); err != nil {
		file.Close()
		return err
	}
	logger.Noticef("wrote scene description to %s", path)
	return file.Close()
}

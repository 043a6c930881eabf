// Command generate-charset writes a synthetic charset image for demos and
// manual testing, along with a YAML file describing its geometry.
//
// Every tile is a solid block in a colour unique to its index, so a
// misplaced crop is obvious in the rendered output.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/decca/chartist/internal/codec"
	"github.com/decca/chartist/internal/sample"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// metadata is written next to the image as <output>.yaml.
type metadata struct {
	Image     string      `yaml:"image"`
	Format    string      `yaml:"format"`
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	Charset   sample.Spec `yaml:"charset"`
	Generator string      `yaml:"generator"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		spec   sample.Spec
		output string
		force  bool
	)

	fs := pflag.NewFlagSet("generate-charset", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&spec.TileWidth, "tile-width", 8, "Tile width in pixels")
	fs.IntVar(&spec.TileHeight, "tile-height", 8, "Tile height in pixels")
	fs.IntVar(&spec.Columns, "columns", 16, "Tiles per charset row")
	fs.IntVar(&spec.Tiles, "tiles", 96, fmt.Sprintf("Number of tiles (1-%d)", sample.MaxTiles))
	fs.BoolVar(&spec.Indexed, "indexed", false, "Write a paletted image")
	fs.StringVarP(&output, "output", "o", "charset.png", "Output image; the extension selects the format")
	fs.BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	if err := generate(spec, output, force, stdout); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func generate(spec sample.Spec, output string, force bool, stdout io.Writer) error {
	img, err := sample.Charset(spec)
	if err != nil {
		return err
	}

	path, err := codec.Save(img, output, codec.SaveOptions{SourceFormat: "png", Force: force})
	if err != nil {
		return err
	}
	format, _ := codec.FormatForPath(path)

	w, h := spec.Size()
	meta := metadata{
		Image:     path,
		Format:    format,
		Width:     w,
		Height:    h,
		Charset:   spec,
		Generator: "generate-charset",
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	metaPath := path + ".yaml"
	if !force {
		if _, err := os.Stat(metaPath); err == nil {
			return fmt.Errorf("%w: %s", codec.ErrExists, metaPath)
		}
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	fmt.Fprintf(stdout, "wrote %s (%d x %d, %d tiles of %d x %d)\n", path, w, h, spec.Tiles, spec.TileWidth, spec.TileHeight)
	fmt.Fprintf(stdout, "wrote %s\n", metaPath)
	return nil
}

// Command chartist renders text files into images using bitmap charsets.
package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/decca/chartist"
	"github.com/decca/chartist/internal/codec"
	"github.com/decca/chartist/internal/debug"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		cfg         config
		configPath  string
		quiet       bool
		showVersion bool
		showHelp    bool
		debugMode   bool
		debugFile   string
		debugPretty bool
	)

	fs := pflag.NewFlagSet("chartist", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.StringVarP(&cfg.Size, "size", "s", "", "Size of the chars: X or X,Y (default: auto)")
	fs.StringVarP(&cfg.Resolution, "resolution", "r", "", "Resolution of the rendered image: X or X,Y (default: auto)")
	fs.StringVarP(&cfg.Color, "color", "c", "", "Background color: R,G,B or #rrggbb (default: auto)")
	fs.StringVarP(&cfg.Output, "output", "o", "", "Output image file; the image is shown when omitted")
	fs.BoolVarP(&cfg.Force, "force", "f", false, "Overwrite an existing output file")
	fs.StringVarP(&cfg.Mapping, "mapping", "m", "", "Mapping file listing the chars of the charset in tile order")
	fs.StringVarP(&cfg.Widths, "widths", "w", "", "Width file with one <char><TAB><width> entry per line")
	fs.BoolVar(&cfg.Frame, "frame", false, "Surround the text with a one-tile frame")
	fs.IntVar(&cfg.LineSpacing, "line-spacing", 1, "Line advance in multiples of the char height")
	fs.IntVar(&cfg.Scale, "scale", 1, "Integer upscale of the rendered image")
	fs.BoolVar(&cfg.SkipUnknown, "skip-unknown", false, "Skip chars missing from the charset instead of failing")
	fs.StringVar(&cfg.Encoding, "encoding", "utf8", "Encoding of text, mapping and width files (utf8, latin1, cp437)")
	fs.StringVar(&configPath, "config", "", "YAML config file (default: $CHARTIST_CONFIG)")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors")
	fs.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	fs.BoolVar(&debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		printHelp(stderr, fs)
		return 1
	}

	if showHelp {
		printHelp(stdout, fs)
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "chartist version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	if err := loadEnv(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	if configPath == "" {
		configPath = os.Getenv("CHARTIST_CONFIG")
	}
	if configPath != "" {
		fileCfg, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return 1
		}
		merge(&cfg, fileCfg, fs)
	}

	positional := fs.Args()
	if len(positional) != 2 {
		fmt.Fprintf(stderr, "ERROR: expected charsetfile and textfile, got %d argument(s)\n", len(positional))
		printHelp(stderr, fs)
		return 1
	}

	// Setup debug if enabled
	var session *debug.Session
	if debugMode || debugFile != "" || debug.EnvEnabled() {
		debug.SetEnabled(true)

		var output io.Writer = stderr
		if debugFile != "" {
			file, err := os.Create(debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "ERROR: creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if debugPretty || debug.EnvPretty() {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}

		session = debug.NewSession(sink, debug.SessionStartData{
			Version: version,
			Charset: positional[0],
			Text:    positional[1],
			Output:  cfg.Output,
		})
		if session != nil {
			defer session.Close()
		}
	}

	status := stdout
	if quiet {
		status = io.Discard
	}

	if err := execute(positional[0], positional[1], &cfg, session, status, stderr); err != nil {
		session.Fail(err)
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

// execute loads the inputs, prints the resolved settings, renders and
// saves or shows the image.
func execute(charsetPath, textPath string, cfg *config, session *debug.Session, status, stderr io.Writer) error {
	enc, err := chartist.ParseEncoding(cfg.Encoding)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg, enc)
	if err != nil {
		return err
	}
	if session != nil {
		opts = append(opts, chartist.WithDebug(session))
	}

	cs, err := chartist.LoadCharset(charsetPath)
	if err != nil {
		return err
	}

	lines, err := readLines(textPath, enc)
	if err != nil {
		return err
	}

	plan, err := chartist.NewPlan(lines, cs, opts...)
	if err != nil {
		return err
	}
	printPlan(status, charsetPath, cs, plan)

	fmt.Fprintln(status, "    generating image...")
	res, err := plan.Execute()
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(stderr, "WARNING: %s\n", w)
	}

	if cfg.Output == "" {
		fmt.Fprintln(status, "    try to show image...")
		if _, err := codec.Display(res.Image); err != nil {
			return err
		}
		fmt.Fprintln(status, "    done.")
		return nil
	}

	fmt.Fprintf(status, "    try to save: %s\n", cfg.Output)
	saved, err := codec.Save(res.Image, cfg.Output, codec.SaveOptions{
		SourceFormat: cs.Format,
		Force:        cfg.Force,
	})
	if err != nil {
		return err
	}
	if saved != cfg.Output {
		fmt.Fprintf(status, "    try to save: %s\n", saved)
	}
	format, _ := codec.FormatForPath(saved)
	session.Emit("save", "Written", debug.SaveData{
		Path:     saved,
		Format:   format,
		Fallback: saved != cfg.Output,
	})
	fmt.Fprintln(status, "    done.")
	return nil
}

// buildOptions turns the merged configuration into render options,
// reading the mapping and width files it names.
func buildOptions(cfg *config, enc chartist.Encoding) ([]chartist.Option, error) {
	opts := []chartist.Option{
		chartist.WithLayout(chartist.Layout{Frame: cfg.Frame, LineSpacing: cfg.LineSpacing}),
		chartist.WithScale(cfg.Scale),
		chartist.WithSkipUnknown(cfg.SkipUnknown),
	}

	if cfg.Size != "" {
		w, h, err := parsePair("size", cfg.Size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chartist.WithTileSize(w, h))
	}

	if cfg.Resolution != "" {
		w, h, err := parsePair("resolution", cfg.Resolution)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chartist.WithResolution(w, h))
	}

	if cfg.Color != "" {
		r, g, b, err := parseColor(cfg.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, chartist.WithBackground(color.RGBA{R: r, G: g, B: b, A: 255}))
	}

	if cfg.Mapping != "" {
		f, err := os.Open(cfg.Mapping)
		if err != nil {
			return nil, fmt.Errorf("failed to open mapping: %w", err)
		}
		defer f.Close()
		table, err := chartist.ParseMapping(f, enc)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", cfg.Mapping, err)
		}
		opts = append(opts, chartist.WithMapping(table))
	}

	if cfg.Widths != "" {
		f, err := os.Open(cfg.Widths)
		if err != nil {
			return nil, fmt.Errorf("failed to open widths: %w", err)
		}
		defer f.Close()
		entries, err := chartist.ParseWidths(f, enc)
		if err != nil {
			return nil, fmt.Errorf("widths %s: %w", cfg.Widths, err)
		}
		opts = append(opts, chartist.WithWidths(entries))
	}

	return opts, nil
}

func readLines(path string, enc chartist.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open text: %w", err)
	}
	defer f.Close()

	lines, err := chartist.ReadLines(f, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", chartist.ErrEmptyText, path)
	}
	return lines, nil
}

// printPlan writes the status report of resolved settings.
func printPlan(w io.Writer, charsetPath string, cs *chartist.Charset, p *chartist.Plan) {
	fmt.Fprintf(w, "    Charset: %s\n", filepath.Base(charsetPath))
	fmt.Fprintf(w, "     Format: .%s\n", cs.Format)
	fmt.Fprintf(w, " Resolution: %s\n", cs.Size())
	fmt.Fprintf(w, "  Textlines: %d (max. %d chars)\n", p.Lines, p.LongestLine)
	fmt.Fprintf(w, "   Charsize: %s%s\n", p.Tile, autoSuffix(p.TileAuto))
	fmt.Fprintf(w, "    Preview: %s%s\n", p.Canvas, autoSuffix(p.CanvasAuto))
	fmt.Fprintf(w, "    BGcolor: %d, %d, %d%s\n", p.Background.R, p.Background.G, p.Background.B, autoSuffix(p.BackgroundAuto))
	if p.Scale > 1 {
		fmt.Fprintf(w, "      Scale: %dx\n", p.Scale)
	}
}

func autoSuffix(auto bool) string {
	if auto {
		return " (auto)"
	}
	return ""
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "chartist - generate images from charsets and texts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  chartist [flags] <charsetfile> <textfile>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The flags are only needed if autodetection of size, resolution or color")
	fmt.Fprintln(w, "does not meet the required needs. The image is saved only when an output")
	fmt.Fprintln(w, "file is set; otherwise it is shown by the OS image viewer.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  chartist charsetfile.png textfile.txt")
	fmt.Fprintln(w, "  chartist chars.gif text.txt -o screen.png")
	fmt.Fprintln(w, "  chartist font.tif scroll.txt -s 8 -r 320x256")
	fmt.Fprintln(w, "  chartist letters.tif credits.txt -s 16x32 -r 256")
	fmt.Fprintln(w, "  chartist graphic.jpg greets.txt -c 255,127,64 -o out.jpg")
}

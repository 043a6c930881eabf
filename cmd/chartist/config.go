package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// config holds every setting the command accepts. It is filled from the
// YAML config file first; flags set on the command line override it.
type config struct {
	Size        string `yaml:"size"`
	Resolution  string `yaml:"resolution"`
	Color       string `yaml:"color"`
	Output      string `yaml:"output"`
	Force       bool   `yaml:"force"`
	Mapping     string `yaml:"mapping"`
	Widths      string `yaml:"widths"`
	Frame       bool   `yaml:"frame"`
	LineSpacing int    `yaml:"line_spacing"`
	Scale       int    `yaml:"scale"`
	SkipUnknown bool   `yaml:"skip_unknown"`
	Encoding    string `yaml:"encoding"`
}

// loadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func loadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	return nil
}

// loadConfig decodes a YAML config file.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies into flagCfg every file value whose flag was not given.
func merge(flagCfg, fileCfg *config, fs *pflag.FlagSet) {
	if fileCfg == nil {
		return
	}
	set := func(name string) bool { return fs.Changed(name) }

	if !set("size") {
		flagCfg.Size = fileCfg.Size
	}
	if !set("resolution") {
		flagCfg.Resolution = fileCfg.Resolution
	}
	if !set("color") {
		flagCfg.Color = fileCfg.Color
	}
	if !set("output") {
		flagCfg.Output = fileCfg.Output
	}
	if !set("force") {
		flagCfg.Force = fileCfg.Force
	}
	if !set("mapping") {
		flagCfg.Mapping = fileCfg.Mapping
	}
	if !set("widths") {
		flagCfg.Widths = fileCfg.Widths
	}
	if !set("frame") {
		flagCfg.Frame = fileCfg.Frame
	}
	if !set("line-spacing") && fileCfg.LineSpacing != 0 {
		flagCfg.LineSpacing = fileCfg.LineSpacing
	}
	if !set("scale") && fileCfg.Scale != 0 {
		flagCfg.Scale = fileCfg.Scale
	}
	if !set("skip-unknown") {
		flagCfg.SkipUnknown = fileCfg.SkipUnknown
	}
	if !set("encoding") && fileCfg.Encoding != "" {
		flagCfg.Encoding = fileCfg.Encoding
	}
}

// parsePair parses one or two positive integers: "8", "8,16", "8x16" or
// "8 16". A single value is used for both.
func parsePair(what, s string) (int, int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == 'x' || r == 'X' || r == ' '
	})
	if len(fields) != 1 && len(fields) != 2 {
		return 0, 0, fmt.Errorf("either give 1 or 2 values for %s, not %d", what, len(fields))
	}

	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid %s value %q", what, f)
		}
		if v <= 0 {
			return 0, 0, fmt.Errorf("%s must be positive, got %d", what, v)
		}
		vals[i] = v
	}
	if len(vals) == 1 {
		return vals[0], vals[0], nil
	}
	return vals[0], vals[1], nil
}

// parseColor parses "R,G,B", "R G B" or "#rrggbb".
func parseColor(s string) (r, g, b uint8, err error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("color needs 3 values (R G B), not %d", len(fields))
	}
	var rgb [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid color component %q: want 0-255", f)
		}
		rgb[i] = uint8(v)
	}
	return rgb[0], rgb[1], rgb[2], nil
}

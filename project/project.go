package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/sectorgeo/geom"
	"github.com/bloodmagesoftware/sectorgeo/pick"
	"github.com/bloodmagesoftware/sectorgeo/placement"
	"github.com/bloodmagesoftware/sectorgeo/strip"
	"gopkg.in/yaml.v3"
)

const configFileName = "sectorgeo.yaml"

// Config represents the project configuration from sectorgeo.yaml.
type Config struct {
	// Epsilon is the world-space tolerance shared by all geometry predicates.
	Epsilon float64 `yaml:"epsilon"`
	// ViewScale is the world-to-screen ratio used when no view is given.
	ViewScale  float64         `yaml:"view_scale"`
	RenderMode string          `yaml:"render_mode"`
	Strip      StripConfig     `yaml:"strip"`
	Placement  PlacementConfig `yaml:"placement"`
	Pick       PickConfig      `yaml:"pick"`
	Preview    PreviewConfig   `yaml:"preview"`
}

type StripConfig struct {
	Thickness        float64 `yaml:"thickness"`
	MiterLimit       float64 `yaml:"miter_limit"`
	ParallelEpsilon  float64 `yaml:"parallel_epsilon"`
	MinSegmentLength float64 `yaml:"min_segment_length"`
}

type PlacementConfig struct {
	SnapThresholdPx float64 `yaml:"snap_threshold_px"`
	MinSize         float64 `yaml:"min_size"`
}

type PickConfig struct {
	HitRadiusPx float64 `yaml:"hit_radius_px"`
}

type PreviewConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// DefaultConfig returns the configuration used when no sectorgeo.yaml exists.
func DefaultConfig() *Config {
	so := strip.DefaultOptions()
	return &Config{
		Epsilon:    geom.DefaultEpsilon,
		ViewScale:  64,
		RenderMode: pick.Wireframe.String(),
		Strip: StripConfig{
			Thickness:        0.25,
			MiterLimit:       so.MiterLimit,
			ParallelEpsilon:  so.ParallelEpsilon,
			MinSegmentLength: so.MinSegmentLength,
		},
		Placement: PlacementConfig{
			SnapThresholdPx: placement.DefaultSnapThresholdPx,
			MinSize:         placement.DefaultMinSizeWorld,
		},
		Pick: PickConfig{
			HitRadiusPx: pick.DefaultHitRadiusPx,
		},
		Preview: PreviewConfig{
			Width:    1024,
			Height:   768,
			CellSize: 64,
		},
	}
}

// FindProjectRoot walks up from the current working directory looking for sectorgeo.yaml.
// Returns the directory containing sectorgeo.yaml, or an error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findProjectRoot(cwd)
}

func findProjectRoot(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s: %w", configFileName, start, fs.ErrNotExist)
		}
		dir = parent
	}
}

// LoadConfig loads sectorgeo.yaml from the given project root.
func LoadConfig(projectRoot string) (*Config, error) {
	return LoadConfigFile(filepath.Join(projectRoot, configFileName))
}

// LoadConfigFile loads a configuration file. Fields missing from the file keep
// their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Discover returns the configuration of the enclosing project, or the
// defaults when there is none.
func Discover() (*Config, error) {
	root, err := FindProjectRoot()
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(root)
}

// Validate rejects non-positive scales and thresholds.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"epsilon", c.Epsilon},
		{"view_scale", c.ViewScale},
		{"strip.thickness", c.Strip.Thickness},
		{"strip.miter_limit", c.Strip.MiterLimit},
		{"strip.parallel_epsilon", c.Strip.ParallelEpsilon},
		{"strip.min_segment_length", c.Strip.MinSegmentLength},
		{"placement.snap_threshold_px", c.Placement.SnapThresholdPx},
		{"placement.min_size", c.Placement.MinSize},
		{"pick.hit_radius_px", c.Pick.HitRadiusPx},
		{"preview.width", float64(c.Preview.Width)},
		{"preview.height", float64(c.Preview.Height)},
		{"preview.cell_size", c.Preview.CellSize},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("'%s' must be positive, got %v", p.name, p.value)
		}
	}

	if _, err := c.Mode(); err != nil {
		return err
	}
	return nil
}

// Mode parses RenderMode.
func (c *Config) Mode() (pick.RenderMode, error) {
	switch c.RenderMode {
	case pick.Wireframe.String():
		return pick.Wireframe, nil
	case pick.Textured.String():
		return pick.Textured, nil
	}
	return pick.Wireframe, fmt.Errorf("'render_mode' must be %q or %q, got %q", pick.Wireframe, pick.Textured, c.RenderMode)
}

// StripOptions returns the wall strip options.
func (c *Config) StripOptions() strip.Options {
	return strip.Options{
		MiterLimit:       c.Strip.MiterLimit,
		ParallelEpsilon:  c.Strip.ParallelEpsilon,
		MinSegmentLength: c.Strip.MinSegmentLength,
	}
}

// PlacementParams returns the room validation parameters at the given view
// scale.
func (c *Config) PlacementParams(viewScale float64) placement.Params {
	return placement.Params{
		ViewScale:       viewScale,
		SnapThresholdPx: c.Placement.SnapThresholdPx,
		MinSizeWorld:    c.Placement.MinSize,
		Epsilon:         c.Epsilon,
	}
}

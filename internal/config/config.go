package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/grid"
)

const (
	DefaultWidth    = 256
	DefaultHeight   = 128
	DefaultScale    = 1
	DefaultMaxIters = 0 // 0 = one step per color
)

type Config struct {
	Engine       string        `yaml:"engine"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	Seed         int64         `yaml:"seed"`
	StartRow     int           `yaml:"start_row"`
	StartCol     int           `yaml:"start_col"`
	StartColor   int           `yaml:"start_color"`
	Neighborhood string        `yaml:"neighborhood"`
	MaxIters     int           `yaml:"max_iters"`
	Snapshot     bool          `yaml:"snapshot"`
	SortColors   bool          `yaml:"sort_colors"`
	Scale        int           `yaml:"scale"`
	Palette      PaletteConfig `yaml:"palette"`
}

type PaletteConfig struct {
	// Source is "highcolor", "image" (all pixels) or "extract"
	// (reduced palette).
	Source string `yaml:"source"`
	Image  string `yaml:"image"`
	Colors int    `yaml:"colors"`
	Method string `yaml:"method"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:     "nearest",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		StartRow:   -1,
		StartCol:   -1,
		StartColor: -1,
		Scale:      DefaultScale,
		Palette:    PaletteConfig{Source: "highcolor"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineConfig translates the file/flag surface into the engine's
// config, resolving the start coordinate to a flat cell index.
func (c *Config) EngineConfig() (engine.Config, error) {
	ec := engine.DefaultConfig()
	ec.Width = c.Width
	ec.Height = c.Height
	ec.Seed = c.Seed
	ec.StartColor = c.StartColor
	ec.MaxIters = c.MaxIters
	ec.Snapshot = c.Snapshot
	ec.SortColors = c.SortColors

	nb, err := grid.ParseNeighborhood(c.Neighborhood)
	if err != nil {
		return ec, err
	}
	ec.Neighborhood = nb

	switch {
	case c.StartRow < 0 && c.StartCol < 0:
		ec.StartCell = -1
	case c.StartRow < 0 || c.StartCol < 0:
		return ec, fmt.Errorf("start row and column must be set together")
	case c.StartRow >= c.Height || c.StartCol >= c.Width:
		return ec, fmt.Errorf("start cell (%d,%d) out of bounds for %dx%d grid",
			c.StartRow, c.StartCol, c.Width, c.Height)
	default:
		ec.StartCell = c.StartRow*c.Width + c.StartCol
	}

	return ec, nil
}

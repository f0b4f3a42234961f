// Package config loads the editor configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilekit/edit"
	"github.com/milk9111/tilekit/project"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	TileWidth  int          `yaml:"tile_width"`
	TileHeight int          `yaml:"tile_height"`
	UndoLimit  int          `yaml:"undo_limit"`
	Zoom       ZoomSpec     `yaml:"zoom"`
	Defaults   DefaultsSpec `yaml:"defaults"`
	Log        LogSpec      `yaml:"log"`
}

type ZoomSpec struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
	Initial float64 `yaml:"initial"`
}

type DefaultsSpec struct {
	PaletteSize    int `yaml:"palette_size"`
	TileSetColumns int `yaml:"tileset_columns"`
	TileSetTiles   int `yaml:"tileset_tiles"`
	MapWidth       int `yaml:"map_width"`
	MapHeight      int `yaml:"map_height"`
}

type LogSpec struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// Default mirrors project.DefaultSettings and edit.DefaultZoom.
func Default() Config {
	s := project.DefaultSettings()
	z := edit.DefaultZoom()
	return Config{
		TileWidth:  s.TileWidth,
		TileHeight: s.TileHeight,
		UndoLimit:  edit.DefaultUndoLimit,
		Zoom:       ZoomSpec{Min: z.Min, Max: z.Max, Step: z.Step, Initial: z.Initial},
		Defaults: DefaultsSpec{
			PaletteSize:    s.PaletteSize,
			TileSetColumns: s.TileSetColumns,
			TileSetTiles:   s.TileSetTiles,
			MapWidth:       s.MapWidth,
			MapHeight:      s.MapHeight,
		},
		Log: LogSpec{Level: "info"},
	}
}

// Load reads and validates filename. Missing keys keep their defaults.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", filename, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", filename, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"tile_width", c.TileWidth},
		{"tile_height", c.TileHeight},
		{"undo_limit", c.UndoLimit},
		{"defaults.palette_size", c.Defaults.PaletteSize},
		{"defaults.tileset_columns", c.Defaults.TileSetColumns},
		{"defaults.tileset_tiles", c.Defaults.TileSetTiles},
		{"defaults.map_width", c.Defaults.MapWidth},
		{"defaults.map_height", c.Defaults.MapHeight},
	}
	for _, f := range positive {
		if f.v < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, f.name, f.v)
		}
	}
	z := c.Zoom
	if z.Min <= 0 || z.Min > z.Initial || z.Initial > z.Max {
		return fmt.Errorf("%w: zoom needs 0 < min <= initial <= max, got %v/%v/%v", ErrInvalid, z.Min, z.Initial, z.Max)
	}
	if z.Step <= 1 {
		return fmt.Errorf("%w: zoom.step must be greater than 1, got %v", ErrInvalid, z.Step)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

// Settings converts the tile size and entity defaults for project.New.
func (c Config) Settings() project.Settings {
	return project.Settings{
		TileWidth:      c.TileWidth,
		TileHeight:     c.TileHeight,
		PaletteSize:    c.Defaults.PaletteSize,
		TileSetColumns: c.Defaults.TileSetColumns,
		TileSetTiles:   c.Defaults.TileSetTiles,
		MapWidth:       c.Defaults.MapWidth,
		MapHeight:      c.Defaults.MapHeight,
	}
}

func (c Config) ZoomBounds() edit.Zoom {
	return edit.Zoom{Min: c.Zoom.Min, Max: c.Zoom.Max, Step: c.Zoom.Step, Initial: c.Zoom.Initial}
}

// Logger builds a development or production zap logger at the configured
// level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

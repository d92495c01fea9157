package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/cueline/cueline/internal/timeline"
)

// Timeline holds the layout geometry applied to every layout pass.
type Timeline struct {
	BarWidth     float64 `toml:"bar_width"`
	PointsPerRow int     `toml:"points_per_row"`
	MsPerPoint   int64   `toml:"ms_per_point"`
}

// Storage holds persistence paths.
type Storage struct {
	DatabasePath string `toml:"database_path"`
}

// Translate holds defaults for the translate command.
type Translate struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BatchSize int    `toml:"batch_size"`
}

type Config struct {
	Timeline  Timeline  `toml:"timeline"`
	Storage   Storage   `toml:"storage"`
	Translate Translate `toml:"translate"`
}

func Default() *Config {
	return &Config{
		Timeline: Timeline{
			BarWidth:     8,
			PointsPerRow: 150,
			MsPerPoint:   100,
		},
		Storage: Storage{
			DatabasePath: defaultDatabasePath(),
		},
		Translate: Translate{
			Provider: "openai",
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "cueline", "config.toml")
}

func defaultDatabasePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "cueline.db"
	}
	return filepath.Join(base, "cueline", "cueline.db")
}

// Load reads the config at path, falling back to DefaultPath when path is
// empty and to built-in defaults when no file exists.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Timeline.BarWidth <= 0 {
		return fmt.Errorf("timeline.bar_width must be positive, got %v", c.Timeline.BarWidth)
	}
	if c.Timeline.PointsPerRow <= 0 {
		return fmt.Errorf("timeline.points_per_row must be positive, got %d", c.Timeline.PointsPerRow)
	}
	if c.Timeline.MsPerPoint <= 0 {
		return fmt.Errorf("timeline.ms_per_point must be positive, got %d", c.Timeline.MsPerPoint)
	}
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage.database_path is required")
	}
	return nil
}

// TimelineConfig converts the configured geometry into the layout engine's
// config type.
func (c *Config) TimelineConfig() timeline.Config {
	return timeline.Config{
		BarWidth:     c.Timeline.BarWidth,
		PointsPerRow: c.Timeline.PointsPerRow,
		MsPerPoint:   c.Timeline.MsPerPoint,
	}
}

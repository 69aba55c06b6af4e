package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	Boundary            string        `json:"boundary"`
	FrameRate           time.Duration `json:"frame_rate"`
	Seed                int64         `json:"seed"`
	Pattern             string        `json:"pattern"`
	AnchorX             int           `json:"anchor_x"`
	AnchorY             int           `json:"anchor_y"`
	MaxGenerations      int           `json:"max_generations"`
	Workers             int           `json:"workers"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	SnapshotDir         string        `json:"snapshot_dir"`
	Headless            bool          `json:"headless"`
	Window              bool          `json:"window"`
	Scale               int           `json:"scale"`
	Debug               bool          `json:"debug"`
	LogFile             string        `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               80,
		Height:              40,
		Boundary:            model.Toroidal.String(),
		FrameRate:           20 * time.Millisecond,
		AnchorX:             10,
		AnchorY:             10,
		MaxGenerations:      0, // run until quit
		UseMemoryPool:       true,
		AutoRestart:         false,
		StagnationThreshold: 5,
		SnapshotDir:         ".",
		Scale:               4,
		LogFile:             "go-life.log",
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.StringVar(&c.Boundary, "boundary", c.Boundary, "edge behaviour: toroidal or bounded")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "delay between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 picks one from the clock")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "RLE pattern file to load instead of random cells")
	fs.IntVar(&c.AnchorX, "ax", c.AnchorX, "pattern anchor on the row axis")
	fs.IntVar(&c.AnchorY, "ay", c.AnchorY, "pattern anchor on the column axis")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel row workers, 0 uses every CPU")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "reuse generation buffers")
	fs.BoolVar(&c.AutoRestart, "restart", c.AutoRestart, "reseed on extinction or stagnation")
	fs.IntVar(&c.StagnationThreshold, "stagnation", c.StagnationThreshold, "stagnant generations before a restart")
	fs.StringVar(&c.SnapshotDir, "snapshots", c.SnapshotDir, "directory for BMP snapshots")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "print frames to stdout instead of the interactive UI")
	fs.BoolVar(&c.Window, "window", c.Window, "open a window (requires the ebiten build tag)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell in window mode")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write debug logs to the log file")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file used with -debug")
}

// BoundaryMode parses the configured boundary
func (c Config) BoundaryMode() (model.Boundary, error) {
	return model.ParseBoundary(c.Boundary)
}

// Validate rejects configurations the simulation cannot start with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(model.ErrAllocation, "[Validate] width: %+v, height: %+v", c.Width, c.Height)
	}
	if _, err := c.BoundaryMode(); err != nil {
		return errors.Wrap(err, "[Validate] bad boundary")
	}
	if c.Headless && c.Window {
		return errors.New("[Validate] headless and window modes are exclusive")
	}
	if c.Headless && c.MaxGenerations <= 0 {
		return errors.New("[Validate] headless mode needs a positive generation limit")
	}
	return nil
}

package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the simulation engine
type Config struct {
	Rows                  int           `json:"rows"`
	Cols                  int           `json:"cols"`
	TickInterval          time.Duration `json:"tick_interval"`
	LiveThreshold         float64       `json:"live_threshold"`
	RequireNonEmptyStart  bool          `json:"require_non_empty_start"`
	TrackGeneration       bool          `json:"track_generation"`
	AllowPause            bool          `json:"allow_pause"`
	AllowRandomize        bool          `json:"allow_randomize"`
	LockEditsWhileRunning bool          `json:"lock_edits_while_running"`
	UseParallel           bool          `json:"use_parallel"`
	StagnationHistory     int           `json:"stagnation_history"`
	StopWhenExtinct       bool          `json:"stop_when_extinct"`
}

// DefaultConfig returns the defaults of the web version: a 25x40 board ticking
// every 500ms with roughly 30% of cells alive after a random fill
func DefaultConfig() Config {
	return Config{
		Rows:                  25,
		Cols:                  40,
		TickInterval:          500 * time.Millisecond,
		LiveThreshold:         0.7,
		RequireNonEmptyStart:  true,
		TrackGeneration:       true,
		AllowPause:            true,
		AllowRandomize:        true,
		LockEditsWhileRunning: true,
		UseParallel:           false,
		StagnationHistory:     5,
		StopWhenExtinct:       false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate checks that the configuration describes a usable board
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.TickInterval <= 0 {
		return errors.Errorf("[Validate] tick interval must be positive, got %v", c.TickInterval)
	}
	if c.LiveThreshold < 0 || c.LiveThreshold > 1 {
		return errors.Errorf("[Validate] live threshold must be within [0,1], got %v", c.LiveThreshold)
	}
	if c.StagnationHistory < 0 {
		return errors.Errorf("[Validate] stagnation history must not be negative, got %d", c.StagnationHistory)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "number of grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "number of grid columns")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "delay between generations")
	fs.Float64Var(&c.LiveThreshold, "threshold", c.LiveThreshold, "random fill: a cell lives when a uniform draw exceeds this")
	fs.BoolVar(&c.RequireNonEmptyStart, "require-cells", c.RequireNonEmptyStart, "reject start on an empty field")
	fs.BoolVar(&c.TrackGeneration, "generations", c.TrackGeneration, "count generations")
	fs.BoolVar(&c.AllowPause, "pause", c.AllowPause, "allow stopping a running simulation")
	fs.BoolVar(&c.AllowRandomize, "random", c.AllowRandomize, "allow random fill")
	fs.BoolVar(&c.LockEditsWhileRunning, "lock-edits", c.LockEditsWhileRunning, "reject edits while running")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "compute generations across all CPUs")
	fs.IntVar(&c.StagnationHistory, "history", c.StagnationHistory, "states remembered for cycle detection (0 disables)")
	fs.BoolVar(&c.StopWhenExtinct, "stop-extinct", c.StopWhenExtinct, "stop once every cell is dead")
}

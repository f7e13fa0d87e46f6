// Package config provides configuration for chess-rules.
package config

import (
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	// Verbosity: 0=nothing, 1=per-script summary, 2=running commentary
	Verbosity int

	// Workers is the number of scripts replayed concurrently (0 = one per CPU).
	Workers int

	// BufferSize is the capacity of the worker pool's queues (0 = 2x workers).
	BufferSize int

	// OutputFilename names the report file; empty means standard output.
	OutputFilename string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	// Grouped settings
	Output *OutputConfig
	Replay *ReplayConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Output:     NewOutputConfig(),
		Replay:     NewReplayConfig(),
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Verbosity < 0 || c.Verbosity > 2:
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d not in 0..2", c.Verbosity)
	case c.Workers < 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "workers = %d", c.Workers)
	case c.BufferSize < 0:
		return errors.Wrapf(errors.ErrInvalidConfig, "buffer size = %d", c.BufferSize)
	case c.Output == nil || c.Replay == nil:
		return errors.Wrap(errors.ErrInvalidConfig, "missing settings group")
	case !c.Replay.PromotionDefault.IsPromotion():
		return errors.Wrapf(errors.ErrInvalidConfig, "promotion default %v", c.Replay.PromotionDefault)
	}
	return nil
}

package config

import (
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithColour enables coloured text output.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Output.Colour = enabled
	return b
}

// WithBoard enables the final position diagram.
func (b *ConfigBuilder) WithBoard(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowBoard = enabled
	return b
}

// WithPromotionDefault sets the kind used when a script names none.
func (b *ConfigBuilder) WithPromotionDefault(kind chess.Kind) *ConfigBuilder {
	b.cfg.Replay.PromotionDefault = kind
	return b
}

// StopOnReject controls whether a script ends at its first rejection.
func (b *ConfigBuilder) StopOnReject(stop bool) *ConfigBuilder {
	b.cfg.Replay.StopOnReject = stop
	return b
}

// WithWorkers sets the worker count and queue size.
func (b *ConfigBuilder) WithWorkers(workers, bufferSize int) *ConfigBuilder {
	b.cfg.Workers = workers
	b.cfg.BufferSize = bufferSize
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	colourOutput = flag.Bool("colour", false, "Highlight outcomes and rejections with colour")
	showBoard    = flag.Bool("board", false, "Print the final position of each script")
	noHistory    = flag.Bool("nohistory", false, "Don't list the accepted moves")

	// Replay options
	promoteTo    = flag.String("promote", "Q", "Promotion piece when a move names none: Q, R, B or N")
	stopOnReject = flag.Bool("stop", false, "Stop each script at its first rejected move")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbosity = flag.Int("verbosity", 1, "Diagnostics: 0=none, 1=per-script summary, 2=every move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (same as -verbosity 0)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers    = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	bufferSize = flag.Int("buffer", 0, "Worker queue capacity (0 = twice the number of workers)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyReplayFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
	cfg.Workers = *workers
	cfg.BufferSize = *bufferSize
	cfg.OutputFilename = *outputFile
}

// applyOutputFlags configures report formatting.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.Colour = *colourOutput
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowHistory = !*noHistory
}

// applyReplayFlags configures how scripts drive the engine. An unknown
// promotion letter is left for Validate to reject.
func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.PromotionDefault = chess.NoKind
	if p := strings.TrimSpace(*promoteTo); len(p) == 1 {
		cfg.Replay.PromotionDefault = chess.KindFromLetter(p[0])
	}
	cfg.Replay.StopOnReject = *stopOnReject
}

// poolOptions sizes the worker pool, filling in the automatic defaults.
func poolOptions(cfg *config.Config) []worker.PoolOption {
	n := cfg.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	buf := cfg.BufferSize
	if buf == 0 {
		buf = 2 * n
	}
	return []worker.PoolOption{worker.WithWorkers(n), worker.WithBufferSize(buf)}
}

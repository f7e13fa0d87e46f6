// chess-rules replays move scripts through the chess rules engine and
// reports each game's moves, rejections and outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/script"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

// Exit codes. exitProblems means every script ran but at least one had a
// rejected move or could not be set up.
const (
	exitOK       = 0
	exitError    = 1
	exitProblems = 2
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(exitOK)
	}

	if *version {
		fmt.Printf("chess-rules version %s\n", programVersion)
		os.Exit(exitOK)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	os.Exit(run(cfg, flag.Args(), os.Stdin))
}

// run loads and replays every script and returns the exit code.
func run(cfg *config.Config, args []string, stdin io.Reader) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scripts, err := loadScripts(args, stdin)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return exitError
	}

	problems, err := replayScripts(ctx, scripts, cfg)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return exitError
	}
	if problems > 0 {
		return exitProblems
	}
	return exitOK
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(exitError)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(exitError)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if cfg.OutputFilename == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(cfg.OutputFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(cfg.OutputFilename)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", cfg.OutputFilename, err)
		os.Exit(exitError)
	}
	cfg.OutputFile = file
}

// loadScripts parses every script in the named files, or in stdin when no
// files are named.
func loadScripts(args []string, stdin io.Reader) ([]*script.Script, error) {
	if len(args) == 0 {
		return script.NewParser(stdin, "stdin").ParseAll()
	}

	var scripts []*script.Script
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
		parsed, err := script.NewParser(file, filename).ParseAll()
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, parsed...)
	}
	return scripts, nil
}

// replayScripts replays scripts on the worker pool and writes their reports
// in script order. It returns how many scripts had rejected moves or could
// not be set up.
//
// Workers only replay; every report is written from this goroutine, so the
// writers need no locking.
func replayScripts(ctx context.Context, scripts []*script.Script, cfg *config.Config) (int, error) {
	results, runErr := worker.RunAll(ctx, scripts, replayOptions(cfg), poolOptions(cfg)...)

	w := output.NewWriter(cfg.OutputFile, cfg.Output)
	problems := 0
	for _, res := range results {
		if res.Error != nil {
			fmt.Fprintf(cfg.LogFile, "%s: %v\n", res.Script.Name, res.Error)
			problems++
			continue
		}
		if res.Report.Rejected() {
			problems++
		}
		if err := w.WriteReport(res.Report); err != nil {
			return problems, err
		}
	}
	if err := w.Close(); err != nil {
		return problems, err
	}

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d script(s) replayed, %d with problems.\n", len(results), problems)
	}
	return problems, runErr
}

// replayOptions carries the replay settings and log stream into a replay.
func replayOptions(cfg *config.Config) replay.Options {
	return replay.Options{
		PromotionDefault: cfg.Replay.PromotionDefault,
		StopOnReject:     cfg.Replay.StopOnReject,
		LogFile:          cfg.LogFile,
		Verbosity:        cfg.Verbosity,
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-rules [options] [script-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays move scripts through the chess rules engine.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nScript format:\n")
	fmt.Fprintf(os.Stderr, "  75-55          move the piece on rank 7 file 5 to rank 5 file 5\n")
	fmt.Fprintf(os.Stderr, "  21-11=N        move and promote (Q, R, B or N)\n")
	fmt.Fprintf(os.Stderr, "  timeout:black  the named side runs out of time\n")
	fmt.Fprintf(os.Stderr, "  setup white WK85 BK15 ...  start from a custom position\n")
	fmt.Fprintf(os.Stderr, "  ---            start the next script\n")
	fmt.Fprintf(os.Stderr, "  # comment\n")
}

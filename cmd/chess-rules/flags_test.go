package main

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// saveRestoreBool is a helper to save and defer-restore a bool flag pointer.
// Usage: defer saveRestoreBool(jsonOutput, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d; want 1", cfg.Verbosity)
	}
	if cfg.Output.JSONFormat || cfg.Output.Colour || cfg.Output.ShowBoard {
		t.Error("output options should be off by default")
	}
	if !cfg.Output.ShowHistory {
		t.Error("ShowHistory should be on by default")
	}
	if cfg.Replay.PromotionDefault != chess.Queen {
		t.Errorf("PromotionDefault = %v; want Queen", cfg.Replay.PromotionDefault)
	}
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreBool(colourOutput, true)()
	defer saveRestoreBool(showBoard, true)()
	defer saveRestoreBool(noHistory, true)()

	cfg := config.NewConfig()
	applyOutputFlags(cfg)
	if !cfg.Output.JSONFormat || !cfg.Output.Colour || !cfg.Output.ShowBoard {
		t.Error("output flags not applied")
	}
	if cfg.Output.ShowHistory {
		t.Error("-nohistory should turn ShowHistory off")
	}
}

func TestApplyReplayFlags(t *testing.T) {
	tests := []struct {
		promote   string
		want      chess.Kind
		wantValid bool
	}{
		{"Q", chess.Queen, true},
		{"n", chess.Knight, true},
		{" R ", chess.Rook, true},
		{"K", chess.King, false},
		{"QQ", chess.NoKind, false},
		{"", chess.NoKind, false},
	}

	for _, tt := range tests {
		t.Run(tt.promote, func(t *testing.T) {
			defer saveRestoreString(promoteTo, tt.promote)()
			defer saveRestoreBool(stopOnReject, true)()

			cfg := config.NewConfig()
			applyReplayFlags(cfg)
			if cfg.Replay.PromotionDefault != tt.want {
				t.Errorf("PromotionDefault = %v; want %v", cfg.Replay.PromotionDefault, tt.want)
			}
			if !cfg.Replay.StopOnReject {
				t.Error("StopOnReject not applied")
			}
			if valid := cfg.Validate() == nil; valid != tt.wantValid {
				t.Errorf("Validate() ok = %v; want %v", valid, tt.wantValid)
			}
		})
	}
}

func TestApplyFlags_Quiet(t *testing.T) {
	defer saveRestoreInt(verbosity, 2)()
	defer saveRestoreBool(quiet, true)()

	cfg := config.NewConfig()
	applyFlags(cfg)
	if cfg.Verbosity != 0 {
		t.Errorf("Verbosity = %d; want 0 with -s", cfg.Verbosity)
	}
}

func TestPoolOptions(t *testing.T) {
	newPool := func(cfg *config.Config) *worker.Pool {
		return worker.NewPool(worker.ReplayFunc(replayOptions(cfg)), poolOptions(cfg)...)
	}

	cfg := config.NewConfig()
	cfg.Workers = 3
	if got := newPool(cfg).NumWorkers(); got != 3 {
		t.Errorf("NumWorkers() = %d; want 3", got)
	}

	cfg.Workers = 0
	if got := newPool(cfg).NumWorkers(); got < 1 {
		t.Errorf("NumWorkers() = %d; want at least 1", got)
	}
}

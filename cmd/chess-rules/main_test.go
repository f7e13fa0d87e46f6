package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(out, log *bytes.Buffer) *config.Config {
	return config.NewConfigBuilder().
		WithOutput(out).
		WithLog(log).
		WithWorkers(2, 4).
		Build()
}

func TestLoadScripts(t *testing.T) {
	t.Run("files in order", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.txt", "75-55\n---\n76-66\n")
		b := writeFile(t, dir, "b.txt", "# only a comment\n72-63\n")

		scripts, err := loadScripts([]string{a, b}, nil)
		testutil.AssertNoError(t, err)

		var names []string
		for _, s := range scripts {
			names = append(names, s.Name)
		}
		testutil.AssertEqual(t, names, []string{a, a + "#1", b})
	})

	t.Run("stdin", func(t *testing.T) {
		scripts, err := loadScripts(nil, strings.NewReader("75-55 25-45\n"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(scripts), 1)
		testutil.AssertEqual(t, scripts[0].Name, "stdin")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadScripts([]string{filepath.Join(t.TempDir(), "nope.txt")}, nil)
		testutil.AssertErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "bad.txt", "75-55\n75:55\n")
		_, err := loadScripts([]string{path}, nil)
		testutil.AssertErrorIs(t, err, errors.ErrParseFailure)
		testutil.AssertContains(t, err.Error(), "bad.txt:2:1")
	})
}

func TestReplayScripts_Text(t *testing.T) {
	var out, log bytes.Buffer
	cfg := testConfig(&out, &log)

	scripts, err := loadScripts(nil, strings.NewReader("76-66 25-45 77-57 14-58\n---\n75-55\n"))
	testutil.AssertNoError(t, err)

	problems, err := replayScripts(context.Background(), scripts, cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, problems, 0)

	text := out.String()
	testutil.AssertContains(t, text, "Outcome: Checkmate(White), Black wins")
	testutil.AssertContains(t, text, "1. 75-55")
	if strings.Index(text, "stdin [") > strings.Index(text, "stdin#1 [") {
		t.Error("reports should be written in script order")
	}
	testutil.AssertContains(t, log.String(), "2 script(s) replayed, 0 with problems.")
}

func TestReplayScripts_Problems(t *testing.T) {
	var out, log bytes.Buffer
	cfg := testConfig(&out, &log)
	cfg.Output.JSONFormat = true

	input := strings.Join([]string{
		"75-45",
		"---",
		"setup white WK85",
		"---",
		"75-55",
	}, "\n")
	scripts, err := loadScripts(nil, strings.NewReader(input))
	testutil.AssertNoError(t, err)

	problems, err := replayScripts(context.Background(), scripts, cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, problems, 2)
	testutil.AssertContains(t, log.String(), "stdin#1: setting up stdin#1")

	var doc output.JSONOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	testutil.AssertEqual(t, len(doc.Reports), 2)
	testutil.AssertEqual(t, len(doc.Reports[0].Rejections), 1)
	testutil.AssertEqual(t, doc.Reports[1].Name, "stdin#2")
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "75-55 25-45\n")
	rejected := writeFile(t, dir, "rejected.txt", "75-45\n")
	broken := writeFile(t, dir, "broken.txt", "75-55=X\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"clean", []string{good}, exitOK},
		{"rejection", []string{good, rejected}, exitProblems},
		{"parse error", []string{broken}, exitError},
		{"missing file", []string{filepath.Join(dir, "missing.txt")}, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, log bytes.Buffer
			cfg := testConfig(&out, &log)
			cfg.Verbosity = 0
			if got := run(cfg, tt.args, nil); got != tt.want {
				t.Errorf("run() = %d; want %d (log: %s)", got, tt.want, log.String())
			}
		})
	}
}

func TestUsage(t *testing.T) {
	// Just verify no panic
	usage()
}

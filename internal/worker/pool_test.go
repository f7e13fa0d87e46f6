package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/script"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Script: item.Script, Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Script: item.Script, Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func mustParse(t *testing.T, text string) *script.Script {
	t.Helper()
	s, err := script.ParseString(text, "test")
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", text, err)
	}
	return s
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Script: &script.Script{}, Index: i})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Script: &script.Script{}, Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(2))
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}
	pool.Stop()
	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestNewPool tests the functional options constructor.
func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Script: &script.Script{}, Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

func TestReplayFunc(t *testing.T) {
	process := ReplayFunc(replay.DefaultOptions())

	res := process(WorkItem{Script: mustParse(t, "76-66 25-45 77-57 14-58"), Index: 3})
	testutil.AssertNoError(t, res.Error)
	testutil.AssertEqual(t, res.Index, 3)
	testutil.AssertEqual(t, res.Report.Outcome, engine.Checkmate(chess.White))

	res = process(WorkItem{Script: mustParse(t, "setup white WK85")})
	testutil.AssertErrorIs(t, res.Error, errors.ErrInvalidPosition)
	testutil.AssertTrue(t, res.Report == nil, "no report for a failed setup")
}

// TestRunAll_Ordered replays scripts of uneven length and checks the
// results come back in script order.
func TestRunAll_Ordered(t *testing.T) {
	var scripts []*script.Script
	for i := 0; i < 12; i++ {
		text := "75-55 25-45"
		if i%3 == 0 {
			text = "76-66 25-45 77-57 14-58"
		}
		s := mustParse(t, text)
		s.Name = fmt.Sprintf("game-%d", i)
		scripts = append(scripts, s)
	}

	results, err := RunAll(context.Background(), scripts, replay.DefaultOptions(), WithWorkers(4), WithBufferSize(2))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(results), len(scripts))

	for i, res := range results {
		testutil.AssertEqual(t, res.Index, i)
		testutil.AssertEqual(t, res.Report.Name, fmt.Sprintf("game-%d", i))
		wantPlies := 2
		if i%3 == 0 {
			wantPlies = 4
		}
		testutil.AssertEqual(t, len(res.Report.Plies), wantPlies, "game %d", i)
	}
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scripts := []*script.Script{mustParse(t, "75-55"), mustParse(t, "76-66")}
	results, err := RunAll(ctx, scripts, replay.DefaultOptions())
	testutil.AssertErrorIs(t, err, context.Canceled)
	testutil.AssertEqual(t, len(results), 0)
}

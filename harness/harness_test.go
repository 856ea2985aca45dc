// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/view"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(1e9, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestMeasure(t *testing.T) {
	a, b := NewCounter("a/op"), NewCounter("b/op")
	b.Add(100)
	clock := NewClock(stepClock(time.Millisecond))
	vals, err := Measure([]Meter{a, b, clock}, func() error {
		a.Add(3)
		b.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []gridfmt.Value{
		{Value: 3, Unit: "a/op"},
		{Value: -1, Unit: "b/op"},
		{Value: 1e6, Unit: gridfmt.UnitNs},
	}
	if diff := cmp.Diff(want, vals); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	if _, err := Measure([]Meter{a}, func() error { return boom }); err != boom {
		t.Errorf("got %v, want boom", err)
	}
}

var sink [][]byte

func TestAllocMeters(t *testing.T) {
	bytes, err := NewAllocBytes()
	if err != nil {
		t.Fatal(err)
	}
	objects, err := NewAllocObjects()
	if err != nil {
		t.Fatal(err)
	}
	vals, err := Measure([]Meter{bytes, objects}, func() error {
		for i := 0; i < 100; i++ {
			sink = append(sink, make([]byte, 1<<10))
		}
		return nil
	})
	sink = nil
	if err != nil {
		t.Fatal(err)
	}
	if vals[0].Unit != gridfmt.UnitBytes || vals[0].Value < 50<<10 {
		t.Errorf("bytes: %v", vals[0])
	}
	if vals[1].Unit != gridfmt.UnitAllocs || vals[1].Value < 50 {
		t.Errorf("objects: %v", vals[1])
	}
}

func TestFuncMeter(t *testing.T) {
	n := 5.0
	m := FuncMeter("x/op", func() float64 { return n })
	vals, _ := Measure([]Meter{m}, func() error { n = 12; return nil })
	if vals[0] != (gridfmt.Value{Value: 7, Unit: "x/op"}) {
		t.Errorf("got %v", vals[0])
	}
}

func runAll(t *testing.T, cfg Config) []*gridfmt.Result {
	t.Helper()
	var out []*gridfmt.Result
	err := Run(context.Background(), cfg, func(r *gridfmt.Result) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func value(t *testing.T, r *gridfmt.Result, unit string) float64 {
	t.Helper()
	v, ok := r.Value(unit)
	if !ok {
		t.Fatalf("%s: no %s", r.Name, unit)
	}
	return v
}

func TestRun(t *testing.T) {
	const n, mutate = 50, 10
	cfg := Config{
		N:      n,
		Count:  2,
		Modes:  builder.Modes(),
		Batch:  []bool{true, false},
		Mutate: mutate,
		Seed:   3,
		View:   view.Settings{FilterScore: true, Live: true},
		Now:    stepClock(time.Millisecond),
	}
	results := runAll(t, cfg)
	if want := 2 * 4 * 2 * 3; len(results) != want {
		t.Fatalf("got %d results, want %d", len(results), want)
	}

	for _, r := range results {
		if r.Iters != 1 || r.GetConfig("n") != "50" || r.GetConfig("mutate") != "10" {
			t.Errorf("%s: iters %d config %v", r.Name, r.Iters, r.Config)
		}
		if _, err := builder.ParseMode(r.Key("mode")); err != nil {
			t.Errorf("%s: bad mode: %v", r.Name, err)
		}
		batch := r.Key("batch") == "on"
		switch r.Base() {
		case OpRebuild:
			wantEvents := float64(n + 1)
			if batch {
				wantEvents = 1
			}
			if got := value(t, r, gridfmt.UnitEvents); got != wantEvents {
				t.Errorf("%s: %v events, want %v", r.Name, got, wantEvents)
			}
			if got := value(t, r, gridfmt.UnitRefreshes); got != 1 {
				t.Errorf("%s: %v refreshes, want 1", r.Name, got)
			}
			if r.Key("view") != "" {
				t.Errorf("%s: rebuild named with a view", r.Name)
			}
		case OpApplyView:
			// filter, clear sort, clear group.
			if got := value(t, r, gridfmt.UnitRefreshes); got != 3 {
				t.Errorf("%s: %v refreshes, want 3", r.Name, got)
			}
			if got := value(t, r, gridfmt.UnitNs); got != 1e6 {
				t.Errorf("%s: %v ns, want one clock step", r.Name, got)
			}
			if r.Key("view") != "score50+live" {
				t.Errorf("%s: view key %q", r.Name, r.Key("view"))
			}
		case OpMutateScores:
			if got := value(t, r, gridfmt.UnitUpdates); got != mutate {
				t.Errorf("%s: %v updates, want %d", r.Name, got, mutate)
			}
			if got := value(t, r, gridfmt.UnitRefreshes); got != 0 {
				t.Errorf("%s: %v refreshes, want 0", r.Name, got)
			}
		default:
			t.Errorf("unexpected result %s", r.Name)
		}
		if got := value(t, r, gridfmt.UnitNs); got <= 0 {
			t.Errorf("%s: %v ns", r.Name, got)
		}
	}

	// Repetitions are interleaved.
	if results[0].Name != results[len(results)/2].Name {
		t.Errorf("second repetition starts with %s, want %s", results[len(results)/2].Name, results[0].Name)
	}
}

func TestRunDeferred(t *testing.T) {
	cfg := Config{
		N: 20, Count: 1,
		Modes:  []builder.Mode{builder.Sequential},
		Batch:  []bool{false},
		View:   view.Settings{SortScoreDesc: true, GroupByCategory: true, Defer: true},
		Now:    stepClock(time.Microsecond),
		Mutate: 0,
	}
	results := runAll(t, cfg)
	if len(results) != 2 {
		t.Fatalf("got %d results, want rebuild and apply only", len(results))
	}
	if got := value(t, results[1], gridfmt.UnitRefreshes); got != 1 {
		t.Errorf("deferred apply: %v refreshes, want 1", got)
	}
}

func TestRunErrors(t *testing.T) {
	base := Config{N: 1, Count: 1, Modes: builder.Modes(), Batch: []bool{true}}
	for _, bad := range []func(*Config){
		func(c *Config) { c.N = -1 },
		func(c *Config) { c.Count = 0 },
		func(c *Config) { c.Mutate = -5 },
		func(c *Config) { c.Modes = nil },
		func(c *Config) { c.Batch = nil },
	} {
		cfg := base
		bad(&cfg)
		err := Run(context.Background(), cfg, func(*gridfmt.Result) error { return nil })
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%+v: got %v, want ErrConfig", cfg, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, base, func(*gridfmt.Result) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: got %v", err)
	}

	stop := errors.New("stop")
	calls := 0
	err := Run(context.Background(), base, func(*gridfmt.Result) error {
		calls++
		return stop
	})
	if err != stop || calls != 1 {
		t.Errorf("emit error: got %v after %d calls", err, calls)
	}

	cfg := base
	cfg.Modes = []builder.Mode{builder.Mode(42)}
	if err := Run(context.Background(), cfg, func(*gridfmt.Result) error { return nil }); !errors.Is(err, builder.ErrUnknownMode) {
		t.Errorf("bad mode: got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.check(); err != nil {
		t.Fatal(err)
	}
	if got := len(cfg.Scenarios()); got != 8 {
		t.Errorf("%d scenarios, want 8", got)
	}
}

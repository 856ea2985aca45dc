// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harness measures grid operations.
//
// Run drives a matrix of scenarios the way a grid front end would:
// for every build mode and batch setting it rebuilds the collection,
// reapplies the view settings and mutates scores, measuring each step
// with a set of Meters. Every measurement is emitted as a
// gridfmt.Result.
package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/observable"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/session"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/view"
)

var (
	// ErrNoMetric is returned when the runtime doesn't provide a
	// metric a Meter needs.
	ErrNoMetric = errors.New("metric not supported")

	// ErrConfig is returned for an invalid Config.
	ErrConfig = errors.New("invalid configuration")
)

// Operation names, used as the base of result names.
const (
	OpRebuild      = "Rebuild"
	OpApplyView    = "ApplyView"
	OpMutateScores = "MutateScores"
)

// Config describes a scenario matrix.
type Config struct {
	// N is the number of records per rebuild.
	N int

	// Count is the number of repetitions of every scenario.
	Count int

	// Modes and Batch are the build modes and batch settings to
	// run. Every combination is a scenario.
	Modes []builder.Mode
	Batch []bool

	// Mutate is the number of records MutateScores changes. Zero
	// skips the mutation step.
	Mutate int

	// Seed is the mutation seed of the first repetition.
	// Repetition i uses Seed+i.
	Seed int64

	// View is applied after every rebuild.
	View view.Settings

	// Workers caps the parallel builders' worker count. Zero means
	// GOMAXPROCS.
	Workers int

	// Now is the clock. Nil means time.Now.
	Now func() time.Time

	// Logf, if non-nil, receives progress messages.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the configuration the command uses when no
// flags are given.
func DefaultConfig() Config {
	return Config{
		N:      100000,
		Count:  5,
		Modes:  builder.Modes(),
		Batch:  []bool{true, false},
		Mutate: 5000,
		Seed:   1,
	}
}

func (c *Config) check() error {
	switch {
	case c.N < 0:
		return fmt.Errorf("record count %d: %w", c.N, ErrConfig)
	case c.Count < 1:
		return fmt.Errorf("repetition count %d: %w", c.Count, ErrConfig)
	case c.Mutate < 0:
		return fmt.Errorf("mutation count %d: %w", c.Mutate, ErrConfig)
	case len(c.Modes) == 0:
		return fmt.Errorf("no build modes: %w", ErrConfig)
	case len(c.Batch) == 0:
		return fmt.Errorf("no batch settings: %w", ErrConfig)
	}
	return nil
}

// A Scenario is one build mode with one batch setting.
type Scenario struct {
	Mode  builder.Mode
	Batch bool
}

// Scenarios returns every scenario of c, modes outermost.
func (c *Config) Scenarios() []Scenario {
	var out []Scenario
	for _, m := range c.Modes {
		for _, b := range c.Batch {
			out = append(out, Scenario{m, b})
		}
	}
	return out
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s Scenario) name(op string, settings view.Settings) string {
	kv := []string{"mode", s.Mode.String(), "batch", onOff(s.Batch)}
	if op != OpRebuild {
		kv = append(kv, "view", settings.String())
	}
	return gridfmt.Name(op, kv...)
}

// A rig is the live state of one scenario: a session, the view bound
// to it, and the counters attached to both.
type rig struct {
	Scenario
	s      *session.Session
	v      *view.View
	events *Counter
	cancel func()
}

func newRig(sc Scenario, cfg *Config) *rig {
	r := &rig{
		Scenario: sc,
		s: session.New(
			session.WithClock(cfg.Now),
			session.WithBuildOptions(builder.WithWorkers(cfg.Workers)),
		),
		events: NewCounter(gridfmt.UnitEvents),
	}
	r.v = view.New(r.s.Items())
	r.attach(r.s.Items())
	r.s.OnItemsReplaced(func(c *observable.Collection) {
		r.events.Add(1)
		r.attach(c)
		r.v.SetSource(c)
	})
	cfg.View.Apply(r.v)
	return r
}

// attach counts c's change events.
func (r *rig) attach(c *observable.Collection) {
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = c.Subscribe(func(observable.Change) error {
		r.events.Add(1)
		return nil
	})
}

func (r *rig) close() {
	r.cancel()
	r.v.Close()
}

// Run runs the scenario matrix cfg and calls emit with every result.
// Repetitions are interleaved: each repetition runs every scenario
// once. Every scenario keeps its session and view across repetitions.
func Run(ctx context.Context, cfg Config, emit func(*gridfmt.Result) error) error {
	if err := cfg.check(); err != nil {
		return err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	bytes, err := NewAllocBytes()
	if err != nil {
		return err
	}
	objects, err := NewAllocObjects()
	if err != nil {
		return err
	}
	clock := NewClock(cfg.Now)

	config := []gridfmt.Config{
		{Key: "goos", Value: runtime.GOOS},
		{Key: "goarch", Value: runtime.GOARCH},
		{Key: "gomaxprocs", Value: strconv.Itoa(runtime.GOMAXPROCS(0))},
		{Key: "n", Value: strconv.Itoa(cfg.N)},
		{Key: "mutate", Value: strconv.Itoa(cfg.Mutate)},
	}
	if cfg.Workers > 0 {
		config = append(config, gridfmt.Config{Key: "workers", Value: strconv.Itoa(cfg.Workers)})
	}

	var rigs []*rig
	for _, sc := range cfg.Scenarios() {
		rigs = append(rigs, newRig(sc, &cfg))
	}
	defer func() {
		for _, r := range rigs {
			r.close()
		}
	}()

	for rep := 0; rep < cfg.Count; rep++ {
		for _, r := range rigs {
			if err := ctx.Err(); err != nil {
				return err
			}
			logf("rep %d/%d: %s batch=%s", rep+1, cfg.Count, r.Mode, onOff(r.Batch))

			meters := func(extra ...Meter) []Meter {
				ms := []Meter{bytes, objects,
					FuncMeter(gridfmt.UnitRefreshes, func() float64 { return float64(r.v.Stats().Refreshes) }),
					FuncMeter(gridfmt.UnitUpdates, func() float64 { return float64(r.v.Stats().Updates) }),
				}
				ms = append(ms, extra...)
				return append(ms, clock)
			}
			step := func(op string, ms []Meter, fn func() error) error {
				vals, err := Measure(ms, fn)
				if err != nil {
					return fmt.Errorf("%s: %w", r.name(op, cfg.View), err)
				}
				res := &gridfmt.Result{Config: config, Name: r.name(op, cfg.View), Iters: 1, Values: vals}
				return emit(res)
			}

			err := step(OpRebuild, meters(r.events), func() error {
				_, err := r.s.Rebuild(cfg.N, r.Batch, r.Mode)
				return err
			})
			if err != nil {
				return err
			}
			err = step(OpApplyView, meters(), func() error {
				cfg.View.Apply(r.v)
				return nil
			})
			if err != nil {
				return err
			}
			if cfg.Mutate > 0 {
				seed := cfg.Seed + int64(rep)
				err = step(OpMutateScores, meters(), func() error {
					return r.s.MutateScores(cfg.Mutate, seed)
				})
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

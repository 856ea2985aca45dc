// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"runtime/metrics"
	"time"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
)

// A Meter reads a cumulative counter, such as elapsed time or bytes
// allocated. Measure reports the difference between two readings.
type Meter interface {
	// Unit is the unit of the per-operation difference, such as
	// "ns/op".
	Unit() string
	Read() float64
}

type clockMeter struct {
	now   func() time.Time
	start time.Time
}

// NewClock returns a Meter that reads nanoseconds from now. A nil now
// means time.Now.
func NewClock(now func() time.Time) Meter {
	if now == nil {
		now = time.Now
	}
	return &clockMeter{now: now, start: now()}
}

func (c *clockMeter) Unit() string { return gridfmt.UnitNs }

func (c *clockMeter) Read() float64 {
	return float64(c.now().Sub(c.start))
}

// A runtimeMeter reads one cumulative runtime metric.
type runtimeMeter struct {
	unit   string
	sample []metrics.Sample
}

// Heap allocation metrics. Both are cumulative and never decrease.
const (
	metricAllocBytes   = "/gc/heap/allocs:bytes"
	metricAllocObjects = "/gc/heap/allocs:objects"
)

// NewAllocBytes returns a Meter of bytes allocated on the heap.
func NewAllocBytes() (Meter, error) {
	return newRuntimeMeter(metricAllocBytes, gridfmt.UnitBytes)
}

// NewAllocObjects returns a Meter of heap objects allocated.
func NewAllocObjects() (Meter, error) {
	return newRuntimeMeter(metricAllocObjects, gridfmt.UnitAllocs)
}

func newRuntimeMeter(name, unit string) (Meter, error) {
	m := &runtimeMeter{unit: unit, sample: []metrics.Sample{{Name: name}}}
	metrics.Read(m.sample)
	if m.sample[0].Value.Kind() != metrics.KindUint64 {
		return nil, fmt.Errorf("runtime metric %s: %w", name, ErrNoMetric)
	}
	return m, nil
}

func (m *runtimeMeter) Unit() string { return m.unit }

func (m *runtimeMeter) Read() float64 {
	metrics.Read(m.sample)
	return float64(m.sample[0].Value.Uint64())
}

// A Counter is a Meter over a count the caller maintains.
type Counter struct {
	unit string
	n    int
}

// NewCounter returns a Counter reporting in unit.
func NewCounter(unit string) *Counter {
	return &Counter{unit: unit}
}

// Add adds n to c.
func (c *Counter) Add(n int) { c.n += n }

func (c *Counter) Unit() string { return c.unit }

func (c *Counter) Read() float64 { return float64(c.n) }

// A funcMeter reads a counter through a function.
type funcMeter struct {
	unit string
	read func() float64
}

// FuncMeter returns a Meter that calls read.
func FuncMeter(unit string, read func() float64) Meter {
	return funcMeter{unit, read}
}

func (m funcMeter) Unit() string   { return m.unit }
func (m funcMeter) Read() float64 { return m.read() }

// Measure runs op once and returns, for every meter, the difference
// of its readings after and before op. Meters are read in order
// before op and in reverse order after it, so the last meter brackets
// op most tightly. Put the clock last.
func Measure(meters []Meter, op func() error) ([]gridfmt.Value, error) {
	before := make([]float64, len(meters))
	after := make([]float64, len(meters))
	for i, m := range meters {
		before[i] = m.Read()
	}
	err := op()
	for i := len(meters) - 1; i >= 0; i-- {
		after[i] = meters[i].Read()
	}
	if err != nil {
		return nil, err
	}
	vals := make([]gridfmt.Value, len(meters))
	for i, m := range meters {
		vals[i] = gridfmt.Value{Value: after[i] - before[i], Unit: m.Unit()}
	}
	return vals, nil
}

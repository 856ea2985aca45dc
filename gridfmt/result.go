// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gridfmt holds grid measurements and reads and writes them in
// the Go benchmark format, so that results can be fed to benchstat and
// friends.
//
// A measurement line looks like
//
//	BenchmarkRebuild/mode=ParallelIndexedArray/batch=off 1 1843022 ns/op 8000048 B/op 100001 events/op
//
// and is preceded by "key: value" configuration lines whenever the run
// configuration changes.
package gridfmt

import (
	"fmt"
	"slices"
	"strings"
)

// A Result is one measurement of one grid operation.
type Result struct {
	// Config is the run configuration the result was measured
	// under, in the order it should be written.
	Config []Config

	// Name is the benchmark name without the "Benchmark" prefix,
	// for example "Rebuild/mode=Sequential/batch=on".
	Name string

	// Iters is the number of operations the values are averaged
	// over.
	Iters int

	Values []Value
}

// A Config is one key/value configuration pair.
type Config struct {
	Key, Value string
}

// A Value is one measurement and its unit, such as "ns/op".
type Value struct {
	Value float64
	Unit  string
}

// NewResult returns a result for name with a single iteration.
func NewResult(name string, values ...Value) *Result {
	return &Result{Name: name, Iters: 1, Values: values}
}

// GetConfig returns the value of key, or "".
func (r *Result) GetConfig(key string) string {
	for _, c := range r.Config {
		if c.Key == key {
			return c.Value
		}
	}
	return ""
}

// SetConfig sets key to value, keeping the position of an existing
// key. An empty value deletes key.
func (r *Result) SetConfig(key, value string) {
	i := slices.IndexFunc(r.Config, func(c Config) bool { return c.Key == key })
	switch {
	case value == "" && i >= 0:
		r.Config = slices.Delete(r.Config, i, i+1)
	case value == "":
	case i >= 0:
		r.Config[i].Value = value
	default:
		r.Config = append(r.Config, Config{key, value})
	}
}

// Value returns the measurement with the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// Clone returns a copy of r that shares no state with it.
func (r *Result) Clone() *Result {
	return &Result{
		Config: slices.Clone(r.Config),
		Name:   r.Name,
		Iters:  r.Iters,
		Values: slices.Clone(r.Values),
	}
}

// Base returns the part of the name before the first "/".
func (r *Result) Base() string { return NameBase(r.Name) }

// Key returns the value of a "/key=value" part of the name, or "".
func (r *Result) Key(key string) string { return NameKey(r.Name, key) }

// NameBase returns the part of a benchmark name before the first "/".
func NameBase(name string) string {
	base, _, _ := strings.Cut(name, "/")
	return base
}

// NameKey returns the value of a "/key=value" part of a benchmark
// name, or "".
func NameKey(name, key string) string {
	_, rest, _ := strings.Cut(name, "/")
	for rest != "" {
		var part string
		part, rest, _ = strings.Cut(rest, "/")
		if k, v, ok := strings.Cut(part, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// Name builds a benchmark name from a base name and key/value pairs.
// Name panics if kv has an odd length.
func Name(base string, kv ...string) string {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("gridfmt.Name: odd key/value list %q", kv))
	}
	var b strings.Builder
	b.WriteString(base)
	for i := 0; i < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		fmt.Fprintf(&b, "/%s=%s", kv[i], kv[i+1])
	}
	return b.String()
}

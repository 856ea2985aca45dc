// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/harness"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/view"
)

func TestParseModes(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []builder.Mode
	}{
		{"all", builder.Modes()},
		{"", builder.Modes()},
		{"seq", []builder.Mode{builder.Sequential}},
		{"array, Sequential", []builder.Mode{builder.ParallelIndexedArray, builder.Sequential}},
	} {
		got, err := parseModes(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.in, diff)
		}
	}
	if _, err := parseModes("seq,turbo"); err == nil {
		t.Errorf("unknown mode accepted")
	}
}

func TestParseBatch(t *testing.T) {
	for in, want := range map[string][]bool{
		"on":     {true},
		"off":    {false},
		"both":   {true, false},
		"off,on": {false, true},
	} {
		got, err := parseBatch(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", in, diff)
		}
	}
	for _, bad := range []string{"", "yes", "on,"} {
		if _, err := parseBatch(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func testOptions(format string) *options {
	return &options{
		cfg: harness.Config{
			N:      20,
			Count:  2,
			Modes:  []builder.Mode{builder.Sequential, builder.ParallelIndexedArray},
			Batch:  []bool{true, false},
			Mutate: 5,
			Seed:   1,
			View:   view.Settings{FilterScore: true},
		},
		format: format,
	}
}

func runOutput(t *testing.T, opts *options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := run(context.Background(), opts, &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRunBench(t *testing.T) {
	out := runOutput(t, testOptions("bench"))
	r := gridfmt.NewReader(strings.NewReader(out), "bench")
	n := 0
	for r.Scan() {
		n++
		if r.Result().GetConfig("n") != "20" {
			t.Errorf("%s: config %v", r.Result().Name, r.Result().Config)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if want := 2 * 2 * 2 * 3; n != want {
		t.Errorf("read %d results, want %d", n, want)
	}
}

func TestRunFormats(t *testing.T) {
	for format, want := range map[string]string{
		"text": "Rebuild/mode=Sequential/batch=on",
		"csv":  "name,unit,stat,center,lo,hi,n\n",
		"html": "<table class='gridperf'>",
	} {
		out := runOutput(t, testOptions(format))
		if !strings.Contains(out, want) {
			t.Errorf("%s output missing %q:\n%s", format, want, out)
		}
	}
}

func TestRunBaseAndChart(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.txt")
	if err := os.WriteFile(basePath, []byte(runOutput(t, testOptions("bench"))), 0666); err != nil {
		t.Fatal(err)
	}

	opts := testOptions("text")
	opts.base = basePath
	opts.svg = filepath.Join(dir, "rebuild.svg")
	out := runOutput(t, opts)
	if !strings.Contains(out, "vs base") {
		t.Errorf("no comparison:\n%s", out)
	}
	svg, err := os.ReadFile(opts.svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("chart is not SVG")
	}

	opts.base = filepath.Join(dir, "missing.txt")
	if err := run(context.Background(), opts, new(bytes.Buffer)); err == nil {
		t.Errorf("missing base file accepted")
	}
}

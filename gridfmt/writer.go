// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridfmt

import (
	"bytes"
	"io"
	"strconv"
)

// A Writer writes Results in the Go benchmark format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config []Config
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// Write writes res. If res's configuration differs from the one last
// written, it first writes the changed and deleted keys.
func (w *Writer) Write(res *Result) error {
	if !sameConfig(w.config, res.Config) {
		w.writeConfig(res.Config)
	}

	w.buf.WriteString("Benchmark")
	w.buf.WriteString(res.Name)
	w.buf.WriteByte(' ')
	w.buf.WriteString(strconv.Itoa(res.Iters))
	for _, v := range res.Values {
		w.buf.WriteByte(' ')
		w.buf.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
		w.buf.WriteByte(' ')
		w.buf.WriteString(v.Unit)
	}
	w.buf.WriteByte('\n')
	w.first = false

	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func sameConfig(a, b []Config) bool {
	if len(a) != len(b) {
		return false
	}
	for _, c := range b {
		if lookup(a, c.Key) != c.Value {
			return false
		}
	}
	return true
}

func lookup(cfg []Config, key string) string {
	for _, c := range cfg {
		if c.Key == key {
			return c.Value
		}
	}
	return ""
}

func (w *Writer) writeConfig(cfg []Config) {
	if !w.first {
		// A configuration block after results is set off by a
		// blank line.
		w.buf.WriteByte('\n')
	}
	for _, old := range w.config {
		if lookup(cfg, old.Key) == "" {
			w.buf.WriteString(old.Key + ":\n")
		}
	}
	for _, c := range cfg {
		if lookup(w.config, c.Key) != c.Value {
			w.buf.WriteString(c.Key + ": " + c.Value + "\n")
		}
	}
	w.buf.WriteByte('\n')
	w.config = append(w.config[:0], cfg...)
	w.first = true
}

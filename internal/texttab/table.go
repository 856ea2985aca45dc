// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain text tables.
package texttab

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of a text table. Its methods return the Table so
// calls can be chained:
//
//	t.Row().Cell("name").Cell("sec/op", texttab.Right)
type Table struct {
	rows [][]cell
	cols int
}

type cell struct {
	value string
	align align
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// A CellOption modifies a cell.
type CellOption func(c *cell)

var (
	Left  CellOption = func(c *cell) { c.align = alignLeft }
	Right CellOption = func(c *cell) { c.align = alignRight }
)

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	row := &t.rows[len(t.rows)-1]
	*row = append(*row, c)
	t.cols = max(t.cols, len(*row))
	return t
}

// Blank adds an empty row.
func (t *Table) Blank() *Table {
	return t.Row()
}

// Format writes t to w. Columns are separated by two spaces and lines
// carry no trailing space.
func (t *Table) Format(w io.Writer) error {
	widths := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(c.value))
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c.value))
			if c.align == alignRight {
				line.WriteString(pad)
				line.WriteString(c.value)
			} else {
				line.WriteString(c.value)
				line.WriteString(pad)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

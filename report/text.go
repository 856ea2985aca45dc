// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/internal/texttab"
)

// scaler returns the Scaler shared by every center in t.
func (t *Table) scaler() gridfmt.Scaler {
	var vals []float64
	for _, r := range t.Rows {
		vals = append(vals, r.New.Summary.Center)
		if r.Old != nil {
			vals = append(vals, r.Old.Summary.Center)
		}
	}
	return gridfmt.CommonScale(vals, t.class)
}

// rows returns the rows of t followed by the geomean, if any.
func (t *Table) rows() []*Row {
	if t.Geomean == nil {
		return t.Rows
	}
	return append(t.Rows[:len(t.Rows):len(t.Rows)], t.Geomean)
}

// FormatText writes a fixed-width text formatting of tables to w,
// followed by the warnings, if any.
func FormatText(w io.Writer, tables []*Table) error {
	var tab texttab.Table
	for i, t := range tables {
		if i > 0 {
			tab.Blank()
		}
		tab.Row().Cell(t.Unit)
		if t.Compare {
			tab.Cell("base "+t.Label, texttab.Right).Cell("")
		}
		tab.Cell(t.Label, texttab.Right).Cell("")
		if t.Compare {
			tab.Cell("vs base", texttab.Right)
		}

		sc := t.scaler()
		for _, r := range t.rows() {
			tab.Row().Cell(r.Name)
			if t.Compare {
				textCell(&tab, sc, r.Old)
			}
			textCell(&tab, sc, r.New)
			if t.Compare && r.Old != nil {
				delta := r.Delta
				if delta == "~" {
					delta = "~   "
				}
				tab.Cell(delta, texttab.Right)
				if r.Note != "" {
					tab.Cell("(" + r.Note + ")")
				}
			}
		}
	}
	if err := tab.Format(w); err != nil {
		return err
	}

	warnings := Warnings(tables)
	if len(warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, msg := range warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

func textCell(tab *texttab.Table, sc gridfmt.Scaler, c *Cell) {
	if c == nil {
		tab.Cell("").Cell("")
		return
	}
	tab.Cell(sc.Format(c.Summary.Center), texttab.Right)
	if c.N == 0 {
		// Geomean rows have no interval.
		tab.Cell("")
		return
	}
	tab.Cell("± " + c.Summary.PctRangeString())
}

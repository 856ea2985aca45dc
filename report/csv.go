// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
)

// FormatCSV writes tables to w as CSV, one record per row. Numbers are
// written exactly and in base units. The geomean rows are omitted.
func FormatCSV(w io.Writer, tables []*Table) error {
	cw := csv.NewWriter(w)
	compare := false
	for _, t := range tables {
		compare = compare || t.Compare
	}
	header := []string{"name", "unit", "stat", "center", "lo", "hi", "n"}
	if compare {
		header = append(header, "base center", "base lo", "base hi", "base n", "delta", "note")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range tables {
		for _, r := range t.Rows {
			rec := []string{r.Name, t.Unit, t.Label}
			rec = append(rec, csvCell(r.New)...)
			if compare {
				rec = append(rec, csvCell(r.Old)...)
				rec = append(rec, r.Delta, r.Note)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(c *Cell) []string {
	if c == nil {
		return []string{"", "", "", ""}
	}
	f := gridfmt.NoOpScaler.Format
	return []string{f(c.Summary.Center), f(c.Summary.Lo), f(c.Summary.Hi), strconv.Itoa(c.N)}
}

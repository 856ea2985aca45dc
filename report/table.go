// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report summarizes grid measurements and renders them as
// text, CSV, HTML or a chart.
//
// Results are grouped into one Table per unit. Every row is one
// benchmark name, summarized over its repetitions. When a baseline is
// given, every row also compares against the baseline's results of the
// same name.
package report

import (
	"math"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridmath"
)

// Confidence is the confidence level of summary intervals.
const Confidence = 0.95

// A Table holds the summaries of one unit.
type Table struct {
	// Unit is the tidied unit, such as "sec/op".
	Unit string

	// Label names the summary statistic, such as "median".
	Label string

	// Compare is set if rows carry a baseline.
	Compare bool

	Rows []*Row

	// Geomean summarizes all rows, or is nil if the geometric
	// mean is undefined for some row.
	Geomean *Row

	class gridfmt.Class
}

// A Row is one benchmark in a Table.
type Row struct {
	Name string

	// New is the summary of the results, Old that of the baseline.
	// Old is nil if there is no baseline for this row.
	New, Old *Cell

	// Delta is the formatted change from Old to New, and Note the
	// comparison's test details. Both are empty without a baseline.
	Delta, Note string

	// Change is -1 if New is significantly lower than Old, +1 if
	// it is higher, and 0 otherwise.
	Change int

	Warnings []error
}

// A Cell is the summary of one sample.
type Cell struct {
	Summary gridmath.Summary
	N       int
}

// Mode returns the build mode part of the row name.
func (r *Row) Mode() string { return gridfmt.NameKey(r.Name, "mode") }

// Batch returns the batch part of the row name.
func (r *Row) Batch() string { return gridfmt.NameKey(r.Name, "batch") }

// Op returns the operation the row measures.
func (r *Row) Op() string { return gridfmt.NameBase(r.Name) }

// assumption returns how values of a tidied unit are distributed.
func assumption(unit string) gridmath.Assumption {
	switch unit {
	case gridfmt.UnitEvents, gridfmt.UnitRefreshes, gridfmt.UnitUpdates:
		return gridmath.AssumeExact
	}
	return gridmath.AssumeNothing
}

// samples groups values by unit, then by name, in first-seen order.
type samples struct {
	units []string
	names map[string][]string
	vals  map[[2]string][]float64
}

func collect(results []*gridfmt.Result) *samples {
	s := &samples{names: make(map[string][]string), vals: make(map[[2]string][]float64)}
	for _, r := range results {
		for _, v := range r.Values {
			val, unit := gridfmt.Tidy(v.Value, v.Unit)
			if _, ok := s.names[unit]; !ok {
				s.units = append(s.units, unit)
				s.names[unit] = nil
			}
			k := [2]string{unit, r.Name}
			if _, ok := s.vals[k]; !ok {
				s.names[unit] = append(s.names[unit], r.Name)
			}
			s.vals[k] = append(s.vals[k], val)
		}
	}
	return s
}

func (s *samples) sample(unit, name string) *gridmath.Sample {
	vs, ok := s.vals[[2]string{unit, name}]
	if !ok {
		return nil
	}
	return gridmath.NewSample(append([]float64(nil), vs...), &gridmath.DefaultThresholds)
}

// Build summarizes results. If base is non-nil, rows are compared
// against the baseline results with the same name and unit.
func Build(results, base []*gridfmt.Result) []*Table {
	cur := collect(results)
	var old *samples
	if base != nil {
		old = collect(base)
	}

	var tables []*Table
	for _, unit := range cur.units {
		a := assumption(unit)
		t := &Table{Unit: unit, Label: a.SummaryLabel(), Compare: old != nil, class: gridfmt.ClassOf(unit)}
		for _, name := range cur.names[unit] {
			s := cur.sample(unit, name)
			row := &Row{Name: name, New: summarize(a, s)}
			row.Warnings = append(row.Warnings, row.New.Summary.Warnings...)
			if old != nil {
				if bs := old.sample(unit, name); bs != nil {
					row.Old = summarize(a, bs)
					c := a.Compare(bs, s)
					row.Delta = c.FormatDelta(row.Old.Summary.Center, row.New.Summary.Center)
					row.Note = c.String()
					if c.Significant() {
						switch {
						case row.New.Summary.Center < row.Old.Summary.Center:
							row.Change = -1
						case row.New.Summary.Center > row.Old.Summary.Center:
							row.Change = +1
						}
					}
					row.Warnings = append(row.Warnings, c.Warnings...)
				}
			}
			t.Rows = append(t.Rows, row)
		}
		t.Geomean = geomean(t)
		tables = append(tables, t)
	}
	return tables
}

func summarize(a gridmath.Assumption, s *gridmath.Sample) *Cell {
	return &Cell{Summary: a.Summary(s, Confidence), N: len(s.Values)}
}

// geomean returns the geometric mean row of t, or nil if t has fewer
// than two rows or a center that isn't positive.
func geomean(t *Table) *Row {
	if len(t.Rows) < 2 {
		return nil
	}
	var news, olds []float64
	for _, r := range t.Rows {
		news = append(news, r.New.Summary.Center)
		if r.Old != nil {
			olds = append(olds, r.Old.Summary.Center)
		}
	}
	g := gridmath.GeoMean(news)
	if math.IsNaN(g) {
		return nil
	}
	row := &Row{Name: "geomean", New: &Cell{Summary: gridmath.Summary{Center: g, Lo: g, Hi: g}}}
	if t.Compare && len(olds) == len(news) {
		og := gridmath.GeoMean(olds)
		if !math.IsNaN(og) {
			row.Old = &Cell{Summary: gridmath.Summary{Center: og, Lo: og, Hi: og}}
			// A zero Alpha and P makes the delta always shown.
			row.Delta = gridmath.Comparison{}.FormatDelta(og, g)
		}
	}
	return row
}

// Warnings returns every warning of every table, prefixed with the
// row and unit it belongs to.
func Warnings(tables []*Table) []string {
	var out []string
	for _, t := range tables {
		for _, r := range t.Rows {
			for _, w := range r.Warnings {
				out = append(out, r.Name+" "+t.Unit+": "+w.Error())
			}
		}
	}
	return out
}

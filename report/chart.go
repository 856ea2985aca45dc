// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/harness"
)

// ErrNoChartData is returned by Chart if there are no rebuild timings.
var ErrNoChartData = errors.New("no rebuild timings to chart")

const chartUnit = "sec/op"

var chartColors = []color.Color{
	color.NRGBA{0x33, 0x66, 0xCC, 0xFF},
	color.NRGBA{0xFF, 0x99, 0x00, 0xFF},
	color.NRGBA{0x99, 0, 0xFF, 0xFF},
}

// Chart draws the median rebuild time of every build mode as a bar
// chart, with one bar per batch setting, and writes it to w. format is
// any format gonum/plot can write, such as "svg" or "png".
func Chart(w io.Writer, tables []*Table, format string) error {
	var t *Table
	for _, tt := range tables {
		if tt.Unit == chartUnit {
			t = tt
			break
		}
	}
	if t == nil {
		return ErrNoChartData
	}

	// Modes along the x axis and batch settings as bar sets, both
	// in first-seen order.
	var modes, batches []string
	center := make(map[[2]string]float64)
	for _, r := range t.Rows {
		if r.Op() != harness.OpRebuild {
			continue
		}
		m, b := r.Mode(), r.Batch()
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
		if !slices.Contains(batches, b) {
			batches = append(batches, b)
		}
		center[[2]string{m, b}] = r.New.Summary.Center
	}
	if len(modes) == 0 {
		return ErrNoChartData
	}

	sc := t.scaler()
	p := plot.New()
	p.Title.Text = "Rebuild"
	p.Y.Label.Text = sc.Prefix + "s/op"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	width := vg.Points(20)
	for i, b := range batches {
		vals := make(plotter.Values, len(modes))
		for j, m := range modes {
			vals[j] = center[[2]string{m, b}] / sc.Factor
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = chartColors[i%len(chartColors)]
		bars.Offset = width * vg.Length(2*i-len(batches)+1) / 2
		p.Add(bars)
		label := "batch=" + b
		if b == "" {
			label = "rebuild"
		}
		p.Legend.Add(label, bars)
	}
	p.Legend.Top = true
	p.NominalX(modes...)

	wt, err := p.WriterTo(vg.Length(3+2*len(modes))*vg.Centimeter, 10*vg.Centimeter, format)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

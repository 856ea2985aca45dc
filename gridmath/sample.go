// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gridmath summarizes and compares repeated measurements of
// grid operations.
//
// Callers pick an Assumption about how a measurement is distributed
// and the package picks the statistic and test to go with it. Timings
// and allocation sizes are noisy and are summarized with
// AssumeNothing; event counts are deterministic and are summarized
// with AssumeExact.
//
// Results carry a list of warnings. They don't prevent analysis but
// should be shown next to the numbers.
package gridmath

import (
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of repeated measurements of one operation.
type Sample struct {
	// Values are the measurements in ascending order.
	Values []float64

	Thresholds *Thresholds
}

// NewSample returns a Sample of values. It sorts values in place.
func NewSample(values []float64, t *Thresholds) *Sample {
	slices.Sort(values)
	return &Sample{values, t}
}

func (s *Sample) stats() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Thresholds configures the statistical tests.
type Thresholds struct {
	// CompareAlpha is the p-value below which Compare considers
	// two samples different.
	CompareAlpha float64
}

// DefaultThresholds is the usual configuration.
var DefaultThresholds = Thresholds{CompareAlpha: 0.05}

// A Summary is the center of a sample and a confidence interval
// around it.
type Summary struct {
	Center float64
	Lo, Hi float64

	// Confidence is the actual level of [Lo, Hi]. It is at least
	// the requested level.
	Confidence float64

	Warnings []error
}

// PctRangeString returns the half-width of the confidence interval as
// a percentage of the center, "∞" for an unbounded interval and "?"
// when the interval crosses zero.
func (s Summary) PctRangeString() string {
	if math.IsInf(s.Lo, 0) || math.IsInf(s.Hi, 0) {
		return "∞"
	}
	c := mathx.Sign(s.Center)
	if c != mathx.Sign(s.Lo) || c != mathx.Sign(s.Hi) {
		return "?"
	}
	if s.Center == 0 {
		return "0%"
	}
	v := math.Max(s.Hi/s.Center-1, 1-s.Lo/s.Center)
	return fmt.Sprintf("%.0f%%", 100*v)
}

// A Comparison is the outcome of testing whether two samples come
// from the same distribution.
type Comparison struct {
	// P is the p-value. P == 0 means the result is exact.
	P float64

	N1, N2 int

	// Alpha is the threshold P is compared against.
	Alpha float64

	Warnings []error
}

// Significant reports whether the samples differ.
func (c Comparison) Significant() bool {
	return c.P <= c.Alpha
}

// String returns "p=0.PPP n=N1+N2", dropping the p-value for exact
// results and collapsing equal sizes.
func (c Comparison) String() string {
	var s string
	if c.P != 0 {
		s = fmt.Sprintf("p=%0.3f ", c.P)
	}
	if c.N1 == c.N2 {
		return s + fmt.Sprintf("n=%d", c.N1)
	}
	return s + fmt.Sprintf("n=%d+%d", c.N1, c.N2)
}

// FormatDelta formats the change from old to new as a percentage, or
// "~" if the difference is not significant.
func (c Comparison) FormatDelta(old, new float64) string {
	if !c.Significant() {
		return "~"
	}
	if old == new {
		return "0.00%"
	}
	if old == 0 {
		return "?"
	}
	return fmt.Sprintf("%+.2f%%", (new/old-1)*100)
}

// GeoMean returns the geometric mean of xs, or NaN if xs is empty or
// has a non-positive value.
func GeoMean(xs []float64) float64 {
	return stats.GeoMean(xs)
}

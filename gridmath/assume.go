// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// An Assumption is a distributional assumption about a sample. It
// decides how a sample is summarized and compared.
type Assumption interface {
	// SummaryLabel names the summary statistic, such as "median".
	SummaryLabel() string

	// Summary summarizes s with a confidence interval at the
	// given level in [0, 1].
	Summary(s *Sample, confidence float64) Summary

	// Compare tests whether s1 and s2 come from the same
	// distribution.
	Compare(s1, s2 *Sample) Comparison
}

// AssumeNothing makes no assumption about the distribution. Samples
// are summarized by their median and compared with the Mann-Whitney
// U-test.
var AssumeNothing Assumption = assumeNothing{}

// AssumeExact assumes a measurement has no noise, like a count of
// change events. The summary is the most common value, with a warning
// if the values differ.
var AssumeExact Assumption = assumeExact{}

type assumeNothing struct{}

func (assumeNothing) SummaryLabel() string { return "median" }

// maxMedianSamples bounds the search for the sample size a median
// confidence interval needs.
const maxMedianSamples = 50

// medianSamples returns the smallest sample size for which the median
// has a bounded confidence interval at the given level. ok is false
// if no size up to maxMedianSamples is enough.
func medianSamples(confidence float64) (n int, ok bool) {
	for n = 2; n <= maxMedianSamples; n++ {
		ci := stats.QuantileCI(n, 0.5, confidence)
		if ci.LoOrder >= 1 && ci.HiOrder <= n {
			return n, true
		}
	}
	return maxMedianSamples, false
}

func (assumeNothing) Summary(s *Sample, confidence float64) Summary {
	if len(s.Values) == 0 {
		return Summary{Center: math.NaN(), Lo: math.Inf(-1), Hi: math.Inf(1), Confidence: 1,
			Warnings: []error{errors.New("no samples")}}
	}
	ci := stats.QuantileCI(len(s.Values), 0.5, confidence)
	median, lo, hi := ci.SampleCI(s.stats())
	sum := Summary{Center: median, Lo: lo, Hi: hi, Confidence: ci.Confidence}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		n, ok := medianSamples(confidence)
		op := ">="
		if !ok {
			op = ">"
		}
		sum.Warnings = append(sum.Warnings, fmt.Errorf("need %s %d samples for confidence interval at level %v", op, n, confidence))
	}
	return sum
}

func (assumeNothing) Compare(s1, s2 *Sample) Comparison {
	c := Comparison{N1: len(s1.Values), N2: len(s2.Values), Alpha: alpha(s1)}
	res, err := stats.MannWhitneyUTest(s1.Values, s2.Values, stats.LocationDiffers)
	switch {
	case errors.Is(err, stats.ErrSamplesEqual):
		c.P = 1
	case err != nil:
		c.P = 1
		c.Warnings = append(c.Warnings, err)
	default:
		c.P = res.P
	}
	if c.N1 > 0 && c.N2 > 0 {
		// The smallest p-value the test can give, reached when
		// the samples don't overlap at all.
		if minP := 2 / mathx.Choose(c.N1+c.N2, c.N1); minP > c.Alpha {
			c.Warnings = append(c.Warnings, fmt.Errorf("need more samples to detect a difference at alpha level %v", c.Alpha))
		}
	}
	return c
}

func alpha(s *Sample) float64 {
	if s.Thresholds == nil {
		return DefaultThresholds.CompareAlpha
	}
	return s.Thresholds.CompareAlpha
}

type assumeExact struct{}

func (assumeExact) SummaryLabel() string { return "exact" }

func (assumeExact) Summary(s *Sample, confidence float64) Summary {
	if len(s.Values) == 0 {
		return Summary{Center: math.NaN(), Confidence: 1, Warnings: []error{errors.New("no samples")}}
	}
	// Values are sorted, so equal values are adjacent.
	mode, modeCount := s.Values[0], 0
	for i := 0; i < len(s.Values); {
		j := i + 1
		for j < len(s.Values) && s.Values[j] == s.Values[i] {
			j++
		}
		if j-i > modeCount {
			mode, modeCount = s.Values[i], j-i
		}
		i = j
	}
	first, last := s.Values[0], s.Values[len(s.Values)-1]
	sum := Summary{Center: mode, Lo: first, Hi: last, Confidence: 1}
	if first != last {
		sum.Warnings = []error{fmt.Errorf("exact distribution expected, but values range from %v to %v", first, last)}
	}
	return sum
}

func (assumeExact) Compare(s1, s2 *Sample) Comparison {
	return Comparison{P: 0, N1: len(s1.Values), N2: len(s2.Values)}
}

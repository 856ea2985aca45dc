// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gridfmt

import (
	"math"
	"strconv"
	"strings"
)

// Units written by the harness.
const (
	UnitNs        = "ns/op"
	UnitBytes     = "B/op"
	UnitAllocs    = "allocs/op"
	UnitEvents    = "events/op"
	UnitRefreshes = "refreshes/op"
	UnitUpdates   = "updates/op"
)

// Tidy converts a value in a pre-scaled unit to base units, turning
// "ns/op" into "sec/op" and "MB/s" into "B/s". Other units are
// returned unchanged.
func Tidy(value float64, unit string) (float64, string) {
	switch {
	case unit == UnitNs:
		return value * 1e-9, "sec/op"
	case strings.HasPrefix(unit, "ns/"):
		return value * 1e-9, "sec/" + unit[len("ns/"):]
	case strings.HasPrefix(unit, "MB/"):
		return value * 1e6, "B/" + unit[len("MB/"):]
	}
	return value, unit
}

// A Class is the kind of prefix a unit is scaled with.
type Class int

const (
	// Decimal units scale by powers of 1000: k, M, G.
	Decimal Class = iota
	// Binary units scale by powers of 1024: Ki, Mi, Gi.
	Binary
)

// ClassOf returns Binary for units counting bytes and Decimal for
// everything else.
func ClassOf(unit string) Class {
	num, _, _ := strings.Cut(unit, "/")
	if num == "B" || num == "bytes" {
		return Binary
	}
	return Decimal
}

// A Scaler formats numbers with a fixed prefix and precision.
type Scaler struct {
	Prec   int     // digits after the decimal point, -1 for shortest
	Factor float64 // value of one Prefix
	Prefix string
}

// NoOpScaler formats numbers exactly, without a prefix. It is meant
// for machine-readable output such as CSV.
var NoOpScaler = Scaler{-1, 1, ""}

// Format formats v according to s.
func (s Scaler) Format(v float64) string {
	return strconv.FormatFloat(v/s.Factor, 'f', s.Prec, 64) + s.Prefix
}

type prefix struct {
	factor float64
	name   string
}

var (
	siPrefixes = []prefix{
		{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
		{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"},
	}
	iecPrefixes = []prefix{
		{1 << 40, "Ti"}, {1 << 30, "Gi"}, {1 << 20, "Mi"}, {1 << 10, "Ki"}, {1, ""},
	}
)

// CommonScale returns a Scaler that shows every value in vals with at
// least three significant digits. The scale is picked for the
// smallest non-zero magnitude.
func CommonScale(vals []float64, cls Class) Scaler {
	small := 0.0
	for _, v := range vals {
		if v = math.Abs(v); v != 0 && (small == 0 || v < small) {
			small = v
		}
	}
	if small == 0 {
		return Scaler{3, 1, ""}
	}
	prefixes := siPrefixes
	if cls == Binary {
		prefixes = iecPrefixes
	}
	p := prefixes[len(prefixes)-1]
	for _, q := range prefixes {
		if small >= q.factor*0.99995 {
			p = q
			break
		}
	}
	scaled := small / p.factor
	switch {
	case scaled >= 99.995:
		return Scaler{1, p.factor, p.name}
	case scaled >= 9.9995:
		return Scaler{2, p.factor, p.name}
	case scaled >= 0.99995:
		return Scaler{3, p.factor, p.name}
	}
	// Below the smallest prefix. Add digits instead.
	prec := 3
	for t := 0.99995; scaled < t && prec < 10; t /= 10 {
		prec++
	}
	return Scaler{prec, p.factor, p.name}
}

// Scale formats v with at least three significant digits and a unit
// prefix.
func Scale(v float64, cls Class) string {
	return CommonScale([]float64{v}, cls).Format(v)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"strings"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

// ScoreThreshold is the minimum score shown by the score filter.
const ScoreThreshold = 50

// Settings is the set of view toggles a grid front end offers. Apply
// turns them into filter, sort, group and live-shaping settings of a
// View.
type Settings struct {
	// FilterEvenID shows only records with an even id.
	FilterEvenID bool
	// FilterScore shows only records with a score of at least
	// ScoreThreshold.
	FilterScore bool

	// SortScoreDesc sorts by descending score. It takes
	// precedence over SortIDDesc.
	SortScoreDesc bool
	// SortIDDesc sorts by descending id, unless SortScoreDesc is
	// also set, in which case it is ignored entirely.
	SortIDDesc bool

	// GroupByCategory groups by record category.
	GroupByCategory bool

	// Defer applies all settings inside one deferral, so the view
	// is recomputed once instead of once per setting.
	Defer bool

	// Live turns on live shaping for the active stages.
	Live bool
}

// Predicate returns the combined filter, or nil if no filter is on.
func (s Settings) Predicate() Predicate {
	even, score := s.FilterEvenID, s.FilterScore
	if !even && !score {
		return nil
	}
	return func(r *record.Record) bool {
		if even && r.ID()%2 != 0 {
			return false
		}
		if score && r.Score() < ScoreThreshold {
			return false
		}
		return true
	}
}

// Sort returns the sort criterion the settings select. A score sort
// wins over an id sort; the two are never combined.
func (s Settings) Sort() (SortDescription, bool) {
	switch {
	case s.SortScoreDesc:
		return SortDescription{record.FieldScore, Descending}, true
	case s.SortIDDesc:
		return SortDescription{record.FieldID, Descending}, true
	}
	return SortDescription{}, false
}

// LiveShaping returns the live field lists for s.
//
// Only the score filter is live. The even-id filter never is, since
// ids don't change at run time; a filter made of both terms is live
// on Score only.
func (s Settings) LiveShaping() LiveShaping {
	var ls LiveShaping
	if !s.Live {
		return ls
	}
	if s.FilterScore {
		ls.Filtering = []record.Field{record.FieldScore}
	}
	if s.SortScoreDesc {
		ls.Sorting = []record.Field{record.FieldScore}
	}
	if s.GroupByCategory {
		ls.Grouping = []record.Field{record.FieldCategory}
	}
	return ls
}

// Apply applies s to v. Settings are applied one at a time, in the
// order filter, sort, grouping, live shaping. Without Defer, each of
// the filter, sort-clear, sort, group-clear and group steps recomputes
// the view.
func (s Settings) Apply(v *View) {
	if s.Defer {
		d := v.DeferRefresh()
		defer d.Release()
	}

	v.SetFilter(s.Predicate())

	v.ClearSort()
	if sd, ok := s.Sort(); ok {
		v.SetSort(sd.Field, sd.Direction)
	}

	v.ClearGroup()
	if s.GroupByCategory {
		v.SetGroup(record.FieldCategory)
	}

	v.SetLiveShaping(s.LiveShaping())
}

// String returns a compact label for s, usable in benchmark names.
func (s Settings) String() string {
	var parts []string
	add := func(on bool, name string) {
		if on {
			parts = append(parts, name)
		}
	}
	add(s.FilterEvenID, "even")
	add(s.FilterScore, "score50")
	if sd, ok := s.Sort(); ok {
		parts = append(parts, strings.ToLower(sd.Field.String())+"-"+sd.Direction.String())
	}
	add(s.GroupByCategory, "group")
	add(s.Defer, "defer")
	add(s.Live, "live")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import "github.com/Koichi-Kobayashi/DataGridPerfLab/record"

// fieldSet is a set of record fields.
type fieldSet uint8

func makeFieldSet(fs []record.Field) fieldSet {
	var s fieldSet
	for _, f := range fs {
		s |= 1 << uint(f)
	}
	return s
}

func (s fieldSet) has(f record.Field) bool {
	return s&(1<<uint(f)) != 0
}

func (s fieldSet) fields() []record.Field {
	var out []record.Field
	for _, f := range record.Fields() {
		if s.has(f) {
			out = append(out, f)
		}
	}
	return out
}

// subscribe subscribes e to every field that is live in some stage.
func (v *View) subscribe(e *entry) {
	union := v.liveFilter | v.liveSort | v.liveGroup
	if union == 0 {
		return
	}
	for _, f := range union.fields() {
		e.cancel = append(e.cancel, e.rec.Subscribe(f, func(_ *record.Record, f record.Field) error {
			v.fieldChanged(e, f)
			return nil
		}))
	}
}

func (v *View) unsubscribe(e *entry) {
	for _, cancel := range e.cancel {
		cancel()
	}
	e.cancel = nil
}

func (v *View) resubscribe() {
	for _, e := range v.entries {
		v.unsubscribe(e)
		v.subscribe(e)
	}
}

// fieldChanged re-evaluates the live stages of e after its field f
// changed.
func (v *View) fieldChanged(e *entry, f record.Field) {
	if v.deferDepth > 0 {
		// The release refresh will pick this up.
		return
	}
	filter := v.filter != nil && v.liveFilter.has(f)
	sorting := v.sorted && v.liveSort.has(f)
	grouping := v.grouped && v.liveGroup.has(f)
	if !filter && !sorting && !grouping {
		return
	}

	// Take e out using the keys it was placed with.
	if e.visible {
		v.removeVisible(e)
	}
	if filter {
		v.evalFilter(e)
	}
	if sorting {
		v.evalSort(e)
	}
	if grouping {
		v.evalGroup(e)
	}
	if e.pass {
		v.insertVisible(e)
	}
	v.groups = nil
	v.stats.Updates++
}

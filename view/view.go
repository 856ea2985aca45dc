// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view implements a filtered, sorted, grouped projection of an
// observable collection.
//
// The visible output of a View is computed as filter, then sort, then
// group. Outside of a deferral every input change is applied eagerly:
// setting the filter, sort or group recomputes the output, and so
// does any structural change of the source collection. Appends at the
// end and removals are applied incrementally; every other structural
// change triggers a full recomputation.
//
// DeferRefresh suspends recomputation. While any Deferral is
// outstanding, changes only mark the view stale and reads return the
// last computed output. Releasing the outermost Deferral performs
// exactly one full recomputation.
//
// Live shaping re-evaluates single records when one of their fields
// changes. Each stage (filtering, sorting, grouping) has its own list
// of live fields. A change to a field re-evaluates only the stages
// whose list contains it. Stages that don't list the field keep the
// record's previous decision, even if the stage's criterion depends on
// that field, until the next full recomputation.
//
// A View is not safe for concurrent use and must be used on the same
// goroutine that mutates its source and the source's records.
package view

import (
	"fmt"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/observable"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

// A Predicate reports whether a record is visible.
type Predicate func(r *record.Record) bool

// A Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// A SortDescription is a sort criterion.
type SortDescription struct {
	Field     record.Field
	Direction Direction
}

func (s SortDescription) String() string {
	return fmt.Sprintf("%v %v", s.Field, s.Direction)
}

// LiveShaping lists, for every stage, the fields whose changes
// re-evaluate that stage for the changed record. An empty list turns
// live updates off for the stage.
type LiveShaping struct {
	Filtering []record.Field
	Sorting   []record.Field
	Grouping  []record.Field
}

// A Group is one group of the visible output.
type Group struct {
	Key   record.Value
	Items []*record.Record
}

// Stats counts the work a View has done.
type Stats struct {
	// Refreshes is the number of full recomputations.
	Refreshes int

	// Updates is the number of incremental updates, from
	// structural changes of the source or live field changes.
	Updates int
}

// A View is a projection of an observable collection.
type View struct {
	src       *observable.Collection
	cancelSrc func()

	filter  Predicate
	sort    SortDescription
	sorted  bool
	group   record.Field
	grouped bool

	liveFilter, liveSort, liveGroup fieldSet

	// entries parallels the source collection, unless resync is
	// set.
	entries []*entry
	nextSeq int
	resync  bool

	// visible is the filtered, sorted output.
	visible []*entry
	// groups caches Groups. It is nil when it must be rebuilt.
	groups []Group

	deferDepth int
	stats      Stats
}

// New returns a view of src with no filter, sort or grouping.
// src may be nil.
func New(src *observable.Collection) *View {
	v := &View{}
	v.SetSource(src)
	return v
}

// Source returns the collection v reads from.
func (v *View) Source() *observable.Collection { return v.src }

// SetSource rebinds v to c, keeping the current settings. Rebinding
// to the current source does nothing. A nil c detaches v.
func (v *View) SetSource(c *observable.Collection) {
	if c == v.src && v.cancelSrc != nil {
		return
	}
	if v.cancelSrc != nil {
		v.cancelSrc()
		v.cancelSrc = nil
	}
	v.src = c
	if c != nil {
		v.cancelSrc = c.Subscribe(v.sourceChanged)
	}
	v.resync = true
	v.invalidate()
}

// Close detaches v from its source and from every record.
func (v *View) Close() {
	v.SetSource(nil)
	v.dropEntries()
}

// SetFilter sets the filter predicate. A nil p shows every record.
func (v *View) SetFilter(p Predicate) {
	v.filter = p
	v.invalidate()
}

// SetSort sorts the output by field f in direction dir, replacing any
// previous sort. Records with equal keys keep their source order.
func (v *View) SetSort(f record.Field, dir Direction) {
	v.sort = SortDescription{f, dir}
	v.sorted = true
	v.invalidate()
}

// ClearSort restores source order.
func (v *View) ClearSort() {
	v.sorted = false
	v.invalidate()
}

// Sort returns the active sort criterion, if any.
func (v *View) Sort() (SortDescription, bool) {
	return v.sort, v.sorted
}

// SetGroup groups the output by field f.
func (v *View) SetGroup(f record.Field) {
	v.group = f
	v.grouped = true
	v.invalidate()
}

// ClearGroup removes grouping.
func (v *View) ClearGroup() {
	v.grouped = false
	v.invalidate()
}

// SetLiveShaping sets the live field lists. It does not recompute the
// output; it only changes which future field changes are acted on.
func (v *View) SetLiveShaping(ls LiveShaping) {
	oldUnion := v.liveFilter | v.liveSort | v.liveGroup
	v.liveFilter = makeFieldSet(ls.Filtering)
	v.liveSort = makeFieldSet(ls.Sorting)
	v.liveGroup = makeFieldSet(ls.Grouping)
	if union := v.liveFilter | v.liveSort | v.liveGroup; union != oldUnion {
		if v.deferDepth > 0 || v.resync {
			v.resync = true
		} else {
			v.resubscribe()
		}
	}
}

// LiveShaping returns the current live field lists.
func (v *View) LiveShaping() LiveShaping {
	return LiveShaping{
		Filtering: v.liveFilter.fields(),
		Sorting:   v.liveSort.fields(),
		Grouping:  v.liveGroup.fields(),
	}
}

// Len returns the number of visible records.
func (v *View) Len() int { return len(v.visible) }

// At returns the i'th visible record.
func (v *View) At(i int) *record.Record { return v.visible[i].rec }

// Items returns the visible records in order.
func (v *View) Items() []*record.Record {
	out := make([]*record.Record, len(v.visible))
	for i, e := range v.visible {
		out[i] = e.rec
	}
	return out
}

// Groups returns the visible records grouped by the grouping field, in
// ascending key order. Within a group records keep their visible
// order. Groups returns nil if v is not grouped.
func (v *View) Groups() []Group {
	if !v.grouped {
		return nil
	}
	if v.groups == nil {
		v.groups = buildGroups(v.visible)
	}
	return v.groups
}

// Stats returns v's work counters.
func (v *View) Stats() Stats { return v.stats }

// Deferred reports whether a deferral is outstanding.
func (v *View) Deferred() bool { return v.deferDepth > 0 }

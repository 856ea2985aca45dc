// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"slices"
	"sort"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/observable"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

// An entry is the view's state for one source record. The stage
// decisions are cached so that stages which aren't live keep their
// old decisions when the record changes.
type entry struct {
	rec *record.Record
	// seq orders entries like the source. It is unique within a
	// view.
	seq int

	pass     bool
	sortKey  record.Value
	groupKey record.Value

	visible bool
	cancel  []func()
}

// less orders entries in visible order: by sort key, then by source
// order. Since seq is unique this is a total order.
func (v *View) less(a, b *entry) bool {
	if v.sorted {
		c := a.sortKey.Compare(b.sortKey)
		if v.sort.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	return a.seq < b.seq
}

func (v *View) evalFilter(e *entry) {
	e.pass = v.filter == nil || v.filter(e.rec)
}

func (v *View) evalSort(e *entry) {
	if v.sorted {
		e.sortKey = v.sort.Field.Value(e.rec)
	}
}

func (v *View) evalGroup(e *entry) {
	if v.grouped {
		e.groupKey = v.group.Value(e.rec)
	}
}

func (v *View) eval(e *entry) {
	v.evalFilter(e)
	v.evalSort(e)
	v.evalGroup(e)
}

// invalidate recomputes the output now, or at the end of the current
// deferral.
func (v *View) invalidate() {
	if v.deferDepth > 0 {
		return
	}
	v.refresh()
}

// refresh recomputes every stage for every record.
func (v *View) refresh() {
	if v.resync {
		v.syncEntries()
	}
	v.visible = v.visible[:0]
	for _, e := range v.entries {
		v.eval(e)
		e.visible = e.pass
		if e.pass {
			v.visible = append(v.visible, e)
		}
	}
	if v.sorted {
		slices.SortFunc(v.visible, func(a, b *entry) int {
			if v.less(a, b) {
				return -1
			}
			if v.less(b, a) {
				return 1
			}
			return 0
		})
	}
	v.groups = nil
	v.stats.Refreshes++
}

// syncEntries rebuilds entries from the source.
func (v *View) syncEntries() {
	v.dropEntries()
	if v.src != nil {
		n := v.src.Len()
		v.entries = make([]*entry, n)
		for i := 0; i < n; i++ {
			v.entries[i] = v.newEntry(v.src.At(i))
		}
	}
	v.resync = false
}

func (v *View) newEntry(r *record.Record) *entry {
	e := &entry{rec: r, seq: v.nextSeq}
	v.nextSeq++
	v.subscribe(e)
	return e
}

func (v *View) dropEntries() {
	for _, e := range v.entries {
		v.unsubscribe(e)
	}
	clear(v.entries)
	v.entries = v.entries[:0]
	clear(v.visible)
	v.visible = v.visible[:0]
	v.groups = nil
}

// sourceChanged handles a structural change of the source.
func (v *View) sourceChanged(ch observable.Change) error {
	if v.deferDepth > 0 || v.resync {
		v.resync = true
		return nil
	}
	switch ch.Action {
	case observable.Add:
		// Only appends are incremental: they get the largest
		// seq, which keeps seq in source order.
		if ch.Index == len(v.entries) && len(v.entries)+1 == v.src.Len() {
			e := v.newEntry(ch.New[0])
			v.entries = append(v.entries, e)
			v.eval(e)
			if e.pass {
				v.insertVisible(e)
			}
			v.groups = nil
			v.stats.Updates++
			return nil
		}
	case observable.Remove:
		i := ch.Index
		if i < len(v.entries) && v.entries[i].rec == ch.Old[0] && len(v.entries)-1 == v.src.Len() {
			e := v.entries[i]
			v.unsubscribe(e)
			v.entries = slices.Delete(v.entries, i, i+1)
			if e.visible {
				v.removeVisible(e)
			}
			v.groups = nil
			v.stats.Updates++
			return nil
		}
	}
	v.resync = true
	v.refresh()
	return nil
}

// insertVisible inserts e into the visible list in order.
func (v *View) insertVisible(e *entry) {
	i := sort.Search(len(v.visible), func(i int) bool {
		return v.less(e, v.visible[i])
	})
	v.visible = slices.Insert(v.visible, i, e)
	e.visible = true
}

// removeVisible removes e from the visible list. e's cached keys must
// be the ones it was inserted with.
func (v *View) removeVisible(e *entry) {
	i := sort.Search(len(v.visible), func(i int) bool {
		return !v.less(v.visible[i], e)
	})
	if i < len(v.visible) && v.visible[i] == e {
		v.visible = slices.Delete(v.visible, i, i+1)
	} else if i = slices.Index(v.visible, e); i >= 0 {
		v.visible = slices.Delete(v.visible, i, i+1)
	}
	e.visible = false
}

func buildGroups(visible []*entry) []Group {
	index := make(map[record.Value]int)
	var groups []Group
	for _, e := range visible {
		gi, ok := index[e.groupKey]
		if !ok {
			gi = len(groups)
			index[e.groupKey] = gi
			groups = append(groups, Group{Key: e.groupKey})
		}
		groups[gi].Items = append(groups[gi].Items, e.rec)
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return a.Key.Compare(b.Key)
	})
	return groups
}

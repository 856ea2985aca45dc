// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

// A Deferral holds off recomputation of a View until it is released.
type Deferral struct {
	v    *View
	done bool
}

// DeferRefresh suspends recomputation of v until the returned Deferral
// is released. Deferrals nest; only releasing the outermost one
// recomputes.
//
// The usual pattern is
//
//	d := v.DeferRefresh()
//	defer d.Release()
func (v *View) DeferRefresh() *Deferral {
	v.deferDepth++
	return &Deferral{v: v}
}

// Release ends the deferral. If it was the last outstanding deferral,
// the view is recomputed exactly once, whether or not anything changed.
// Releasing a Deferral twice has no further effect.
func (d *Deferral) Release() {
	if d.done {
		return
	}
	d.done = true
	d.v.deferDepth--
	if d.v.deferDepth == 0 {
		d.v.refresh()
	}
}

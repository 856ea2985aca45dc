// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package observable

import (
	"fmt"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

// An Action is the kind of a structural change.
type Action int

const (
	// Add means New was inserted at Index.
	Add Action = iota
	// Remove means Old was removed from Index.
	Remove
	// Replace means Old at Index was replaced by New.
	Replace
	// Reset means the contents changed wholesale. Index is -1
	// and observers should re-read the collection.
	Reset
)

func (a Action) String() string {
	switch a {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// A Change describes one structural mutation of a Collection.
type Change struct {
	Action Action
	Index  int
	Old    []*record.Record
	New    []*record.Record
}

func (ch Change) String() string {
	if ch.Action == Reset {
		return "reset"
	}
	return fmt.Sprintf("%v@%d", ch.Action, ch.Index)
}

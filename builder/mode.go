// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// A Mode selects a build strategy.
type Mode int

const (
	// Sequential generates records on the calling goroutine with
	// a fixed seed.
	Sequential Mode = iota

	// ParallelUnorderedMerge sends records from every worker into
	// one shared channel, then sorts the drained records by id.
	ParallelUnorderedMerge

	// ParallelIndexedArray has every worker write into its own
	// slots of a pre-sized slice. No lock, no sort.
	ParallelIndexedArray

	// ParallelLockedList appends every record to one shared slice
	// under a mutex, then sorts by id.
	ParallelLockedList
)

var modeNames = map[Mode]string{
	Sequential:             "Sequential",
	ParallelUnorderedMerge: "ParallelUnorderedMerge",
	ParallelIndexedArray:   "ParallelIndexedArray",
	ParallelLockedList:     "ParallelLockedList",
}

// Modes returns every Mode in declaration order.
func Modes() []Mode {
	return []Mode{Sequential, ParallelUnorderedMerge, ParallelIndexedArray, ParallelLockedList}
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Parallel reports whether m fans out across worker goroutines.
func (m Mode) Parallel() bool {
	return m != Sequential
}

// ParseMode parses a mode name. It accepts the full name, case
// insensitively, a short alias (seq, merge, array, locked), or the
// mode's number.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "seq", "sequential", "0":
		return Sequential, nil
	case "merge", "bag", "parallelunorderedmerge", "1":
		return ParallelUnorderedMerge, nil
	case "array", "parallelindexedarray", "2":
		return ParallelIndexedArray, nil
	case "locked", "lock", "parallellockedlist", "3":
		return ParallelLockedList, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

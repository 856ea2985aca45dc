// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package builder produces ordered sequences of records using one of
// several construction strategies.
//
// Every strategy returns count records with identities 0..count-1 in
// ascending order, names "Item <id>", and pseudo-random scores in
// [0,100). They differ in how they spread the work across goroutines
// and how they put the results back in order, which is what the
// harness measures.
//
// The sequential strategy uses a fixed seed and is reproducible. The
// parallel strategies give every worker its own generator, seeded from
// the runtime's random source, so their scores differ from run to run.
package builder

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

// MaxScore is the exclusive upper bound of generated scores.
const MaxScore = 100

// SequentialSeed is the default seed of the Sequential strategy.
const SequentialSeed = 0

var (
	// ErrNegativeCount is returned when asked for fewer than
	// zero records.
	ErrNegativeCount = errors.New("negative record count")

	// ErrUnknownMode is returned for a Mode that names no strategy.
	ErrUnknownMode = errors.New("unknown build mode")
)

// Build returns count records built with the strategy selected by
// mode. It blocks until every worker has finished.
func Build(count int, mode Mode, opts ...Option) ([]*record.Record, error) {
	if count < 0 {
		return nil, fmt.Errorf("build %d records: %w", count, ErrNegativeCount)
	}
	cfg := newConfig(opts...)
	switch mode {
	case Sequential:
		return buildSequential(count, cfg), nil
	case ParallelUnorderedMerge:
		return buildUnorderedMerge(count, cfg), nil
	case ParallelIndexedArray:
		return buildIndexedArray(count, cfg), nil
	case ParallelLockedList:
		return buildLockedList(count, cfg), nil
	}
	return nil, fmt.Errorf("build %d records: %w %d", count, ErrUnknownMode, int(mode))
}

func newRecord(id int, rng *rand.Rand) *record.Record {
	return record.New(id, "Item "+strconv.Itoa(id), rng.IntN(MaxScore))
}

// newSeeded returns the generator used by the Sequential strategy.
func newSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// SequentialScores returns the first count scores that the Sequential
// strategy with the given seed assigns, in id order.
func SequentialScores(count int, seed uint64) []int {
	rng := newSeeded(seed)
	scores := make([]int, count)
	for i := range scores {
		scores[i] = rng.IntN(MaxScore)
	}
	return scores
}

func buildSequential(count int, cfg config) []*record.Record {
	rng := newSeeded(cfg.seed)
	list := make([]*record.Record, 0, count)
	for i := 0; i < count; i++ {
		list = append(list, newRecord(i, rng))
	}
	return list
}

func buildUnorderedMerge(count int, cfg config) []*record.Record {
	// A buffered channel is the shared thread-safe queue. It is
	// sized so that no sender ever blocks.
	bag := make(chan *record.Record, count)
	parallelFor(count, cfg.workers, func(rng *rand.Rand, i int) {
		bag <- newRecord(i, rng)
	})
	close(bag)

	list := make([]*record.Record, 0, count)
	for r := range bag {
		list = append(list, r)
	}
	sortByID(list)
	return list
}

func buildIndexedArray(count int, cfg config) []*record.Record {
	arr := make([]*record.Record, count)
	parallelFor(count, cfg.workers, func(rng *rand.Rand, i int) {
		arr[i] = newRecord(i, rng)
	})
	// Already in id order.
	return arr
}

func buildLockedList(count int, cfg config) []*record.Record {
	var (
		mu   sync.Mutex
		list = make([]*record.Record, 0, count)
	)
	parallelFor(count, cfg.workers, func(rng *rand.Rand, i int) {
		r := newRecord(i, rng)
		mu.Lock()
		list = append(list, r)
		mu.Unlock()
	})
	sortByID(list)
	return list
}

func sortByID(list []*record.Record) {
	slices.SortFunc(list, func(a, b *record.Record) int {
		return a.ID() - b.ID()
	})
}

// parallelFor calls body for every i in [0, count), splitting the range
// into contiguous blocks, one per worker. Each worker owns a generator
// seeded from the runtime's random source. parallelFor returns after
// every call to body has returned.
func parallelFor(count, workers int, body func(rng *rand.Rand, i int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}
	if workers == 0 {
		return
	}
	block := (count + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < count; lo += block {
		lo, hi := lo, min(lo+block, count)
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			for i := lo; i < hi; i++ {
				body(rng, i)
			}
			return nil
		})
	}
	g.Wait()
}

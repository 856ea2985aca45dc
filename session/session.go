// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session holds the state a grid front end binds to: the
// current record collection, the time the last rebuild took, and the
// operations that rebuild and mutate it.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/observable"
)

// ErrNegativeCount is returned by MutateScores for a negative count.
var ErrNegativeCount = errors.New("negative mutation count")

// A ReplacedFunc is called after a batch rebuild installed a new
// collection.
type ReplacedFunc func(c *observable.Collection)

// A Session owns the collection a grid is bound to.
type Session struct {
	items    *observable.Collection
	lastLoad time.Duration

	now       func() time.Time
	buildOpts []builder.Option

	replaced []replacedSub
	nextID   int
}

type replacedSub struct {
	id int
	fn ReplacedFunc
}

// An Option configures a Session.
type Option func(*Session)

// WithClock sets the clock Rebuild measures with. The default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithBuildOptions sets options passed to every builder.Build call.
func WithBuildOptions(opts ...builder.Option) Option {
	return func(s *Session) { s.buildOpts = append(s.buildOpts, opts...) }
}

// New returns a session with an empty collection.
func New(opts ...Option) *Session {
	s := &Session{
		items: observable.New(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Items returns the current collection. A batch Rebuild replaces it.
func (s *Session) Items() *observable.Collection { return s.items }

// LastLoad returns how long the last successful Rebuild took.
func (s *Session) LastLoad() time.Duration { return s.lastLoad }

// OnItemsReplaced registers fn to be called whenever a batch Rebuild
// installs a new collection. Functions are called in registration
// order. It returns a function that unregisters fn.
func (s *Session) OnItemsReplaced(fn ReplacedFunc) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.replaced = append(s.replaced, replacedSub{id, fn})
	return func() {
		s.replaced = slices.DeleteFunc(slices.Clone(s.replaced), func(r replacedSub) bool {
			return r.id == id
		})
	}
}

// Rebuild builds count records with mode and installs them.
//
// In batch mode the records are put in a new collection, which
// replaces the current one, and items-replaced observers are notified
// once. Otherwise the current collection is cleared and the records
// are appended one at a time, emitting count+1 change events.
//
// Rebuild returns the time taken by construction and installation.
// On error the session is unchanged, except that a failing collection
// observer may leave a non-batch rebuild partially installed.
func (s *Session) Rebuild(count int, batch bool, mode builder.Mode) (time.Duration, error) {
	start := s.now()
	list, err := builder.Build(count, mode, s.buildOpts...)
	if err != nil {
		return 0, fmt.Errorf("rebuild: %w", err)
	}

	if batch {
		s.items = observable.New(list...)
		for _, r := range s.replaced {
			r.fn(s.items)
		}
	} else {
		if err := s.items.Clear(); err != nil {
			return 0, fmt.Errorf("rebuild: %w", err)
		}
		for _, r := range list {
			if err := s.items.Append(r); err != nil {
				return 0, fmt.Errorf("rebuild: %w", err)
			}
		}
	}

	s.lastLoad = s.now().Sub(start)
	return s.lastLoad, nil
}

// MutateScores changes the scores of the first min(count, Len)
// records. Each gets (score + d) mod 100 for a d in [1, 100) drawn
// from a generator seeded with seed, so the same seed over the same
// collection always produces the same scores.
//
// Every change notifies the record's observers. The first observer
// error stops the mutation.
func (s *Session) MutateScores(count int, seed int64) error {
	if count < 0 {
		return fmt.Errorf("mutate %d scores: %w", count, ErrNegativeCount)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	n := min(count, s.items.Len())
	for i := 0; i < n; i++ {
		r := s.items.At(i)
		d := 1 + rng.IntN(builder.MaxScore-1)
		if err := r.SetScore(wrapScore(r.Score() + d)); err != nil {
			return fmt.Errorf("mutate scores: %w", err)
		}
	}
	return nil
}

// wrapScore maps n into [0, builder.MaxScore).
func wrapScore(n int) int {
	n %= builder.MaxScore
	if n < 0 {
		n += builder.MaxScore
	}
	return n
}

// Scores returns the scores of c's records in order.
func Scores(c *observable.Collection) []int {
	out := make([]int, c.Len())
	for i := range out {
		out[i] = c.At(i).Score()
	}
	return out
}

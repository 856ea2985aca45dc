// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/observable"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/view"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func snapshot(c *observable.Collection) []string {
	var out []string
	for _, r := range c.Items() {
		out = append(out, r.String())
	}
	return out
}

func TestRebuildBatchMatchesIncremental(t *testing.T) {
	for _, n := range []int{0, 1, 250} {
		a, b := New(), New()
		if _, err := a.Rebuild(n, true, builder.Sequential); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Rebuild(n, false, builder.Sequential); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(snapshot(a.Items()), snapshot(b.Items())); diff != "" {
			t.Errorf("n=%d: batch and incremental differ (-batch +incremental):\n%s", n, diff)
		}
		if a.Items().Len() != n {
			t.Errorf("n=%d: got %d records", n, a.Items().Len())
		}
	}
}

func TestRebuildEvents(t *testing.T) {
	s := New()
	c := s.Items()
	events := 0
	c.Subscribe(func(observable.Change) error {
		events++
		return nil
	})
	replaced := 0
	s.OnItemsReplaced(func(*observable.Collection) { replaced++ })

	const n = 40
	if _, err := s.Rebuild(n, false, builder.ParallelIndexedArray); err != nil {
		t.Fatal(err)
	}
	if events != n+1 || replaced != 0 {
		t.Errorf("incremental rebuild: %d change events, %d replacements; want %d, 0", events, replaced, n+1)
	}
	if s.Items() != c {
		t.Errorf("incremental rebuild replaced the collection")
	}

	events = 0
	if _, err := s.Rebuild(n, true, builder.ParallelLockedList); err != nil {
		t.Fatal(err)
	}
	if events != 0 || replaced != 1 {
		t.Errorf("batch rebuild: %d change events, %d replacements; want 0, 1", events, replaced)
	}
	if s.Items() == c {
		t.Errorf("batch rebuild kept the collection")
	}
}

func TestRebuildNegative(t *testing.T) {
	s := New()
	if _, err := s.Rebuild(3, true, builder.Sequential); err != nil {
		t.Fatal(err)
	}
	before, load := s.Items(), s.LastLoad()
	want := snapshot(before)
	replaced := false
	s.OnItemsReplaced(func(*observable.Collection) { replaced = true })

	for _, batch := range []bool{true, false} {
		_, err := s.Rebuild(-1, batch, builder.Sequential)
		if !errors.Is(err, builder.ErrNegativeCount) {
			t.Errorf("batch=%v: got %v, want ErrNegativeCount", batch, err)
		}
	}
	if s.Items() != before || replaced || s.LastLoad() != load {
		t.Errorf("failed rebuild changed the session")
	}
	if diff := cmp.Diff(want, snapshot(s.Items())); diff != "" {
		t.Errorf("failed rebuild changed the records (-want +got):\n%s", diff)
	}
}

func TestRebuildUnknownMode(t *testing.T) {
	s := New()
	if _, err := s.Rebuild(1, true, builder.Mode(99)); !errors.Is(err, builder.ErrUnknownMode) {
		t.Errorf("got %v, want ErrUnknownMode", err)
	}
}

func TestLastLoad(t *testing.T) {
	s := New(WithClock(fakeClock(3 * time.Millisecond)))
	d, err := s.Rebuild(10, true, builder.Sequential)
	if err != nil {
		t.Fatal(err)
	}
	if d != 3*time.Millisecond || s.LastLoad() != d {
		t.Errorf("Rebuild = %v, LastLoad = %v, want 3ms", d, s.LastLoad())
	}
}

func TestBuildOptions(t *testing.T) {
	s := New(WithBuildOptions(builder.WithSeed(7)))
	if _, err := s.Rebuild(20, true, builder.Sequential); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(builder.SequentialScores(20, 7), Scores(s.Items())); diff != "" {
		t.Errorf("scores (-want +got):\n%s", diff)
	}
}

func TestOnItemsReplacedCancel(t *testing.T) {
	s := New()
	var order []int
	cancel := s.OnItemsReplaced(func(*observable.Collection) { order = append(order, 1) })
	s.OnItemsReplaced(func(*observable.Collection) { order = append(order, 2) })
	s.Rebuild(1, true, builder.Sequential)
	cancel()
	s.Rebuild(1, true, builder.Sequential)
	if diff := cmp.Diff([]int{1, 2, 2}, order); diff != "" {
		t.Errorf("call order (-want +got):\n%s", diff)
	}
}

func TestMutateScores(t *testing.T) {
	run := func(seed int64) []int {
		s := New()
		if _, err := s.Rebuild(100, true, builder.Sequential); err != nil {
			t.Fatal(err)
		}
		if err := s.MutateScores(60, seed); err != nil {
			t.Fatal(err)
		}
		return Scores(s.Items())
	}
	orig := builder.SequentialScores(100, builder.SequentialSeed)
	a, b := run(42), run(42)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different scores (-first +second):\n%s", diff)
	}
	for i, s := range a {
		if s < 0 || s >= builder.MaxScore {
			t.Errorf("score %d = %d out of range", i, s)
		}
		if i < 60 && s == orig[i] {
			t.Errorf("score %d unchanged at %d", i, s)
		}
		if i >= 60 && s != orig[i] {
			t.Errorf("score %d changed beyond count: %d -> %d", i, orig[i], s)
		}
	}
}

func TestMutateScoresBounds(t *testing.T) {
	s := New()
	s.Rebuild(5, true, builder.Sequential)
	if err := s.MutateScores(1000, 1); err != nil {
		t.Errorf("count beyond length: %v", err)
	}
	if err := s.MutateScores(-1, 1); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("got %v, want ErrNegativeCount", err)
	}
	if err := New().MutateScores(10, 1); err != nil {
		t.Errorf("empty session: %v", err)
	}
}

func TestWrapScore(t *testing.T) {
	for _, tt := range []struct{ in, want int }{
		{0, 0}, {99, 99}, {100, 0}, {198, 98}, {-1, 99}, {-100, 0},
	} {
		if got := wrapScore(tt.in); got != tt.want {
			t.Errorf("wrapScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMutateObserverError(t *testing.T) {
	s := New()
	s.Rebuild(3, true, builder.Sequential)
	boom := errors.New("boom")
	s.Items().At(1).Subscribe(record.FieldScore, func(*record.Record, record.Field) error {
		return boom
	})
	orig := Scores(s.Items())
	err := s.MutateScores(3, 9)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	got := Scores(s.Items())
	if got[0] == orig[0] || got[1] == orig[1] || got[2] != orig[2] {
		t.Errorf("scores %v -> %v: want first two changed, third untouched", orig, got)
	}
}

// TestViewFollowsSession drives a View the way the command does:
// rebound on batch rebuilds, fed incrementally otherwise.
func TestViewFollowsSession(t *testing.T) {
	s := New()
	v := view.New(s.Items())
	s.OnItemsReplaced(func(c *observable.Collection) { v.SetSource(c) })
	settings := view.Settings{FilterScore: true, SortScoreDesc: true, Live: true}
	settings.Apply(v)

	check := func(what string) {
		t.Helper()
		fresh := view.New(s.Items())
		settings.Apply(fresh)
		defer fresh.Close()
		if diff := cmp.Diff(snapshot(observable.New(fresh.Items()...)), snapshot(observable.New(v.Items()...))); diff != "" {
			t.Errorf("%s: view differs from a fresh one (-fresh +got):\n%s", what, diff)
		}
	}
	for _, batch := range []bool{true, false} {
		if _, err := s.Rebuild(200, batch, builder.Sequential); err != nil {
			t.Fatal(err)
		}
		check("rebuild")
		if err := s.MutateScores(50, 3); err != nil {
			t.Fatal(err)
		}
		check("mutate")
	}
}

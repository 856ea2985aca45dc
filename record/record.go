// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record defines the unit entity shown in a grid: a row with
// an identity, a display name, a fluctuating score, and a category
// derived from the score.
//
// A Record publishes a change notification for every field it
// mutates. Observers subscribe per field and are called synchronously,
// in subscription order, before the setter returns. This is what the
// view package relies on for live shaping.
//
// Records are not safe for concurrent use. Builders create records on
// worker goroutines, but each record is only touched by the goroutine
// that created it until the build completes.
package record

import "fmt"

// A Record is a single mutable row.
type Record struct {
	id    int
	name  string
	score int

	// obs maps each field to its subscribers. It is nil until the
	// first Subscribe, which keeps freshly built records small.
	obs    map[Field][]subscription
	nextID int
}

// An Observer is called after field f of r changed.
//
// A non-nil error stops delivery to the remaining observers of this
// change and is returned by the setter. The field keeps its new value.
type Observer func(r *Record, f Field) error

type subscription struct {
	id int
	fn Observer
}

// New returns a record with the given fields. No notifications are
// emitted.
func New(id int, name string, score int) *Record {
	return &Record{id: id, name: name, score: score}
}

// ID returns r's identity.
func (r *Record) ID() int { return r.id }

// Name returns r's display name.
func (r *Record) Name() string { return r.name }

// Score returns r's score.
func (r *Record) Score() int { return r.score }

// Category returns the group key derived from r's score, score/10.
// It cannot be set directly.
func (r *Record) Category() int { return r.score / 10 }

// SetID sets r's identity and notifies FieldID if it changed.
func (r *Record) SetID(id int) error {
	if r.id == id {
		return nil
	}
	r.id = id
	return r.notify(FieldID)
}

// SetName sets r's name and notifies FieldName if it changed.
func (r *Record) SetName(name string) error {
	if r.name == name {
		return nil
	}
	r.name = name
	return r.notify(FieldName)
}

// SetScore sets r's score. If the score changed, it notifies
// FieldScore and then FieldCategory. FieldCategory is notified even if
// the category is numerically unchanged, as a grid binding would
// re-read it anyway.
//
// The score is not range checked.
func (r *Record) SetScore(score int) error {
	if r.score == score {
		return nil
	}
	r.score = score
	if err := r.notify(FieldScore); err != nil {
		return err
	}
	return r.notify(FieldCategory)
}

// Subscribe registers fn to be called whenever field f of r changes.
// It returns a function that removes the subscription; calling it more
// than once is harmless.
func (r *Record) Subscribe(f Field, fn Observer) (cancel func()) {
	if r.obs == nil {
		r.obs = make(map[Field][]subscription)
	}
	id := r.nextID
	r.nextID++
	r.obs[f] = append(r.obs[f], subscription{id, fn})
	return func() { r.unsubscribe(f, id) }
}

func (r *Record) unsubscribe(f Field, id int) {
	subs := r.obs[f]
	for i, s := range subs {
		if s.id == id {
			// Don't reuse the backing array: notify may be
			// iterating over it.
			n := make([]subscription, 0, len(subs)-1)
			n = append(n, subs[:i]...)
			n = append(n, subs[i+1:]...)
			if len(n) == 0 {
				delete(r.obs, f)
			} else {
				r.obs[f] = n
			}
			return
		}
	}
}

// Observed reports whether f has any subscribers.
func (r *Record) Observed(f Field) bool {
	return len(r.obs[f]) > 0
}

func (r *Record) notify(f Field) error {
	for _, s := range r.obs[f] {
		if err := s.fn(r, f); err != nil {
			return fmt.Errorf("record %d: %s observer: %w", r.id, f, err)
		}
	}
	return nil
}

// String returns a short description of r for debugging.
func (r *Record) String() string {
	return fmt.Sprintf("{%d %q score=%d}", r.id, r.name, r.score)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package observable provides an ordered collection of records that
// reports every structural change to its observers.
//
// Every mutating method notifies all observers synchronously before it
// returns. Bulk replacement through ReplaceAll or Clear reports a
// single Reset instead of one change per element, which is the cheap
// path for large updates.
//
// Observer errors are fail-fast: the mutation is kept, delivery stops
// at the first observer that returns an error, and that error is
// returned to the caller of the mutating method.
//
// A Collection is not safe for concurrent use.
package observable

import (
	"errors"
	"fmt"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/record"
)

var (
	// ErrIndex is returned for an index outside the collection.
	ErrIndex = errors.New("index out of range")

	// ErrNilRecord is returned when a nil record is added.
	ErrNilRecord = errors.New("nil record")
)

// A Collection is an ordered, observable sequence of records.
type Collection struct {
	items []*record.Record

	observers []observer
	nextID    int
}

// An Observer is called after every structural change.
type Observer func(c Change) error

type observer struct {
	id int
	fn Observer
}

// New returns a collection that takes ownership of items. It emits no
// notifications.
func New(items ...*record.Record) *Collection {
	return &Collection{items: items}
}

// Len returns the number of records in c.
func (c *Collection) Len() int { return len(c.items) }

// At returns the record at index i. It panics if i is out of range,
// like a slice index.
func (c *Collection) At(i int) *record.Record { return c.items[i] }

// Items returns a copy of the records in c, in order.
func (c *Collection) Items() []*record.Record {
	return append([]*record.Record(nil), c.items...)
}

// Subscribe registers fn to observe c. The returned function removes
// the subscription.
func (c *Collection) Subscribe(fn Observer) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, observer{id, fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				n := make([]observer, 0, len(c.observers)-1)
				n = append(n, c.observers[:i]...)
				c.observers = append(n, c.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers returns the number of registered observers.
func (c *Collection) Observers() int { return len(c.observers) }

func (c *Collection) notify(ch Change) error {
	for _, o := range c.observers {
		if err := o.fn(ch); err != nil {
			return fmt.Errorf("%v: %w", ch.Action, err)
		}
	}
	return nil
}

func (c *Collection) checkIndex(op string, i, limit int) error {
	if i < 0 || i >= limit {
		return fmt.Errorf("%s at %d (len %d): %w", op, i, len(c.items), ErrIndex)
	}
	return nil
}

// Insert inserts r at index i, 0 <= i <= Len, and reports an Add.
func (c *Collection) Insert(i int, r *record.Record) error {
	if err := c.checkIndex("insert", i, len(c.items)+1); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("insert at %d: %w", i, ErrNilRecord)
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = r
	return c.notify(Change{Action: Add, Index: i, New: []*record.Record{r}})
}

// Append adds r at the end of c and reports an Add.
func (c *Collection) Append(r *record.Record) error {
	return c.Insert(len(c.items), r)
}

// RemoveAt removes the record at index i and reports a Remove.
func (c *Collection) RemoveAt(i int) error {
	if err := c.checkIndex("remove", i, len(c.items)); err != nil {
		return err
	}
	old := c.items[i]
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
	return c.notify(Change{Action: Remove, Index: i, Old: []*record.Record{old}})
}

// Set replaces the record at index i with r and reports a Replace.
func (c *Collection) Set(i int, r *record.Record) error {
	if err := c.checkIndex("set", i, len(c.items)); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("set at %d: %w", i, ErrNilRecord)
	}
	old := c.items[i]
	c.items[i] = r
	return c.notify(Change{Action: Replace, Index: i, Old: []*record.Record{old}, New: []*record.Record{r}})
}

// Clear removes every record and reports a Reset.
func (c *Collection) Clear() error {
	clear(c.items)
	c.items = c.items[:0]
	return c.notify(Change{Action: Reset, Index: -1})
}

// ReplaceAll replaces the contents of c with items, taking ownership
// of the slice, and reports a single Reset.
func (c *Collection) ReplaceAll(items []*record.Record) error {
	for i, r := range items {
		if r == nil {
			return fmt.Errorf("replace all: item %d: %w", i, ErrNilRecord)
		}
	}
	c.items = items
	return c.notify(Change{Action: Reset, Index: -1})
}

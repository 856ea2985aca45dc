// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder logs every notification it sees.
type recorder struct {
	got []string
}

func (rec *recorder) watch(r *Record, fields ...Field) {
	for _, f := range fields {
		r.Subscribe(f, func(r *Record, f Field) error {
			rec.got = append(rec.got, f.String())
			return nil
		})
	}
}

func TestSetScore(t *testing.T) {
	r := New(1, "Item 1", 42)
	var rec recorder
	rec.watch(r, Fields()...)

	if err := r.SetScore(42); err != nil {
		t.Fatal(err)
	}
	if len(rec.got) != 0 {
		t.Errorf("setting the same score notified %v", rec.got)
	}

	if err := r.SetScore(57); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Score", "Category"}, rec.got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if r.Category() != 5 {
		t.Errorf("Category() = %d, want 5", r.Category())
	}

	// Category is notified even when score/10 doesn't change.
	rec.got = nil
	r.SetScore(58)
	if diff := cmp.Diff([]string{"Score", "Category"}, rec.got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
}

func TestSetIDAndName(t *testing.T) {
	r := New(1, "a", 0)
	var rec recorder
	rec.watch(r, Fields()...)

	r.SetID(1)
	r.SetName("a")
	r.SetID(2)
	r.SetName("b")
	if diff := cmp.Diff([]string{"Id", "Name"}, rec.got); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if r.ID() != 2 || r.Name() != "b" {
		t.Errorf("got %v", r)
	}
}

func TestCategoryRange(t *testing.T) {
	for score := 0; score < 100; score++ {
		r := New(0, "", score)
		if c := r.Category(); c < 0 || c > 9 || c != score/10 {
			t.Errorf("score %d: Category() = %d", score, c)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	r := New(0, "", 0)
	n := 0
	cancel := r.Subscribe(FieldScore, func(*Record, Field) error {
		n++
		return nil
	})
	r.SetScore(1)
	cancel()
	cancel()
	r.SetScore(2)
	if n != 1 {
		t.Errorf("observer called %d times, want 1", n)
	}
	if r.Observed(FieldScore) {
		t.Errorf("FieldScore still observed after cancel")
	}
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	r := New(0, "", 0)
	var calls []int
	var cancel1 func()
	cancel1 = r.Subscribe(FieldScore, func(*Record, Field) error {
		calls = append(calls, 1)
		cancel1()
		return nil
	})
	r.Subscribe(FieldScore, func(*Record, Field) error {
		calls = append(calls, 2)
		return nil
	})
	r.SetScore(1)
	r.SetScore(2)
	if diff := cmp.Diff([]int{1, 2, 2}, calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestObserverError(t *testing.T) {
	errBoom := errors.New("boom")
	r := New(7, "", 0)
	var later bool
	r.Subscribe(FieldScore, func(*Record, Field) error { return errBoom })
	r.Subscribe(FieldScore, func(*Record, Field) error {
		later = true
		return nil
	})
	var category bool
	r.Subscribe(FieldCategory, func(*Record, Field) error {
		category = true
		return nil
	})

	err := r.SetScore(30)
	if !errors.Is(err, errBoom) {
		t.Fatalf("SetScore error = %v, want %v", err, errBoom)
	}
	if r.Score() != 30 {
		t.Errorf("score rolled back to %d", r.Score())
	}
	if later || category {
		t.Errorf("delivery continued after error (later=%v, category=%v)", later, category)
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, err)
		}
	}
	if got, err := ParseField("score"); err != nil || got != FieldScore {
		t.Errorf("ParseField(score) = %v, %v", got, err)
	}
	if _, err := ParseField("bogus"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(bogus) error = %v", err)
	}
}

func TestValueCompare(t *testing.T) {
	tests := []struct {
		a, b Value
		want int
	}{
		{Int(1), Int(2), -1},
		{Int(2), Int(2), 0},
		{Int(3), Int(2), 1},
		{Text("a"), Text("b"), -1},
		{Int(100), Text("0"), -1},
		{Text("0"), Int(100), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFieldValue(t *testing.T) {
	r := New(3, "Item 3", 47)
	want := map[Field]Value{
		FieldID:       Int(3),
		FieldName:     Text("Item 3"),
		FieldScore:    Int(47),
		FieldCategory: Int(4),
	}
	for f, v := range want {
		if got := f.Value(r); got != v {
			t.Errorf("%v.Value = %v, want %v", f, got, v)
		}
	}
}

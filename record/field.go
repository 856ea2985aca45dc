// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Field names one property of a Record.
type Field int

const (
	FieldID Field = iota
	FieldName
	FieldScore
	FieldCategory

	numFields
)

var fieldNames = [...]string{
	FieldID:       "Id",
	FieldName:     "Name",
	FieldScore:    "Score",
	FieldCategory: "Category",
}

// ErrUnknownField is returned by ParseField for unrecognized names.
var ErrUnknownField = errors.New("unknown field")

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Fields returns all fields in declaration order.
func Fields() []Field {
	return []Field{FieldID, FieldName, FieldScore, FieldCategory}
}

// ParseField returns the field with the given name. Matching is case
// insensitive, so "score" and "Score" both name FieldScore.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownField, name)
}

// Value returns field f of r as a Value.
func (f Field) Value(r *Record) Value {
	switch f {
	case FieldID:
		return Int(r.id)
	case FieldName:
		return Text(r.name)
	case FieldScore:
		return Int(r.score)
	case FieldCategory:
		return Int(r.Category())
	}
	panic(fmt.Sprintf("bad Field %d", f))
}

// A Value is a field value: either an integer or a string.
// Values are comparable and may be used as map keys.
type Value struct {
	isText bool
	n      int
	s      string
}

// Int returns an integer Value.
func Int(n int) Value { return Value{n: n} }

// Text returns a string Value.
func Text(s string) Value { return Value{isText: true, s: s} }

// IsText reports whether v holds a string.
func (v Value) IsText() bool { return v.isText }

// Int returns v's integer, or 0 for a text Value.
func (v Value) Int() int { return v.n }

// Compare returns -1, 0, or +1 depending on whether v sorts before,
// the same as, or after o. Integers sort before strings.
func (v Value) Compare(o Value) int {
	if v.isText != o.isText {
		if !v.isText {
			return -1
		}
		return 1
	}
	if v.isText {
		return strings.Compare(v.s, o.s)
	}
	switch {
	case v.n < o.n:
		return -1
	case v.n > o.n:
		return 1
	}
	return 0
}

func (v Value) String() string {
	if v.isText {
		return v.s
	}
	return strconv.Itoa(v.n)
}

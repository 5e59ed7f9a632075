// Copyright 2026 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value describes how JSON Plus sees an arbitrary Go value: its
// semantic type tag, its shape (primitive, sequence or record), its own
// fields, and the key that identifies it within a single serialization.
//
// The functions in this package are the defaults for the collaborators that
// the graph package consumes. Callers may replace any of them.
package value

// undefined is the type of Undefined.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the absence-value. It is distinct from nil, which is the
// null-value, and survives a round trip as itself.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Kind is the structural shape of a value.
type Kind int

const (
	// Primitive values are stored in the object pool and never descended.
	Primitive Kind = iota

	// Sequence values are descended element by element and rendered as a
	// list in the skeleton.
	Sequence

	// Record values are descended field by field and rendered as a
	// field-keyed object in the skeleton.
	Record
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Sequence:
		return "sequence"
	case Record:
		return "record"
	}
	return "unknown"
}

// A Field is one own field or element of a composite value. Name is empty
// for sequence elements.
type Field struct {
	Name  string
	Value any
}

// Classifier maps a value to its semantic type tag. It must be a pure
// function of the value's runtime shape. An empty tag means the value
// could not be classified.
type Classifier func(v any) string

// FieldsFunc reports the shape of v and, for composites, its own fields in
// a deterministic order.
type FieldsFunc func(v any) (Kind, []Field)

// Well-known tags produced by Classify.
const (
	TagNull      = "null"
	TagUndefined = "undefined"
	TagBoolean   = "boolean"
	TagNumber    = "number"
	TagString    = "string"
	TagBytes     = "bytes"
	TagArray     = "array"
	TagObject    = "object"
)

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

package graph

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field names of the envelope on the wire.
const (
	MarkerField    = "marker"
	TypesField     = "types"
	ObjectsField   = "objects"
	StructureField = "structure"

	// legacyMarkerField is the marker name used by older writers. It is
	// accepted when reading.
	legacyMarkerField = "is_json_plus"
)

// An Envelope is the flat form of a value graph.
//
// Types and Objects are the pool. They are indexed by the order in which
// distinct values were first met. Objects holds the raw value of primitive
// entries and nil for composites, whose fields live in Structure instead.
//
// Structure mirrors the flattened graph. Each node is either an index into
// the pool or, at the first occurrence of a composite, a []any or
// map[string]any whose elements are themselves nodes.
type Envelope struct {
	Types     []string
	Objects   []any
	Structure any
}

// Len reports the number of distinct values in the pool.
func (e *Envelope) Len() int { return len(e.Types) }

// Tree returns the description tree of the envelope, ready to be handed to
// a text codec. An empty tag is written as null.
func (e *Envelope) Tree() map[string]any {
	types := make([]any, len(e.Types))
	for i, t := range e.Types {
		if t != "" {
			types[i] = t
		}
	}
	objects := e.Objects
	if objects == nil {
		objects = []any{}
	}
	return map[string]any{
		MarkerField:    true,
		TypesField:     types,
		ObjectsField:   objects,
		StructureField: e.Structure,
	}
}

// FromTree validates a decoded description tree and returns the envelope
// it holds. It fails with a *FormatError if tree is not a record carrying a
// truthy marker, types and objects sequences of equal length, and a
// structure.
//
// The returned envelope shares its Objects and Structure with tree.
func FromTree(tree any) (*Envelope, error) {
	m, ok := tree.(map[string]any)
	if !ok {
		return nil, formatErrorf("payload is %s, not a record", describe(tree))
	}
	if !truthy(m[MarkerField]) && !truthy(m[legacyMarkerField]) {
		return nil, formatErrorf("missing %q marker", MarkerField)
	}
	types, ok := m[TypesField].([]any)
	if !ok {
		return nil, formatErrorf("%q is %s, not a sequence", TypesField, describe(m[TypesField]))
	}
	objects, ok := m[ObjectsField].([]any)
	if !ok {
		return nil, formatErrorf("%q is %s, not a sequence", ObjectsField, describe(m[ObjectsField]))
	}
	structure, ok := m[StructureField]
	if !ok {
		return nil, formatErrorf("missing %q", StructureField)
	}

	env := &Envelope{
		Types:     make([]string, len(types)),
		Objects:   objects,
		Structure: structure,
	}
	for i, t := range types {
		switch t := t.(type) {
		case nil:
		case string:
			env.Types[i] = t
		default:
			return nil, formatErrorf("%s[%d] is %s, not a string", TypesField, i, describe(t))
		}
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Envelope) validate() error {
	if len(e.Types) != len(e.Objects) {
		return formatErrorf("%d types but %d objects", len(e.Types), len(e.Objects))
	}
	return nil
}

// truthy reports whether v is a true marker: anything but null, false, zero,
// NaN and the empty string.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	}
	return true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "a record"
	case []any:
		return "a sequence"
	}
	return fmt.Sprintf("%T", v)
}

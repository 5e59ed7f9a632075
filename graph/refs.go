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
	"sort"

	"jsonplus.org/go/value"
)

// A Ref describes how the skeleton uses one pool entry.
type Ref struct {
	// Kind is the shape of the entry: Sequence or Record for a composite
	// written out in the skeleton, and Primitive otherwise.
	Kind value.Kind

	// Count is the number of skeleton nodes that refer to the entry. The
	// first occurrence of a composite counts as a reference.
	Count int
}

// Refs reports how the skeleton uses each pool entry. An entry with more
// than one reference is shared.
//
// Refs does not modify e. It fails with a *StructureError where Rehydrate
// would.
func (e *Envelope) Refs() ([]Ref, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	c := &counter{n: len(e.Types), refs: make([]Ref, len(e.Types))}
	if err := c.node(e.Structure); err != nil {
		return nil, err
	}
	if c.next != c.n {
		return nil, structureErrorf(nil, "only %d of %d pool entries are referenced", c.next, c.n)
	}
	return c.refs, nil
}

type counter struct {
	n    int
	next int
	refs []Ref
	path []any
}

func (c *counter) node(n any) error {
	switch x := n.(type) {
	case []any:
		if err := c.composite(value.Sequence); err != nil {
			return err
		}
		for j, e := range x {
			c.path = append(c.path, j)
			if err := c.node(e); err != nil {
				return err
			}
			c.path = c.path[:len(c.path)-1]
		}
		return nil

	case map[string]any:
		if err := c.composite(value.Record); err != nil {
			return err
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c.path = append(c.path, k)
			if err := c.node(x[k]); err != nil {
				return err
			}
			c.path = c.path[:len(c.path)-1]
		}
		return nil
	}

	i, ok := index(n)
	switch {
	case !ok:
		return structureErrorf(c.path, "%s is not an index", describe(n))
	case i < 0 || i >= c.n:
		return structureErrorf(c.path, "index %d out of range [0, %d)", i, c.n)
	case i > c.next:
		return structureErrorf(c.path, "index %d refers ahead of next index %d", i, c.next)
	case i == c.next:
		c.next++
	}
	c.refs[i].Count++
	return nil
}

func (c *counter) composite(k value.Kind) error {
	if c.next >= c.n {
		return structureErrorf(c.path, "composite exceeds the %d pool entries", c.n)
	}
	c.refs[c.next] = Ref{Kind: k, Count: 1}
	c.next++
	return nil
}

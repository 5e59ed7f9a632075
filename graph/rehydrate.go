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
	"sort"
	"strconv"
	"strings"

	"jsonplus.org/go/filter"
	"jsonplus.org/go/value"
)

// Rehydrate rebuilds the value graph held by env, applying filters to each
// distinct value on the way.
//
// Composite nodes of env.Structure are filled in place and become part of
// the result, so env must not be used again afterwards.
//
// The skeleton does not record the index of a composite node. Rehydrate
// recovers it by replaying the allocation order of Flatten: sequence
// elements in order and record fields sorted by name. An index leaf equal
// to the next index to allocate is the first occurrence of a primitive, and
// a smaller one refers back to a value already rebuilt.
//
// The filter for a composite runs once its fields have been filled, and
// its result is what later references to the same index resolve to.
// References met while the composite was still being filled, that is
// those forming a cycle through it, see the unfiltered value.
func Rehydrate(env *Envelope, filters filter.Map) (any, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	r := &rehydrator{
		env:      env,
		filters:  filters,
		resolved: make([]any, len(env.Types)),
	}
	v, err := r.node(env.Structure)
	if err != nil {
		return nil, err
	}
	if r.next != len(env.Types) {
		return nil, r.errorf("only %d of %d pool entries are referenced", r.next, len(env.Types))
	}
	return v, nil
}

type rehydrator struct {
	env     *Envelope
	filters filter.Map

	// resolved holds the rebuilt value of each index below next.
	resolved []any
	next     int

	// path holds the field names and element indices leading to the
	// current node.
	path []any
}

func (r *rehydrator) node(n any) (any, error) {
	switch x := n.(type) {
	case []any:
		i, err := r.alloc()
		if err != nil {
			return nil, err
		}
		r.resolved[i] = x
		for j, e := range x {
			r.path = append(r.path, j)
			v, err := r.node(e)
			if err != nil {
				return nil, err
			}
			x[j] = v
			r.path = r.path[:len(r.path)-1]
		}
		return r.finish(i, x)

	case map[string]any:
		i, err := r.alloc()
		if err != nil {
			return nil, err
		}
		r.resolved[i] = x
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			r.path = append(r.path, k)
			v, err := r.node(x[k])
			if err != nil {
				return nil, err
			}
			x[k] = v
			r.path = r.path[:len(r.path)-1]
		}
		return r.finish(i, x)
	}

	i, ok := index(n)
	switch {
	case !ok:
		return nil, r.errorf("%s is not an index", describe(n))
	case i < 0 || i >= len(r.env.Types):
		return nil, r.errorf("index %d out of range [0, %d)", i, len(r.env.Types))
	case i < r.next:
		return r.resolved[i], nil
	case i > r.next:
		return nil, r.errorf("index %d refers ahead of next index %d", i, r.next)
	}
	r.next++

	raw := r.env.Objects[i]
	if r.env.Types[i] == value.TagUndefined {
		raw = value.Undefined
	}
	v, err := filter.Apply(raw, r.env.Types[i], r.filters)
	if err != nil {
		return nil, err
	}
	r.resolved[i] = v
	return v, nil
}

func (r *rehydrator) alloc() (int, error) {
	if r.next >= len(r.env.Types) {
		return 0, r.errorf("composite exceeds the %d pool entries", len(r.env.Types))
	}
	i := r.next
	r.next++
	return i, nil
}

func (r *rehydrator) finish(i int, shell any) (any, error) {
	v, err := filter.Apply(shell, r.env.Types[i], r.filters)
	if err != nil {
		return nil, err
	}
	r.resolved[i] = v
	return v, nil
}

func (r *rehydrator) errorf(format string, args ...any) error {
	return structureErrorf(r.path, format, args...)
}

// structureErrorf returns a *StructureError for the node at path.
func structureErrorf(path []any, format string, args ...any) error {
	var b strings.Builder
	b.WriteString(StructureField)
	for _, p := range path {
		switch p := p.(type) {
		case int:
			fmt.Fprintf(&b, "[%d]", p)
		case string:
			if isIdent(p) {
				b.WriteString(".")
				b.WriteString(p)
			} else {
				fmt.Fprintf(&b, "[%q]", p)
			}
		}
	}
	return &StructureError{
		Path:   b.String(),
		Reason: fmt.Sprintf(format, args...),
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// index converts a skeleton leaf into a pool index. Each text codec decodes
// numbers into its own set of Go types.
func index(n any) (int, bool) {
	switch x := n.(type) {
	case int:
		return x, true
	case int64:
		return clamp(x), true
	case uint64:
		if x > math.MaxInt32 {
			return math.MaxInt32, true
		}
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		switch {
		case x > math.MaxInt32:
			return math.MaxInt32, true
		case x < math.MinInt32:
			return math.MinInt32, true
		}
		return int(x), true
	case json.Number:
		i, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return clamp(i), true
	}
	return 0, false
}

// clamp converts i to an int without wrapping on 32-bit platforms. Clamped
// values are always out of range for a pool.
func clamp(i int64) int {
	switch {
	case i > math.MaxInt32:
		return math.MaxInt32
	case i < math.MinInt32:
		return math.MinInt32
	}
	return int(i)
}

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

// Package graph converts between value graphs and their flat envelope form.
//
// Flatten walks a graph depth first and gives every distinct value an index
// into the pool, in the order values are first met. A composite is rendered
// in place the first time it is met, and as its bare index every time after
// that. This is how shared references and cycles are encoded. Rehydrate
// walks the skeleton in the same order and rebuilds the graph, so that each
// index is restored to a single shared instance.
package graph

import (
	"jsonplus.org/go/filter"
	"jsonplus.org/go/value"
)

// Config holds the collaborators used to inspect values during Flatten.
// A nil *Config, or a nil field, selects the defaults from package value.
type Config struct {
	// Classify tags values for filter dispatch.
	Classify value.Classifier

	// Fields reports the shape and own fields of values.
	Fields value.FieldsFunc
}

func (c *Config) classifier() value.Classifier {
	if c == nil || c.Classify == nil {
		return value.Classify
	}
	return c.Classify
}

func (c *Config) fields() value.FieldsFunc {
	if c == nil || c.Fields == nil {
		return value.Fields
	}
	return c.Fields
}

// Flatten converts the graph rooted at root into an envelope, applying
// filters to each distinct value on the way. It fails only if a filter or a
// value's text marshaler fails.
func Flatten(root any, filters filter.Map, cfg *Config) (*Envelope, error) {
	f := &flattener{
		classify: cfg.classifier(),
		fields:   cfg.fields(),
		filters:  filters,
		seen:     map[any]int{},
	}
	s, err := f.visit(root)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Types:     f.types,
		Objects:   f.objects,
		Structure: s,
	}, nil
}

type flattener struct {
	classify value.Classifier
	fields   value.FieldsFunc
	filters  filter.Map

	// seen maps identities to their index. An identity is recorded before
	// its fields are visited, so that cycles resolve to it.
	seen    map[any]int
	types   []string
	objects []any
}

func (f *flattener) visit(v any) (any, error) {
	key, memo := value.Identity(v)
	if memo {
		if i, ok := f.seen[key]; ok {
			return i, nil
		}
	}

	i := len(f.types)
	if memo {
		f.seen[key] = i
	}
	tag := f.classify(v)
	f.types = append(f.types, tag)
	f.objects = append(f.objects, nil)

	v, err := filter.Apply(v, tag, f.filters)
	if err != nil {
		return nil, err
	}

	kind, fields := f.fields(v)
	switch kind {
	case value.Sequence:
		out := make([]any, len(fields))
		for j, x := range fields {
			if out[j], err = f.visit(x.Value); err != nil {
				return nil, err
			}
		}
		return out, nil

	case value.Record:
		fields = value.SortFields(fields)
		out := make(map[string]any, len(fields))
		for _, x := range fields {
			if out[x.Name], err = f.visit(x.Value); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	raw, err := value.Raw(v)
	if err != nil {
		return nil, err
	}
	f.objects[i] = raw
	return i, nil
}

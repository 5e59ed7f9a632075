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

// Package jsonplus serializes value graphs, including shared references
// and cycles, into self-describing envelopes and parses them back.
//
// An envelope is a record with four fields:
//
//	{
//		"marker":    true,
//		"types":     ["object", "number", "string"],
//		"objects":   [null, 1, "x"],
//		"structure": {"a": 1, "b": 2}
//	}
//
// Types and objects form the pool, with one entry for each distinct value
// in the graph. Structure mirrors the graph, with each value replaced by
// its index in the pool. A composite value is written out in full the first
// time it is met and as its bare index after that, so that Parse restores
// every occurrence to the same instance.
//
// Filters, keyed by the type tag of a value, transform values on the way
// out and on the way back in. See package filter for a stock set that
// restores time, decimal, uuid and bytes values.
package jsonplus

import (
	"fmt"

	"jsonplus.org/go/encoding"
	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/filter"
	"jsonplus.org/go/graph"
	"jsonplus.org/go/value"
)

// Config selects the collaborators used to serialize and parse. A nil
// *Config, or a nil field, selects the defaults: the JSON codec and the
// classifier and field enumerator from package value.
type Config struct {
	// Codec converts envelope trees to and from bytes.
	Codec encoding.Codec

	// Classify tags values for filter dispatch.
	Classify value.Classifier

	// Fields reports the shape and own fields of values.
	Fields value.FieldsFunc
}

func (c *Config) codec() encoding.Codec {
	if c == nil || c.Codec == nil {
		return &json.Codec{}
	}
	return c.Codec
}

func (c *Config) graphConfig() *graph.Config {
	if c == nil {
		return nil
	}
	return &graph.Config{Classify: c.Classify, Fields: c.Fields}
}

// Serialize returns the envelope of the graph rooted at v, applying
// filters to each distinct value first. It fails only if a filter, a text
// marshaler or the codec fails.
func (c *Config) Serialize(v any, filters filter.Map) ([]byte, error) {
	env, err := graph.Flatten(v, filters, c.graphConfig())
	if err != nil {
		return nil, err
	}
	codec := c.codec()
	b, err := codec.Encode(env.Tree())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", codec.Name(), err)
	}
	return b, nil
}

// Stringify is like Serialize but returns a string.
func (c *Config) Stringify(v any, filters filter.Map) (string, error) {
	b, err := c.Serialize(v, filters)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Parse decodes an envelope and rebuilds the graph it holds, applying
// filters to each distinct value. Records come back as map[string]any and
// sequences as []any, unless a filter turns them into something else.
//
// It fails with a *graph.FormatError if the data decodes to something other
// than an envelope, and with a *graph.StructureError if the skeleton of the
// envelope is malformed.
func (c *Config) Parse(data []byte, filters filter.Map) (any, error) {
	codec := c.codec()
	tree, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", codec.Name(), err)
	}
	env, err := graph.FromTree(tree)
	if err != nil {
		return nil, err
	}
	return graph.Rehydrate(env, filters)
}

// Serialize calls Config.Serialize with the default configuration.
func Serialize(v any, filters filter.Map) ([]byte, error) {
	return (*Config)(nil).Serialize(v, filters)
}

// Stringify calls Config.Stringify with the default configuration.
func Stringify(v any, filters filter.Map) (string, error) {
	return (*Config)(nil).Stringify(v, filters)
}

// Parse calls Config.Parse with the default configuration.
func Parse(data []byte, filters filter.Map) (any, error) {
	return (*Config)(nil).Parse(data, filters)
}

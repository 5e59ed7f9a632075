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

// Package yaml implements a YAML text codec.
package yaml

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec encodes envelope trees as YAML.
//
// Byte slices are written as base64 strings, as encoding/json does, so that
// the stock bytes filter restores them whichever codec was used. Numbers
// decode as int, uint64 or float64 depending on their form, and timestamps
// decode as strings.
type Codec struct{}

func (*Codec) Name() string { return "yaml" }

func (*Codec) Encode(tree any) ([]byte, error) {
	return yaml.Marshal(toYAML(tree))
}

func (*Codec) Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	untime(&doc)
	var v any
	if err := doc.Decode(&v); err != nil {
		return nil, err
	}
	return fromYAML(v), nil
}

// untime retags timestamp scalars as strings so that they decode as their
// source text rather than as time.Time.
func untime(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		n.Tag = "!!str"
	}
	for _, c := range n.Content {
		untime(c)
	}
}

// toYAML returns a copy of v with byte slices replaced by their base64
// text.
func toYAML(v any) any {
	switch x := v.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toYAML(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = toYAML(e)
		}
		return out
	}
	return v
}

// fromYAML rewrites mappings with non-string keys, which yaml.v3 decodes as
// map[any]any, into map[string]any.
func fromYAML(v any) any {
	switch x := v.(type) {
	case []any:
		for i, e := range x {
			x[i] = fromYAML(e)
		}
	case map[string]any:
		for k, e := range x {
			x[k] = fromYAML(e)
		}
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = fromYAML(e)
		}
		return m
	}
	return v
}

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

// Package encoding defines the text codecs that carry envelopes.
//
// A codec converts between bytes and the generic tree of an envelope:
// map[string]any records, []any sequences, and primitives. Each codec lives
// in its own subpackage. Lookup selects one by name.
package encoding

import (
	"fmt"
	"slices"
	"strings"

	"jsonplus.org/go/encoding/cbor"
	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/encoding/yaml"
)

// A Codec converts an envelope tree to and from its byte form.
type Codec interface {
	// Name returns the name under which the codec is registered.
	Name() string

	// Encode returns the byte form of tree.
	Encode(tree any) ([]byte, error)

	// Decode parses data into a generic tree.
	Decode(data []byte) (any, error)
}

// Binary reports whether c produces binary rather than text output. A
// codec is binary if it has a Binary method that returns true.
func Binary(c Codec) bool {
	b, ok := c.(interface{ Binary() bool })
	return ok && b.Binary()
}

var codecs = map[string]func() Codec{
	"json": func() Codec { return &json.Codec{} },
	"yaml": func() Codec { return &yaml.Codec{} },
	"cbor": func() Codec { return &cbor.Codec{} },
}

// Lookup returns a new codec with default options for the given name.
func Lookup(name string) (Codec, error) {
	mk, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q; available: %s", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names returns the names of the registered codecs in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

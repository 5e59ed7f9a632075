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

package yaml_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"jsonplus.org/go/encoding/yaml"
)

func TestEncode(t *testing.T) {
	c := &yaml.Codec{}
	got, err := c.Encode(map[string]any{
		"objects": []any{nil, []byte("hi")},
		"types":   []any{"array", "bytes"},
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), `objects:
    - null
    - aGk=
types:
    - array
    - bytes
`))
}

func TestDecode(t *testing.T) {
	c := &yaml.Codec{}
	v, err := c.Decode([]byte(`
list:
  - 1: one
    2: [x]
when: 2024-01-02T03:04:05Z
day: &d 2001-12-14
again: *d
`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, any(map[string]any{
		"list":  []any{map[string]any{"1": "one", "2": []any{"x"}}},
		"when":  "2024-01-02T03:04:05Z",
		"day":   "2001-12-14",
		"again": "2001-12-14",
	})))

	_, err = c.Decode([]byte("a: [1"))
	qt.Assert(t, qt.IsNotNil(err))
}

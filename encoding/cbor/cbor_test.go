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

package cbor_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"jsonplus.org/go/encoding/cbor"
)

func TestRoundTrip(t *testing.T) {
	c := &cbor.Codec{}
	tree := map[string]any{
		"objects":   []any{nil, []byte{0, 1}, "s", -2, 1.5},
		"structure": map[string]any{"b": 1, "a": []any{2, 3, 4}},
	}
	data, err := c.Encode(tree)
	qt.Assert(t, qt.IsNil(err))

	v, err := c.Decode(data)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, any(map[string]any{
		"objects":   []any{nil, []byte{0, 1}, "s", int64(-2), 1.5},
		"structure": map[string]any{"b": uint64(1), "a": []any{uint64(2), uint64(3), uint64(4)}},
	})))
}

func TestCanonical(t *testing.T) {
	c := &cbor.Codec{}
	a, err := c.Encode(map[string]any{"x": 1, "yy": 2, "z": 3})
	qt.Assert(t, qt.IsNil(err))
	for i := 0; i < 10; i++ {
		b, err := c.Encode(map[string]any{"z": 3, "x": 1, "yy": 2})
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.DeepEquals(b, a))
	}
	_, err = c.Decode([]byte{0xff})
	qt.Assert(t, qt.IsNotNil(err))
}

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

// Package cbor implements a binary codec based on CBOR (RFC 8949).
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("cbor: failed to create encoding mode: " + err.Error())
	}
	encMode = em

	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: failed to create decoding mode: " + err.Error())
	}
	decMode = dm
}

// Codec encodes envelope trees as canonical CBOR. Map keys are sorted, so
// equal trees always encode to the same bytes.
//
// Byte slices are carried as CBOR byte strings. Non-negative integers
// decode as uint64 and negative ones as int64.
type Codec struct{}

func (*Codec) Name() string { return "cbor" }

// Binary reports that the output of the codec is not text.
func (*Codec) Binary() bool { return true }

func (*Codec) Encode(tree any) ([]byte, error) {
	return encMode.Marshal(tree)
}

func (*Codec) Decode(data []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

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

package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Raw converts a primitive value into the form stored in the object pool,
// one that every text codec can represent.
//
// Named basic types are converted to bool, int64, uint64, float64 or
// string. Non-finite floats, complex numbers, funcs, channels and
// Undefined become nil, since no codec can represent them. Byte arrays become byte slices and text marshalers
// become their text. Anything else is returned unchanged.
func Raw(v any) (any, error) {
	if v == nil || IsUndefined(v) {
		return nil, nil
	}
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil, nil
	}
	if m, ok := textMarshaler(rv); ok {
		b, err := m.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%s: MarshalText: %w", rv.Type(), err)
		}
		return string(b), nil
	}
	if rv.Type() == jsonNumberType {
		n := json.Number(rv.String())
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return u, nil
		}
		if f, err := n.Float64(); err == nil {
			return finite(f), nil
		}
		return n.String(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float()), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Complex64, reflect.Complex128,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return b, nil
		}
	}
	return rv.Interface(), nil
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

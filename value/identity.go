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

import "reflect"

// refKey identifies a reference value by its dynamic type and address.
// The length distinguishes two slices over the same backing array.
type refKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// valKey identifies a primitive by its value.
type valKey struct {
	v any
}

// Identity returns the key under which v is deduplicated during one
// flatten call, and false if v must never be shared.
//
// Maps, non-empty slices, channels and pointers are identified by
// reference. Booleans, numbers, strings, nil and Undefined are identified by
// value. Struct and array values are copied by Go on assignment and so have
// no identity of their own, and neither do funcs. Empty slices, slices of
// zero-size elements and pointers to zero-size values are not identified
// either, as Go may give unrelated values the same address.
func Identity(v any) (key any, ok bool) {
	if v == nil || IsUndefined(v) {
		return valKey{v}, true
	}
	rv := reflect.ValueOf(v)
	t := rv.Type()
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return valKey{v}, true

	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return refKey{typ: t}, true
		}
		return refKey{typ: t, ptr: rv.Pointer()}, true

	case reflect.Slice:
		if rv.IsNil() {
			return refKey{typ: t}, true
		}
		if rv.Len() == 0 || t.Elem().Size() == 0 {
			return nil, false
		}
		return refKey{typ: t, ptr: rv.Pointer(), len: rv.Len()}, true

	case reflect.Pointer:
		if rv.IsNil() {
			return refKey{typ: t}, true
		}
		if t.Elem().Size() == 0 {
			return nil, false
		}
		return refKey{typ: t, ptr: rv.Pointer()}, true
	}
	return nil, false
}

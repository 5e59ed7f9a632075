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
	"reflect"
	"strings"
)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// Classify is the default Classifier.
//
// Booleans, null, Undefined, numbers and strings get the tags "boolean",
// "null", "undefined", "number" and "string", whatever their Go type.
// Pointers count as the boxed form of what they point to.
// Unnamed byte slices and arrays are "bytes", other unnamed slices and
// arrays are "array", and unnamed maps and anonymous structs are "object".
// Any other named type is tagged with its lower-cased type name, so a
// time.Time is "time" and a *apd.Decimal is "decimal". What remains,
// such as an unnamed func type, yields the empty tag.
func Classify(v any) string {
	if v == nil {
		return TagNull
	}
	if IsUndefined(v) {
		return TagUndefined
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return TagNull
		}
		rv = rv.Elem()
	}
	t := rv.Type()
	if t == jsonNumberType {
		return TagNumber
	}

	switch rv.Kind() {
	case reflect.Bool:
		return TagBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return TagNumber
	case reflect.String:
		return TagString
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return TagNull
		}
	}

	if name := typeName(t); name != "" {
		return name
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return TagBytes
		}
		return TagArray
	case reflect.Map, reflect.Struct:
		return TagObject
	}
	return ""
}

// typeName returns the lower-cased name of t with any type arguments
// removed, or "" if t is unnamed.
func typeName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

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
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Fields is the default FieldsFunc.
//
// Pointers and interfaces are followed. Values implementing
// [encoding.TextMarshaler] and byte slices and arrays are primitive. Other
// slices and arrays are sequences. Maps and structs are records: map keys
// are rendered as strings, and struct fields follow the naming rules of
// encoding/json: exported fields only, the name taken from the json tag if
// present, "-" skipped and untagged embedded structs inlined.
//
// Record fields are returned sorted by name with duplicates removed, as
// SortFields does.
func Fields(v any) (Kind, []Field) {
	if IsUndefined(v) {
		return Primitive, nil
	}
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return Primitive, nil
	}
	if _, ok := textMarshaler(rv); ok {
		return Primitive, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Primitive, nil
		}
		fields := make([]Field, rv.Len())
		for i := range fields {
			fields[i] = Field{Value: rv.Index(i).Interface()}
		}
		return Sequence, fields

	case reflect.Map:
		fields := make([]Field, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields = append(fields, Field{
				Name:  mapKey(iter.Key()),
				Value: iter.Value().Interface(),
			})
		}
		return Record, SortFields(fields)

	case reflect.Struct:
		var fields []depthField
		fields = structFields(fields, rv, 0)
		slices.SortStableFunc(fields, func(a, b depthField) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.depth, b.depth)
		})
		out := make([]Field, 0, len(fields))
		for i, f := range fields {
			if i > 0 && fields[i-1].Name == f.Name {
				continue
			}
			out = append(out, f.Field)
		}
		return Record, out
	}
	return Primitive, nil
}

// SortFields sorts record fields by name and drops all but the first of
// any fields sharing a name. The flattener and rehydrator both rely on this
// order to allocate the same indices.
func SortFields(fields []Field) []Field {
	slices.SortStableFunc(fields, func(a, b Field) int {
		return strings.Compare(a.Name, b.Name)
	})
	return slices.CompactFunc(fields, func(a, b Field) bool {
		return a.Name == b.Name
	})
}

type depthField struct {
	Field
	depth int
}

func structFields(fields []depthField, rv reflect.Value, depth int) []depthField {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() && (!f.Anonymous || f.Type.Kind() != reflect.Struct) {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if f.Anonymous && name == "" {
			if ev, ok := indirect(fv); ok && ev.Kind() == reflect.Struct {
				if _, text := textMarshaler(ev); !text {
					fields = structFields(fields, ev, depth+1)
					continue
				}
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields = append(fields, depthField{
			Field: Field{Name: name, Value: fv.Interface()},
			depth: depth,
		})
	}
	return fields
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if m, ok := textMarshaler(k); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(k.Interface())
}

// indirect follows pointers and interfaces. It reports false if it meets a
// nil or an invalid value on the way.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for {
		switch rv.Kind() {
		case reflect.Invalid:
			return rv, false
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice:
			return rv, !rv.IsNil()
		default:
			return rv, true
		}
	}
}

func textMarshaler(rv reflect.Value) (encoding.TextMarshaler, bool) {
	t := rv.Type()
	if t.Implements(textMarshalerType) && rv.CanInterface() {
		m, ok := rv.Interface().(encoding.TextMarshaler)
		return m, ok
	}
	if rv.CanAddr() && rv.CanInterface() && reflect.PointerTo(t).Implements(textMarshalerType) {
		m, ok := rv.Addr().Interface().(encoding.TextMarshaler)
		return m, ok
	}
	return nil, false
}

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

// Package filter implements the per-type transform hooks of JSON Plus.
//
// A filter is registered against a type tag (see [jsonplus.org/go/value.Classify])
// and is invoked once for each distinct value of that type, both when
// serializing and when parsing. The filters passed to a parse are expected
// to undo those passed to the matching serialize, but nothing checks this.
package filter

import (
	"fmt"
	"maps"
)

// A Func transforms a single value.
type Func func(v any) (any, error)

// A Map associates type tags with filters.
type Map map[string]Func

// Apply runs the filter registered for tag on v. If m is nil or has no
// filter for tag, v is returned unchanged. Errors returned by the filter
// are wrapped in an *Error.
func Apply(v any, tag string, m Map) (any, error) {
	f := m[tag]
	if f == nil {
		return v, nil
	}
	out, err := f(v)
	if err != nil {
		return nil, &Error{Tag: tag, Err: err}
	}
	return out, nil
}

// Merge combines filter maps into a new one. For tags present in more than
// one map, the last one wins.
func Merge(ms ...Map) Map {
	out := Map{}
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

// Error reports a failure of the filter registered for Tag.
type Error struct {
	Tag string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("filter %q: %v", e.Tag, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

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

package jsonplus_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"jsonplus.org/go/encoding"
	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/filter"
	"jsonplus.org/go/graph"
	"jsonplus.org/go/jsonplus"
	"jsonplus.org/go/value"
)

func TestSerialize(t *testing.T) {
	s, err := jsonplus.Stringify(map[string]any{"a": 1, "b": "x"}, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(s, `{"marker":true,"objects":[null,1,"x"],"structure":{"a":1,"b":2},"types":["object","number","string"]}`))

	v, err := jsonplus.Parse([]byte(s), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, any(map[string]any{"a": 1.0, "b": "x"})))
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		in   any
	}{
		{"null", nil},
		{"bool", true},
		{"string", "héllo <world>"},
		{"number", -12.5},
		{"empty record", map[string]any{}},
		{"empty sequence", []any{}},
		{"nested", map[string]any{
			"list":  []any{1.0, "two", []any{3.0, map[string]any{"four": 4.0}}},
			"flag":  false,
			"none":  nil,
			"quote": "it's \"quoted\"",
		}},
		{"repeated primitives", []any{"a", "a", 1.0, 1.0, true, true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := jsonplus.Serialize(tc.in, nil)
			qt.Assert(t, qt.IsNil(err))
			got, err := jsonplus.Parse(b, nil)
			qt.Assert(t, qt.IsNil(err))
			if diff := cmp.Diff(tc.in, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type person struct {
	Name    string    `json:"name"`
	Born    time.Time `json:"born"`
	ID      uuid.UUID `json:"id"`
	Balance *apd.Decimal
	Friends []*person `json:"friends,omitempty"`
	secret  string
}

func TestStockFilters(t *testing.T) {
	born := time.Date(1990, 5, 17, 8, 30, 0, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	alice := &person{Name: "alice", Born: born, ID: id, Balance: apd.New(12345, -2), secret: "x"}
	bob := &person{Name: "bob", Born: born, ID: id, Friends: []*person{alice}}
	alice.Friends = []*person{bob}

	b, err := jsonplus.Serialize(alice, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(strings.Contains(string(b), "secret")))

	v, err := jsonplus.Parse(b, filter.Stock())
	qt.Assert(t, qt.IsNil(err))
	a := v.(map[string]any)
	qt.Assert(t, qt.Equals(a["name"], any("alice")))
	qt.Assert(t, qt.Equals(a["born"].(time.Time).Equal(born), true))
	qt.Assert(t, qt.Equals(a["id"], any(id)))
	qt.Assert(t, qt.Equals(a["Balance"].(*apd.Decimal).String(), "123.45"))

	friend := a["friends"].([]any)[0].(map[string]any)
	qt.Assert(t, qt.Equals(friend["name"], any("bob")))
	qt.Assert(t, qt.IsNil(friend["Balance"]))
	qt.Assert(t, qt.Equals(friend["born"], a["born"]))
	back := friend["friends"].([]any)[0].(map[string]any)
	qt.Assert(t, qt.Equals(back["name"], any("alice")))
	back["name"] = "changed"
	qt.Assert(t, qt.Equals(a["name"], any("changed")))
}

func TestBytes(t *testing.T) {
	for _, name := range encoding.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := encoding.Lookup(name)
			qt.Assert(t, qt.IsNil(err))
			cfg := &jsonplus.Config{Codec: c}

			data := []byte{0, 1, 2, 255}
			b, err := cfg.Serialize(map[string]any{"data": data}, nil)
			qt.Assert(t, qt.IsNil(err))
			v, err := cfg.Parse(b, filter.Stock())
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.DeepEquals(v, any(map[string]any{"data": data})))
		})
	}
}

func TestUndefined(t *testing.T) {
	b, err := jsonplus.Serialize(map[string]any{"u": value.Undefined}, nil)
	qt.Assert(t, qt.IsNil(err))
	v, err := jsonplus.Parse(b, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(value.IsUndefined(v.(map[string]any)["u"])))
}

func TestFormatErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		err  string
	}{{
		name: "empty record",
		in:   `{}`,
		err:  `not a JSON Plus envelope: missing "marker" marker`,
	}, {
		name: "plain record",
		in:   `{"a":1,"b":"x"}`,
		err:  `not a JSON Plus envelope: missing "marker" marker`,
	}, {
		name: "false marker",
		in:   `{"marker":false,"types":[],"objects":[],"structure":0}`,
		err:  `not a JSON Plus envelope: missing "marker" marker`,
	}, {
		name: "zero marker",
		in:   `{"marker":0,"types":[],"objects":[],"structure":0}`,
		err:  `not a JSON Plus envelope: missing "marker" marker`,
	}, {
		name: "sequence",
		in:   `[1,2]`,
		err:  `not a JSON Plus envelope: payload is a sequence, not a record`,
	}, {
		name: "types not a sequence",
		in:   `{"marker":true,"types":"number","objects":[1],"structure":0}`,
		err:  `not a JSON Plus envelope: "types" is string, not a sequence`,
	}, {
		name: "objects missing",
		in:   `{"marker":true,"types":["number"],"structure":0}`,
		err:  `not a JSON Plus envelope: "objects" is null, not a sequence`,
	}, {
		name: "structure missing",
		in:   `{"marker":true,"types":["number"],"objects":[1]}`,
		err:  `not a JSON Plus envelope: missing "structure"`,
	}, {
		name: "length mismatch",
		in:   `{"marker":true,"types":["number","number"],"objects":[1],"structure":0}`,
		err:  `not a JSON Plus envelope: 2 types but 1 objects`,
	}, {
		name: "bad tag",
		in:   `{"marker":true,"types":[7],"objects":[1],"structure":0}`,
		err:  `not a JSON Plus envelope: types\[0\] is float64, not a string`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jsonplus.Parse([]byte(tc.in), nil)
			var ferr *graph.FormatError
			qt.Assert(t, qt.ErrorAs(err, &ferr))
			qt.Assert(t, qt.ErrorMatches(err, tc.err))
		})
	}
}

func TestLegacyMarker(t *testing.T) {
	_, err := jsonplus.Parse([]byte(`{"is_json_plus":"","types":[],"objects":[],"structure":0}`), nil)
	var ferr *graph.FormatError
	qt.Assert(t, qt.ErrorAs(err, &ferr))

	v, err := jsonplus.Parse([]byte(`{"is_json_plus":1,"types":["array",null],"objects":[null,"a"],"structure":[1]}`), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, any([]any{"a"})))
}

func TestCodecErrors(t *testing.T) {
	_, err := jsonplus.Parse([]byte(`{"marker":`), nil)
	qt.Assert(t, qt.ErrorMatches(err, `json: unexpected EOF`))
	var ferr *graph.FormatError
	qt.Assert(t, qt.IsFalse(errors.As(err, &ferr)))
}

func TestFilterErrors(t *testing.T) {
	boom := errors.New("boom")
	fail := filter.Map{"number": func(any) (any, error) { return nil, boom }}

	_, err := jsonplus.Serialize([]any{1}, fail)
	qt.Assert(t, qt.ErrorIs(err, boom))
	qt.Assert(t, qt.ErrorMatches(err, `filter "number": boom`))

	b, err := jsonplus.Serialize([]any{1}, nil)
	qt.Assert(t, qt.IsNil(err))
	_, err = jsonplus.Parse(b, fail)
	var ferr *filter.Error
	qt.Assert(t, qt.ErrorAs(err, &ferr))
	qt.Assert(t, qt.Equals(ferr.Tag, "number"))
}

func TestConfig(t *testing.T) {
	cfg := &jsonplus.Config{
		Codec: &json.Codec{Indent: "\t"},
		Classify: func(v any) string {
			if _, ok := v.(string); ok {
				return "text"
			}
			return value.Classify(v)
		},
	}
	s, err := cfg.Stringify([]any{"a"}, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(s, "{\n\t\"marker\": true,\n\t\"objects\": [\n\t\tnull,\n\t\t\"a\"\n\t],\n\t\"structure\": [\n\t\t1\n\t],\n\t\"types\": [\n\t\t\"array\",\n\t\t\"text\"\n\t]\n}"))

	v, err := cfg.Parse([]byte(s), filter.Map{"text": func(v any) (any, error) {
		return strings.ToUpper(v.(string)), nil
	}})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v, any([]any{"A"})))
}

func TestStreams(t *testing.T) {
	for _, name := range encoding.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := encoding.Lookup(name)
			qt.Assert(t, qt.IsNil(err))
			cfg := &jsonplus.Config{Codec: c}

			ring := []any{"x", nil}
			ring[1] = ring

			var buf bytes.Buffer
			qt.Assert(t, qt.IsNil(jsonplus.NewEncoder(&buf, cfg).Encode(ring, nil)))
			if !encoding.Binary(c) {
				qt.Assert(t, qt.IsTrue(bytes.HasSuffix(buf.Bytes(), []byte("\n"))))
			}

			v, err := jsonplus.NewDecoder(&buf, cfg).Decode(nil)
			qt.Assert(t, qt.IsNil(err))
			l := v.([]any)
			qt.Assert(t, qt.Equals(l[0], any("x")))
			qt.Assert(t, qt.Equals(&l[1].([]any)[0], &l[0]))
		})
	}
}

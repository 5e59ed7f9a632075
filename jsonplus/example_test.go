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
	"fmt"
	"log"

	"jsonplus.org/go/filter"
	"jsonplus.org/go/jsonplus"
)

func Example() {
	type node struct {
		Name string
		Next *node
	}
	a := &node{Name: "a"}
	a.Next = &node{Name: "b", Next: a}

	s, err := jsonplus.Stringify(a, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)

	v, err := jsonplus.Parse([]byte(s), nil)
	if err != nil {
		log.Fatal(err)
	}
	m := v.(map[string]any)
	b := m["Next"].(map[string]any)
	fmt.Println(m["Name"], b["Name"], b["Next"].(map[string]any)["Name"])

	// Output:
	// {"marker":true,"objects":[null,"a",null,"b"],"structure":{"Name":1,"Next":{"Name":3,"Next":0}},"types":["node","string","node","string"]}
	// a b a
}

func Example_filters() {
	double := filter.Map{"number": func(v any) (any, error) { return v.(float64) * 2, nil }}
	halve := filter.Map{"number": func(v any) (any, error) { return v.(float64) / 2, nil }}

	s, err := jsonplus.Stringify(21.0, double)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)

	v, err := jsonplus.Parse([]byte(s), halve)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)

	// Output:
	// {"marker":true,"objects":[42],"structure":0,"types":["number"]}
	// 21
}

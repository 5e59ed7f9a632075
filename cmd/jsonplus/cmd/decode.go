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

package cmd

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"

	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/filter"
	"jsonplus.org/go/jsonplus"
	"jsonplus.org/go/value"
)

func newDecodeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "convert an envelope to a plain JSON value",
		Long: `decode reads an envelope in the selected codec from the named file,
or standard input, and writes the value it holds as plain JSON.

Shared values are written out at each occurrence. A value that contains
a cycle cannot be written as plain JSON and is reported as an error.

With --stock-filters, values tagged time, decimal, uuid and bytes are
restored to their Go types before they are written, which normalizes
their text.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runDecode),
	}
	cmd.Flags().Bool(string(flagStockFilters), false, "restore time, decimal, uuid and bytes values")
	return cmd
}

func runDecode(cmd *Command, args []string) error {
	r, err := cmd.openInput(args)
	if err != nil {
		return err
	}
	defer r.Close()

	cfg, err := cmd.jsonplusConfig()
	if err != nil {
		return err
	}
	var filters filter.Map
	if cmd.cfg.StockFilters || flagStockFilters.Bool(cmd) {
		filters = filter.Stock()
	}
	v, err := jsonplus.NewDecoder(r, cfg).Decode(filters)
	if err != nil {
		return err
	}
	if value.IsUndefined(v) {
		v = nil
	}
	if err := plain(v, "value", map[uintptr]bool{}); err != nil {
		return err
	}

	out, err := (&json.Codec{Indent: cmd.indent()}).Encode(v)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = cmd.OutOrStdout().Write(out)
	cmd.log.Info("decoded", "codec", cfg.Codec.Name(), "bytes", len(out))
	return err
}

// plain prepares a rehydrated value for output as plain JSON. It replaces
// Undefined by null and fails if the value contains a cycle. Composites on
// the current path are tracked in stack.
func plain(v any, path string, stack map[uintptr]bool) error {
	var p uintptr
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return nil
		}
		p = reflect.ValueOf(x).Pointer()
	case map[string]any:
		p = reflect.ValueOf(x).Pointer()
	default:
		return nil
	}
	if stack[p] {
		return fmt.Errorf("cannot write %s as plain JSON: it contains a cycle", path)
	}
	stack[p] = true
	defer delete(stack, p)

	switch x := v.(type) {
	case []any:
		for i, e := range x {
			if value.IsUndefined(e) {
				x[i] = nil
			}
			if err := plain(e, path+"["+strconv.Itoa(i)+"]", stack); err != nil {
				return err
			}
		}
	case map[string]any:
		for k, e := range x {
			if value.IsUndefined(e) {
				x[k] = nil
			}
			if err := plain(e, path+"."+k, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

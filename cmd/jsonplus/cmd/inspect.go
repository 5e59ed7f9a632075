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
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/graph"
	"jsonplus.org/go/value"
)

func newInspectCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "print the pool of an envelope",
		Long: `inspect reads an envelope in the selected codec from the named file,
or standard input, and prints one line for each entry of its pool: the
index, the type tag, the number of references to the entry from the
structure, and its value. Composite values are shown as [...] or {...}.

An entry with more than one reference is a value shared within the graph.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runInspect),
	}
	return cmd
}

func runInspect(cmd *Command, args []string) error {
	r, err := cmd.openInput(args)
	if err != nil {
		return err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	codec, err := cmd.codec()
	if err != nil {
		return err
	}
	tree, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", codec.Name(), err)
	}
	env, err := graph.FromTree(tree)
	if err != nil {
		return err
	}
	refs, err := env.Refs()
	if err != nil {
		return err
	}
	cmd.log.Info("inspected", "codec", codec.Name(), "identities", env.Len(), "bytes", len(data))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tTAG\tREFS\tVALUE")
	text := &json.Codec{}
	for i, ref := range refs {
		tag := env.Types[i]
		if tag == "" {
			tag = "-"
		}
		var v string
		switch ref.Kind {
		case value.Sequence:
			v = "[...]"
		case value.Record:
			v = "{...}"
		default:
			b, err := text.Encode(env.Objects[i])
			if err != nil {
				v = fmt.Sprint(env.Objects[i])
			} else {
				v = string(b)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i, tag, ref.Count, v)
	}
	return tw.Flush()
}

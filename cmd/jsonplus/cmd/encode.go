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

	"github.com/spf13/cobra"

	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/encoding/yaml"
	"jsonplus.org/go/jsonplus"
)

func newEncodeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "convert a plain value to an envelope",
		Long: `encode reads a plain JSON or YAML value from the named file, or
standard input, and writes its envelope in the selected codec.

The input format is set with --input or the "input" key of the
configuration file. It defaults to json.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runEncode),
	}
	cmd.Flags().String(string(flagInput), "", "input format: json or yaml")
	return cmd
}

func runEncode(cmd *Command, args []string) error {
	r, err := cmd.openInput(args)
	if err != nil {
		return err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	input := cmd.cfg.Input
	if flagInput.IsSet(cmd) {
		input = flagInput.String(cmd)
	}
	var v any
	switch input {
	case "json":
		v, err = (&json.Codec{UseNumber: true}).Decode(data)
	case "yaml":
		v, err = (&yaml.Codec{}).Decode(data)
	default:
		return fmt.Errorf("unknown input format %q", input)
	}
	if err != nil {
		return fmt.Errorf("cannot read %s input: %w", input, err)
	}

	cfg, err := cmd.jsonplusConfig()
	if err != nil {
		return err
	}
	w := &countingWriter{w: cmd.OutOrStdout()}
	if err := jsonplus.NewEncoder(w, cfg).Encode(v, nil); err != nil {
		return err
	}
	cmd.log.Info("encoded", "codec", cfg.Codec.Name(), "bytes", w.n)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (w *countingWriter) Write(b []byte) (int, error) {
	n, err := w.w.Write(b)
	w.n += int64(n)
	return n, err
}

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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"jsonplus.org/go/encoding"
	"jsonplus.org/go/encoding/json"
	"jsonplus.org/go/internal/config"
	"jsonplus.org/go/jsonplus"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		if err := c.setup(); err != nil {
			return err
		}
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "jsonplus",
		Short: "jsonplus converts values to and from JSON Plus envelopes.",
		Long: `jsonplus converts plain JSON or YAML values to JSON Plus envelopes
and back.

An envelope is a self-describing record that keeps track of values that
occur more than once in a graph, so that shared references and cycles
survive a round trip:

	{
		"marker":    true,
		"types":     ["object", "number", "string"],
		"objects":   [null, 1, "x"],
		"structure": {"a": 1, "b": 2}
	}

Settings are read from a jsonplus.toml file in the current directory or
one of its parents, or from the file named by $JSONPLUS_CONFIG.
Command-line flags take precedence.`,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newDecodeCmd(c),
		newEncodeCmd(c),
		newInspectCmd(c),
		newVersionCmd(c),
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the jsonplus tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd := New(args)
	return cmd.Run(ctx)
}

type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	// cfg holds the settings from the configuration file, loaded once the
	// command line has been parsed.
	cfg *config.Config

	log *slog.Logger
}

func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOut(w)
	c.root.SetErr(w)
}

func (c *Command) SetInput(r io.Reader) {
	c.root.SetIn(r)
}

// Run executes the command.
func (c *Command) Run(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// New creates the jsonplus command for the given arguments.
func New(args []string) *Command {
	cmd := newRootCmd()
	cmd.root.SetArgs(args)
	return cmd
}

// setup loads the configuration and creates the logger of the active
// command.
func (c *Command) setup() error {
	level := slog.LevelWarn
	if flagVerbose.Bool(c) {
		level = slog.LevelInfo
	}
	c.log = slog.New(slog.NewTextHandler(c.Command.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))

	var err error
	if path := flagConfig.String(c); path != "" {
		c.cfg, err = config.Load(path)
	} else {
		c.cfg, err = config.Find(os.Getenv, ".")
	}
	if err != nil {
		return err
	}
	if c.cfg.Path != "" {
		c.log.Info("loaded config", "path", c.cfg.Path)
	}
	return nil
}

// codec returns the codec selected by the --codec flag or the
// configuration file.
func (c *Command) codec() (encoding.Codec, error) {
	name := c.cfg.Codec
	if flagCodec.IsSet(c) {
		name = flagCodec.String(c)
	}
	codec, err := encoding.Lookup(name)
	if err != nil {
		return nil, err
	}
	if j, ok := codec.(*json.Codec); ok {
		j.Indent = c.indent()
	}
	return codec, nil
}

func (c *Command) indent() string {
	if flagIndent.IsSet(c) {
		return flagIndent.String(c)
	}
	return c.cfg.Indent
}

// jsonplusConfig returns the library configuration for the selected codec.
func (c *Command) jsonplusConfig() (*jsonplus.Config, error) {
	codec, err := c.codec()
	if err != nil {
		return nil, err
	}
	return &jsonplus.Config{Codec: codec}, nil
}

// openInput returns the contents named by the optional file argument, or
// standard input if there is none or it is "-".
func (c *Command) openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(c.Command.InOrStdin()), nil
	}
	return os.Open(args[0])
}

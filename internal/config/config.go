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

// Package config holds the configuration file of the jsonplus command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"jsonplus.org/go/encoding"
)

// FileName is the name of the configuration file.
const FileName = "jsonplus.toml"

// Config holds the settings read from a jsonplus.toml file. Command-line
// flags take precedence over them.
type Config struct {
	// Codec names the codec used for envelopes, as registered in package
	// encoding.
	Codec string `toml:"codec"`

	// Indent is used to indent JSON output.
	Indent string `toml:"indent"`

	// Input is the format of plain values read by the encode command,
	// either "json" or "yaml".
	Input string `toml:"input"`

	// StockFilters enables the filters of filter.Stock when decoding.
	StockFilters bool `toml:"stock-filters"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{Codec: "json", Input: "json"}
}

// Load parses the configuration file at path. Unset keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %v", path, row, col, derr)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if !slices.Contains(encoding.Names(), c.Codec) {
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	switch c.Input {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown input format %q", c.Input)
	}
	return nil
}

// Find locates and loads the configuration for a command run in dir.
//
// The file named by $JSONPLUS_CONFIG is used if set. Otherwise Find looks
// for jsonplus.toml in dir and its parents, and then in the user
// configuration directory. If no file is found, it returns Default.
func Find(getenv func(string) string, dir string) (*Config, error) {
	if path := getenv("JSONPLUS_CONFIG"); path != "" {
		return Load(path)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if dir, err := Dir(getenv); err == nil {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return Default(), nil
}

// Dir returns the user configuration directory of the jsonplus command,
// which is $JSONPLUS_CONFIG_DIR if set.
func Dir(getenv func(string) string) (string, error) {
	if dir := getenv("JSONPLUS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine system config directory: %v", err)
	}
	return filepath.Join(dir, "jsonplus"), nil
}

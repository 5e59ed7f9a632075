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

package jsonplus

import (
	"bytes"
	"io"

	"jsonplus.org/go/encoding"
	"jsonplus.org/go/filter"
)

// NewEncoder returns an encoder that writes envelopes to w.
func NewEncoder(w io.Writer, cfg *Config) *Encoder {
	return &Encoder{w: w, cfg: cfg}
}

// An Encoder writes envelopes to an output stream.
type Encoder struct {
	w   io.Writer
	cfg *Config
}

// Encode writes the envelope of v to the stream. The output of a text codec
// is terminated by a newline.
func (e *Encoder) Encode(v any, filters filter.Map) error {
	b, err := e.cfg.Serialize(v, filters)
	if err != nil {
		return err
	}
	if !encoding.Binary(e.cfg.codec()) && !bytes.HasSuffix(b, []byte("\n")) {
		b = append(b, '\n')
	}
	_, err = e.w.Write(b)
	return err
}

// NewDecoder returns a decoder that reads an envelope from r.
func NewDecoder(r io.Reader, cfg *Config) *Decoder {
	return &Decoder{r: r, cfg: cfg}
}

// A Decoder reads an envelope from an input stream.
type Decoder struct {
	r   io.Reader
	cfg *Config
}

// Decode reads the rest of the stream and parses it as a single envelope.
func (d *Decoder) Decode(filters filter.Map) (any, error) {
	b, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	return d.cfg.Parse(b, filters)
}

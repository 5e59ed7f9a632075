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

package filter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// Stock returns the parse-side filters for the text types that
// value.Classify tags and value.Raw renders as strings. Serializing these
// types needs no filter.
func Stock() Map {
	return Map{
		"time":    Time,
		"decimal": Decimal,
		"uuid":    UUID,
		"bytes":   Bytes,
	}
}

// Time converts an RFC 3339 string back into a time.Time.
func Time(v any) (any, error) {
	switch x := v.(type) {
	case nil, time.Time:
		return x, nil
	case string:
		return time.Parse(time.RFC3339Nano, x)
	}
	return nil, unexpected("time", v)
}

// Decimal converts a string or number back into an *apd.Decimal.
func Decimal(v any) (any, error) {
	switch x := v.(type) {
	case nil, *apd.Decimal:
		return x, nil
	case string:
		d, _, err := apd.NewFromString(x)
		return d, err
	case json.Number:
		d, _, err := apd.NewFromString(x.String())
		return d, err
	case float64:
		return new(apd.Decimal).SetFloat64(x)
	case int64:
		return apd.New(x, 0), nil
	case int:
		return apd.New(int64(x), 0), nil
	case uint64:
		d, _, err := apd.NewFromString(strconv.FormatUint(x, 10))
		return d, err
	}
	return nil, unexpected("decimal", v)
}

// UUID converts a string, or the 16 raw bytes, back into a uuid.UUID.
func UUID(v any) (any, error) {
	switch x := v.(type) {
	case nil, uuid.UUID:
		return x, nil
	case string:
		return uuid.Parse(x)
	case []byte:
		return uuid.FromBytes(x)
	}
	return nil, unexpected("uuid", v)
}

// Bytes converts standard base64 text back into a byte slice. Codecs that
// carry binary data natively hand over a []byte, which is kept as is.
func Bytes(v any) (any, error) {
	switch x := v.(type) {
	case nil, []byte:
		return x, nil
	case string:
		return base64.StdEncoding.DecodeString(x)
	}
	return nil, unexpected("bytes", v)
}

func unexpected(tag string, v any) error {
	return fmt.Errorf("cannot convert %T to %s", v, tag)
}

/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package shape names the runtime category of an arbitrary value.
package shape

import (
	"fmt"
	"strings"

	"dirpx.dev/immuter/value"
)

// Category is the runtime category of a value.
//
// # Values
//
//   - Scalar   — untagged value, returned as-is by every chain.
//   - Date     — calendar date (value.Instant).
//   - Set      — key-uniqueness set (value.Set).
//   - Mapping  — key-value mapping (value.Mapping).
//   - Sequence — ordered sequence (value.Sequence).
//   - Record   — plain record; the default for any other tagged value.
//
// Categories are mutually exclusive. New values may be appended; existing
// values keep their meaning.
type Category int

const (
	// Scalar is an untagged value.
	Scalar Category = iota
	// Date is a calendar date.
	Date
	// Set is a key-uniqueness set.
	Set
	// Mapping is a key-value mapping.
	Mapping
	// Sequence is an ordered sequence.
	Sequence
	// Record is a plain record.
	Record
)

// Count is the number of defined categories. Handler tables are sized by it.
const Count = int(Record) + 1

// Ordered returns the composite categories in chain order:
// date, set, mapping, sequence, record.
func Ordered() []Category {
	return []Category{Date, Set, Mapping, Sequence, Record}
}

// Classify returns the category of v from its type tag.
func Classify(v any) Category {
	t, ok := v.(value.Tagger)
	if !ok {
		return Scalar
	}
	switch t.Tag() {
	case value.TagDate:
		return Date
	case value.TagSet:
		return Set
	case value.TagMap:
		return Mapping
	case value.TagArray:
		return Sequence
	default:
		return Record
	}
}

// IsComposite reports whether c names a container category.
func (c Category) IsComposite() bool {
	return c > Scalar && c <= Record
}

// String returns the canonical name of c.
func (c Category) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case Date:
		return "date"
	case Set:
		return "set"
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	case Record:
		return "record"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Parse converts a name (case-insensitive) into a Category.
func Parse(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Scalar, fmt.Errorf("shape: empty category")
	}

	switch strings.ToLower(trimmed) {
	case "scalar":
		return Scalar, nil
	case "date":
		return Date, nil
	case "set":
		return Set, nil
	case "mapping", "map":
		return Mapping, nil
	case "sequence", "array":
		return Sequence, nil
	case "record", "object":
		return Record, nil
	default:
		return Scalar, fmt.Errorf("shape: unknown category %q", s)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	switch c {
	case Scalar, Date, Set, Mapping, Sequence, Record:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("shape: cannot marshal unknown category %d", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

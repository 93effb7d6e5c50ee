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

package value

import "time"

// Instant is the read capability of a calendar date.
type Instant interface {
	Tagger
	Time() time.Time
}

// Date is a mutable calendar date holding a single instant.
type Date struct {
	t      time.Time
	frozen bool
}

// Ensure Date implements Instant.
var _ Instant = (*Date)(nil)

// NewDate returns a date holding t.
func NewDate(t time.Time) *Date { return &Date{t: t} }

// Tag implements Tagger.
func (*Date) Tag() string { return TagDate }

// Time returns the held instant.
func (d *Date) Time() time.Time { return d.t }

// SetTime replaces the held instant.
func (d *Date) SetTime(t time.Time) error {
	if d.frozen {
		return ErrImmutable
	}
	d.t = t
	return nil
}

// Add moves the held instant by dur.
func (d *Date) Add(dur time.Duration) error {
	if d.frozen {
		return ErrImmutable
	}
	d.t = d.t.Add(dur)
	return nil
}

// Freeze locks the date.
func (d *Date) Freeze() { d.frozen = true }

// Frozen reports whether the date has been locked.
func (d *Date) Frozen() bool { return d.frozen }

// String formats the instant as RFC 3339.
func (d *Date) String() string { return d.t.Format(time.RFC3339Nano) }

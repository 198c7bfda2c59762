// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package quote

import "time"

// Value is Yahoo's wrapped numeric triplet. Only the raw representation is
// persisted; fmt and longFmt are human-readable renderings of the same
// number. Presence is decided by Raw being set, never by comparing against
// zero, so a legitimate 0 survives the trip into the database.
type Value struct {
	Raw     *float64 `json:"raw"`
	Fmt     *string  `json:"fmt"`
	LongFmt *string  `json:"longFmt"`
}

// Float returns the raw value or nil when the wrapper or field is absent.
// The any return binds directly as a SQL parameter (nil becomes NULL).
func (v *Value) Float() any {
	if v == nil || v.Raw == nil {
		return nil
	}
	return *v.Raw
}

// Int returns the raw value truncated to an integer, or nil when absent.
func (v *Value) Int() any {
	if v == nil || v.Raw == nil {
		return nil
	}
	return int64(*v.Raw)
}

// Present reports whether the wrapper carries a raw value.
func (v *Value) Present() bool {
	return v != nil && v.Raw != nil
}

// DateValue is a wrapped date triplet; raw is seconds since the Unix epoch.
type DateValue struct {
	Raw *int64  `json:"raw"`
	Fmt *string `json:"fmt"`
}

// Day returns the date normalized to YYYY-MM-DD in UTC, or nil when absent.
// Dates participate in natural keys so the normalized text form keeps
// comparisons deterministic across imports.
func (v *DateValue) Day() any {
	if v == nil || v.Raw == nil {
		return nil
	}
	return time.Unix(*v.Raw, 0).UTC().Format("2006-01-02")
}

// DayString is Day for callers that need the key column as a string; ok is
// false when the date is absent and the row cannot be keyed.
func (v *DateValue) DayString() (string, bool) {
	if v == nil || v.Raw == nil {
		return "", false
	}
	return time.Unix(*v.Raw, 0).UTC().Format("2006-01-02"), true
}

// Present reports whether the wrapper carries a raw value.
func (v *DateValue) Present() bool {
	return v != nil && v.Raw != nil
}

// Str converts an optional string field to a SQL parameter (nil becomes
// NULL). An empty string is a present value and is stored as-is.
func Str(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// I64 converts an optional bare integer field (Yahoo emits a few counts
// unwrapped) to a SQL parameter.
func I64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

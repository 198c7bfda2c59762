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

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFloat(t *testing.T) {
	var absent *Value
	assert.Nil(t, absent.Float())
	assert.Nil(t, (&Value{}).Float())

	raw := 12.5
	assert.Equal(t, 12.5, (&Value{Raw: &raw}).Float())

	// zero is a present value, not an absence
	zero := 0.0
	assert.Equal(t, 0.0, (&Value{Raw: &zero}).Float())
	assert.True(t, (&Value{Raw: &zero}).Present())
}

func TestValueInt(t *testing.T) {
	raw := 1234567.0
	assert.Equal(t, int64(1234567), (&Value{Raw: &raw}).Int())
	assert.Nil(t, (&Value{}).Int())
}

func TestDateValueDay(t *testing.T) {
	var absent *DateValue
	assert.Nil(t, absent.Day())

	_, ok := absent.DayString()
	assert.False(t, ok)

	// 2024-03-28T00:00:00Z
	raw := int64(1711584000)
	day, ok := (&DateValue{Raw: &raw}).DayString()
	require.True(t, ok)
	assert.Equal(t, "2024-03-28", day)
	assert.Equal(t, "2024-03-28", (&DateValue{Raw: &raw}).Day())
}

func TestValueDecodesWrappedTriplet(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"raw": 2.75, "fmt": "2.75", "longFmt": "2.75"}`), &v))
	require.NotNil(t, v.Raw)
	assert.Equal(t, 2.75, *v.Raw)

	// empty wrapper decodes but is absent
	var empty Value
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.False(t, empty.Present())
}

func TestStr(t *testing.T) {
	assert.Nil(t, Str(nil))

	s := ""
	assert.Equal(t, "", Str(&s))
}

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
package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tech giants.json", `{"name": "Tech Giants", "symbols": ["aapl", "MSFT", " goog ", ""]}`)

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "GOOG", records[2].Symbol)
	assert.Equal(t, "tech-giants", records[0].CategoryID)
	assert.Equal(t, "Tech Giants", records[0].CategoryName)
}

func TestLoadDirJSONWithoutName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dividend.json", `{"symbols": ["T", "VZ"]}`)

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// file stem stands in for a missing category name
	assert.Equal(t, "dividend", records[0].CategoryID)
	assert.Equal(t, "dividend", records[0].CategoryName)
}

func TestLoadDirCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "My Funds.csv", "symbol,name\nvti,Total Stock Market\n ,missing symbol\nbnd,Total Bond\n")

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "VTI", records[0].Symbol)
	assert.Equal(t, "Total Stock Market", records[0].Name)
	assert.Equal(t, "my-funds", records[0].CategoryID)
	assert.Equal(t, "My Funds", records[0].CategoryName)
}

func TestLoadDirSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"symbols": [`)
	writeFile(t, dir, "notes.txt", "not a watchlist")
	writeFile(t, dir, "good.json", `{"symbols": ["SPY"]}`)

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SPY", records[0].Symbol)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

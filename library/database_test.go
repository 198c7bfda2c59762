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
package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/penny-vault/pvquote/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()

	ctx := context.Background()
	myLibrary, err := Open(ctx, filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, myLibrary.Close())
	})

	require.NoError(t, myLibrary.Migrate())
	return myLibrary
}

func TestOpenCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "quotes.db")

	myLibrary, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, myLibrary.Close())
	}()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestLibraryStats(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	lastUpdated, err := myLibrary.LastUpdated(ctx)
	require.NoError(t, err)
	assert.True(t, lastUpdated.IsZero())

	for _, record := range []*quote.SymbolRecord{
		{Symbol: "AAPL", Name: "Apple Inc", CategoryID: "tech", CategoryName: "Tech"},
		{Symbol: "MSFT", Name: "Microsoft", CategoryID: "tech", CategoryName: "Tech"},
		{Symbol: "XOM", Name: "Exxon Mobil", CategoryID: "energy", CategoryName: "Energy"},
	} {
		require.NoError(t, record.SaveDB(ctx, myLibrary.DB))
	}

	numSymbols, err := myLibrary.NumSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, numSymbols)

	totalRecords, err := myLibrary.TotalRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, totalRecords)

	symbols, err := myLibrary.Symbols(ctx)
	require.NoError(t, err)
	require.Len(t, symbols, 3)
	assert.Equal(t, "AAPL", symbols[0].Symbol)

	categories, err := myLibrary.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "energy", categories[0].CategoryID)
	assert.Equal(t, 1, categories[0].NumSymbols)
	assert.Equal(t, 2, categories[1].NumSymbols)

	lastUpdated, err = myLibrary.LastUpdated(ctx)
	require.NoError(t, err)
	assert.False(t, lastUpdated.IsZero())
}

func TestSummaryRendersMarkdown(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	record := &quote.SymbolRecord{Symbol: "SPY", CategoryName: "Index Funds", CategoryID: "index-funds"}
	require.NoError(t, record.SaveDB(ctx, myLibrary.DB))

	summary, err := myLibrary.Summary(ctx)
	require.NoError(t, err)

	assert.Contains(t, summary, "# Quote Library")
	assert.Contains(t, summary, "Symbols Tracked: 1")
	assert.Contains(t, summary, "Index Funds: 1 symbols")
}

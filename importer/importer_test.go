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
package importer_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/penny-vault/pvquote/importer"
	"github.com/penny-vault/pvquote/library"
	"github.com/penny-vault/pvquote/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	docs map[string]string
}

func (fetcher *fakeFetcher) QuoteSummary(_ context.Context, symbol string) (*quote.Document, error) {
	raw, ok := fetcher.docs[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return quote.ParseDocument([]byte(raw))
}

func openTestLibrary(t *testing.T) *library.Library {
	t.Helper()

	ctx := context.Background()
	myLibrary, err := library.Open(ctx, filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, myLibrary.Close())
	})

	require.NoError(t, myLibrary.Migrate())
	return myLibrary
}

func TestResolveDedupesFirstWins(t *testing.T) {
	watchlist := []*quote.SymbolRecord{
		{Symbol: "AAPL", CategoryID: "tech"},
		{Symbol: "XOM", CategoryID: "energy"},
	}
	screener := []*quote.SymbolRecord{
		{Symbol: "AAPL", CategoryID: "most-actives"},
		{Symbol: "TSLA", CategoryID: "most-actives"},
	}

	resolved := importer.Resolve(watchlist, screener)
	require.Len(t, resolved, 3)

	assert.Equal(t, "AAPL", resolved[0].Symbol)
	assert.Equal(t, "tech", resolved[0].CategoryID)
	assert.Equal(t, "XOM", resolved[1].Symbol)
	assert.Equal(t, "TSLA", resolved[2].Symbol)
}

func TestRunImportsDocuments(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	imp := importer.Importer{
		Library: myLibrary,
		Fetcher: &fakeFetcher{docs: map[string]string{
			"AAPL": `{
				"price": {"regularMarketPrice": {"raw": 182.5}},
				"summaryDetail": {"previousClose": {"raw": 181.0}}
			}`,
		}},
	}

	summary := imp.Run(ctx, []*quote.SymbolRecord{
		{Symbol: "AAPL", Name: "Apple Inc"},
		{Symbol: "BAD"},
	})

	assert.Equal(t, 2, summary.SymbolsAttempted)
	assert.Equal(t, 1, summary.SymbolsSucceeded)
	assert.Equal(t, 2, summary.ModulesSaved)
	assert.Equal(t, len(quote.ModuleNames)-2, summary.ModulesSkipped)
	assert.Equal(t, 1, summary.FetchErrors)
	assert.Equal(t, 0, summary.WriteErrors)
	assert.NotEqual(t, "", summary.RunID.String())

	// the symbol row is written even when the fetch fails
	count := 0
	require.NoError(t, myLibrary.DB.QueryRow("SELECT count(*) FROM symbols").Scan(&count))
	assert.Equal(t, 2, count)

	require.NoError(t, myLibrary.DB.QueryRow("SELECT count(*) FROM price").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunContinuesPastFailedModuleWrite(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	imp := importer.Importer{
		Library: myLibrary,
		Fetcher: &fakeFetcher{docs: map[string]string{
			"INTC": `{
				"summaryDetail": {"previousClose": {"raw": 30.25}},
				"price": {"regularMarketPrice": {"raw": 30.5}}
			}`,
		}},
	}

	// break one module's table; the sibling module must still be written
	_, err := myLibrary.DB.Exec("DROP TABLE summary_detail")
	require.NoError(t, err)

	summary := imp.Run(ctx, []*quote.SymbolRecord{{Symbol: "INTC"}})

	assert.Equal(t, 1, summary.ModulesSaved)
	assert.Equal(t, 1, summary.WriteErrors)
	assert.Equal(t, 0, summary.SymbolsSucceeded)

	count := 0
	require.NoError(t, myLibrary.DB.QueryRow("SELECT count(*) FROM price").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunIsRepeatable(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	imp := importer.Importer{
		Library: myLibrary,
		Fetcher: &fakeFetcher{docs: map[string]string{
			"VTI": `{"price": {"regularMarketPrice": {"raw": 250.0}}}`,
		}},
	}

	records := []*quote.SymbolRecord{{Symbol: "VTI"}}
	for i := 0; i < 2; i++ {
		summary := imp.Run(ctx, records)
		require.Equal(t, 1, summary.SymbolsSucceeded)
	}

	count := 0
	require.NoError(t, myLibrary.DB.QueryRow("SELECT count(*) FROM price").Scan(&count))
	assert.Equal(t, 1, count)
}

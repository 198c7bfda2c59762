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
package quote_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/penny-vault/pvquote/library"
	"github.com/penny-vault/pvquote/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func saveSymbol(t *testing.T, myLibrary *library.Library, symbol string) {
	t.Helper()

	record := &quote.SymbolRecord{Symbol: symbol, Name: symbol + " Inc"}
	require.NoError(t, record.SaveDB(context.Background(), myLibrary.DB))
}

func countRows(t *testing.T, myLibrary *library.Library, tbl string) int {
	t.Helper()

	count := 0
	require.NoError(t, myLibrary.DB.QueryRow("SELECT count(*) FROM "+tbl).Scan(&count))
	return count
}

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }
func sptr(v string) *string   { return &v }

func val(v float64) *quote.Value {
	return &quote.Value{Raw: fptr(v)}
}

func dval(secs int64) *quote.DateValue {
	return &quote.DateValue{Raw: iptr(secs)}
}

func TestSymbolUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	record := &quote.SymbolRecord{Symbol: "AAPL", Name: "Apple Inc", LastPrice: 180.5}
	require.NoError(t, record.SaveDB(ctx, myLibrary.DB))

	record.LastPrice = 182.25
	require.NoError(t, record.SaveDB(ctx, myLibrary.DB))

	assert.Equal(t, 1, countRows(t, myLibrary, "symbols"))

	var lastPrice float64
	require.NoError(t, myLibrary.DB.QueryRow("SELECT last_price FROM symbols WHERE symbol='AAPL'").Scan(&lastPrice))
	assert.Equal(t, 182.25, lastPrice)
}

func TestSymbolUpsertPreservesMetadata(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)

	record := &quote.SymbolRecord{
		Symbol:       "AAPL",
		Name:         "Apple Inc",
		CategoryID:   "tech",
		CategoryName: "Technology",
		LastPrice:    180.5,
		MarketCap:    2_800_000_000_000,
	}
	require.NoError(t, record.SaveDB(ctx, myLibrary.DB))

	// a targeted refresh carries only the ticker; stored metadata survives
	bare := &quote.SymbolRecord{Symbol: "AAPL"}
	require.NoError(t, bare.SaveDB(ctx, myLibrary.DB))

	var (
		name       string
		categoryID string
		lastPrice  float64
		marketCap  int64
	)
	require.NoError(t, myLibrary.DB.QueryRow(
		"SELECT name, category_id, last_price, market_cap FROM symbols WHERE symbol='AAPL'").
		Scan(&name, &categoryID, &lastPrice, &marketCap))

	assert.Equal(t, "Apple Inc", name)
	assert.Equal(t, "tech", categoryID)
	assert.Equal(t, 180.5, lastPrice)
	assert.Equal(t, int64(2_800_000_000_000), marketCap)
}

func TestCascadeDelete(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "MSFT")

	profile := &quote.AssetProfile{Sector: sptr("Technology")}
	require.NoError(t, profile.SaveDB(ctx, "MSFT", myLibrary.DB))

	ownership := &quote.FundOwnership{OwnershipList: []quote.OwnershipEntry{
		{ReportDate: dval(1711584000), Organization: sptr("Vanguard"), PctHeld: val(0.08)},
	}}
	require.NoError(t, ownership.SaveDB(ctx, "MSFT", myLibrary.DB))

	require.Equal(t, 1, countRows(t, myLibrary, "asset_profile"))
	require.Equal(t, 1, countRows(t, myLibrary, "fund_ownership"))

	require.NoError(t, quote.DeleteSymbol(ctx, myLibrary.DB, "MSFT"))

	assert.Equal(t, 0, countRows(t, myLibrary, "symbols"))
	assert.Equal(t, 0, countRows(t, myLibrary, "asset_profile"))
	assert.Equal(t, 0, countRows(t, myLibrary, "fund_ownership"))
}

func TestRecommendationTrendReplacesPeriodSet(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "NVDA")

	first := &quote.RecommendationTrend{Trend: []quote.RecommendationPeriod{
		{Period: sptr("0m"), StrongBuy: iptr(10)},
		{Period: sptr("-1m"), StrongBuy: iptr(9)},
		{Period: sptr("-2m"), StrongBuy: iptr(8)},
	}}
	require.NoError(t, first.SaveDB(ctx, "NVDA", myLibrary.DB))
	require.Equal(t, 3, countRows(t, myLibrary, "recommendation_trend"))

	// a later import with fewer periods must not leave stale rows behind
	second := &quote.RecommendationTrend{Trend: []quote.RecommendationPeriod{
		{Period: sptr("0m"), StrongBuy: iptr(12)},
		{Period: sptr("-1m"), StrongBuy: iptr(10)},
	}}
	require.NoError(t, second.SaveDB(ctx, "NVDA", myLibrary.DB))
	assert.Equal(t, 2, countRows(t, myLibrary, "recommendation_trend"))

	var strongBuy int64
	require.NoError(t, myLibrary.DB.QueryRow("SELECT strong_buy FROM recommendation_trend WHERE symbol='NVDA' AND period='0m'").Scan(&strongBuy))
	assert.Equal(t, int64(12), strongBuy)
}

func TestFundOwnershipIsAdditive(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "AMZN")

	first := &quote.FundOwnership{OwnershipList: []quote.OwnershipEntry{
		{ReportDate: dval(1703980800), Organization: sptr("Vanguard"), PctHeld: val(0.07)},
		{ReportDate: dval(1703980800), Organization: sptr("BlackRock"), PctHeld: val(0.06)},
	}}
	require.NoError(t, first.SaveDB(ctx, "AMZN", myLibrary.DB))

	// an entry absent from a later document is kept, present entries refresh
	second := &quote.FundOwnership{OwnershipList: []quote.OwnershipEntry{
		{ReportDate: dval(1703980800), Organization: sptr("Vanguard"), PctHeld: val(0.075)},
	}}
	require.NoError(t, second.SaveDB(ctx, "AMZN", myLibrary.DB))

	assert.Equal(t, 2, countRows(t, myLibrary, "fund_ownership"))

	var pctHeld float64
	require.NoError(t, myLibrary.DB.QueryRow("SELECT pct_held FROM fund_ownership WHERE organization='Vanguard'").Scan(&pctHeld))
	assert.Equal(t, 0.075, pctHeld)
}

func TestOwnershipSkipsUnkeyedEntries(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "GOOG")

	ownership := &quote.InstitutionOwnership{OwnershipList: []quote.OwnershipEntry{
		{Organization: sptr("No Report Date LLC"), PctHeld: val(0.01)},
		{ReportDate: dval(1703980800), PctHeld: val(0.02)},
		{ReportDate: dval(1703980800), Organization: sptr("Keyed Corp"), PctHeld: val(0.03)},
	}}
	require.NoError(t, ownership.SaveDB(ctx, "GOOG", myLibrary.DB))

	assert.Equal(t, 1, countRows(t, myLibrary, "institution_ownership"))
}

func TestSummaryDetailNullHandling(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "T")

	detail := &quote.SummaryDetail{
		PreviousClose: val(17.25),
		DividendRate:  val(0), // zero must survive, not collapse to NULL
	}
	require.NoError(t, detail.SaveDB(ctx, "T", myLibrary.DB))

	var (
		previousClose float64
		dividendRate  *float64
		beta          *float64
	)
	require.NoError(t, myLibrary.DB.QueryRow(
		"SELECT previous_close, dividend_rate, beta FROM summary_detail WHERE symbol='T'").
		Scan(&previousClose, &dividendRate, &beta))

	assert.Equal(t, 17.25, previousClose)
	require.NotNil(t, dividendRate)
	assert.Equal(t, 0.0, *dividendRate)
	assert.Nil(t, beta)
}

func TestStatementHistoryKeyedByEndDate(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "IBM")

	history := &quote.IncomeStatementHistory{Statements: []quote.IncomeStatement{
		{EndDate: dval(1703980800), TotalRevenue: val(61_000_000_000)},
		{TotalRevenue: val(1)}, // no end date; skipped
	}}
	require.NoError(t, history.SaveDB(ctx, "IBM", "income_statement_history", myLibrary.DB))
	require.Equal(t, 1, countRows(t, myLibrary, "income_statement_history"))

	// same end date refreshes in place
	history.Statements[0].TotalRevenue = val(62_000_000_000)
	require.NoError(t, history.SaveDB(ctx, "IBM", "income_statement_history", myLibrary.DB))
	assert.Equal(t, 1, countRows(t, myLibrary, "income_statement_history"))

	var totalRevenue int64
	require.NoError(t, myLibrary.DB.QueryRow("SELECT total_revenue FROM income_statement_history").Scan(&totalRevenue))
	assert.Equal(t, int64(62_000_000_000), totalRevenue)

	// quarterly variant writes to its own table
	require.NoError(t, history.SaveDB(ctx, "IBM", "income_statement_history_quarterly", myLibrary.DB))
	assert.Equal(t, 1, countRows(t, myLibrary, "income_statement_history_quarterly"))
}

func TestDocumentSaveOnlyPresentModules(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "ORCL")

	doc, err := quote.ParseDocument([]byte(`{
		"assetProfile": {
			"sector": "Technology",
			"fullTimeEmployees": 164000,
			"companyOfficers": [{"name": "Safra Catz", "title": "CEO"}]
		},
		"financialData": {
			"currentPrice": {"raw": 126.33, "fmt": "126.33"},
			"recommendationKey": "buy"
		}
	}`))
	require.NoError(t, err)

	saved, failed := doc.SaveDB(ctx, "ORCL", myLibrary.DB)
	require.Zero(t, failed)
	assert.Equal(t, 2, saved)

	assert.Equal(t, 1, countRows(t, myLibrary, "asset_profile"))
	assert.Equal(t, 1, countRows(t, myLibrary, "financial_data"))
	assert.Equal(t, 0, countRows(t, myLibrary, "summary_detail"))

	var officers string
	require.NoError(t, myLibrary.DB.QueryRow("SELECT company_officers FROM asset_profile WHERE symbol='ORCL'").Scan(&officers))
	assert.Contains(t, officers, "Safra Catz")
}

func TestDocumentSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "CSCO")

	doc, err := quote.ParseDocument([]byte(`{
		"price": {"regularMarketPrice": {"raw": 48.11}},
		"upgradeDowngradeHistory": {"history": [
			{"epochGradeDate": 1711584000, "firm": "Morgan Stanley", "toGrade": "Overweight", "action": "up"}
		]},
		"calendarEvents": {"earnings": {
			"earningsDate": [{"raw": 1715731200}],
			"earningsAverage": {"raw": 0.82}
		}}
	}`))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, failed := doc.SaveDB(ctx, "CSCO", myLibrary.DB)
		require.Zero(t, failed)
	}

	assert.Equal(t, 1, countRows(t, myLibrary, "price"))
	assert.Equal(t, 1, countRows(t, myLibrary, "upgrade_downgrade_history"))
	assert.Equal(t, 1, countRows(t, myLibrary, "calendar_events"))

	var gradeDate string
	require.NoError(t, myLibrary.DB.QueryRow("SELECT grade_date FROM upgrade_downgrade_history").Scan(&gradeDate))
	assert.Equal(t, "2024-03-28", gradeDate)
}

func TestDocumentSaveContinuesPastFailedModule(t *testing.T) {
	ctx := context.Background()
	myLibrary := openTestLibrary(t)
	saveSymbol(t, myLibrary, "INTC")

	doc, err := quote.ParseDocument([]byte(`{
		"summaryDetail": {"previousClose": {"raw": 30.25}},
		"price": {"regularMarketPrice": {"raw": 30.5}}
	}`))
	require.NoError(t, err)

	// break one module's table; its siblings must still be written
	_, err = myLibrary.DB.Exec("DROP TABLE summary_detail")
	require.NoError(t, err)

	saved, failed := doc.SaveDB(ctx, "INTC", myLibrary.DB)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, failed)

	assert.Equal(t, 1, countRows(t, myLibrary, "price"))
}

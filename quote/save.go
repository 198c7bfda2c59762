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
	"context"
	"database/sql"
	"reflect"

	"github.com/rs/zerolog/log"
)

type subDocSaver interface {
	SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error
}

type tableSaver interface {
	SaveDB(ctx context.Context, symbol, tbl string, dbConn *sql.DB) error
}

// statementTable binds a statement-history sub-document to its target table;
// the annual and quarterly variants share a struct and differ only here.
type statementTable struct {
	saver tableSaver
	tbl   string
}

func (st statementTable) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	return st.saver.SaveDB(ctx, symbol, st.tbl, dbConn)
}

type moduleEntry struct {
	name  string
	saver subDocSaver
}

// modules lists every sub-document present on the document, paired with its
// wire name, in a stable order.
func (doc *Document) modules() []moduleEntry {
	all := []moduleEntry{
		{"assetProfile", doc.AssetProfile},
		{"summaryDetail", doc.SummaryDetail},
		{"price", doc.Price},
		{"defaultKeyStatistics", doc.DefaultKeyStatistics},
		{"financialData", doc.FinancialData},
		{"majorHoldersBreakdown", doc.MajorHoldersBreakdown},
		{"majorDirectHolders", doc.MajorDirectHolders},
		{"netSharePurchaseActivity", doc.NetSharePurchaseActivity},
		{"sectorTrend", doc.SectorTrend},
		{"recommendationTrend", doc.RecommendationTrend},
		{"indexTrend", doc.IndexTrend},
		{"earningsTrend", doc.EarningsTrend},
		{"incomeStatementHistory", statementTable{doc.IncomeStatementHistory, "income_statement_history"}},
		{"incomeStatementHistoryQuarterly", statementTable{doc.IncomeStatementHistoryQuarterly, "income_statement_history_quarterly"}},
		{"balanceSheetHistory", statementTable{doc.BalanceSheetHistory, "balance_sheet_history"}},
		{"balanceSheetHistoryQuarterly", statementTable{doc.BalanceSheetHistoryQuarterly, "balance_sheet_history_quarterly"}},
		{"cashflowStatementHistory", statementTable{doc.CashflowStatementHistory, "cashflow_statement_history"}},
		{"cashflowStatementHistoryQuarterly", statementTable{doc.CashflowStatementHistoryQuarterly, "cashflow_statement_history_quarterly"}},
		{"earningsHistory", doc.EarningsHistory},
		{"earnings", doc.Earnings},
		{"calendarEvents", doc.CalendarEvents},
		{"upgradeDowngradeHistory", doc.UpgradeDowngradeHistory},
		{"fundOwnership", doc.FundOwnership},
		{"institutionOwnership", doc.InstitutionOwnership},
		{"insiderHolders", doc.InsiderHolders},
		{"insiderTransactions", doc.InsiderTransactions},
	}

	present := make([]moduleEntry, 0, len(all))
	for _, entry := range all {
		if isAbsent(entry.saver) {
			continue
		}
		present = append(present, entry)
	}
	return present
}

// AbsentModules returns the wire names of every sub-document missing from
// the document.
func (doc *Document) AbsentModules() []string {
	present := make(map[string]bool, len(doc.modules()))
	for _, entry := range doc.modules() {
		present[entry.name] = true
	}

	var absent []string
	for _, name := range ModuleNames {
		if !present[name] {
			absent = append(absent, name)
		}
	}
	return absent
}

// SaveDB persists every sub-document present on the quote document and
// returns counts of modules written and modules that failed. A failed write
// never blocks the remaining modules; each saver logs its own error. Absent
// modules leave their tables untouched.
func (doc *Document) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) (saved, failed int) {
	for _, entry := range doc.modules() {
		if err := entry.saver.SaveDB(ctx, symbol, dbConn); err != nil {
			failed++
			continue
		}
		log.Debug().Str("Symbol", symbol).Str("Module", entry.name).Msg("saved quote module")
		saved++
	}
	return saved, failed
}

// isAbsent treats a typed-nil pointer inside the interface as absent. The
// statementTable wrapper is inspected through its inner saver.
func isAbsent(saver subDocSaver) bool {
	if saver == nil {
		return true
	}
	if st, ok := saver.(statementTable); ok {
		return st.saver == nil || reflect.ValueOf(st.saver).IsNil()
	}
	return reflect.ValueOf(saver).IsNil()
}

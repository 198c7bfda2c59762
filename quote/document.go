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

import "github.com/goccy/go-json"

// Document is one symbol's quoteSummary result. Every sub-document is
// optional; a nil field means the module was absent from the response and
// nothing is written for its table.
type Document struct {
	AssetProfile                      *AssetProfile             `json:"assetProfile"`
	SummaryDetail                     *SummaryDetail            `json:"summaryDetail"`
	Price                             *Price                    `json:"price"`
	DefaultKeyStatistics              *DefaultKeyStatistics     `json:"defaultKeyStatistics"`
	FinancialData                     *FinancialData            `json:"financialData"`
	MajorHoldersBreakdown             *MajorHoldersBreakdown    `json:"majorHoldersBreakdown"`
	MajorDirectHolders                *MajorDirectHolders       `json:"majorDirectHolders"`
	NetSharePurchaseActivity          *NetSharePurchaseActivity `json:"netSharePurchaseActivity"`
	SectorTrend                       *SectorTrend              `json:"sectorTrend"`
	RecommendationTrend               *RecommendationTrend      `json:"recommendationTrend"`
	IndexTrend                        *IndexTrend               `json:"indexTrend"`
	EarningsTrend                     *EarningsTrend            `json:"earningsTrend"`
	IncomeStatementHistory            *IncomeStatementHistory   `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly   *IncomeStatementHistory   `json:"incomeStatementHistoryQuarterly"`
	BalanceSheetHistory               *BalanceSheetHistory      `json:"balanceSheetHistory"`
	BalanceSheetHistoryQuarterly      *BalanceSheetHistory      `json:"balanceSheetHistoryQuarterly"`
	CashflowStatementHistory          *CashflowStatementHistory `json:"cashflowStatementHistory"`
	CashflowStatementHistoryQuarterly *CashflowStatementHistory `json:"cashflowStatementHistoryQuarterly"`
	EarningsHistory                   *EarningsHistory          `json:"earningsHistory"`
	Earnings                          *Earnings                 `json:"earnings"`
	CalendarEvents                    *CalendarEvents           `json:"calendarEvents"`
	UpgradeDowngradeHistory           *UpgradeDowngradeHistory  `json:"upgradeDowngradeHistory"`
	FundOwnership                     *FundOwnership            `json:"fundOwnership"`
	InstitutionOwnership              *InstitutionOwnership     `json:"institutionOwnership"`
	InsiderHolders                    *InsiderHolders           `json:"insiderHolders"`
	InsiderTransactions               *InsiderTransactions      `json:"insiderTransactions"`
}

// ModuleNames lists the wire name of every sub-document, in request order.
var ModuleNames = []string{
	"assetProfile",
	"summaryDetail",
	"price",
	"defaultKeyStatistics",
	"financialData",
	"majorHoldersBreakdown",
	"majorDirectHolders",
	"netSharePurchaseActivity",
	"sectorTrend",
	"recommendationTrend",
	"indexTrend",
	"earningsTrend",
	"incomeStatementHistory",
	"incomeStatementHistoryQuarterly",
	"balanceSheetHistory",
	"balanceSheetHistoryQuarterly",
	"cashflowStatementHistory",
	"cashflowStatementHistoryQuarterly",
	"earningsHistory",
	"earnings",
	"calendarEvents",
	"upgradeDowngradeHistory",
	"fundOwnership",
	"institutionOwnership",
	"insiderHolders",
	"insiderTransactions",
}

// ParseDocument decodes a quoteSummary result object into a Document.
func ParseDocument(raw []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

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
	"time"

	"github.com/rs/zerolog/log"
)

type FinancialData struct {
	CurrentPrice            *Value  `json:"currentPrice"`
	TargetHighPrice         *Value  `json:"targetHighPrice"`
	TargetLowPrice          *Value  `json:"targetLowPrice"`
	TargetMeanPrice         *Value  `json:"targetMeanPrice"`
	TargetMedianPrice       *Value  `json:"targetMedianPrice"`
	RecommendationMean      *Value  `json:"recommendationMean"`
	RecommendationKey       *string `json:"recommendationKey"`
	NumberOfAnalystOpinions *Value  `json:"numberOfAnalystOpinions"`
	TotalCash               *Value  `json:"totalCash"`
	TotalCashPerShare       *Value  `json:"totalCashPerShare"`
	Ebitda                  *Value  `json:"ebitda"`
	TotalDebt               *Value  `json:"totalDebt"`
	QuickRatio              *Value  `json:"quickRatio"`
	CurrentRatio            *Value  `json:"currentRatio"`
	TotalRevenue            *Value  `json:"totalRevenue"`
	DebtToEquity            *Value  `json:"debtToEquity"`
	RevenuePerShare         *Value  `json:"revenuePerShare"`
	ReturnOnAssets          *Value  `json:"returnOnAssets"`
	ReturnOnEquity          *Value  `json:"returnOnEquity"`
	GrossProfits            *Value  `json:"grossProfits"`
	FreeCashflow            *Value  `json:"freeCashflow"`
	OperatingCashflow       *Value  `json:"operatingCashflow"`
	EarningsGrowth          *Value  `json:"earningsGrowth"`
	RevenueGrowth           *Value  `json:"revenueGrowth"`
	GrossMargins            *Value  `json:"grossMargins"`
	EbitdaMargins           *Value  `json:"ebitdaMargins"`
	OperatingMargins        *Value  `json:"operatingMargins"`
	ProfitMargins           *Value  `json:"profitMargins"`
	FinancialCurrency       *string `json:"financialCurrency"`
}

func (fin *FinancialData) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO financial_data (
		"symbol",
		"current_price",
		"target_high_price",
		"target_low_price",
		"target_mean_price",
		"target_median_price",
		"recommendation_mean",
		"recommendation_key",
		"number_of_analyst_opinions",
		"total_cash",
		"total_cash_per_share",
		"ebitda",
		"total_debt",
		"quick_ratio",
		"current_ratio",
		"total_revenue",
		"debt_to_equity",
		"revenue_per_share",
		"return_on_assets",
		"return_on_equity",
		"gross_profits",
		"free_cashflow",
		"operating_cashflow",
		"earnings_growth",
		"revenue_growth",
		"gross_margins",
		"ebitda_margins",
		"operating_margins",
		"profit_margins",
		"financial_currency",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		current_price = excluded.current_price,
		target_high_price = excluded.target_high_price,
		target_low_price = excluded.target_low_price,
		target_mean_price = excluded.target_mean_price,
		target_median_price = excluded.target_median_price,
		recommendation_mean = excluded.recommendation_mean,
		recommendation_key = excluded.recommendation_key,
		number_of_analyst_opinions = excluded.number_of_analyst_opinions,
		total_cash = excluded.total_cash,
		total_cash_per_share = excluded.total_cash_per_share,
		ebitda = excluded.ebitda,
		total_debt = excluded.total_debt,
		quick_ratio = excluded.quick_ratio,
		current_ratio = excluded.current_ratio,
		total_revenue = excluded.total_revenue,
		debt_to_equity = excluded.debt_to_equity,
		revenue_per_share = excluded.revenue_per_share,
		return_on_assets = excluded.return_on_assets,
		return_on_equity = excluded.return_on_equity,
		gross_profits = excluded.gross_profits,
		free_cashflow = excluded.free_cashflow,
		operating_cashflow = excluded.operating_cashflow,
		earnings_growth = excluded.earnings_growth,
		revenue_growth = excluded.revenue_growth,
		gross_margins = excluded.gross_margins,
		ebitda_margins = excluded.ebitda_margins,
		operating_margins = excluded.operating_margins,
		profit_margins = excluded.profit_margins,
		financial_currency = excluded.financial_currency,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		fin.CurrentPrice.Float(), fin.TargetHighPrice.Float(),
		fin.TargetLowPrice.Float(), fin.TargetMeanPrice.Float(),
		fin.TargetMedianPrice.Float(), fin.RecommendationMean.Float(),
		Str(fin.RecommendationKey), fin.NumberOfAnalystOpinions.Int(),
		fin.TotalCash.Int(), fin.TotalCashPerShare.Float(), fin.Ebitda.Int(),
		fin.TotalDebt.Int(), fin.QuickRatio.Float(), fin.CurrentRatio.Float(),
		fin.TotalRevenue.Int(), fin.DebtToEquity.Float(),
		fin.RevenuePerShare.Float(), fin.ReturnOnAssets.Float(),
		fin.ReturnOnEquity.Float(), fin.GrossProfits.Int(),
		fin.FreeCashflow.Int(), fin.OperatingCashflow.Int(),
		fin.EarningsGrowth.Float(), fin.RevenueGrowth.Float(),
		fin.GrossMargins.Float(), fin.EbitdaMargins.Float(),
		fin.OperatingMargins.Float(), fin.ProfitMargins.Float(),
		Str(fin.FinancialCurrency), time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "financial_data").Msg("save financial data to DB failed")
		return err
	}

	return nil
}

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

type DefaultKeyStatistics struct {
	EnterpriseValue          *Value     `json:"enterpriseValue"`
	ForwardPE                *Value     `json:"forwardPE"`
	ProfitMargins            *Value     `json:"profitMargins"`
	FloatShares              *Value     `json:"floatShares"`
	SharesOutstanding        *Value     `json:"sharesOutstanding"`
	SharesShort              *Value     `json:"sharesShort"`
	SharesShortPriorMonth    *Value     `json:"sharesShortPriorMonth"`
	ShortRatio               *Value     `json:"shortRatio"`
	ShortPercentOfFloat      *Value     `json:"shortPercentOfFloat"`
	HeldPercentInsiders      *Value     `json:"heldPercentInsiders"`
	HeldPercentInstitutions  *Value     `json:"heldPercentInstitutions"`
	Beta                     *Value     `json:"beta"`
	BookValue                *Value     `json:"bookValue"`
	PriceToBook              *Value     `json:"priceToBook"`
	LastFiscalYearEnd        *DateValue `json:"lastFiscalYearEnd"`
	NextFiscalYearEnd        *DateValue `json:"nextFiscalYearEnd"`
	MostRecentQuarter        *DateValue `json:"mostRecentQuarter"`
	EarningsQuarterlyGrowth  *Value     `json:"earningsQuarterlyGrowth"`
	NetIncomeToCommon        *Value     `json:"netIncomeToCommon"`
	TrailingEps              *Value     `json:"trailingEps"`
	ForwardEps               *Value     `json:"forwardEps"`
	PegRatio                 *Value     `json:"pegRatio"`
	EnterpriseToRevenue      *Value     `json:"enterpriseToRevenue"`
	EnterpriseToEbitda       *Value     `json:"enterpriseToEbitda"`
	FiftyTwoWeekChange       *Value     `json:"52WeekChange"`
	SandP52WeekChange        *Value     `json:"SandP52WeekChange"`
	LastDividendValue        *Value     `json:"lastDividendValue"`
	LastDividendDate         *DateValue `json:"lastDividendDate"`
	LastSplitFactor          *string    `json:"lastSplitFactor"`
	LastSplitDate            *DateValue `json:"lastSplitDate"`
}

func (stats *DefaultKeyStatistics) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO default_key_statistics (
		"symbol",
		"enterprise_value",
		"forward_pe",
		"profit_margins",
		"float_shares",
		"shares_outstanding",
		"shares_short",
		"shares_short_prior_month",
		"short_ratio",
		"short_percent_of_float",
		"held_percent_insiders",
		"held_percent_institutions",
		"beta",
		"book_value",
		"price_to_book",
		"last_fiscal_year_end",
		"next_fiscal_year_end",
		"most_recent_quarter",
		"earnings_quarterly_growth",
		"net_income_to_common",
		"trailing_eps",
		"forward_eps",
		"peg_ratio",
		"enterprise_to_revenue",
		"enterprise_to_ebitda",
		"fifty_two_week_change",
		"sandp_52_week_change",
		"last_dividend_value",
		"last_dividend_date",
		"last_split_factor",
		"last_split_date",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		enterprise_value = excluded.enterprise_value,
		forward_pe = excluded.forward_pe,
		profit_margins = excluded.profit_margins,
		float_shares = excluded.float_shares,
		shares_outstanding = excluded.shares_outstanding,
		shares_short = excluded.shares_short,
		shares_short_prior_month = excluded.shares_short_prior_month,
		short_ratio = excluded.short_ratio,
		short_percent_of_float = excluded.short_percent_of_float,
		held_percent_insiders = excluded.held_percent_insiders,
		held_percent_institutions = excluded.held_percent_institutions,
		beta = excluded.beta,
		book_value = excluded.book_value,
		price_to_book = excluded.price_to_book,
		last_fiscal_year_end = excluded.last_fiscal_year_end,
		next_fiscal_year_end = excluded.next_fiscal_year_end,
		most_recent_quarter = excluded.most_recent_quarter,
		earnings_quarterly_growth = excluded.earnings_quarterly_growth,
		net_income_to_common = excluded.net_income_to_common,
		trailing_eps = excluded.trailing_eps,
		forward_eps = excluded.forward_eps,
		peg_ratio = excluded.peg_ratio,
		enterprise_to_revenue = excluded.enterprise_to_revenue,
		enterprise_to_ebitda = excluded.enterprise_to_ebitda,
		fifty_two_week_change = excluded.fifty_two_week_change,
		sandp_52_week_change = excluded.sandp_52_week_change,
		last_dividend_value = excluded.last_dividend_value,
		last_dividend_date = excluded.last_dividend_date,
		last_split_factor = excluded.last_split_factor,
		last_split_date = excluded.last_split_date,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		stats.EnterpriseValue.Int(), stats.ForwardPE.Float(),
		stats.ProfitMargins.Float(), stats.FloatShares.Int(),
		stats.SharesOutstanding.Int(), stats.SharesShort.Int(),
		stats.SharesShortPriorMonth.Int(), stats.ShortRatio.Float(),
		stats.ShortPercentOfFloat.Float(), stats.HeldPercentInsiders.Float(),
		stats.HeldPercentInstitutions.Float(), stats.Beta.Float(),
		stats.BookValue.Float(), stats.PriceToBook.Float(),
		stats.LastFiscalYearEnd.Day(), stats.NextFiscalYearEnd.Day(),
		stats.MostRecentQuarter.Day(), stats.EarningsQuarterlyGrowth.Float(),
		stats.NetIncomeToCommon.Int(), stats.TrailingEps.Float(),
		stats.ForwardEps.Float(), stats.PegRatio.Float(),
		stats.EnterpriseToRevenue.Float(), stats.EnterpriseToEbitda.Float(),
		stats.FiftyTwoWeekChange.Float(), stats.SandP52WeekChange.Float(),
		stats.LastDividendValue.Float(), stats.LastDividendDate.Day(),
		Str(stats.LastSplitFactor), stats.LastSplitDate.Day(), time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "default_key_statistics").Msg("save key statistics to DB failed")
		return err
	}

	return nil
}

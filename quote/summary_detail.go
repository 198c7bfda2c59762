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

type SummaryDetail struct {
	PreviousClose               *Value     `json:"previousClose"`
	Open                        *Value     `json:"open"`
	DayLow                      *Value     `json:"dayLow"`
	DayHigh                     *Value     `json:"dayHigh"`
	DividendRate                *Value     `json:"dividendRate"`
	DividendYield               *Value     `json:"dividendYield"`
	ExDividendDate              *DateValue `json:"exDividendDate"`
	PayoutRatio                 *Value     `json:"payoutRatio"`
	FiveYearAvgDividendYield    *Value     `json:"fiveYearAvgDividendYield"`
	Beta                        *Value     `json:"beta"`
	TrailingPE                  *Value     `json:"trailingPE"`
	ForwardPE                   *Value     `json:"forwardPE"`
	Volume                      *Value     `json:"volume"`
	RegularMarketVolume         *Value     `json:"regularMarketVolume"`
	AverageVolume               *Value     `json:"averageVolume"`
	AverageVolume10Days         *Value     `json:"averageVolume10days"`
	Bid                         *Value     `json:"bid"`
	Ask                         *Value     `json:"ask"`
	BidSize                     *Value     `json:"bidSize"`
	AskSize                     *Value     `json:"askSize"`
	MarketCap                   *Value     `json:"marketCap"`
	FiftyTwoWeekLow             *Value     `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh            *Value     `json:"fiftyTwoWeekHigh"`
	FiftyDayAverage             *Value     `json:"fiftyDayAverage"`
	TwoHundredDayAverage        *Value     `json:"twoHundredDayAverage"`
	TrailingAnnualDividendRate  *Value     `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYield *Value     `json:"trailingAnnualDividendYield"`
	Currency                    *string    `json:"currency"`
}

func (detail *SummaryDetail) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO summary_detail (
		"symbol",
		"previous_close",
		"open",
		"day_low",
		"day_high",
		"dividend_rate",
		"dividend_yield",
		"ex_dividend_date",
		"payout_ratio",
		"five_year_avg_dividend_yield",
		"beta",
		"trailing_pe",
		"forward_pe",
		"volume",
		"regular_market_volume",
		"average_volume",
		"average_volume_10days",
		"bid",
		"ask",
		"bid_size",
		"ask_size",
		"market_cap",
		"fifty_two_week_low",
		"fifty_two_week_high",
		"fifty_day_average",
		"two_hundred_day_average",
		"trailing_annual_dividend_rate",
		"trailing_annual_dividend_yield",
		"currency",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		previous_close = excluded.previous_close,
		open = excluded.open,
		day_low = excluded.day_low,
		day_high = excluded.day_high,
		dividend_rate = excluded.dividend_rate,
		dividend_yield = excluded.dividend_yield,
		ex_dividend_date = excluded.ex_dividend_date,
		payout_ratio = excluded.payout_ratio,
		five_year_avg_dividend_yield = excluded.five_year_avg_dividend_yield,
		beta = excluded.beta,
		trailing_pe = excluded.trailing_pe,
		forward_pe = excluded.forward_pe,
		volume = excluded.volume,
		regular_market_volume = excluded.regular_market_volume,
		average_volume = excluded.average_volume,
		average_volume_10days = excluded.average_volume_10days,
		bid = excluded.bid,
		ask = excluded.ask,
		bid_size = excluded.bid_size,
		ask_size = excluded.ask_size,
		market_cap = excluded.market_cap,
		fifty_two_week_low = excluded.fifty_two_week_low,
		fifty_two_week_high = excluded.fifty_two_week_high,
		fifty_day_average = excluded.fifty_day_average,
		two_hundred_day_average = excluded.two_hundred_day_average,
		trailing_annual_dividend_rate = excluded.trailing_annual_dividend_rate,
		trailing_annual_dividend_yield = excluded.trailing_annual_dividend_yield,
		currency = excluded.currency,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		detail.PreviousClose.Float(), detail.Open.Float(), detail.DayLow.Float(),
		detail.DayHigh.Float(), detail.DividendRate.Float(),
		detail.DividendYield.Float(), detail.ExDividendDate.Day(),
		detail.PayoutRatio.Float(), detail.FiveYearAvgDividendYield.Float(),
		detail.Beta.Float(), detail.TrailingPE.Float(), detail.ForwardPE.Float(),
		detail.Volume.Int(), detail.RegularMarketVolume.Int(),
		detail.AverageVolume.Int(), detail.AverageVolume10Days.Int(),
		detail.Bid.Float(), detail.Ask.Float(), detail.BidSize.Int(),
		detail.AskSize.Int(), detail.MarketCap.Int(),
		detail.FiftyTwoWeekLow.Float(), detail.FiftyTwoWeekHigh.Float(),
		detail.FiftyDayAverage.Float(), detail.TwoHundredDayAverage.Float(),
		detail.TrailingAnnualDividendRate.Float(),
		detail.TrailingAnnualDividendYield.Float(), Str(detail.Currency),
		time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "summary_detail").Msg("save summary detail to DB failed")
		return err
	}

	return nil
}

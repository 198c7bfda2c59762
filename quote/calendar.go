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

type CalendarEarnings struct {
	EarningsDate    []DateValue `json:"earningsDate"`
	EarningsAverage *Value      `json:"earningsAverage"`
	EarningsLow     *Value      `json:"earningsLow"`
	EarningsHigh    *Value      `json:"earningsHigh"`
	RevenueAverage  *Value      `json:"revenueAverage"`
	RevenueLow      *Value      `json:"revenueLow"`
	RevenueHigh     *Value      `json:"revenueHigh"`
}

type CalendarEvents struct {
	Earnings       *CalendarEarnings `json:"earnings"`
	ExDividendDate *DateValue        `json:"exDividendDate"`
	DividendDate   *DateValue        `json:"dividendDate"`
}

// SaveDB writes one row per announced earnings date. The estimate columns and
// dividend dates repeat across rows for the same symbol since they are
// properties of the upcoming announcement, not of any single candidate date.
func (calendar *CalendarEvents) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	if calendar.Earnings == nil {
		return nil
	}

	sqlStmt := `INSERT INTO calendar_events (
		"symbol",
		"earnings_date",
		"earnings_average",
		"earnings_low",
		"earnings_high",
		"revenue_average",
		"revenue_low",
		"revenue_high",
		"ex_dividend_date",
		"dividend_date",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, earnings_date) DO UPDATE SET
		earnings_average = excluded.earnings_average,
		earnings_low = excluded.earnings_low,
		earnings_high = excluded.earnings_high,
		revenue_average = excluded.revenue_average,
		revenue_low = excluded.revenue_low,
		revenue_high = excluded.revenue_high,
		ex_dividend_date = excluded.ex_dividend_date,
		dividend_date = excluded.dividend_date,
		last_updated = excluded.last_updated`

	for idx := range calendar.Earnings.EarningsDate {
		earningsDate, ok := calendar.Earnings.EarningsDate[idx].DayString()
		if !ok {
			log.Warn().Str("Symbol", symbol).Msg("calendar events entry has no earnings date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, earningsDate,
			calendar.Earnings.EarningsAverage.Float(),
			calendar.Earnings.EarningsLow.Float(),
			calendar.Earnings.EarningsHigh.Float(),
			calendar.Earnings.RevenueAverage.Int(),
			calendar.Earnings.RevenueLow.Int(),
			calendar.Earnings.RevenueHigh.Int(), calendar.ExDividendDate.Day(),
			calendar.DividendDate.Day(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("EarningsDate", earningsDate).Str("Table", "calendar_events").Msg("save calendar events to DB failed")
			return err
		}
	}

	return nil
}

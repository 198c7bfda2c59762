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
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type EarningsHistoryEntry struct {
	Quarter         *DateValue `json:"quarter"`
	Period          *string    `json:"period"`
	EpsActual       *Value     `json:"epsActual"`
	EpsEstimate     *Value     `json:"epsEstimate"`
	EpsDifference   *Value     `json:"epsDifference"`
	SurprisePercent *Value     `json:"surprisePercent"`
}

type EarningsHistory struct {
	History []EarningsHistoryEntry `json:"history"`
}

func (history *EarningsHistory) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO earnings_history (
		"symbol",
		"quarter",
		"period",
		"eps_actual",
		"eps_estimate",
		"eps_difference",
		"surprise_percent",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, quarter) DO UPDATE SET
		period = excluded.period,
		eps_actual = excluded.eps_actual,
		eps_estimate = excluded.eps_estimate,
		eps_difference = excluded.eps_difference,
		surprise_percent = excluded.surprise_percent,
		last_updated = excluded.last_updated`

	for _, entry := range history.History {
		quarter, ok := entry.Quarter.DayString()
		if !ok {
			log.Warn().Str("Symbol", symbol).Msg("earnings history entry has no quarter; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, quarter,
			Str(entry.Period), entry.EpsActual.Float(),
			entry.EpsEstimate.Float(), entry.EpsDifference.Float(),
			entry.SurprisePercent.Float(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Quarter", quarter).Str("Table", "earnings_history").Msg("save earnings history to DB failed")
			return err
		}
	}

	return nil
}

// EarningsChartPoint dates arrive as strings like "4Q2023".
type EarningsChartPoint struct {
	Date     *string `json:"date"`
	Actual   *Value  `json:"actual"`
	Estimate *Value  `json:"estimate"`
}

// FinancialsChartYearly dates are bare years.
type FinancialsChartYearly struct {
	Date     *int64 `json:"date"`
	Revenue  *Value `json:"revenue"`
	Earnings *Value `json:"earnings"`
}

type FinancialsChartQuarterly struct {
	Date     *string `json:"date"`
	Revenue  *Value  `json:"revenue"`
	Earnings *Value  `json:"earnings"`
}

type Earnings struct {
	EarningsChart *struct {
		Quarterly                  []EarningsChartPoint `json:"quarterly"`
		CurrentQuarterEstimate     *Value               `json:"currentQuarterEstimate"`
		CurrentQuarterEstimateDate *string              `json:"currentQuarterEstimateDate"`
		CurrentQuarterEstimateYear *int64               `json:"currentQuarterEstimateYear"`
	} `json:"earningsChart"`
	FinancialsChart *struct {
		Yearly    []FinancialsChartYearly    `json:"yearly"`
		Quarterly []FinancialsChartQuarterly `json:"quarterly"`
	} `json:"financialsChart"`
}

// SaveDB fans the earnings module out over three tables: the quarterly EPS
// chart and the yearly/quarterly revenue-earnings charts.
func (earnings *Earnings) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	if earnings.EarningsChart != nil {
		sqlStmt := `INSERT INTO earnings_chart (
			"symbol",
			"date",
			"actual",
			"estimate",
			"last_updated"
		) VALUES (
			?, ?, ?, ?, ?
		) ON CONFLICT (symbol, date) DO UPDATE SET
			actual = excluded.actual,
			estimate = excluded.estimate,
			last_updated = excluded.last_updated`

		for _, point := range earnings.EarningsChart.Quarterly {
			if point.Date == nil {
				log.Warn().Str("Symbol", symbol).Msg("earnings chart point has no date; skipping")
				continue
			}

			if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *point.Date,
				point.Actual.Float(), point.Estimate.Float(), time.Now()); err != nil {
				log.Error().Err(err).Str("Symbol", symbol).Str("Date", *point.Date).Str("Table", "earnings_chart").Msg("save earnings chart to DB failed")
				return err
			}
		}
	}

	if earnings.FinancialsChart == nil {
		return nil
	}

	sqlStmt := `INSERT INTO financials_chart_yearly (
		"symbol",
		"date",
		"revenue",
		"earnings",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?
	) ON CONFLICT (symbol, date) DO UPDATE SET
		revenue = excluded.revenue,
		earnings = excluded.earnings,
		last_updated = excluded.last_updated`

	for _, point := range earnings.FinancialsChart.Yearly {
		if point.Date == nil {
			log.Warn().Str("Symbol", symbol).Msg("yearly financials chart point has no date; skipping")
			continue
		}

		date := strconv.FormatInt(*point.Date, 10)
		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, date,
			point.Revenue.Int(), point.Earnings.Int(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Date", date).Str("Table", "financials_chart_yearly").Msg("save yearly financials chart to DB failed")
			return err
		}
	}

	sqlStmt = `INSERT INTO financials_chart_quarterly (
		"symbol",
		"date",
		"revenue",
		"earnings",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?
	) ON CONFLICT (symbol, date) DO UPDATE SET
		revenue = excluded.revenue,
		earnings = excluded.earnings,
		last_updated = excluded.last_updated`

	for _, point := range earnings.FinancialsChart.Quarterly {
		if point.Date == nil {
			log.Warn().Str("Symbol", symbol).Msg("quarterly financials chart point has no date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *point.Date,
			point.Revenue.Int(), point.Earnings.Int(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Date", *point.Date).Str("Table", "financials_chart_quarterly").Msg("save quarterly financials chart to DB failed")
			return err
		}
	}

	return nil
}

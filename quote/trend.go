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

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// RecommendationPeriod counts are plain integers in the source document, not
// wrapped triplets.
type RecommendationPeriod struct {
	Period     *string `json:"period"`
	StrongBuy  *int64  `json:"strongBuy"`
	Buy        *int64  `json:"buy"`
	Hold       *int64  `json:"hold"`
	Sell       *int64  `json:"sell"`
	StrongSell *int64  `json:"strongSell"`
}

type RecommendationTrend struct {
	Trend []RecommendationPeriod `json:"trend"`
}

// SaveDB replaces the symbol's full period set. The source recomputes the
// trend window every cycle, so stale periods must not linger; this is the
// one table that reconciles by delete-then-reinsert instead of pure upsert.
func (trend *RecommendationTrend) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	tx, err := dbConn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recommendation_trend WHERE symbol=?", symbol); err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "recommendation_trend").Msg("clear recommendation trend failed")
		if err2 := tx.Rollback(); err2 != nil {
			log.Error().Err(err2).Msg("error rolling back tx")
		}
		return err
	}

	sqlStmt := `INSERT INTO recommendation_trend (
		"symbol",
		"period",
		"strong_buy",
		"buy",
		"hold",
		"sell",
		"strong_sell",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?
	)`

	for _, period := range trend.Trend {
		if period.Period == nil {
			log.Warn().Str("Symbol", symbol).Msg("recommendation trend entry has no period; skipping")
			continue
		}

		if _, err := tx.ExecContext(ctx, sqlStmt, symbol, *period.Period,
			I64(period.StrongBuy), I64(period.Buy), I64(period.Hold),
			I64(period.Sell), I64(period.StrongSell), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Period", *period.Period).Str("Table", "recommendation_trend").Msg("save recommendation trend to DB failed")
			if err2 := tx.Rollback(); err2 != nil {
				log.Error().Err(err2).Msg("error rolling back tx")
			}
			return err
		}
	}

	return tx.Commit()
}

type TrendEstimate struct {
	Period *string `json:"period"`
	Growth *Value  `json:"growth"`
}

type IndexTrend struct {
	Symbol    *string         `json:"symbol"`
	PeRatio   *Value          `json:"peRatio"`
	PegRatio  *Value          `json:"pegRatio"`
	Estimates []TrendEstimate `json:"estimates"`
}

// SaveDB upserts one row per estimate period. The index-level ratios repeat
// on every row; the table is written far more often than it is read and the
// duplication keeps the natural key simple.
func (trend *IndexTrend) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO index_trend (
		"symbol",
		"period",
		"growth",
		"index_symbol",
		"pe_ratio",
		"peg_ratio",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, period) DO UPDATE SET
		growth = excluded.growth,
		index_symbol = excluded.index_symbol,
		pe_ratio = excluded.pe_ratio,
		peg_ratio = excluded.peg_ratio,
		last_updated = excluded.last_updated`

	for _, estimate := range trend.Estimates {
		if estimate.Period == nil {
			log.Warn().Str("Symbol", symbol).Msg("index trend estimate has no period; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *estimate.Period,
			estimate.Growth.Float(), Str(trend.Symbol), trend.PeRatio.Float(),
			trend.PegRatio.Float(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Period", *estimate.Period).Str("Table", "index_trend").Msg("save index trend to DB failed")
			return err
		}
	}

	return nil
}

type SectorTrend struct {
	Symbol    *string         `json:"symbol"`
	PeRatio   *Value          `json:"peRatio"`
	PegRatio  *Value          `json:"pegRatio"`
	Estimates []TrendEstimate `json:"estimates"`
}

func (trend *SectorTrend) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	var estimates any
	if len(trend.Estimates) > 0 {
		encoded, err := json.Marshal(trend.Estimates)
		if err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Msg("could not encode sector trend estimates")
			return err
		}
		estimates = string(encoded)
	}

	sqlStmt := `INSERT INTO sector_trend (
		"symbol",
		"sector_symbol",
		"pe_ratio",
		"peg_ratio",
		"estimates",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		sector_symbol = excluded.sector_symbol,
		pe_ratio = excluded.pe_ratio,
		peg_ratio = excluded.peg_ratio,
		estimates = excluded.estimates,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol, Str(trend.Symbol),
		trend.PeRatio.Float(), trend.PegRatio.Float(), estimates, time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "sector_trend").Msg("save sector trend to DB failed")
		return err
	}

	return nil
}

type EarningsEstimate struct {
	Avg              *Value `json:"avg"`
	Low              *Value `json:"low"`
	High             *Value `json:"high"`
	YearAgoEps       *Value `json:"yearAgoEps"`
	NumberOfAnalysts *Value `json:"numberOfAnalysts"`
	Growth           *Value `json:"growth"`
}

type RevenueEstimate struct {
	Avg              *Value `json:"avg"`
	Low              *Value `json:"low"`
	High             *Value `json:"high"`
	YearAgoRevenue   *Value `json:"yearAgoRevenue"`
	NumberOfAnalysts *Value `json:"numberOfAnalysts"`
	Growth           *Value `json:"growth"`
}

type EarningsTrendPeriod struct {
	Period           *string           `json:"period"`
	EndDate          *string           `json:"endDate"`
	Growth           *Value            `json:"growth"`
	EarningsEstimate *EarningsEstimate `json:"earningsEstimate"`
	RevenueEstimate  *RevenueEstimate  `json:"revenueEstimate"`
	EpsTrend         json.RawMessage   `json:"epsTrend"`
	EpsRevisions     json.RawMessage   `json:"epsRevisions"`
}

type EarningsTrend struct {
	Trend []EarningsTrendPeriod `json:"trend"`
}

func (trend *EarningsTrend) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO earnings_trend (
		"symbol",
		"period",
		"end_date",
		"growth",
		"earnings_estimate_avg",
		"earnings_estimate_low",
		"earnings_estimate_high",
		"earnings_estimate_year_ago_eps",
		"earnings_estimate_analysts",
		"earnings_estimate_growth",
		"revenue_estimate_avg",
		"revenue_estimate_low",
		"revenue_estimate_high",
		"revenue_estimate_year_ago_revenue",
		"revenue_estimate_analysts",
		"revenue_estimate_growth",
		"eps_trend",
		"eps_revisions",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, period) DO UPDATE SET
		end_date = excluded.end_date,
		growth = excluded.growth,
		earnings_estimate_avg = excluded.earnings_estimate_avg,
		earnings_estimate_low = excluded.earnings_estimate_low,
		earnings_estimate_high = excluded.earnings_estimate_high,
		earnings_estimate_year_ago_eps = excluded.earnings_estimate_year_ago_eps,
		earnings_estimate_analysts = excluded.earnings_estimate_analysts,
		earnings_estimate_growth = excluded.earnings_estimate_growth,
		revenue_estimate_avg = excluded.revenue_estimate_avg,
		revenue_estimate_low = excluded.revenue_estimate_low,
		revenue_estimate_high = excluded.revenue_estimate_high,
		revenue_estimate_year_ago_revenue = excluded.revenue_estimate_year_ago_revenue,
		revenue_estimate_analysts = excluded.revenue_estimate_analysts,
		revenue_estimate_growth = excluded.revenue_estimate_growth,
		eps_trend = excluded.eps_trend,
		eps_revisions = excluded.eps_revisions,
		last_updated = excluded.last_updated`

	for _, period := range trend.Trend {
		if period.Period == nil {
			log.Warn().Str("Symbol", symbol).Msg("earnings trend entry has no period; skipping")
			continue
		}

		earnings := period.EarningsEstimate
		if earnings == nil {
			earnings = &EarningsEstimate{}
		}
		revenue := period.RevenueEstimate
		if revenue == nil {
			revenue = &RevenueEstimate{}
		}

		var epsTrend, epsRevisions any
		if len(period.EpsTrend) > 0 {
			epsTrend = string(period.EpsTrend)
		}
		if len(period.EpsRevisions) > 0 {
			epsRevisions = string(period.EpsRevisions)
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *period.Period,
			Str(period.EndDate), period.Growth.Float(), earnings.Avg.Float(),
			earnings.Low.Float(), earnings.High.Float(),
			earnings.YearAgoEps.Float(), earnings.NumberOfAnalysts.Int(),
			earnings.Growth.Float(), revenue.Avg.Int(), revenue.Low.Int(),
			revenue.High.Int(), revenue.YearAgoRevenue.Int(),
			revenue.NumberOfAnalysts.Int(), revenue.Growth.Float(),
			epsTrend, epsRevisions, time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Period", *period.Period).Str("Table", "earnings_trend").Msg("save earnings trend to DB failed")
			return err
		}
	}

	return nil
}

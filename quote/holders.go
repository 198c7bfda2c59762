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

type MajorHoldersBreakdown struct {
	InsidersPercentHeld          *Value `json:"insidersPercentHeld"`
	InstitutionsPercentHeld      *Value `json:"institutionsPercentHeld"`
	InstitutionsFloatPercentHeld *Value `json:"institutionsFloatPercentHeld"`
	InstitutionsCount            *Value `json:"institutionsCount"`
}

func (breakdown *MajorHoldersBreakdown) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO major_holders_breakdown (
		"symbol",
		"insiders_percent_held",
		"institutions_percent_held",
		"institutions_float_percent_held",
		"institutions_count",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		insiders_percent_held = excluded.insiders_percent_held,
		institutions_percent_held = excluded.institutions_percent_held,
		institutions_float_percent_held = excluded.institutions_float_percent_held,
		institutions_count = excluded.institutions_count,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		breakdown.InsidersPercentHeld.Float(),
		breakdown.InstitutionsPercentHeld.Float(),
		breakdown.InstitutionsFloatPercentHeld.Float(),
		breakdown.InstitutionsCount.Int(), time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "major_holders_breakdown").Msg("save major holders breakdown to DB failed")
		return err
	}

	return nil
}

// DirectHolder rows are not queried relationally; the roster is persisted as
// one JSON-encoded text column on major_direct_holders.
type DirectHolder struct {
	Name                   *string    `json:"name"`
	Relation               *string    `json:"relation"`
	TransactionDescription *string    `json:"transactionDescription"`
	LatestTransDate        *DateValue `json:"latestTransDate"`
	PositionDirect         *Value     `json:"positionDirect"`
	PositionDirectDate     *DateValue `json:"positionDirectDate"`
}

type MajorDirectHolders struct {
	Holders []DirectHolder `json:"holders"`
}

func (direct *MajorDirectHolders) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	var holders any
	if len(direct.Holders) > 0 {
		encoded, err := json.Marshal(direct.Holders)
		if err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Msg("could not encode direct holder roster")
			return err
		}
		holders = string(encoded)
	}

	sqlStmt := `INSERT INTO major_direct_holders (
		"symbol",
		"holders",
		"last_updated"
	) VALUES (
		?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		holders = excluded.holders,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol, holders, time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "major_direct_holders").Msg("save major direct holders to DB failed")
		return err
	}

	return nil
}

type NetSharePurchaseActivity struct {
	Period                   *string `json:"period"`
	BuyInfoCount             *Value  `json:"buyInfoCount"`
	BuyInfoShares            *Value  `json:"buyInfoShares"`
	BuyPercentInsiderShares  *Value  `json:"buyPercentInsiderShares"`
	SellInfoCount            *Value  `json:"sellInfoCount"`
	SellInfoShares           *Value  `json:"sellInfoShares"`
	SellPercentInsiderShares *Value  `json:"sellPercentInsiderShares"`
	NetInfoCount             *Value  `json:"netInfoCount"`
	NetInfoShares            *Value  `json:"netInfoShares"`
	NetPercentInsiderShares  *Value  `json:"netPercentInsiderShares"`
	TotalInsiderShares       *Value  `json:"totalInsiderShares"`
}

func (activity *NetSharePurchaseActivity) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO net_share_purchase_activity (
		"symbol",
		"period",
		"buy_info_count",
		"buy_info_shares",
		"buy_percent_insider_shares",
		"sell_info_count",
		"sell_info_shares",
		"sell_percent_insider_shares",
		"net_info_count",
		"net_info_shares",
		"net_percent_insider_shares",
		"total_insider_shares",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		period = excluded.period,
		buy_info_count = excluded.buy_info_count,
		buy_info_shares = excluded.buy_info_shares,
		buy_percent_insider_shares = excluded.buy_percent_insider_shares,
		sell_info_count = excluded.sell_info_count,
		sell_info_shares = excluded.sell_info_shares,
		sell_percent_insider_shares = excluded.sell_percent_insider_shares,
		net_info_count = excluded.net_info_count,
		net_info_shares = excluded.net_info_shares,
		net_percent_insider_shares = excluded.net_percent_insider_shares,
		total_insider_shares = excluded.total_insider_shares,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol, Str(activity.Period),
		activity.BuyInfoCount.Int(), activity.BuyInfoShares.Int(),
		activity.BuyPercentInsiderShares.Float(), activity.SellInfoCount.Int(),
		activity.SellInfoShares.Int(),
		activity.SellPercentInsiderShares.Float(), activity.NetInfoCount.Int(),
		activity.NetInfoShares.Int(),
		activity.NetPercentInsiderShares.Float(),
		activity.TotalInsiderShares.Int(), time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "net_share_purchase_activity").Msg("save net share purchase activity to DB failed")
		return err
	}

	return nil
}

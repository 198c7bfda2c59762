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

type OwnershipEntry struct {
	ReportDate   *DateValue `json:"reportDate"`
	Organization *string    `json:"organization"`
	PctHeld      *Value     `json:"pctHeld"`
	Position     *Value     `json:"position"`
	Value        *Value     `json:"value"`
	PctChange    *Value     `json:"pctChange"`
}

type FundOwnership struct {
	OwnershipList []OwnershipEntry `json:"ownershipList"`
}

type InstitutionOwnership struct {
	OwnershipList []OwnershipEntry `json:"ownershipList"`
}

// saveOwnership serves both fund and institution rosters; the two tables share
// a column layout and only differ by name.
func saveOwnership(ctx context.Context, symbol, tbl string, entries []OwnershipEntry, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO ` + tbl + ` (
		"symbol",
		"report_date",
		"organization",
		"pct_held",
		"position",
		"value",
		"pct_change",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, report_date, organization) DO UPDATE SET
		pct_held = excluded.pct_held,
		position = excluded.position,
		value = excluded.value,
		pct_change = excluded.pct_change,
		last_updated = excluded.last_updated`

	for _, entry := range entries {
		reportDate, ok := entry.ReportDate.DayString()
		if !ok || entry.Organization == nil {
			log.Warn().Str("Symbol", symbol).Str("Table", tbl).Msg("ownership entry has no report date or organization; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, reportDate,
			*entry.Organization, entry.PctHeld.Float(), entry.Position.Int(),
			entry.Value.Int(), entry.PctChange.Float(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Organization", *entry.Organization).Str("Table", tbl).Msg("save ownership to DB failed")
			return err
		}
	}

	return nil
}

func (ownership *FundOwnership) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	return saveOwnership(ctx, symbol, "fund_ownership", ownership.OwnershipList, dbConn)
}

func (ownership *InstitutionOwnership) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	return saveOwnership(ctx, symbol, "institution_ownership", ownership.OwnershipList, dbConn)
}

type InsiderHolder struct {
	Name                   *string    `json:"name"`
	Relation               *string    `json:"relation"`
	Url                    *string    `json:"url"`
	TransactionDescription *string    `json:"transactionDescription"`
	LatestTransDate        *DateValue `json:"latestTransDate"`
	PositionDirect         *Value     `json:"positionDirect"`
	PositionDirectDate     *DateValue `json:"positionDirectDate"`
	PositionIndirect       *Value     `json:"positionIndirect"`
	PositionIndirectDate   *DateValue `json:"positionIndirectDate"`
}

type InsiderHolders struct {
	Holders []InsiderHolder `json:"holders"`
}

func (insiders *InsiderHolders) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO insider_holders (
		"symbol",
		"name",
		"relation",
		"url",
		"transaction_description",
		"latest_trans_date",
		"position_direct",
		"position_direct_date",
		"position_indirect",
		"position_indirect_date",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, name, relation) DO UPDATE SET
		url = excluded.url,
		transaction_description = excluded.transaction_description,
		latest_trans_date = excluded.latest_trans_date,
		position_direct = excluded.position_direct,
		position_direct_date = excluded.position_direct_date,
		position_indirect = excluded.position_indirect,
		position_indirect_date = excluded.position_indirect_date,
		last_updated = excluded.last_updated`

	for _, holder := range insiders.Holders {
		if holder.Name == nil {
			log.Warn().Str("Symbol", symbol).Msg("insider holder has no name; skipping")
			continue
		}

		relation := ""
		if holder.Relation != nil {
			relation = *holder.Relation
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *holder.Name,
			relation, Str(holder.Url), Str(holder.TransactionDescription),
			holder.LatestTransDate.Day(), holder.PositionDirect.Int(),
			holder.PositionDirectDate.Day(), holder.PositionIndirect.Int(),
			holder.PositionIndirectDate.Day(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Name", *holder.Name).Str("Table", "insider_holders").Msg("save insider holders to DB failed")
			return err
		}
	}

	return nil
}

type InsiderTransaction struct {
	FilerName       *string    `json:"filerName"`
	FilerRelation   *string    `json:"filerRelation"`
	TransactionText *string    `json:"transactionText"`
	MoneyText       *string    `json:"moneyText"`
	Ownership       *string    `json:"ownership"`
	StartDate       *DateValue `json:"startDate"`
	Shares          *Value     `json:"shares"`
	Value           *Value     `json:"value"`
	FilerUrl        *string    `json:"filerUrl"`
	MaxAge          *int64     `json:"maxAge"`
}

type InsiderTransactions struct {
	Transactions []InsiderTransaction `json:"transactions"`
}

func (insiders *InsiderTransactions) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO insider_transactions (
		"symbol",
		"filer_name",
		"start_date",
		"filer_relation",
		"transaction_text",
		"money_text",
		"ownership",
		"shares",
		"value",
		"filer_url",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, filer_name, start_date) DO UPDATE SET
		filer_relation = excluded.filer_relation,
		transaction_text = excluded.transaction_text,
		money_text = excluded.money_text,
		ownership = excluded.ownership,
		shares = excluded.shares,
		value = excluded.value,
		filer_url = excluded.filer_url,
		last_updated = excluded.last_updated`

	for _, txn := range insiders.Transactions {
		startDate, ok := txn.StartDate.DayString()
		if !ok || txn.FilerName == nil {
			log.Warn().Str("Symbol", symbol).Msg("insider transaction has no filer name or start date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, *txn.FilerName,
			startDate, Str(txn.FilerRelation), Str(txn.TransactionText),
			Str(txn.MoneyText), Str(txn.Ownership), txn.Shares.Int(),
			txn.Value.Int(), Str(txn.FilerUrl), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("FilerName", *txn.FilerName).Str("Table", "insider_transactions").Msg("save insider transactions to DB failed")
			return err
		}
	}

	return nil
}

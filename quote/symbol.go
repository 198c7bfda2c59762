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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SymbolRecord is the root row every dependent table hangs off of. Deleting
// it cascades through all sub-document tables.
type SymbolRecord struct {
	Symbol       string  `db:"symbol"`
	Name         string  `db:"name"`
	CategoryID   string  `db:"category_id"`
	CategoryName string  `db:"category_name"`
	LastPrice    float64 `db:"last_price"`
	MarketCap    int64   `db:"market_cap"`
}

func (record *SymbolRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", record.Symbol)
	e.Str("CategoryID", record.CategoryID)
	e.Float64("LastPrice", record.LastPrice)
}

// SaveDB creates or refreshes the symbol's root row. Empty incoming fields
// leave the stored values untouched so a bare-ticker refresh does not erase
// watchlist or screener metadata already on the row.
func (record *SymbolRecord) SaveDB(ctx context.Context, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO symbols (
		"symbol",
		"name",
		"category_id",
		"category_name",
		"last_price",
		"market_cap",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		name = coalesce(nullif(excluded.name, ''), name),
		category_id = coalesce(nullif(excluded.category_id, ''), category_id),
		category_name = coalesce(nullif(excluded.category_name, ''), category_name),
		last_price = iif(excluded.last_price <> 0, excluded.last_price, last_price),
		market_cap = iif(excluded.market_cap <> 0, excluded.market_cap, market_cap),
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, record.Symbol, record.Name,
		record.CategoryID, record.CategoryName, record.LastPrice,
		record.MarketCap, time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", record.Symbol).Str("Table", "symbols").Msg("save symbol record to DB failed")
		return err
	}

	return nil
}

// DeleteSymbol removes a symbol's root row; foreign keys cascade the delete
// through every dependent table.
func DeleteSymbol(ctx context.Context, dbConn *sql.DB, symbol string) error {
	if _, err := dbConn.ExecContext(ctx, "DELETE FROM symbols WHERE symbol=?", symbol); err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Msg("delete symbol record failed")
		return err
	}
	return nil
}

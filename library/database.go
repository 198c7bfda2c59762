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
package library

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/penny-vault/pvquote/db"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog/log"

	_ "modernc.org/sqlite"
)

// subDocTables are every table scoped to a symbol, in schema order.
var subDocTables = []string{
	"asset_profile", "summary_detail", "price", "default_key_statistics",
	"financial_data", "major_holders_breakdown", "major_direct_holders",
	"net_share_purchase_activity", "sector_trend", "recommendation_trend",
	"index_trend", "earnings_trend", "income_statement_history",
	"income_statement_history_quarterly", "balance_sheet_history",
	"balance_sheet_history_quarterly", "cashflow_statement_history",
	"cashflow_statement_history_quarterly", "earnings_history",
	"earnings_chart", "financials_chart_yearly", "financials_chart_quarterly",
	"calendar_events", "upgrade_downgrade_history", "fund_ownership",
	"institution_ownership", "insider_holders", "insider_transactions",
}

type Library struct {
	Path string
	DB   *sql.DB
}

// Open opens the quote library at the given path, creating the parent
// directory when needed. A single connection is used so writes serialize
// through SQLite without busy errors.
func Open(ctx context.Context, path string) (*Library, error) {
	dsn := path
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dsn = "file:" + path
	}

	if strings.Contains(dsn, "?") {
		dsn += "&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	} else {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	dbConn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	dbConn.SetMaxOpenConns(1)

	if err := dbConn.PingContext(ctx); err != nil {
		if err2 := dbConn.Close(); err2 != nil {
			log.Error().Err(err2).Msg("error closing database after failed ping")
		}
		return nil, err
	}

	return &Library{Path: path, DB: dbConn}, nil
}

func (myLibrary *Library) Close() error {
	return myLibrary.DB.Close()
}

// Migrate brings the library schema up to the current version.
func (myLibrary *Library) Migrate() error {
	return db.Migrate(myLibrary.DB)
}

// Reset drops all stored quote data and rebuilds the schema.
func (myLibrary *Library) Reset() error {
	return db.Reset(myLibrary.DB)
}

// NumSymbols returns the count of tracked symbols
func (myLibrary *Library) NumSymbols(ctx context.Context) (int, error) {
	count := 0
	err := myLibrary.DB.QueryRowContext(ctx, "SELECT count(*) FROM symbols").Scan(&count)
	return count, err
}

// TotalRecords returns the total row count across every quote table
func (myLibrary *Library) TotalRecords(ctx context.Context) (int, error) {
	total, err := myLibrary.NumSymbols(ctx)
	if err != nil {
		return 0, err
	}

	for _, tbl := range subDocTables {
		count := 0
		if err := myLibrary.DB.QueryRowContext(ctx, "SELECT count(*) FROM "+tbl).Scan(&count); err != nil {
			return 0, err
		}
		total += count
	}

	return total, nil
}

// LastUpdated returns the time the library was most recently written
func (myLibrary *Library) LastUpdated(ctx context.Context) (time.Time, error) {
	// select the column directly; aggregate expressions lose the declared
	// TIMESTAMP type and scan back as text
	var lastUpdated time.Time
	err := myLibrary.DB.QueryRowContext(ctx,
		"SELECT last_updated FROM symbols ORDER BY last_updated DESC LIMIT 1").Scan(&lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return lastUpdated, nil
}

// Symbols returns every tracked symbol record ordered by ticker
func (myLibrary *Library) Symbols(ctx context.Context) ([]*quote.SymbolRecord, error) {
	var symbols []*quote.SymbolRecord
	err := sqlscan.Select(ctx, myLibrary.DB, &symbols,
		`SELECT symbol, coalesce(name, '') AS name, coalesce(category_id, '') AS category_id,
coalesce(category_name, '') AS category_name, coalesce(last_price, 0) AS last_price,
coalesce(market_cap, 0) AS market_cap FROM symbols ORDER BY symbol`)
	return symbols, err
}

// CategoryCount holds the symbol tally for one watchlist category.
type CategoryCount struct {
	CategoryID   string `db:"category_id"`
	CategoryName string `db:"category_name"`
	NumSymbols   int    `db:"num_symbols"`
}

// Categories returns symbol counts grouped by watchlist category
func (myLibrary *Library) Categories(ctx context.Context) ([]*CategoryCount, error) {
	var categories []*CategoryCount
	err := sqlscan.Select(ctx, myLibrary.DB, &categories,
		`SELECT coalesce(category_id, '') AS category_id, coalesce(category_name, '') AS category_name,
count(*) AS num_symbols FROM symbols GROUP BY category_id, category_name ORDER BY category_id`)
	return categories, err
}

// TableCount holds the row tally for one quote table.
type TableCount struct {
	Table string
	Rows  int
}

// TableCounts returns per-table row counts for every quote table with data
func (myLibrary *Library) TableCounts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(subDocTables))
	for _, tbl := range subDocTables {
		count := 0
		if err := myLibrary.DB.QueryRowContext(ctx, "SELECT count(*) FROM "+tbl).Scan(&count); err != nil {
			return nil, err
		}
		if count > 0 {
			counts = append(counts, TableCount{Table: tbl, Rows: count})
		}
	}
	return counts, nil
}

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
package db_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/penny-vault/pvquote/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbConn, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	dbConn.SetMaxOpenConns(1)
	t.Cleanup(func() {
		require.NoError(t, dbConn.Close())
	})

	return dbConn
}

func tableNames(t *testing.T, dbConn *sql.DB) []string {
	t.Helper()

	rows, err := dbConn.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rows.Close())
	}()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrateCreatesSchema(t *testing.T) {
	dbConn := openTestDB(t)
	require.NoError(t, db.Migrate(dbConn))

	names := tableNames(t, dbConn)
	assert.Contains(t, names, "symbols")
	assert.Contains(t, names, "asset_profile")
	assert.Contains(t, names, "recommendation_trend")
	assert.Contains(t, names, "cashflow_statement_history_quarterly")
	assert.Contains(t, names, "insider_transactions")
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbConn := openTestDB(t)
	require.NoError(t, db.Migrate(dbConn))
	require.NoError(t, db.Migrate(dbConn))
}

func TestResetDropsData(t *testing.T) {
	dbConn := openTestDB(t)
	require.NoError(t, db.Migrate(dbConn))

	_, err := dbConn.Exec("INSERT INTO symbols (symbol, name) VALUES ('AAPL', 'Apple Inc')")
	require.NoError(t, err)

	require.NoError(t, db.Reset(dbConn))

	count := 0
	require.NoError(t, dbConn.QueryRow("SELECT count(*) FROM symbols").Scan(&count))
	assert.Equal(t, 0, count)
}

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
package db

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*
var migrationFS embed.FS

func newMigration(dbConn *sql.DB) (*migrate.Migrate, error) {
	migrationDir, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, err
	}

	driver, err := sqlite.WithInstance(dbConn, &sqlite.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", migrationDir, "sqlite", driver)
}

// Migrate brings the quote library schema up to the current version. A
// library that is already current is not an error.
func Migrate(dbConn *sql.DB) error {
	migration, err := newMigration(dbConn)
	if err != nil {
		return err
	}

	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Reset tears the schema down and rebuilds it, discarding all stored quote
// data.
func Reset(dbConn *sql.DB) error {
	migration, err := newMigration(dbConn)
	if err != nil {
		return err
	}

	if err := migration.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

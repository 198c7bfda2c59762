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

// GradeChange epoch timestamps are plain integers in the source document.
type GradeChange struct {
	EpochGradeDate *int64  `json:"epochGradeDate"`
	Firm           *string `json:"firm"`
	ToGrade        *string `json:"toGrade"`
	FromGrade      *string `json:"fromGrade"`
	Action         *string `json:"action"`
}

type UpgradeDowngradeHistory struct {
	History []GradeChange `json:"history"`
}

// SaveDB appends new grade changes. Published history never shrinks, so rows
// are only ever added or refreshed; nothing is reconciled away.
func (upgrades *UpgradeDowngradeHistory) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO upgrade_downgrade_history (
		"symbol",
		"grade_date",
		"firm",
		"to_grade",
		"from_grade",
		"action",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, grade_date, firm) DO UPDATE SET
		to_grade = excluded.to_grade,
		from_grade = excluded.from_grade,
		action = excluded.action,
		last_updated = excluded.last_updated`

	for _, change := range upgrades.History {
		if change.EpochGradeDate == nil || change.Firm == nil {
			log.Warn().Str("Symbol", symbol).Msg("grade change has no date or firm; skipping")
			continue
		}

		gradeDate := time.Unix(*change.EpochGradeDate, 0).UTC().Format(time.DateOnly)
		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, gradeDate,
			*change.Firm, Str(change.ToGrade), Str(change.FromGrade),
			Str(change.Action), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("Firm", *change.Firm).Str("Table", "upgrade_downgrade_history").Msg("save upgrade downgrade history to DB failed")
			return err
		}
	}

	return nil
}

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

// Officer is one entry of the assetProfile company officer roster. The
// roster is not meant to be queried relationally so it is stored as a single
// JSON-encoded text column.
type Officer struct {
	Name             *string `json:"name"`
	Title            *string `json:"title"`
	Age              *int64  `json:"age"`
	YearBorn         *int64  `json:"yearBorn"`
	FiscalYear       *int64  `json:"fiscalYear"`
	TotalPay         *Value  `json:"totalPay"`
	ExercisedValue   *Value  `json:"exercisedValue"`
	UnexercisedValue *Value  `json:"unexercisedValue"`
}

type AssetProfile struct {
	Address1              *string   `json:"address1"`
	City                  *string   `json:"city"`
	State                 *string   `json:"state"`
	Zip                   *string   `json:"zip"`
	Country               *string   `json:"country"`
	Phone                 *string   `json:"phone"`
	Website               *string   `json:"website"`
	Industry              *string   `json:"industry"`
	Sector                *string   `json:"sector"`
	LongBusinessSummary   *string   `json:"longBusinessSummary"`
	FullTimeEmployees     *int64    `json:"fullTimeEmployees"`
	AuditRisk             *int64    `json:"auditRisk"`
	BoardRisk             *int64    `json:"boardRisk"`
	CompensationRisk      *int64    `json:"compensationRisk"`
	ShareHolderRightsRisk *int64    `json:"shareHolderRightsRisk"`
	OverallRisk           *int64    `json:"overallRisk"`
	CompanyOfficers       []Officer `json:"companyOfficers"`
}

func (profile *AssetProfile) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	var officers any
	if len(profile.CompanyOfficers) > 0 {
		encoded, err := json.Marshal(profile.CompanyOfficers)
		if err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Msg("could not encode company officer roster")
			return err
		}
		officers = string(encoded)
	}

	sqlStmt := `INSERT INTO asset_profile (
		"symbol",
		"address1",
		"city",
		"state",
		"zip",
		"country",
		"phone",
		"website",
		"industry",
		"sector",
		"long_business_summary",
		"full_time_employees",
		"audit_risk",
		"board_risk",
		"compensation_risk",
		"shareholder_rights_risk",
		"overall_risk",
		"company_officers",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		address1 = excluded.address1,
		city = excluded.city,
		state = excluded.state,
		zip = excluded.zip,
		country = excluded.country,
		phone = excluded.phone,
		website = excluded.website,
		industry = excluded.industry,
		sector = excluded.sector,
		long_business_summary = excluded.long_business_summary,
		full_time_employees = excluded.full_time_employees,
		audit_risk = excluded.audit_risk,
		board_risk = excluded.board_risk,
		compensation_risk = excluded.compensation_risk,
		shareholder_rights_risk = excluded.shareholder_rights_risk,
		overall_risk = excluded.overall_risk,
		company_officers = excluded.company_officers,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		Str(profile.Address1), Str(profile.City), Str(profile.State),
		Str(profile.Zip), Str(profile.Country), Str(profile.Phone),
		Str(profile.Website), Str(profile.Industry), Str(profile.Sector),
		Str(profile.LongBusinessSummary), I64(profile.FullTimeEmployees),
		I64(profile.AuditRisk), I64(profile.BoardRisk),
		I64(profile.CompensationRisk), I64(profile.ShareHolderRightsRisk),
		I64(profile.OverallRisk), officers, time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "asset_profile").Msg("save asset profile to DB failed")
		return err
	}

	return nil
}

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

// Financial statement histories share one struct per statement kind between
// the annual and quarterly variants; only the target table differs. Rows
// are keyed by (symbol, end_date) and reconcile additively -- a period that
// drops out of the source window is kept.

type IncomeStatement struct {
	EndDate                           *DateValue `json:"endDate"`
	TotalRevenue                      *Value     `json:"totalRevenue"`
	CostOfRevenue                     *Value     `json:"costOfRevenue"`
	GrossProfit                       *Value     `json:"grossProfit"`
	ResearchDevelopment               *Value     `json:"researchDevelopment"`
	SellingGeneralAdministrative      *Value     `json:"sellingGeneralAdministrative"`
	TotalOperatingExpenses            *Value     `json:"totalOperatingExpenses"`
	OperatingIncome                   *Value     `json:"operatingIncome"`
	TotalOtherIncomeExpenseNet        *Value     `json:"totalOtherIncomeExpenseNet"`
	Ebit                              *Value     `json:"ebit"`
	InterestExpense                   *Value     `json:"interestExpense"`
	IncomeBeforeTax                   *Value     `json:"incomeBeforeTax"`
	IncomeTaxExpense                  *Value     `json:"incomeTaxExpense"`
	NetIncomeFromContinuingOps        *Value     `json:"netIncomeFromContinuingOps"`
	NetIncome                         *Value     `json:"netIncome"`
	NetIncomeApplicableToCommonShares *Value     `json:"netIncomeApplicableToCommonShares"`
}

type IncomeStatementHistory struct {
	Statements []IncomeStatement `json:"incomeStatementHistory"`
}

// SaveDB writes the statement set to tbl; the annual and quarterly variants
// share this struct and differ only in their target table.
func (history *IncomeStatementHistory) SaveDB(ctx context.Context, symbol, tbl string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO ` + tbl + ` (
		"symbol",
		"end_date",
		"total_revenue",
		"cost_of_revenue",
		"gross_profit",
		"research_development",
		"selling_general_administrative",
		"total_operating_expenses",
		"operating_income",
		"total_other_income_expense_net",
		"ebit",
		"interest_expense",
		"income_before_tax",
		"income_tax_expense",
		"net_income_from_continuing_ops",
		"net_income",
		"net_income_applicable_to_common_shares",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, end_date) DO UPDATE SET
		total_revenue = excluded.total_revenue,
		cost_of_revenue = excluded.cost_of_revenue,
		gross_profit = excluded.gross_profit,
		research_development = excluded.research_development,
		selling_general_administrative = excluded.selling_general_administrative,
		total_operating_expenses = excluded.total_operating_expenses,
		operating_income = excluded.operating_income,
		total_other_income_expense_net = excluded.total_other_income_expense_net,
		ebit = excluded.ebit,
		interest_expense = excluded.interest_expense,
		income_before_tax = excluded.income_before_tax,
		income_tax_expense = excluded.income_tax_expense,
		net_income_from_continuing_ops = excluded.net_income_from_continuing_ops,
		net_income = excluded.net_income,
		net_income_applicable_to_common_shares = excluded.net_income_applicable_to_common_shares,
		last_updated = excluded.last_updated`

	for _, stmt := range history.Statements {
		endDate, ok := stmt.EndDate.DayString()
		if !ok {
			log.Warn().Str("Symbol", symbol).Str("Table", tbl).Msg("income statement has no end date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, endDate,
			stmt.TotalRevenue.Int(), stmt.CostOfRevenue.Int(),
			stmt.GrossProfit.Int(), stmt.ResearchDevelopment.Int(),
			stmt.SellingGeneralAdministrative.Int(),
			stmt.TotalOperatingExpenses.Int(), stmt.OperatingIncome.Int(),
			stmt.TotalOtherIncomeExpenseNet.Int(), stmt.Ebit.Int(),
			stmt.InterestExpense.Int(), stmt.IncomeBeforeTax.Int(),
			stmt.IncomeTaxExpense.Int(), stmt.NetIncomeFromContinuingOps.Int(),
			stmt.NetIncome.Int(),
			stmt.NetIncomeApplicableToCommonShares.Int(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("EndDate", endDate).Str("Table", tbl).Msg("save income statement to DB failed")
			return err
		}
	}

	return nil
}

type BalanceSheetStatement struct {
	EndDate                 *DateValue `json:"endDate"`
	Cash                    *Value     `json:"cash"`
	ShortTermInvestments    *Value     `json:"shortTermInvestments"`
	NetReceivables          *Value     `json:"netReceivables"`
	Inventory               *Value     `json:"inventory"`
	OtherCurrentAssets      *Value     `json:"otherCurrentAssets"`
	TotalCurrentAssets      *Value     `json:"totalCurrentAssets"`
	LongTermInvestments     *Value     `json:"longTermInvestments"`
	PropertyPlantEquipment  *Value     `json:"propertyPlantEquipment"`
	GoodWill                *Value     `json:"goodWill"`
	IntangibleAssets        *Value     `json:"intangibleAssets"`
	OtherAssets             *Value     `json:"otherAssets"`
	TotalAssets             *Value     `json:"totalAssets"`
	AccountsPayable         *Value     `json:"accountsPayable"`
	ShortLongTermDebt       *Value     `json:"shortLongTermDebt"`
	OtherCurrentLiab        *Value     `json:"otherCurrentLiab"`
	LongTermDebt            *Value     `json:"longTermDebt"`
	OtherLiab               *Value     `json:"otherLiab"`
	TotalCurrentLiabilities *Value     `json:"totalCurrentLiabilities"`
	TotalLiab               *Value     `json:"totalLiab"`
	CommonStock             *Value     `json:"commonStock"`
	RetainedEarnings        *Value     `json:"retainedEarnings"`
	TreasuryStock           *Value     `json:"treasuryStock"`
	OtherStockholderEquity  *Value     `json:"otherStockholderEquity"`
	TotalStockholderEquity  *Value     `json:"totalStockholderEquity"`
	NetTangibleAssets       *Value     `json:"netTangibleAssets"`
}

type BalanceSheetHistory struct {
	Statements []BalanceSheetStatement `json:"balanceSheetStatements"`
}

func (history *BalanceSheetHistory) SaveDB(ctx context.Context, symbol, tbl string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO ` + tbl + ` (
		"symbol",
		"end_date",
		"cash",
		"short_term_investments",
		"net_receivables",
		"inventory",
		"other_current_assets",
		"total_current_assets",
		"long_term_investments",
		"property_plant_equipment",
		"good_will",
		"intangible_assets",
		"other_assets",
		"total_assets",
		"accounts_payable",
		"short_long_term_debt",
		"other_current_liab",
		"long_term_debt",
		"other_liab",
		"total_current_liabilities",
		"total_liab",
		"common_stock",
		"retained_earnings",
		"treasury_stock",
		"other_stockholder_equity",
		"total_stockholder_equity",
		"net_tangible_assets",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, end_date) DO UPDATE SET
		cash = excluded.cash,
		short_term_investments = excluded.short_term_investments,
		net_receivables = excluded.net_receivables,
		inventory = excluded.inventory,
		other_current_assets = excluded.other_current_assets,
		total_current_assets = excluded.total_current_assets,
		long_term_investments = excluded.long_term_investments,
		property_plant_equipment = excluded.property_plant_equipment,
		good_will = excluded.good_will,
		intangible_assets = excluded.intangible_assets,
		other_assets = excluded.other_assets,
		total_assets = excluded.total_assets,
		accounts_payable = excluded.accounts_payable,
		short_long_term_debt = excluded.short_long_term_debt,
		other_current_liab = excluded.other_current_liab,
		long_term_debt = excluded.long_term_debt,
		other_liab = excluded.other_liab,
		total_current_liabilities = excluded.total_current_liabilities,
		total_liab = excluded.total_liab,
		common_stock = excluded.common_stock,
		retained_earnings = excluded.retained_earnings,
		treasury_stock = excluded.treasury_stock,
		other_stockholder_equity = excluded.other_stockholder_equity,
		total_stockholder_equity = excluded.total_stockholder_equity,
		net_tangible_assets = excluded.net_tangible_assets,
		last_updated = excluded.last_updated`

	for _, stmt := range history.Statements {
		endDate, ok := stmt.EndDate.DayString()
		if !ok {
			log.Warn().Str("Symbol", symbol).Str("Table", tbl).Msg("balance sheet has no end date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, endDate,
			stmt.Cash.Int(), stmt.ShortTermInvestments.Int(),
			stmt.NetReceivables.Int(), stmt.Inventory.Int(),
			stmt.OtherCurrentAssets.Int(), stmt.TotalCurrentAssets.Int(),
			stmt.LongTermInvestments.Int(), stmt.PropertyPlantEquipment.Int(),
			stmt.GoodWill.Int(), stmt.IntangibleAssets.Int(),
			stmt.OtherAssets.Int(), stmt.TotalAssets.Int(),
			stmt.AccountsPayable.Int(), stmt.ShortLongTermDebt.Int(),
			stmt.OtherCurrentLiab.Int(), stmt.LongTermDebt.Int(),
			stmt.OtherLiab.Int(), stmt.TotalCurrentLiabilities.Int(),
			stmt.TotalLiab.Int(), stmt.CommonStock.Int(),
			stmt.RetainedEarnings.Int(), stmt.TreasuryStock.Int(),
			stmt.OtherStockholderEquity.Int(),
			stmt.TotalStockholderEquity.Int(), stmt.NetTangibleAssets.Int(),
			time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("EndDate", endDate).Str("Table", tbl).Msg("save balance sheet to DB failed")
			return err
		}
	}

	return nil
}

type CashflowStatement struct {
	EndDate                               *DateValue `json:"endDate"`
	NetIncome                             *Value     `json:"netIncome"`
	Depreciation                          *Value     `json:"depreciation"`
	ChangeToNetincome                     *Value     `json:"changeToNetincome"`
	ChangeToAccountReceivables            *Value     `json:"changeToAccountReceivables"`
	ChangeToLiabilities                   *Value     `json:"changeToLiabilities"`
	ChangeToInventory                     *Value     `json:"changeToInventory"`
	ChangeToOperatingActivities           *Value     `json:"changeToOperatingActivities"`
	TotalCashFromOperatingActivities      *Value     `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures                   *Value     `json:"capitalExpenditures"`
	Investments                           *Value     `json:"investments"`
	OtherCashflowsFromInvestingActivities *Value     `json:"otherCashflowsFromInvestingActivities"`
	TotalCashflowsFromInvestingActivities *Value     `json:"totalCashflowsFromInvestingActivities"`
	DividendsPaid                         *Value     `json:"dividendsPaid"`
	NetBorrowings                         *Value     `json:"netBorrowings"`
	OtherCashflowsFromFinancingActivities *Value     `json:"otherCashflowsFromFinancingActivities"`
	TotalCashFromFinancingActivities      *Value     `json:"totalCashFromFinancingActivities"`
	ChangeInCash                          *Value     `json:"changeInCash"`
	RepurchaseOfStock                     *Value     `json:"repurchaseOfStock"`
	IssuanceOfStock                       *Value     `json:"issuanceOfStock"`
}

type CashflowStatementHistory struct {
	Statements []CashflowStatement `json:"cashflowStatements"`
}

func (history *CashflowStatementHistory) SaveDB(ctx context.Context, symbol, tbl string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO ` + tbl + ` (
		"symbol",
		"end_date",
		"net_income",
		"depreciation",
		"change_to_netincome",
		"change_to_account_receivables",
		"change_to_liabilities",
		"change_to_inventory",
		"change_to_operating_activities",
		"total_cash_from_operating_activities",
		"capital_expenditures",
		"investments",
		"other_cashflows_from_investing_activities",
		"total_cashflows_from_investing_activities",
		"dividends_paid",
		"net_borrowings",
		"other_cashflows_from_financing_activities",
		"total_cash_from_financing_activities",
		"change_in_cash",
		"repurchase_of_stock",
		"issuance_of_stock",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol, end_date) DO UPDATE SET
		net_income = excluded.net_income,
		depreciation = excluded.depreciation,
		change_to_netincome = excluded.change_to_netincome,
		change_to_account_receivables = excluded.change_to_account_receivables,
		change_to_liabilities = excluded.change_to_liabilities,
		change_to_inventory = excluded.change_to_inventory,
		change_to_operating_activities = excluded.change_to_operating_activities,
		total_cash_from_operating_activities = excluded.total_cash_from_operating_activities,
		capital_expenditures = excluded.capital_expenditures,
		investments = excluded.investments,
		other_cashflows_from_investing_activities = excluded.other_cashflows_from_investing_activities,
		total_cashflows_from_investing_activities = excluded.total_cashflows_from_investing_activities,
		dividends_paid = excluded.dividends_paid,
		net_borrowings = excluded.net_borrowings,
		other_cashflows_from_financing_activities = excluded.other_cashflows_from_financing_activities,
		total_cash_from_financing_activities = excluded.total_cash_from_financing_activities,
		change_in_cash = excluded.change_in_cash,
		repurchase_of_stock = excluded.repurchase_of_stock,
		issuance_of_stock = excluded.issuance_of_stock,
		last_updated = excluded.last_updated`

	for _, stmt := range history.Statements {
		endDate, ok := stmt.EndDate.DayString()
		if !ok {
			log.Warn().Str("Symbol", symbol).Str("Table", tbl).Msg("cashflow statement has no end date; skipping")
			continue
		}

		if _, err := dbConn.ExecContext(ctx, sqlStmt, symbol, endDate,
			stmt.NetIncome.Int(), stmt.Depreciation.Int(),
			stmt.ChangeToNetincome.Int(), stmt.ChangeToAccountReceivables.Int(),
			stmt.ChangeToLiabilities.Int(), stmt.ChangeToInventory.Int(),
			stmt.ChangeToOperatingActivities.Int(),
			stmt.TotalCashFromOperatingActivities.Int(),
			stmt.CapitalExpenditures.Int(), stmt.Investments.Int(),
			stmt.OtherCashflowsFromInvestingActivities.Int(),
			stmt.TotalCashflowsFromInvestingActivities.Int(),
			stmt.DividendsPaid.Int(), stmt.NetBorrowings.Int(),
			stmt.OtherCashflowsFromFinancingActivities.Int(),
			stmt.TotalCashFromFinancingActivities.Int(),
			stmt.ChangeInCash.Int(), stmt.RepurchaseOfStock.Int(),
			stmt.IssuanceOfStock.Int(), time.Now()); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Str("EndDate", endDate).Str("Table", tbl).Msg("save cashflow statement to DB failed")
			return err
		}
	}

	return nil
}

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

type Price struct {
	RegularMarketPrice         *Value     `json:"regularMarketPrice"`
	RegularMarketChange        *Value     `json:"regularMarketChange"`
	RegularMarketChangePercent *Value     `json:"regularMarketChangePercent"`
	RegularMarketTime          *DateValue `json:"regularMarketTime"`
	RegularMarketDayHigh       *Value     `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *Value     `json:"regularMarketDayLow"`
	RegularMarketVolume        *Value     `json:"regularMarketVolume"`
	RegularMarketPreviousClose *Value     `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *Value     `json:"regularMarketOpen"`
	Exchange                   *string    `json:"exchange"`
	ExchangeName               *string    `json:"exchangeName"`
	MarketState                *string    `json:"marketState"`
	QuoteType                  *string    `json:"quoteType"`
	ShortName                  *string    `json:"shortName"`
	LongName                   *string    `json:"longName"`
	Currency                   *string    `json:"currency"`
	CurrencySymbol             *string    `json:"currencySymbol"`
	MarketCap                  *Value     `json:"marketCap"`
}

func (price *Price) SaveDB(ctx context.Context, symbol string, dbConn *sql.DB) error {
	sqlStmt := `INSERT INTO price (
		"symbol",
		"regular_market_price",
		"regular_market_change",
		"regular_market_change_percent",
		"regular_market_time",
		"regular_market_day_high",
		"regular_market_day_low",
		"regular_market_volume",
		"regular_market_previous_close",
		"regular_market_open",
		"exchange",
		"exchange_name",
		"market_state",
		"quote_type",
		"short_name",
		"long_name",
		"currency",
		"currency_symbol",
		"market_cap",
		"last_updated"
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	) ON CONFLICT (symbol) DO UPDATE SET
		regular_market_price = excluded.regular_market_price,
		regular_market_change = excluded.regular_market_change,
		regular_market_change_percent = excluded.regular_market_change_percent,
		regular_market_time = excluded.regular_market_time,
		regular_market_day_high = excluded.regular_market_day_high,
		regular_market_day_low = excluded.regular_market_day_low,
		regular_market_volume = excluded.regular_market_volume,
		regular_market_previous_close = excluded.regular_market_previous_close,
		regular_market_open = excluded.regular_market_open,
		exchange = excluded.exchange,
		exchange_name = excluded.exchange_name,
		market_state = excluded.market_state,
		quote_type = excluded.quote_type,
		short_name = excluded.short_name,
		long_name = excluded.long_name,
		currency = excluded.currency,
		currency_symbol = excluded.currency_symbol,
		market_cap = excluded.market_cap,
		last_updated = excluded.last_updated`

	_, err := dbConn.ExecContext(ctx, sqlStmt, symbol,
		price.RegularMarketPrice.Float(), price.RegularMarketChange.Float(),
		price.RegularMarketChangePercent.Float(), price.RegularMarketTime.Day(),
		price.RegularMarketDayHigh.Float(), price.RegularMarketDayLow.Float(),
		price.RegularMarketVolume.Int(),
		price.RegularMarketPreviousClose.Float(),
		price.RegularMarketOpen.Float(), Str(price.Exchange),
		Str(price.ExchangeName), Str(price.MarketState), Str(price.QuoteType),
		Str(price.ShortName), Str(price.LongName), Str(price.Currency),
		Str(price.CurrencySymbol), price.MarketCap.Int(), time.Now())
	if err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Str("Table", "price").Msg("save price snapshot to DB failed")
		return err
	}

	return nil
}

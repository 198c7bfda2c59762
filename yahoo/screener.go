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
package yahoo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const screenerURL = "https://query2.finance.yahoo.com/v1/finance/screener/predefined/saved"

type screenerEnvelope struct {
	Finance struct {
		Result []struct {
			Title  string `json:"title"`
			Quotes []struct {
				Symbol             string   `json:"symbol"`
				ShortName          *string  `json:"shortName"`
				LongName           *string  `json:"longName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				MarketCap          *int64   `json:"marketCap"`
			} `json:"quotes"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

// Screener fetches symbols from one of Yahoo's predefined screeners (e.g.
// most_actives, day_gainers). Returned records carry the screener as their
// category.
func (client *Client) Screener(ctx context.Context, screenerID string, count int) ([]*quote.SymbolRecord, error) {
	logger := zerolog.Ctx(ctx)

	if err := client.wait(ctx); err != nil {
		return nil, err
	}

	req := client.restClient.R().
		SetContext(ctx).
		SetQueryParam("scrIds", screenerID).
		SetQueryParam("count", strconv.Itoa(count))
	if region := viper.GetString("region"); region != "" {
		req.SetQueryParam("region", region)
	}

	resp, err := req.Get(screenerURL)
	if err != nil {
		logger.Error().Err(err).Str("Screener", screenerID).Msg("downloading screener failed")
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("Screener", screenerID).Msg("downloading screener returned error status code")
		return nil, fmt.Errorf("%w: %d", ErrStatusCode, resp.StatusCode())
	}

	var envelope screenerEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		logger.Error().Err(err).Str("Screener", screenerID).Msg("decoding screener response failed")
		return nil, err
	}

	if envelope.Finance.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, envelope.Finance.Error.Description)
	}

	if len(envelope.Finance.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, screenerID)
	}

	result := envelope.Finance.Result[0]
	categoryName := result.Title
	if categoryName == "" {
		categoryName = screenerID
	}

	records := make([]*quote.SymbolRecord, 0, len(result.Quotes))
	for _, item := range result.Quotes {
		if item.Symbol == "" {
			continue
		}

		record := &quote.SymbolRecord{
			Symbol:       item.Symbol,
			CategoryID:   slug.Make(categoryName),
			CategoryName: categoryName,
		}
		if item.ShortName != nil {
			record.Name = *item.ShortName
		} else if item.LongName != nil {
			record.Name = *item.LongName
		}
		if item.RegularMarketPrice != nil {
			record.LastPrice = *item.RegularMarketPrice
		}
		if item.MarketCap != nil {
			record.MarketCap = *item.MarketCap
		}

		records = append(records, record)
	}

	return records, nil
}

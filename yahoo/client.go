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
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrStatusCode     = errors.New("request returned error status code")
	ErrEmptyResult    = errors.New("response contained no result")
)

const (
	quoteSummaryURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary/{symbol}"
	userAgent       = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

type Client struct {
	restClient *resty.Client
	limiter    *rate.Limiter
	maxJitter  time.Duration
}

// New creates a Yahoo client that issues at most rateLimit requests per
// minute. Each request additionally waits a random delay up to maxJitter so
// traffic does not arrive on a fixed cadence.
func New(rateLimit int, maxJitter time.Duration) *Client {
	return &Client{
		restClient: resty.New().SetHeader("User-Agent", userAgent),
		limiter:    rate.NewLimiter(rate.Limit(float64(rateLimit)/float64(61)), 1),
		maxJitter:  maxJitter,
	}
}

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummary fetches every requested sub-document for the given symbol.
func (client *Client) QuoteSummary(ctx context.Context, symbol string) (*quote.Document, error) {
	logger := zerolog.Ctx(ctx)

	if err := client.wait(ctx); err != nil {
		return nil, err
	}

	req := client.restClient.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("modules", strings.Join(quote.ModuleNames, ",")).
		SetQueryParam("formatted", "true")
	if region := viper.GetString("region"); region != "" {
		req.SetQueryParam("region", region)
	}

	resp, err := req.Get(quoteSummaryURL)
	if err != nil {
		logger.Error().Err(err).Str("Symbol", symbol).Msg("downloading quote summary failed")
		return nil, err
	}

	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("Symbol", symbol).Msg("downloading quote summary returned error status code")
		return nil, fmt.Errorf("%w: %d", ErrStatusCode, resp.StatusCode())
	}

	var envelope quoteSummaryEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		logger.Error().Err(err).Str("Symbol", symbol).Msg("decoding quote summary response failed")
		return nil, err
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, envelope.QuoteSummary.Error.Description)
	}

	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, symbol)
	}

	return quote.ParseDocument(envelope.QuoteSummary.Result[0])
}

// wait blocks until the rate limiter admits the next request, then sleeps a
// random jitter interval.
func (client *Client) wait(ctx context.Context) error {
	if err := client.limiter.Wait(ctx); err != nil {
		return err
	}

	if client.maxJitter > 0 {
		jitter := time.Duration(rand.Int63n(int64(client.maxJitter)))
		select {
		case <-time.After(jitter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

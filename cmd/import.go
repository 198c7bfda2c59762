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
package cmd

import (
	"context"
	"time"

	"github.com/penny-vault/pvquote/healthcheck"
	"github.com/penny-vault/pvquote/importer"
	"github.com/penny-vault/pvquote/library"
	"github.com/penny-vault/pvquote/quote"
	"github.com/penny-vault/pvquote/watchlist"
	"github.com/penny-vault/pvquote/yahoo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [symbol...]",
	Short: "Import quote summary data for tracked symbols",
	Long: `The import sub-command downloads the full quote summary document for each
tracked symbol and upserts every sub-document into the quote library. Symbols
are resolved from the watchlist directory and Yahoo's predefined screeners;
when symbols are given as arguments only those are imported.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if err := healthcheck.PingStart(); err != nil {
			log.Warn().Err(err).Msg("could not ping health check start")
		}

		myLibrary, err := library.Open(ctx, viper.GetString("database"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not open quote library")
		}
		defer func() {
			if err := myLibrary.Close(); err != nil {
				log.Error().Err(err).Msg("error closing quote library")
			}
		}()

		if viper.GetBool("fresh") {
			if err := myLibrary.Reset(); err != nil {
				log.Fatal().Err(err).Msg("could not reset quote library")
			}
		} else if err := myLibrary.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("could not migrate quote library")
		}

		client := yahoo.New(viper.GetInt("rate_limit"),
			time.Duration(viper.GetInt("delay_seconds"))*time.Second)

		var records []*quote.SymbolRecord
		if len(args) > 0 {
			for _, symbol := range args {
				records = append(records, &quote.SymbolRecord{Symbol: symbol})
			}
		} else {
			records = resolveSymbols(ctx, client)
		}

		if len(records) == 0 {
			log.Warn().Msg("no symbols to import")
			return
		}

		imp := importer.Importer{
			Library: myLibrary,
			Fetcher: client,
		}

		summary := imp.Run(ctx, records)
		if summary.FetchErrors > 0 || summary.WriteErrors > 0 {
			log.Warn().Int("FetchErrors", summary.FetchErrors).Int("WriteErrors", summary.WriteErrors).Msg("import completed with errors")
			if err := healthcheck.PingFailure(); err != nil {
				log.Warn().Err(err).Msg("could not ping health check failure")
			}
			return
		}

		if err := healthcheck.PingSuccess(); err != nil {
			log.Warn().Err(err).Msg("could not ping health check success")
		}
	},
}

// resolveSymbols merges the watchlist directory with the configured
// screeners. Watchlist entries win when a ticker appears in both.
func resolveSymbols(ctx context.Context, client *yahoo.Client) []*quote.SymbolRecord {
	var watchlistRecords []*quote.SymbolRecord
	if dir := viper.GetString("watchlist_dir"); dir != "" {
		var err error
		watchlistRecords, err = watchlist.LoadDir(dir)
		if err != nil {
			log.Error().Err(err).Str("WatchlistDir", dir).Msg("could not load watchlist directory")
		}
	}

	var screenerRecords []*quote.SymbolRecord
	if !viper.GetBool("skip_screener") {
		for _, screenerID := range viper.GetStringSlice("screeners") {
			records, err := client.Screener(ctx, screenerID, viper.GetInt("screener_count"))
			if err != nil {
				log.Error().Err(err).Str("Screener", screenerID).Msg("could not fetch screener symbols")
				continue
			}
			screenerRecords = append(screenerRecords, records...)
		}
	}

	return importer.Resolve(watchlistRecords, screenerRecords)
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("fresh", false, "reset the quote library schema before importing")
	importCmd.Flags().Bool("skip-screener", false, "do not fetch symbols from predefined screeners")
	importCmd.Flags().Int("delay", 2, "maximum random delay between requests (seconds)")

	for viperKey, flagName := range map[string]string{
		"fresh":         "fresh",
		"skip_screener": "skip-screener",
		"delay_seconds": "delay",
	} {
		if err := viper.BindPFlag(viperKey, importCmd.Flags().Lookup(flagName)); err != nil {
			log.Panic().Err(err).Str("Flag", flagName).Msg("BindPFlag failed")
		}
	}
}

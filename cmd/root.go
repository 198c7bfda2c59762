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
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvquote",
	Short: "pvquote mirrors Yahoo Finance quote summaries into a local database",
	Long: `pv-quote is a command line utility that maintains a local, queryable
mirror of Yahoo Finance quote summary data. For every tracked ticker symbol it
downloads the full quoteSummary document (company profile, price, key
statistics, financial statements, analyst estimates, ownership rosters, and
more) and upserts each sub-document into its own table of a file-backed
SQLite database.

Symbols come from two places:

	* watchlist files (.json or .csv) in a configured directory
	* Yahoo's predefined screeners (e.g. most_actives, day_gainers)

Runs are idempotent: rows are keyed by their natural identifiers (symbol,
report date, organization, ...) so a repeated import refreshes data in place
instead of duplicating it. Deleting a symbol cascades to every dependent
table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvquote.toml)")
	rootCmd.PersistentFlags().String("database", "data/pvquote.db", "path to the quote library database")
	if err := viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for database failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvquote" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvquote")
	}

	viper.SetDefault("rate_limit", 30)
	viper.SetDefault("delay_seconds", 2)
	viper.SetDefault("screener_count", 25)

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

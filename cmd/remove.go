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

	"github.com/penny-vault/pvquote/library"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove symbol...",
	Short: "Remove symbols and all of their quote data from the library",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myLibrary, err := library.Open(ctx, viper.GetString("database"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not open quote library")
		}
		defer func() {
			if err := myLibrary.Close(); err != nil {
				log.Error().Err(err).Msg("error closing quote library")
			}
		}()

		for _, symbol := range args {
			if err := quote.DeleteSymbol(ctx, myLibrary.DB, symbol); err != nil {
				log.Fatal().Err(err).Str("Symbol", symbol).Msg("could not remove symbol")
			}
			log.Info().Str("Symbol", symbol).Msg("removed symbol and dependent quote data")
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

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
package watchlist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gocarina/gocsv"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog/log"
)

// jsonWatchlist is the layout of a .json watchlist file. The category name
// is optional; the file stem is used when it is omitted.
type jsonWatchlist struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

// csvRow is one line of a .csv watchlist file. Only the symbol column is
// required.
type csvRow struct {
	Symbol string `csv:"symbol"`
	Name   string `csv:"name"`
}

// LoadDir reads every .json and .csv watchlist file in dir and returns the
// combined symbol records. Unreadable or malformed files are logged and
// skipped so one bad file does not abort the run.
func LoadDir(dir string) ([]*quote.SymbolRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var records []*quote.SymbolRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fn := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))

		var fileRecords []*quote.SymbolRecord
		switch ext {
		case ".json":
			fileRecords, err = loadJSON(fn)
		case ".csv":
			fileRecords, err = loadCSV(fn)
		default:
			continue
		}

		if err != nil {
			log.Warn().Err(err).Str("FileName", fn).Msg("could not load watchlist file; skipping")
			continue
		}

		records = append(records, fileRecords...)
	}

	return records, nil
}

// fileStem returns the file name without directory or extension.
func fileStem(fn string) string {
	base := filepath.Base(fn)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func loadJSON(fn string) ([]*quote.SymbolRecord, error) {
	raw, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	var list jsonWatchlist
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}

	categoryName := list.Name
	if categoryName == "" {
		categoryName = fileStem(fn)
	}

	records := make([]*quote.SymbolRecord, 0, len(list.Symbols))
	for _, symbol := range list.Symbols {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		records = append(records, &quote.SymbolRecord{
			Symbol:       strings.ToUpper(symbol),
			CategoryID:   slug.Make(categoryName),
			CategoryName: categoryName,
		})
	}

	return records, nil
}

func loadCSV(fn string) ([]*quote.SymbolRecord, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := fh.Close(); err != nil {
			log.Error().Err(err).Str("FileName", fn).Msg("error closing watchlist file")
		}
	}()

	var rows []*csvRow
	if err := gocsv.UnmarshalFile(fh, &rows); err != nil {
		return nil, err
	}

	categoryName := fileStem(fn)
	records := make([]*quote.SymbolRecord, 0, len(rows))
	for _, row := range rows {
		symbol := strings.TrimSpace(row.Symbol)
		if symbol == "" {
			continue
		}
		records = append(records, &quote.SymbolRecord{
			Symbol:       strings.ToUpper(symbol),
			Name:         row.Name,
			CategoryID:   slug.Make(categoryName),
			CategoryName: categoryName,
		})
	}

	return records, nil
}

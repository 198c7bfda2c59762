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
package importer

import (
	"context"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"
	"github.com/penny-vault/pvquote/library"
	"github.com/penny-vault/pvquote/quote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves one symbol's quote document. The yahoo client satisfies
// this; tests substitute their own.
type Fetcher interface {
	QuoteSummary(ctx context.Context, symbol string) (*quote.Document, error)
}

type RunSummary struct {
	RunID            uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	SymbolsAttempted int
	SymbolsSucceeded int
	ModulesSaved     int
	ModulesSkipped   int
	FetchErrors      int
	WriteErrors      int
}

func (summary *RunSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("RunID", summary.RunID.String())
	e.Dur("Elapsed", summary.EndTime.Sub(summary.StartTime))
	e.Int("SymbolsAttempted", summary.SymbolsAttempted)
	e.Int("SymbolsSucceeded", summary.SymbolsSucceeded)
	e.Int("ModulesSaved", summary.ModulesSaved)
	e.Int("ModulesSkipped", summary.ModulesSkipped)
	e.Int("FetchErrors", summary.FetchErrors)
	e.Int("WriteErrors", summary.WriteErrors)
}

type Importer struct {
	Library *library.Library
	Fetcher Fetcher
}

// Resolve merges watchlist and screener symbol records, dropping duplicates.
// The first record seen for a ticker wins, so watchlist categories take
// precedence over screener categories.
func Resolve(lists ...[]*quote.SymbolRecord) []*quote.SymbolRecord {
	seen := haxmap.New[string, bool]()
	var resolved []*quote.SymbolRecord

	for _, list := range lists {
		for _, record := range list {
			if _, ok := seen.Get(record.Symbol); ok {
				continue
			}
			seen.Set(record.Symbol, true)
			resolved = append(resolved, record)
		}
	}

	return resolved
}

// Run imports every symbol in records: the symbol row is upserted first, the
// quote document is fetched, and each sub-document present on it is saved. A
// fetch failure skips that symbol's sub-documents, and a write failure for
// one sub-document does not block its siblings; the run continues either way.
func (imp *Importer) Run(ctx context.Context, records []*quote.SymbolRecord) *RunSummary {
	summary := &RunSummary{
		RunID:     uuid.New(),
		StartTime: time.Now(),
	}

	defer func() {
		summary.EndTime = time.Now()
		log.Info().Object("RunSummary", summary).Msg("import run finished")
	}()

	for _, record := range records {
		summary.SymbolsAttempted++

		if err := record.SaveDB(ctx, imp.Library.DB); err != nil {
			summary.WriteErrors++
			continue
		}

		doc, err := imp.Fetcher.QuoteSummary(ctx, record.Symbol)
		if err != nil {
			log.Warn().Err(err).Str("Symbol", record.Symbol).Msg("could not fetch quote document; skipping symbol")
			summary.FetchErrors++
			continue
		}

		for _, name := range doc.AbsentModules() {
			log.Warn().Str("Symbol", record.Symbol).Str("Module", name).Msg("module absent from quote document")
			summary.ModulesSkipped++
		}

		saved, failed := doc.SaveDB(ctx, record.Symbol, imp.Library.DB)
		summary.ModulesSaved += saved
		summary.WriteErrors += failed
		if failed > 0 {
			log.Error().Int("FailedModules", failed).Str("Symbol", record.Symbol).Msg("some quote modules could not be saved")
			continue
		}

		summary.SymbolsSucceeded++
	}

	return summary
}

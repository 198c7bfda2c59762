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
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the quote library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# Quote Library\n\n## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Database: %s\n\n", myLibrary.Path)); err != nil {
		return "", err
	}

	numSymbols, err := myLibrary.NumSymbols(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Symbols Tracked: %d\n", numSymbols)); err != nil {
		return "", err
	}

	totalRecords, err := myLibrary.TotalRecords(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Total Records: %d\n\n", totalRecords)); err != nil {
		return "", err
	}

	lastUpdated, err := myLibrary.LastUpdated(ctx)
	if err != nil {
		return "", err
	}

	if lastUpdated.Equal(time.Time{}) {
		if _, err := builder.WriteString("Last Updated: Never\n\n"); err != nil {
			return "", err
		}
	} else {
		age := timeago.English.Format(lastUpdated)
		if _, err := builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", age, lastUpdated.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("## Categories\n\n"); err != nil {
		return "", err
	}

	categories, err := myLibrary.Categories(ctx)
	if err != nil {
		return "", err
	}

	for _, category := range categories {
		name := category.CategoryName
		if name == "" {
			name = "(uncategorized)"
		}
		if _, err := builder.WriteString(p.Sprintf("  * %s: %d symbols\n", name, category.NumSymbols)); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n## Tables\n\n"); err != nil {
		return "", err
	}

	tableCounts, err := myLibrary.TableCounts(ctx)
	if err != nil {
		return "", err
	}

	for _, tableCount := range tableCounts {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %d rows\n", tableCount.Table, tableCount.Rows)); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

// Copyright 2024 Black Diamond Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuredata/sigma/ast"
)

func TestCsvEmitterFieldCount(t *testing.T) {
	rule := &ast.ParsedRule{
		ID:             "11111111-1111-1111-1111-111111111111",
		Title:          "Suspicious, \"quoted\" process",
		Description:    "A description with a comma, and \"quotes\"",
		FalsePositives: []string{"fp one", "fp two"},
		Status:         "experimental",
	}

	row := CsvEmitter{}.Emit(rule, "WHEN 1 event\n\tWHERE (EventID='4624')\n\tHAVING SAME tenantname ", 3)

	fields := splitCsvRow(t, row)
	require.Len(t, fields, 27)
	assert.Equal(t, `"`+rule.ID+`"`, fields[0])
	assert.Equal(t, `"true"`, fields[10])
	assert.Equal(t, `"3"`, fields[8])
}

func TestCsvEmitterQueryFieldPreservesCommas(t *testing.T) {
	rule := &ast.ParsedRule{ID: "r1", Status: "stable"}
	query := "(User IN ('alice', 'bob'))"
	row := CsvEmitter{}.Emit(rule, query, 0)

	fields := splitCsvRow(t, row)
	require.Len(t, fields, 27)
	assert.Equal(t, `"`+query+`"`, fields[9])
}

func TestCsvEmitterFreeTextEscaping(t *testing.T) {
	rule := &ast.ParsedRule{
		ID:          "r1",
		Title:       `a "quoted", title`,
		Description: "plain",
		Status:      "stable",
	}
	row := CsvEmitter{}.Emit(rule, "q", 0)
	fields := splitCsvRow(t, row)
	assert.Equal(t, `"a ""quoted""; title"`, fields[3])
	assert.Equal(t, `"false"`, fields[10])
}

// splitCsvRow splits on the literal "," separators this emitter always
// produces between double-quoted fields (none of which themselves contain
// an un-doubled quote), avoiding a dependency on encoding/csv for this
// narrow, fully-controlled format. strings.Split consumes the separator's
// own quotes along with it, so every field gets its quotes restored; the
// first and last fields already kept their outer quote, so only the missing
// one is added back to those.
func splitCsvRow(t *testing.T, row string) []string {
	t.Helper()
	fields := strings.Split(row, `","`)
	require.NotEmpty(t, fields)
	for i := range fields {
		fields[i] = `"` + fields[i] + `"`
	}
	fields[0] = strings.TrimPrefix(fields[0], `"`)
	fields[len(fields)-1] = strings.TrimSuffix(fields[len(fields)-1], `"`)
	return fields
}

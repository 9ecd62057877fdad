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
	"strconv"
	"strings"

	"github.com/futuredata/sigma/ast"
)

// CsvHeader is the literal 27-column schema the downstream ingester expects,
// in order.
var CsvHeader = []string{
	"InfoId", "Tenant", "Type", "Name", "Description", "FalsePositiveCheck",
	"Analysis", "Recommendation", "Severity", "Rule", "IsExp", "EvtSt",
	"EvtObj", "EvtCon", "EvtAct", "OutObj", "OutCon", "OutPro", "Status",
	"EvtTime", "Suppression", "SMStatus", "ThresholdType", "BucketSize",
	"ThresholdFirstValue", "ThresholdSecondValue", "TmStatus",
}

// CsvEmitter wraps a compiled BDCL rule in its 27-field CSV record.
type CsvEmitter struct{}

// Emit renders one CSV row for rule, whose compiled text (possibly a
// `\nUNION OR\n`-joined sequence) is query, with level already resolved to a
// numeric severity via sevMappingAsNum.
func (CsvEmitter) Emit(rule *ast.ParsedRule, query string, severityNum int) string {
	fields := make([]string, 0, 27)

	fields = append(fields,
		quote(rule.ID),
		quote("0"),
		quote(""),
		quote(formatStringInCSV(rule.Title)),
		quote(formatStringInCSV(rule.Description)),
		quote(formatStringInCSV(strings.Join(rule.FalsePositives, ","))),
		quote(""),
		quote(""),
		quote(strconv.Itoa(severityNum)),
	)

	// The query field only doubles embedded quotes — unlike the free-text
	// fields above, it must not have its commas turned into semicolons,
	// since BDCL itself uses commas (IN-lists, HAVING SAME field lists).
	fields = append(fields, quote(strings.ReplaceAll(query, `"`, `""`)))

	isExp := "false"
	if rule.Status == "experimental" {
		isExp = "true"
	}
	fields = append(fields, quote(isExp))

	for i := 0; i < 10; i++ {
		fields = append(fields, quote("0"))
	}
	fields = append(fields, quote("N"))
	fields = append(fields, quote("-"))
	for i := 0; i < 4; i++ {
		fields = append(fields, quote("0"))
	}

	return strings.Join(fields, ",")
}

func quote(s string) string { return `"` + s + `"` }

// formatStringInCSV escapes free text for a quoted CSV field: embedded
// quotes are doubled and commas are turned into semicolons (the query field
// uses its own narrower escaping — see Emit above — since BDCL text needs
// its commas preserved).
func formatStringInCSV(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	s = strings.ReplaceAll(s, ",", ";")
	return s
}

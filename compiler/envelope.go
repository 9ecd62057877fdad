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
	"fmt"
	"strconv"
	"strings"

	"github.com/futuredata/sigma/ast"
)

// EnvelopeBuilder composes the WHEN/WHERE/WITHIN/HAVING SAME/SUPPRESS
// envelope around a compiled WHERE body.
type EnvelopeBuilder struct {
	HavingClauseFields []string
	SevMapping         map[string]string
}

// Build assembles the final BDCL text for one condition. where is assumed
// already rewritten and tenant-appended.
func (b EnvelopeBuilder) Build(agg *ast.Aggregation, where, timeframe, level string) string {
	having := append([]string(nil), b.HavingClauseFields...)

	when := "1 event"
	if agg.IsCount() {
		if agg.GroupField != "" {
			having = append(having, agg.GroupField)
		}
		switch agg.CondOp {
		case ast.OpGE:
			when = b.whenAtLeast(agg.Condition)
		case ast.OpGT:
			when = b.whenMoreThan(agg.Condition)
		}
		// cond_op outside {>, >=} (or unrecognized) silently keeps the
		// "1 event" default — it is not an error.
	}

	var sb strings.Builder
	sb.WriteString("WHEN " + when)
	sb.WriteString("\n\tWHERE " + where)
	if timeframe != "" {
		sb.WriteString("\n\tWITHIN " + timeframe)
	}
	sb.WriteString("\n\tHAVING SAME " + strings.Join(having, ",") + " ")
	if level != "" {
		if dur, ok := b.SevMapping[level]; ok && dur != "" {
			sb.WriteString("\n\tSUPPRESS " + dur)
		}
	}
	return sb.String()
}

// whenAtLeast renders the WHEN phrase for a `>=` threshold: singular only
// when the threshold is exactly one. condition is rendered verbatim (not
// recomputed from the parsed int) so any original formatting survives;
// parsing only decides the singular/plural branch. A non-numeric condition
// is treated as "not one" rather than failing the rule — see DESIGN.md
// for why "exactly one" rather than a literal string comparison is the
// evident intent here.
func (b EnvelopeBuilder) whenAtLeast(condition string) string {
	if n, err := strconv.Atoi(condition); err == nil && n == 1 {
		return condition + " event"
	}
	return condition + " events"
}

// whenMoreThan renders the WHEN phrase for a `>` threshold: the BDCL count
// clause fires at `condition+1`, always plural.
func (b EnvelopeBuilder) whenMoreThan(condition string) string {
	n, err := strconv.Atoi(condition)
	if err != nil {
		return fmt.Sprintf("%s events", condition)
	}
	return fmt.Sprintf("%d events", n+1)
}

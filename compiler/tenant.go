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

	"github.com/futuredata/sigma/ast"
)

// TenantAppender appends tenant/product/service predicates to a compiled
// WHERE body, driven by the rule's logsource and the configured
// product/service clause tables.
type TenantAppender struct {
	Product               map[string]string
	Service               map[string]string
	AdditionalWhereClause string
}

// Append rewrites the final ')' of where into the tenant suffix (or appends
// the suffix directly, unclosed, if where does not end in ')').
func (t TenantAppender) Append(where string, logsource ast.Logsource) string {
	var productClause, serviceClause string

	if p, ok := logsource.Get("product"); ok {
		if clause, ok := t.Product[p]; ok && clause != "" {
			productClause = " AND " + clause
		}
	}
	if s, ok := logsource.Get("service"); ok {
		if clause, ok := t.Service[s]; ok && clause != "" {
			serviceClause = " AND " + clause
		}
	}

	suffix := " AND " + t.AdditionalWhereClause + productClause + serviceClause

	if strings.HasSuffix(where, ")") {
		return where[:len(where)-1] + suffix + ")"
	}
	return where + suffix
}

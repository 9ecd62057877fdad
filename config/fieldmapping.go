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

// Package config holds the two external configuration contracts the
// compiler is specified to consume: SigmaConfig (field name mappings) and
// Options (general + per-tenant settings). Loading these from disk is the
// batch driver's job; this package only defines their shape, decodes them
// from YAML, and validates them against a JSON Schema.
package config

import "github.com/futuredata/sigma/ast"

// FieldMapping is the sealed interface over the two ways a logical field
// name can be mapped to a backend field name: a flat rename, or a rename
// that depends on the rule's logsource.
type FieldMapping interface {
	isFieldMapping()
}

// SimpleMapping renames a field unconditionally.
type SimpleMapping string

func (SimpleMapping) isFieldMapping() {}

// ConditionalMapping renames a field based on the rule's logsource. It is
// keyed first by logsource key (e.g. "product"), then by logsource value
// (e.g. "windows"), yielding the replacement field name.
type ConditionalMapping map[string]map[string]string

func (ConditionalMapping) isFieldMapping() {}

// Resolve scans ls in document order and returns the first replacement
// field whose (key, value) pair has a non-empty entry in the mapping:
// first match wins, and since ls is already ordered by the time it
// reaches here (ast.Logsource preserves the rule's logsource block order),
// there is nothing implementation-defined left about which match wins.
func (c ConditionalMapping) Resolve(ls ast.Logsource) (string, bool) {
	for _, entry := range ls {
		if byValue, ok := c[entry.Key]; ok {
			if replacement, ok := byValue[entry.Value]; ok && replacement != "" {
				return replacement, true
			}
		}
	}
	return "", false
}

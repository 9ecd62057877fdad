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

package ast

import (
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// LogsourceEntry is one key/value pair of a rule's logsource block
// (typically "category", "product", or "service").
type LogsourceEntry struct {
	Key   string
	Value string
}

// Logsource is the {product, service, category} triple identifying the
// telemetry family a rule applies to, in the order the Sigma YAML declared
// them. Order matters: ConditionalMapping resolution (config package) scans
// these entries in document order and takes the first match, so Logsource
// is a slice rather than a map.
type Logsource []LogsourceEntry

// Get returns the value for key and whether it was present.
func (l Logsource) Get(key string) (string, bool) {
	for _, e := range l {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// ParsedRule is the immutable contract the (external) Sigma frontend
// parser hands to the compiler. Raw preserves the original YAML mapping,
// in document order, so that any additional key a caller wants to read
// later is still available; the typed fields below are the ones the
// compiler itself is specified to read.
type ParsedRule struct {
	Raw yaml.MapSlice

	ID             string
	Title          string
	Description    string
	FalsePositives []string
	Status         string
	Level          string
	Logsource      Logsource
	Timeframe      string

	Conditions []ConditionParse
}

// NewParsedRuleFromYAML decodes the rule-level metadata Sigma YAML keys
// the compiler is allowed to read (id, title, description, falsepositives,
// status, level, logsource, detection.timeframe). It does not parse the
// `detection.selection`/`condition` blocks into a condition AST — that is
// an external frontend parser's job. Callers build
// a rule's Conditions programmatically via the ast package's node
// constructors (typically in tests, or by a real frontend adapter living
// outside this module).
func NewParsedRuleFromYAML(raw []byte) (*ParsedRule, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	rule := &ParsedRule{Raw: doc}
	lookup := mapSliceLookup(doc)

	rule.ID, _ = cast.ToStringE(lookup["id"])
	rule.Title, _ = cast.ToStringE(lookup["title"])
	rule.Description, _ = cast.ToStringE(lookup["description"])
	rule.Status, _ = cast.ToStringE(lookup["status"])
	rule.Level, _ = cast.ToStringE(lookup["level"])

	if fp, ok := lookup["falsepositives"]; ok {
		rule.FalsePositives, _ = cast.ToStringSliceE(fp)
	}

	if ls, ok := lookup["logsource"]; ok {
		if lsSlice, ok := ls.(yaml.MapSlice); ok {
			for _, item := range lsSlice {
				k, _ := cast.ToStringE(item.Key)
				v, _ := cast.ToStringE(item.Value)
				rule.Logsource = append(rule.Logsource, LogsourceEntry{Key: k, Value: v})
			}
		}
	}

	if det, ok := lookup["detection"]; ok {
		if detSlice, ok := det.(yaml.MapSlice); ok {
			for _, item := range detSlice {
				k, _ := cast.ToStringE(item.Key)
				if k == "timeframe" {
					rule.Timeframe, _ = cast.ToStringE(item.Value)
				}
			}
		}
	}

	return rule, nil
}

// mapSliceLookup flattens a document-ordered MapSlice into a map for
// convenience lookups of top-level rule keys, where order no longer
// matters (unlike the logsource/conditional-mapping cases, which must
// preserve it).
func mapSliceLookup(s yaml.MapSlice) map[string]interface{} {
	out := make(map[string]interface{}, len(s))
	for _, item := range s {
		if k, ok := item.Key.(string); ok {
			out[k] = item.Value
		}
	}
	return out
}

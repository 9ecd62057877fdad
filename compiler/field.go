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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/futuredata/sigma/ast"
	"github.com/futuredata/sigma/config"
	"github.com/futuredata/sigma/internal/similartext"
)

// FieldResolver maps a rule's logical field names to backend field names,
// honouring conditional mappings keyed by the rule's logsource. It is
// stateless apart from the config it was built with and the logger it
// reports unmapped-field suggestions to.
type FieldResolver struct {
	cfg *config.SigmaConfig
	log *logrus.Entry
}

// NewFieldResolver builds a resolver against a fixed SigmaConfig. log may
// be nil, in which case suggestions are simply not logged.
func NewFieldResolver(cfg *config.SigmaConfig, log *logrus.Entry) FieldResolver {
	return FieldResolver{cfg: cfg, log: log}
}

// FieldNameMapping resolves field against the SigmaConfig, given the
// rule's logsource (for ConditionalMapping resolution). value is accepted
// but unused: field mapping never changes behavior based on the value's
// type beyond what NodeVisitor already does.
//
// Resolution order: (1) exact field match; (2) if field carries a `|`
// modifier suffix (e.g. "CommandLine|contains"), retry with the prefix
// before the first `|`; (3) if the resolved entry is a ConditionalMapping,
// resolve it against logsource, falling through to the field name
// unchanged if nothing matches. When nothing in the config touches field
// at all, the original name passes through unchanged and (if a logger was
// configured) a "maybe you mean" hint is logged against the configured
// field names — this never changes the returned string.
func (r FieldResolver) FieldNameMapping(field string, value ast.Value, logsource ast.Logsource) string {
	mapping, ok := r.lookup(field)
	if !ok {
		r.suggestLog(field)
		return field
	}

	switch m := mapping.(type) {
	case config.SimpleMapping:
		return string(m)
	case config.ConditionalMapping:
		if replacement, ok := m.Resolve(logsource); ok {
			return replacement
		}
		return field
	default:
		return field
	}
}

func (r FieldResolver) lookup(field string) (config.FieldMapping, bool) {
	if r.cfg == nil {
		return nil, false
	}
	if m, ok := r.cfg.FieldMappings[field]; ok {
		return m, true
	}
	if idx := strings.Index(field, "|"); idx >= 0 {
		if m, ok := r.cfg.FieldMappings[field[:idx]]; ok {
			return m, true
		}
	}
	return nil, false
}

func (r FieldResolver) suggestLog(field string) {
	if r.log == nil || r.cfg == nil {
		return
	}
	names := make([]string, 0, len(r.cfg.FieldMappings))
	for k := range r.cfg.FieldMappings {
		names = append(names, k)
	}
	sort.Strings(names)
	if hint := similartext.Find(names, field); hint != "" {
		r.log.WithField("field", field).Debugf("no field mapping for %q%s", field, hint)
	}
}

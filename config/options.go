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

package config

import "gopkg.in/yaml.v2"

// General carries the options that apply to every compiled rule
// regardless of tenant: the default full-text-search field, the severity
// mappings used by SUPPRESS and the CSV severity column, the base HAVING
// field list, and a free-form WHERE clause suffix every rule gets.
type General struct {
	FullTextSearchField   string            `yaml:"fulltextSearchField"`
	SevMapping            map[string]string `yaml:"sevMapping"`
	SevMappingAsNum       map[string]int    `yaml:"sevMappingAsNum"`
	HavingClauseFields    []string          `yaml:"havingClauseFields"`
	AdditionalWhereClause string            `yaml:"additionalWhereClause"`
}

// Others carries the per-tenant product/service predicate clauses the
// TenantAppender folds into the WHERE body.
type Others struct {
	Product map[string]string `yaml:"product"`
	Service map[string]string `yaml:"service"`
}

// Options is the full external options surface a compiled run reads:
// general defaults, per-tenant clauses, and the CSV output switch.
type Options struct {
	General   General `yaml:"general"`
	Others    Others  `yaml:"others"`
	OutputCSV bool    `yaml:"outputCSV"`
}

// LoadOptions decodes an Options document from YAML bytes.
func LoadOptions(raw []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

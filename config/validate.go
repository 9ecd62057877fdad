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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v2"
)

// optionsSchema requires the fields the envelope builder and severity
// mapping cannot sanely default: without sevMapping, SUPPRESS clauses for
// leveled rules would silently come out empty.
const optionsSchema = `{
  "type": "object",
  "required": ["general"],
  "properties": {
    "general": {
      "type": "object",
      "required": ["fulltextSearchField", "sevMapping", "havingClauseFields"],
      "properties": {
        "fulltextSearchField": {"type": "string", "minLength": 1},
        "sevMapping": {"type": "object"},
        "sevMappingAsNum": {"type": "object"},
        "havingClauseFields": {"type": "array", "items": {"type": "string"}},
        "additionalWhereClause": {"type": "string"}
      }
    },
    "others": {
      "type": "object",
      "properties": {
        "product": {"type": "object"},
        "service": {"type": "object"}
      }
    },
    "outputCSV": {"type": "boolean"}
  }
}`

// ValidateOptions validates raw Options YAML against a schema requiring
// the fields the compiler cannot function without, ahead of ever
// constructing a backend. Grounded on holomush-holomush's JSON-Schema
// config validation, adapted here to a YAML source: the document is first
// decoded generically and round-tripped through encoding/json so the
// validator only ever sees JSON-native types (map[string]interface{},
// []interface{}, float64, ...), never yaml.v2's map[interface{}]interface{}.
func ValidateOptions(raw []byte) error {
	return validateAgainstSchema(raw, optionsSchema, "options.json")
}

func validateAgainstSchema(raw []byte, schemaJSON, resourceName string) error {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("decoding yaml for validation: %w", err)
	}

	instance, err := toJSONInstance(generic)
	if err != nil {
		return fmt.Errorf("normalizing yaml for validation: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, strings.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// toJSONInstance converts the result of a yaml.v2 Unmarshal-into-
// interface{} (which uses map[interface{}]interface{} for mappings) into
// the map[string]interface{}/[]interface{}/scalar shape encoding/json and
// the schema validator expect, by marshaling through JSON.
func toJSONInstance(v interface{}) (interface{}, error) {
	converted := convertYAMLMaps(v)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(converted); err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func convertYAMLMaps(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, vv := range val {
			m[fmt.Sprintf("%v", k)] = convertYAMLMaps(vv)
		}
		return m
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, vv := range val {
			out[i] = convertYAMLMaps(vv)
		}
		return out
	default:
		return val
	}
}

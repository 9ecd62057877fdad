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
	"fmt"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SigmaConfig supplies the field name mappings the FieldResolver consults.
// It mirrors the subset of a real Sigma conversion config this compiler is
// specified to read; everything else a config file might carry (log
// source aliases used purely by the frontend parser, for instance) is
// ignored.
type SigmaConfig struct {
	FieldMappings map[string]FieldMapping
}

// UnmarshalYAML decodes a SigmaConfig from a document shaped like:
//
//	fieldmappings:
//	  EventID: event_id
//	  Image:
//	    product:
//	      windows: process_image
//	    service:
//	      sysmon: image_path
//
// A plain scalar value is a SimpleMapping; a nested two-level mapping is a
// ConditionalMapping. Anything else is a decode error naming the offending
// field, so a malformed config fails fast instead of silently producing a
// no-op mapping.
func (c *SigmaConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc struct {
		FieldMappings yaml.MapSlice `yaml:"fieldmappings"`
	}
	if err := unmarshal(&doc); err != nil {
		return err
	}

	c.FieldMappings = make(map[string]FieldMapping, len(doc.FieldMappings))
	for _, item := range doc.FieldMappings {
		field, err := cast.ToStringE(item.Key)
		if err != nil {
			return fmt.Errorf("fieldmappings: non-string key %v: %w", item.Key, err)
		}

		mapping, err := decodeFieldMapping(field, item.Value)
		if err != nil {
			return err
		}
		c.FieldMappings[field] = mapping
	}
	return nil
}

func decodeFieldMapping(field string, raw interface{}) (FieldMapping, error) {
	switch v := raw.(type) {
	case string:
		return SimpleMapping(v), nil
	case yaml.MapSlice:
		cm := ConditionalMapping{}
		for _, keyEntry := range v {
			logsourceKey, err := cast.ToStringE(keyEntry.Key)
			if err != nil {
				return nil, fmt.Errorf("fieldmappings.%s: non-string logsource key %v: %w", field, keyEntry.Key, err)
			}
			valueSlice, ok := keyEntry.Value.(yaml.MapSlice)
			if !ok {
				return nil, fmt.Errorf("fieldmappings.%s.%s: expected a mapping of logsource value to replacement field", field, logsourceKey)
			}
			byValue := make(map[string]string, len(valueSlice))
			for _, valueEntry := range valueSlice {
				logsourceValue, err := cast.ToStringE(valueEntry.Key)
				if err != nil {
					return nil, fmt.Errorf("fieldmappings.%s.%s: non-string logsource value %v: %w", field, logsourceKey, valueEntry.Key, err)
				}
				replacement, err := cast.ToStringE(valueEntry.Value)
				if err != nil {
					return nil, fmt.Errorf("fieldmappings.%s.%s.%s: %w", field, logsourceKey, logsourceValue, err)
				}
				byValue[logsourceValue] = replacement
			}
			cm[logsourceKey] = byValue
		}
		return cm, nil
	default:
		return nil, fmt.Errorf("fieldmappings.%s: unsupported mapping shape %T", field, raw)
	}
}

// LoadSigmaConfig decodes a SigmaConfig from YAML bytes.
func LoadSigmaConfig(raw []byte) (*SigmaConfig, error) {
	var cfg SigmaConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

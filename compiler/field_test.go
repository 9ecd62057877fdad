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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futuredata/sigma/ast"
	"github.com/futuredata/sigma/config"
)

func TestFieldResolverExactMatch(t *testing.T) {
	cfg := &config.SigmaConfig{
		FieldMappings: map[string]config.FieldMapping{
			"EventID": config.SimpleMapping("event_id"),
		},
	}
	r := NewFieldResolver(cfg, nil)
	got := r.FieldNameMapping("EventID", ast.IntValue(4624), ast.Logsource{})
	assert.Equal(t, "event_id", got)
}

func TestFieldResolverModifierSuffixFallsBackToPrefix(t *testing.T) {
	cfg := &config.SigmaConfig{
		FieldMappings: map[string]config.FieldMapping{
			"CommandLine": config.SimpleMapping("command_line"),
		},
	}
	r := NewFieldResolver(cfg, nil)
	got := r.FieldNameMapping("CommandLine|contains", ast.StringValue("x"), ast.Logsource{})
	assert.Equal(t, "command_line", got)
}

func TestFieldResolverConditionalMappingResolvesAgainstLogsource(t *testing.T) {
	cfg := &config.SigmaConfig{
		FieldMappings: map[string]config.FieldMapping{
			"Image": config.ConditionalMapping{
				"product": map[string]string{"windows": "process_image"},
				"service": map[string]string{"sysmon": "image_path"},
			},
		},
	}
	r := NewFieldResolver(cfg, nil)

	ls := ast.Logsource{{Key: "product", Value: "windows"}}
	got := r.FieldNameMapping("Image", ast.StringValue("cmd.exe"), ls)
	assert.Equal(t, "process_image", got)
}

func TestFieldResolverConditionalMappingFallsThroughWhenNothingMatches(t *testing.T) {
	cfg := &config.SigmaConfig{
		FieldMappings: map[string]config.FieldMapping{
			"Image": config.ConditionalMapping{
				"product": map[string]string{"windows": "process_image"},
			},
		},
	}
	r := NewFieldResolver(cfg, nil)

	ls := ast.Logsource{{Key: "product", Value: "linux"}}
	got := r.FieldNameMapping("Image", ast.StringValue("cmd.exe"), ls)
	assert.Equal(t, "Image", got)
}

func TestFieldResolverUnmappedFieldPassesThrough(t *testing.T) {
	cfg := &config.SigmaConfig{FieldMappings: map[string]config.FieldMapping{}}
	r := NewFieldResolver(cfg, nil)
	got := r.FieldNameMapping("SomeUnknownField", ast.StringValue("x"), ast.Logsource{})
	assert.Equal(t, "SomeUnknownField", got)
}

func TestFieldResolverNilConfigPassesThrough(t *testing.T) {
	r := NewFieldResolver(nil, nil)
	got := r.FieldNameMapping("EventID", ast.IntValue(1), ast.Logsource{})
	assert.Equal(t, "EventID", got)
}

func TestFieldResolverSuggestionLoggingDoesNotAlterOutput(t *testing.T) {
	cfg := &config.SigmaConfig{
		FieldMappings: map[string]config.FieldMapping{
			"EventID": config.SimpleMapping("event_id"),
		},
	}
	log := scopedLogger(nil, "corr-1", "rule-1")
	r := NewFieldResolver(cfg, log)

	got := r.FieldNameMapping("EventId", ast.IntValue(4624), ast.Logsource{})
	assert.Equal(t, "EventId", got, "a near-miss typo still passes through unchanged; only a hint is logged")
}

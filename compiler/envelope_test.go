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
)

func TestEnvelopeBuilderNoAggregation(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname", "obsname", "obsip"}}
	got := b.Build(nil, "(EventID='4624')", "", "")
	want := "WHEN 1 event\n\tWHERE (EventID='4624')\n\tHAVING SAME tenantname,obsname,obsip "
	assert.Equal(t, want, got)
}

func TestEnvelopeBuilderCountGreaterThan(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname", "obsname", "obsip"}}
	agg := &ast.Aggregation{AggFunc: ast.CountAggFunc, GroupField: "SourceIp", CondOp: ast.OpGT, Condition: "5"}
	got := b.Build(agg, "(User='admin')", "", "")
	want := "WHEN 6 events\n\tWHERE (User='admin')\n\tHAVING SAME tenantname,obsname,obsip,SourceIp "
	assert.Equal(t, want, got)
}

func TestEnvelopeBuilderCountAtLeastOne(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname"}}
	agg := &ast.Aggregation{AggFunc: ast.CountAggFunc, CondOp: ast.OpGE, Condition: "1"}
	got := b.Build(agg, "(X='y')", "", "")
	assert.Contains(t, got, "WHEN 1 event\n")
}

func TestEnvelopeBuilderCountAtLeastMany(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname"}}
	agg := &ast.Aggregation{AggFunc: ast.CountAggFunc, CondOp: ast.OpGE, Condition: "3"}
	got := b.Build(agg, "(X='y')", "", "")
	assert.Contains(t, got, "WHEN 3 events\n")
}

func TestEnvelopeBuilderUnsupportedCondOpDegradesToDefault(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname"}}
	agg := &ast.Aggregation{AggFunc: ast.CountAggFunc, CondOp: ast.OpLT, Condition: "5"}
	got := b.Build(agg, "(X='y')", "", "")
	assert.Contains(t, got, "WHEN 1 event\n")
}

func TestEnvelopeBuilderWithTimeframeAndSeverity(t *testing.T) {
	b := EnvelopeBuilder{
		HavingClauseFields: []string{"tenantname"},
		SevMapping:         map[string]string{"high": "1h"},
	}
	got := b.Build(nil, "(X='y')", "5m", "high")
	want := "WHEN 1 event\n\tWHERE (X='y')\n\tWITHIN 5m\n\tHAVING SAME tenantname \n\tSUPPRESS 1h"
	assert.Equal(t, want, got)
}

func TestEnvelopeBuilderUnmappedSeverityOmitsSuppress(t *testing.T) {
	b := EnvelopeBuilder{HavingClauseFields: []string{"tenantname"}, SevMapping: map[string]string{"high": "1h"}}
	got := b.Build(nil, "(X='y')", "", "informational")
	assert.NotContains(t, got, "SUPPRESS")
}

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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndOr(t *testing.T) {
	left := NewMapItem("A", StringValue("1"))
	right := NewMapItem("B", StringValue("2"))

	and := NewAnd(left, right)
	assert.Len(t, and.Children, 2)

	or := NewOr(left, right)
	assert.Len(t, or.Children, 2)
}

func TestNewNotWrapsSingleChild(t *testing.T) {
	child := NewMapItem("A", StringValue("1"))
	n := NewNot(child)
	assert.Equal(t, child, n.Item)
}

func TestNewSubexpressionWrapsSingleChild(t *testing.T) {
	child := NewMapItem("A", StringValue("1"))
	s := NewSubexpression(child)
	assert.Equal(t, child, s.Item)
}

func TestNewMapItemNilValueNormalizesToNull(t *testing.T) {
	m := NewMapItem("A", nil)
	assert.Equal(t, NullValue{}, m.Value)
}

func TestNewMapItemPreservesExplicitValue(t *testing.T) {
	m := NewMapItem("A", StringValue("x"))
	assert.Equal(t, StringValue("x"), m.Value)
}

func TestNewListBuildsBareListNode(t *testing.T) {
	l, err := NewList(StringValue("a"), StringValue("b"))
	require.NoError(t, err)
	assert.Equal(t, ListValue{StringValue("a"), StringValue("b")}, l.Values)
}

func TestNewListRejectsMalformedMembers(t *testing.T) {
	_, err := NewList(NullValue{})
	assert.Error(t, err)
}

func TestNewScalarWrapsValue(t *testing.T) {
	s := NewScalar(StringValue("mimikatz"))
	assert.Equal(t, StringValue("mimikatz"), s.Value)
}

func TestNestedTreeShapeMatchesExpected(t *testing.T) {
	got := NewAnd(
		NewMapItem("EventID", IntValue(4624)),
		NewNot(NewMapItem("User", StringValue("admin"))),
		NewOr(
			NewMapItem("LogonType", IntValue(3)),
			NewMapItem("LogonType", IntValue(10)),
		),
	)

	want := And{Children: []Node{
		MapItem{Field: "EventID", Value: IntValue(4624)},
		Not{Item: MapItem{Field: "User", Value: StringValue("admin")}},
		Or{Children: []Node{
			MapItem{Field: "LogonType", Value: IntValue(3)},
			MapItem{Field: "LogonType", Value: IntValue(10)},
		}},
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

func TestLogsourceGet(t *testing.T) {
	ls := Logsource{
		{Key: "category", Value: "process_creation"},
		{Key: "product", Value: "windows"},
	}

	v, ok := ls.Get("product")
	assert.True(t, ok)
	assert.Equal(t, "windows", v)

	_, ok = ls.Get("service")
	assert.False(t, ok)
}

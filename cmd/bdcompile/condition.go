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

package main

import (
	"encoding/json"
	"fmt"

	"github.com/futuredata/sigma/ast"
)

// conditionDoc is the CLI-local JSON encoding of one ConditionParse. The
// real Sigma condition-expression parser (the one that turns
// `selection1 and not selection2 | count() by SourceIp > 5` into a condition
// AST) is an external collaborator out of scope for this module; this demo
// CLI accepts the AST directly in this small JSON form instead of pretending
// to parse Sigma condition syntax.
type conditionDoc struct {
	Search      jsonNode        `json:"search"`
	Aggregation *jsonAggregation `json:"aggregation,omitempty"`
}

type jsonAggregation struct {
	AggFunc    string `json:"aggfunc"`
	AggField   string `json:"aggfield"`
	GroupField string `json:"groupfield"`
	CondOp     string `json:"cond_op"`
	Condition  string `json:"condition"`
}

// jsonNode mirrors ast.Node as a tagged union over a "type" discriminator:
// "and", "or", "not", "sub", "map", "list", "scalar".
type jsonNode struct {
	Type     string      `json:"type"`
	Children []jsonNode  `json:"children,omitempty"`
	Item     *jsonNode   `json:"item,omitempty"`
	Field    string      `json:"field,omitempty"`
	Value    *jsonValue  `json:"value,omitempty"`
	Values   []jsonValue `json:"values,omitempty"`
}

// jsonValue mirrors ast.Value as a tagged union: "string", "int", "list",
// "regex", "null".
type jsonValue struct {
	Type   string      `json:"type"`
	String string      `json:"string,omitempty"`
	Int    int         `json:"int,omitempty"`
	List   []jsonValue `json:"list,omitempty"`
	Regex  string      `json:"regex,omitempty"`
}

func decodeConditionDoc(raw []byte) (ast.ConditionParse, error) {
	var doc conditionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ast.ConditionParse{}, fmt.Errorf("condition: %w", err)
	}

	node, err := doc.Search.toNode()
	if err != nil {
		return ast.ConditionParse{}, err
	}

	cp := ast.ConditionParse{ParsedSearch: node}
	if doc.Aggregation != nil {
		cp.ParsedAgg = &ast.Aggregation{
			AggFunc:    doc.Aggregation.AggFunc,
			AggField:   doc.Aggregation.AggField,
			GroupField: doc.Aggregation.GroupField,
			CondOp:     doc.Aggregation.CondOp,
			Condition:  doc.Aggregation.Condition,
		}
	}
	return cp, nil
}

func (n jsonNode) toNode() (ast.Node, error) {
	switch n.Type {
	case "and":
		children, err := toNodes(n.Children)
		if err != nil {
			return nil, err
		}
		return ast.NewAnd(children...), nil

	case "or":
		children, err := toNodes(n.Children)
		if err != nil {
			return nil, err
		}
		return ast.NewOr(children...), nil

	case "not":
		if n.Item == nil {
			return nil, fmt.Errorf("condition: \"not\" node requires \"item\"")
		}
		item, err := n.Item.toNode()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(item), nil

	case "sub":
		if n.Item == nil {
			return nil, fmt.Errorf("condition: \"sub\" node requires \"item\"")
		}
		item, err := n.Item.toNode()
		if err != nil {
			return nil, err
		}
		return ast.NewSubexpression(item), nil

	case "map":
		var value ast.Value = ast.NullValue{}
		if n.Value != nil {
			v, err := n.Value.toValue()
			if err != nil {
				return nil, err
			}
			value = v
		}
		return ast.NewMapItem(n.Field, value), nil

	case "list":
		values, err := toValues(n.Values)
		if err != nil {
			return nil, err
		}
		return ast.NewList(values...)

	case "scalar":
		if n.Value == nil {
			return nil, fmt.Errorf("condition: \"scalar\" node requires \"value\"")
		}
		v, err := n.Value.toValue()
		if err != nil {
			return nil, err
		}
		return ast.NewScalar(v), nil

	default:
		return nil, fmt.Errorf("condition: unrecognized node type %q", n.Type)
	}
}

func toNodes(in []jsonNode) ([]ast.Node, error) {
	out := make([]ast.Node, len(in))
	for i, n := range in {
		node, err := n.toNode()
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

func (v jsonValue) toValue() (ast.Value, error) {
	switch v.Type {
	case "string":
		return ast.StringValue(v.String), nil
	case "int":
		return ast.IntValue(v.Int), nil
	case "regex":
		return ast.RegexValue(v.Regex), nil
	case "null":
		return ast.NullValue{}, nil
	case "list":
		values, err := toValues(v.List)
		if err != nil {
			return nil, err
		}
		return ast.NewListValue(values...)
	default:
		return nil, fmt.Errorf("condition: unrecognized value type %q", v.Type)
	}
}

func toValues(in []jsonValue) ([]ast.Value, error) {
	out := make([]ast.Value, len(in))
	for i, v := range in {
		value, err := v.toValue()
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

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

// Node is the sealed interface over every condition AST variant: And, Or,
// Not, Subexpression, MapItem, List, and Scalar (a bare keyword leaf with
// no field context). Dispatch over a Node is always a type switch; there is
// deliberately no visitor method on the interface itself; the compiler
// package owns the one recursive walk and the NodeVisitor name is kept
// only in comments to track the originating spec component.
type Node interface {
	isNode()
}

// And is an n-ary boolean AND of its children.
type And struct {
	Children []Node
}

func (And) isNode() {}

// NewAnd builds an And node from one or more children.
func NewAnd(children ...Node) And { return And{Children: children} }

// Or is an n-ary boolean OR of its children.
type Or struct {
	Children []Node
}

func (Or) isNode() {}

// NewOr builds an Or node from one or more children.
func NewOr(children ...Node) Or { return Or{Children: children} }

// Not is a unary negation of a single child.
type Not struct {
	Item Node
}

func (Not) isNode() {}

// NewNot wraps a single child in a negation.
func NewNot(item Node) Not { return Not{Item: item} }

// Subexpression is a parenthetical grouping around exactly one child.
type Subexpression struct {
	Item Node
}

func (Subexpression) isNode() {}

// NewSubexpression wraps a single child as a parenthesized group.
func NewSubexpression(item Node) Subexpression { return Subexpression{Item: item} }

// MapItem is a (field, value) pair: the leaf that ties a value to a
// logical field name. A MapItem with a nil Value represents `field:` (an
// explicit Sigma null), but callers should prefer passing NullValue{}
// explicitly.
type MapItem struct {
	Field string
	Value Value
}

func (MapItem) isNode() {}

// NewMapItem builds a field/value leaf. A nil value is normalized to
// NullValue{}.
func NewMapItem(field string, value Value) MapItem {
	if value == nil {
		value = NullValue{}
	}
	return MapItem{Field: field, Value: value}
}

// List is a list of scalar values appearing directly as a boolean child
// (as opposed to a ListValue carried by a MapItem) — Sigma allows bare
// list leaves when a condition omits the field context.
type List struct {
	Values ListValue
}

func (List) isNode() {}

// NewList builds a bare list node, validating scalar homogeneity the same
// way NewListValue does.
func NewList(values ...Value) (List, error) {
	lv, err := NewListValue(values...)
	if err != nil {
		return List{}, err
	}
	return List{Values: lv}, nil
}

// Scalar is a bare string/int appearing at a boolean position: a
// keyword-only match with no field context. The NodeVisitor rewrites these
// into a wildcarded match against the configured full-text-search field;
// the FtsDetector treats their presence as the definition of "this
// condition uses full-text search".
type Scalar struct {
	Value Value
}

func (Scalar) isNode() {}

// NewScalar wraps a bare keyword leaf.
func NewScalar(value Value) Scalar { return Scalar{Value: value} }

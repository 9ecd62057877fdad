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
	"fmt"
	"strings"

	"github.com/futuredata/sigma/ast"
)

// nodeVisitor walks a condition AST and emits the raw (pre-rewrite) WHERE
// body text. It is unexported: callers only ever reach it through
// Backend.Compile, which owns wiring it to a ValueFormatter, FieldResolver,
// and QueryRewriter.
type nodeVisitor struct {
	values              ValueFormatter
	fields              FieldResolver
	rewriter            QueryRewriter
	fulltextSearchField string
}

// generate dispatches on the node's concrete type. The bool result is false
// when the node produced nothing (the "null" case AND/OR drops survivors
// against); callers must treat ("", false, nil) as "omit this fragment",
// not as an empty string fragment.
func (v nodeVisitor) generate(n ast.Node, logsource ast.Logsource) (string, bool, error) {
	switch node := n.(type) {
	case ast.And:
		return v.generateCombinator(node.Children, " AND ", logsource)
	case ast.Or:
		return v.generateCombinator(node.Children, " OR ", logsource)
	case ast.Not:
		return v.generateNot(node, logsource)
	case ast.Subexpression:
		return v.generateSubexpression(node, logsource)
	case ast.MapItem:
		return v.generateMapItem(node, logsource)
	case ast.List:
		return v.generateBareList(node, logsource)
	case ast.Scalar:
		return v.generateScalar(node, logsource)
	default:
		return "", false, ErrASTShape.New(fmt.Sprintf("%T", n))
	}
}

func (v nodeVisitor) generateCombinator(children []ast.Node, sep string, logsource ast.Logsource) (string, bool, error) {
	var parts []string
	for _, child := range children {
		frag, ok, err := v.generate(child, logsource)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		parts = append(parts, frag)
	}
	if len(parts) == 0 {
		return "", false, nil
	}
	return strings.Join(parts, sep), true, nil
}

// generateNot recurses, prepends "NOT ", and immediately hands the result to
// the rewriter — it does not add or strip parentheses itself; whatever
// enclosing Subexpression parens are already present are normalized away by
// the rewriter's tolerant optional-paren patterns (see rewrite.go).
func (v nodeVisitor) generateNot(n ast.Not, logsource ast.Logsource) (string, bool, error) {
	child, ok, err := v.generate(n.Item, logsource)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return v.rewriter.Rewrite("NOT " + child), true, nil
}

func (v nodeVisitor) generateSubexpression(n ast.Subexpression, logsource ast.Logsource) (string, bool, error) {
	child, ok, err := v.generate(n.Item, logsource)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return "(" + child + ")", true, nil
}

// generateMapItem is the leaf that ties a resolved field name to a rendered
// value. Dispatch order matters: a "sourcetype" field always forces equality
// even when the value looks wildcarded, and that check must run before the
// wildcard branch.
func (v nodeVisitor) generateMapItem(n ast.MapItem, logsource ast.Logsource) (string, bool, error) {
	field := v.fields.FieldNameMapping(n.Field, n.Value, logsource)

	switch val := n.Value.(type) {
	case ast.RegexValue:
		if err := validateRegex(string(val)); err != nil {
			return "", false, err
		}
		return fmt.Sprintf("%s %s", field, v.values.GenerateTypedValueNode(val)), true, nil

	case ast.ListValue:
		return v.generateMapItemList(field, val), true, nil

	case ast.NullValue, nil:
		return fmt.Sprintf("%s IS NULL", field), true, nil

	case ast.StringValue, ast.IntValue:
		cleaned := v.values.GenerateValueNode(val)
		if strings.Contains(strings.ToLower(field), "sourcetype") {
			return fmt.Sprintf("%s=%s", field, cleaned), true, nil
		}
		if v.values.HasWildcard(val) {
			return fmt.Sprintf("%s LIKE %s", field, cleaned), true, nil
		}
		return fmt.Sprintf("%s=%s", field, cleaned), true, nil

	default:
		return "", false, ErrUnsupportedMapValue.New(fmt.Sprintf("%T", val))
	}
}

// generateMapItemList renders "(field LIKE 'v1' OR field LIKE 'v2' ...)" —
// note the parens are part of this rendering, unlike the plain scalar
// MapItem forms above, which rely on an enclosing Subexpression for theirs.
func (v nodeVisitor) generateMapItemList(field string, list ast.ListValue) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprintf("%s LIKE %s", field, v.values.GenerateValueNode(item))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// generateScalar handles a bare keyword leaf (no field context) by
// rewriting it into a synthetic MapItem against the configured full-text
// search field, wildcarded on both sides. This applies uniformly wherever
// a Scalar appears, not only directly under AND/OR, since every recursive
// call funnels through this same dispatch.
func (v nodeVisitor) generateScalar(n ast.Scalar, logsource ast.Logsource) (string, bool, error) {
	wildcarded, err := wildcardFtsValue(n.Value)
	if err != nil {
		return "", false, err
	}
	return v.generateMapItem(ast.NewMapItem(v.fulltextSearchField, wildcarded), logsource)
}

// generateBareList handles a list of keywords appearing directly as a
// boolean child with no field context: an extension of generateScalar's FTS
// rewrite to each list member, OR-joined, generalizing it symmetrically
// with FtsDetector's treatment of bare lists as FTS leaves — see
// DESIGN.md.
func (v nodeVisitor) generateBareList(n ast.List, logsource ast.Logsource) (string, bool, error) {
	var parts []string
	for _, item := range n.Values {
		wildcarded, err := wildcardFtsValue(item)
		if err != nil {
			return "", false, err
		}
		frag, ok, err := v.generateMapItem(ast.NewMapItem(v.fulltextSearchField, wildcarded), logsource)
		if err != nil {
			return "", false, err
		}
		if ok {
			parts = append(parts, frag)
		}
	}
	if len(parts) == 0 {
		return "", false, nil
	}
	return strings.Join(parts, " OR "), true, nil
}

// wildcardFtsValue renders the synthetic "*<value>*" value a bare keyword
// leaf is rewritten into before being treated as an ordinary MapItem.
func wildcardFtsValue(v ast.Value) (ast.Value, error) {
	switch val := v.(type) {
	case ast.StringValue:
		return ast.StringValue("*" + string(val) + "*"), nil
	case ast.IntValue:
		return ast.StringValue(fmt.Sprintf("*%d*", int(val))), nil
	default:
		return nil, ErrUnsupportedMapValue.New(fmt.Sprintf("%T", v))
	}
}

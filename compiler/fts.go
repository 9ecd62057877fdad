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

	"github.com/futuredata/sigma/ast"
)

// FtsDetector recursively checks whether a condition subtree contains a
// keyword-only leaf — a bare Scalar or List with no field context. This
// predicate is deliberately inconsistent with how NodeVisitor actually
// handles such leaves (it rewrites them instead of rejecting them); it is
// kept as a safety net for structurally degenerate trees a future
// frontend might produce, not as the primary FTS handling path. See
// DESIGN.md.
type FtsDetector struct{}

// ContainsFullTextSearch reports whether n (or any descendant) is a bare
// keyword leaf.
func (d FtsDetector) ContainsFullTextSearch(n ast.Node) (bool, error) {
	switch node := n.(type) {
	case ast.And:
		return d.any(node.Children)
	case ast.Or:
		return d.any(node.Children)
	case ast.Not:
		return d.ContainsFullTextSearch(node.Item)
	case ast.Subexpression:
		return d.ContainsFullTextSearch(node.Item)
	case ast.MapItem:
		return false, nil
	case ast.List, ast.Scalar:
		return true, nil
	default:
		return false, ErrASTShape.New(fmt.Sprintf("%T", n))
	}
}

func (d FtsDetector) any(children []ast.Node) (bool, error) {
	for _, child := range children {
		found, err := d.ContainsFullTextSearch(child)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

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

// Package ast is the condition AST the compiler walks: a recursive, sealed
// structure of boolean combinators and leaf map items, plus the scalar
// values those leaves carry. Nothing in this package talks to YAML, Sigma
// syntax, or BDCL text — it is the shared contract between the (external)
// Sigma frontend parser and the compiler package.
package ast

import (
	"fmt"

	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrMalformedList is raised when a list contains a value that is not a
// string or an integer. Sigma lists may only hold strings and ints; a list
// mixing the two is accepted.
var ErrMalformedList = goerrors.NewKind("list values must be strings or integers, got %s")

// Value is the sealed interface implemented by every leaf value a MapItem
// can carry: a scalar string, a scalar int, a list of scalars, a regex
// modifier, or an explicit null.
type Value interface {
	isValue()
	// String renders the value the way Go's fmt would stringify the
	// underlying Python scalar, before any BDCL-specific escaping.
	String() string
}

// StringValue is a bare Sigma string leaf.
type StringValue string

func (StringValue) isValue()        {}
func (v StringValue) String() string { return string(v) }

// IntValue is a bare Sigma integer leaf.
type IntValue int

func (IntValue) isValue()        {}
func (v IntValue) String() string { return fmt.Sprintf("%d", int(v)) }

// ListValue is a Sigma list of scalar values. NewListValue is the only
// constructor and enforces the string/int-only invariant; a zero-value
// ListValue built by hand bypasses that check, so callers outside this
// package should always go through NewListValue.
type ListValue []Value

func (ListValue) isValue() {}

func (v ListValue) String() string {
	s := "["
	for i, item := range v {
		if i > 0 {
			s += ", "
		}
		s += item.String()
	}
	return s + "]"
}

// NewListValue validates that every element is a StringValue or IntValue
// before constructing the list; Sigma lists may only hold scalar members.
func NewListValue(values ...Value) (ListValue, error) {
	for _, v := range values {
		switch v.(type) {
		case StringValue, IntValue:
			// ok
		default:
			return nil, ErrMalformedList.New(fmt.Sprintf("%T", v))
		}
	}
	return ListValue(values), nil
}

// RegexValue wraps a Sigma `|re` modifier value. The compiler lowers it to
// `MATCH REGEX("...")` without the escaping applied to plain strings.
type RegexValue string

func (RegexValue) isValue()        {}
func (v RegexValue) String() string { return string(v) }

// NullValue is an explicit Sigma null leaf (`field:`  with no value).
type NullValue struct{}

func (NullValue) isValue()        {}
func (NullValue) String() string { return "null" }

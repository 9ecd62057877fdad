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

import goerrors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy for the backend compiler. Every Kind here is fatal to the
// rule being compiled but never to a caller processing many rules — a
// batch driver compiling a whole rule set is expected to log and
// continue past a single rule's failure.
var (
	// ErrUnsupportedMapValue is raised when a MapItem's value is
	// something other than a scalar, list, regex modifier, or null.
	ErrUnsupportedMapValue = goerrors.NewKind("backend does not support map values of type %s")

	// ErrUnsupportedTypeModifier names the case of a typed-value node
	// whose modifier this backend does not implement. No code path returns
	// it: the only typed value, ast.RegexValue, is always supported, and
	// the sealed ast.Value set admits no other modifier.
	ErrUnsupportedTypeModifier = goerrors.NewKind("type modifier %q is not supported by this backend")

	// ErrInvalidRegex is raised when a regex modifier's value does not
	// compile as a regular expression.
	ErrInvalidRegex = goerrors.NewKind("regular expression validation error for %q: %s")

	// ErrASTShape is raised when the FTS detector (or any recursive walk
	// relying on the sealed Node set) encounters a node shape it cannot
	// classify. Since ast.Node is a closed interface this should only
	// ever fire if a new variant is added to the ast package without a
	// matching case here — a programmer error, not a data error.
	ErrASTShape = goerrors.NewKind("logic error: unrecognized condition node shape %T")

	// ErrUnsupportedAggregation is part of the documented taxonomy but is
	// never actually returned by EnvelopeBuilder: an aggfunc other than
	// COUNT, or a cond_op outside {>,>=,<,<=,=},
	// silently degrades to the default "1 event" envelope rather than
	// failing the rule. It is kept here so the taxonomy named in the
	// spec's error handling design has a concrete Kind to point to.
	ErrUnsupportedAggregation = goerrors.NewKind("unsupported aggregation: func=%s cond_op=%s")
)

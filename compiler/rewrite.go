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

import "regexp"

// QueryRewriter normalizes the De Morgan-style negations NodeVisitor
// naturally produces ("NOT (f LIKE 'x')") into the form BDCL expects
// ("(f NOT LIKE 'x')"). It runs twice in the pipeline: once immediately
// after a NOT node is emitted, and once more over the fully composed
// WHERE body — both calls are idempotent, so running it twice is never
// observably different from running it once on already-normalized text.
//
// The three substitutions below accept the "NOT field op-expr" text either
// bare or wrapped in one pair of parens: NotNode itself does not strip or
// add parens (it only prepends "NOT "), so an enclosing Subexpression's
// parens are normalized away here instead. A '(' is only consumed together
// with the ')' that closes it, so a negated compound group such as
// "NOT (a='x' AND b='y')" is left as it is rather than split apart.
type QueryRewriter struct{}

var (
	reNotLikeInRegex = regexp.MustCompile(`NOT\s+(?:\(([A-Za-z_-]+)\s+(LIKE\s+'[^']*'|IN\s+\([^)]*\)|MATCH REGEX\("[^"]*"\))\)|([A-Za-z_-]+)\s+(LIKE\s+'[^']*'|IN\s+\([^)]*\)|MATCH REGEX\("[^"]*"\)))`)
	reNotEquals      = regexp.MustCompile(`NOT\s+(?:\(([A-Za-z_-]+)\s*=\s*('[^']*')\)|([A-Za-z_-]+)\s*=\s*('[^']*'))`)
	reNotIsNull      = regexp.MustCompile(`NOT\s+(?:\(([A-Za-z_-]+)\s+IS NULL\)|([A-Za-z_-]+)\s+IS NULL)`)
)

// Rewrite applies the three De Morgan normalizations, in order, to query.
func (QueryRewriter) Rewrite(query string) string {
	query = reNotLikeInRegex.ReplaceAllString(query, "(${1}${3} NOT ${2}${4})")
	query = reNotEquals.ReplaceAllString(query, "(${1}${3} != ${2}${4})")
	query = reNotIsNull.ReplaceAllString(query, "(${1}${2} IS NOT NULL)")
	return query
}

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
	"regexp"
	"strings"

	"github.com/futuredata/sigma/ast"
)

// ValueFormatter turns ast.Value leaves into BDCL literal text: escaping,
// quoting, and wildcard normalization. It carries no state of its own —
// every method is a pure function of its argument — but is a named type
// rather than bare functions so callers read ValueFormatter.CleanValue,
// ValueFormatter.GenerateValueNode, and so on as one cohesive API.
type ValueFormatter struct{}

// CleanValue applies the BDCL escaping rules to a scalar value, in order:
// double any lone backslash not already escaping a backslash/*/?, escape
// SQL wildcards `_` and `%`, then rewrite Sigma's `*` wildcard to `%`
// wherever it isn't itself escaped. Non-string values are stringified
// as-is.
func (ValueFormatter) CleanValue(v ast.Value) string {
	s, ok := v.(ast.StringValue)
	if !ok {
		return v.String()
	}
	return cleanString(string(s))
}

func cleanString(val string) string {
	// Double any backslash that is NOT preceded by another backslash and
	// NOT immediately followed by another backslash, a '*', or a '?'.
	// Both neighbor checks read the ORIGINAL rune slice, matching a
	// single left-to-right regex substitution pass with zero-width
	// look-around assertions (Go's regexp has no look-around, so this
	// walks the string by hand instead).
	var doubled strings.Builder
	runes := []rune(val)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			precededByBackslash := i > 0 && runes[i-1] == '\\'
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			followedByEscape := next == '\\' || next == '*' || next == '?'
			if !precededByBackslash && !followedByEscape {
				doubled.WriteString(`\\`)
			} else {
				doubled.WriteRune(r)
			}
			continue
		}
		doubled.WriteRune(r)
	}
	val = doubled.String()

	val = strings.ReplaceAll(val, "_", `\_`)
	val = strings.ReplaceAll(val, "%", `\%`)

	val = rewriteStarToPercent(val)
	return val
}

// rewriteStarToPercent replaces a `*` with `%` when it is preceded by an
// even number of backslashes (including zero) — i.e. the backslashes
// pair off and don't escape the star — and leaves single-character `*`
// values untouched: a single-character `*` is a literal, not a wildcard.
// `**` (a doubled star) is also left alone: a run of two
// or more consecutive stars is not the single wildcard this rewrite
// targets.
func rewriteStarToPercent(val string) string {
	if len([]rune(val)) <= 1 {
		return val
	}
	runes := []rune(val)
	var out strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] != '*' {
			out.WriteRune(runes[i])
			continue
		}

		// Count the run of backslashes immediately preceding this '*'.
		backslashes := 0
		for j := i - 1; j >= 0 && runes[j] == '\\'; j-- {
			backslashes++
		}

		isPairOfStars := (i+1 < len(runes) && runes[i+1] == '*') || (i > 0 && runes[i-1] == '*')
		if backslashes%2 == 0 && !isPairOfStars {
			out.WriteRune('%')
		} else {
			out.WriteRune('*')
		}
	}
	return out.String()
}

// GenerateValueNode renders a scalar value as a single-quoted BDCL
// literal.
func (f ValueFormatter) GenerateValueNode(v ast.Value) string {
	return fmt.Sprintf("'%s'", f.CleanValue(v))
}

// GenerateTypedValueNode renders a regex modifier value as
// `MATCH REGEX("...")`. Unlike GenerateValueNode, no escaping is applied
// beyond stringification — the regex text is passed through verbatim, as
// in the original backend's generateTypedValueNode.
func (ValueFormatter) GenerateTypedValueNode(v ast.RegexValue) string {
	return fmt.Sprintf("MATCH REGEX(\"%s\")", string(v))
}

// GenerateListNode renders a list of scalars as `(v1, v2, ...)`.
// NewListValue already rejected non-scalar members at construction time,
// so this never needs to.
func (f ValueFormatter) GenerateListNode(list ast.ListValue) string {
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = f.GenerateValueNode(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// HasWildcard reports whether the BDCL rendering of v contains a wildcard
// marker: an escaped `\*`/`\?`, a doubled backslash, a literal `*` or `?`,
// or the SQL `_`/`%` wildcards (including the `\_`/`\%` escapes CleanValue
// produces, which only keep their meaning inside a LIKE pattern). A single-character string
// value is forced to report no wildcard: a lone `*` is a literal
// one-character value, not a wildcard.
func (f ValueFormatter) HasWildcard(v ast.Value) bool {
	if s, ok := v.(ast.StringValue); ok && len([]rune(string(s))) == 1 {
		return false
	}
	rendered := f.renderForWildcardCheck(v)
	return reWildcardMarker.MatchString(rendered)
}

var reWildcardMarker = regexp.MustCompile(`(\\(\*|\?|\\))|\*|\?|_|%`)

// renderForWildcardCheck mirrors generateNode(value) in the original
// backend for the purpose of the wildcard sniff only: it is the cleaned
// scalar text, not the quoted literal, since quotes themselves are not
// wildcard markers.
func (f ValueFormatter) renderForWildcardCheck(v ast.Value) string {
	switch val := v.(type) {
	case ast.RegexValue:
		return string(val)
	default:
		return f.CleanValue(v)
	}
}

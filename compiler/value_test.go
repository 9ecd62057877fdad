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

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuredata/sigma/ast"
)

func TestCleanValue(t *testing.T) {
	f := ValueFormatter{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "admin", "admin"},
		{"wildcard rewritten to percent", "*cmd.exe", "%cmd.exe"},
		{"wildcard with preserved backslash", `*\\cmd.exe`, `%\\cmd.exe`},
		{"single char star not rewritten", "*", "*"},
		{"double star untouched", "**", "**"},
		{"underscore escaped", "a_b", `a\_b`},
		{"percent escaped", "50%", `50\%`},
		{"lone backslash doubled", `a\b`, `a\\b`},
		{"two adjacent backslashes left alone", `\\`, `\\`},
		{"backslash escaping star left alone", `a\*b`, `a\*b`},
		{"backslash escaping question mark left alone", `a\?b`, `a\?b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.CleanValue(ast.StringValue(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanValueNonString(t *testing.T) {
	f := ValueFormatter{}
	assert.Equal(t, "4624", f.CleanValue(ast.IntValue(4624)))
}

func TestGenerateValueNode(t *testing.T) {
	f := ValueFormatter{}
	assert.Equal(t, "'admin'", f.GenerateValueNode(ast.StringValue("admin")))
	assert.Equal(t, "'4624'", f.GenerateValueNode(ast.IntValue(4624)))
}

func TestGenerateTypedValueNode(t *testing.T) {
	f := ValueFormatter{}
	got := f.GenerateTypedValueNode(ast.RegexValue(`cmd\.exe$`))
	assert.Equal(t, `MATCH REGEX("cmd\.exe$")`, got)
}

func TestGenerateListNode(t *testing.T) {
	f := ValueFormatter{}
	list, err := ast.NewListValue(ast.StringValue("alice"), ast.StringValue("bob"))
	require.NoError(t, err)
	assert.Equal(t, "('alice', 'bob')", f.GenerateListNode(list))
}

func TestHasWildcard(t *testing.T) {
	f := ValueFormatter{}

	tests := []struct {
		name string
		in   ast.Value
		want bool
	}{
		{"no wildcard", ast.StringValue("admin"), false},
		{"star wildcard", ast.StringValue("*cmd.exe"), true},
		{"question mark wildcard", ast.StringValue("a?b"), true},
		{"single char star forced false", ast.StringValue("*"), false},
		{"int never wildcarded", ast.IntValue(4624), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.HasWildcard(tt.in))
		})
	}
}

// TestCleanValueMatchesGlobSemantics cross-checks that a LIKE pattern
// ValueFormatter produces from a wildcarded value actually matches the
// sample string it was derived from, by translating the SQL '%'/'_'
// wildcard syntax into a glob pattern. Test-only scaffolding, not a runtime
// dependency of the compiler.
func TestCleanValueMatchesGlobSemantics(t *testing.T) {
	f := ValueFormatter{}
	sample := "C:\\Windows\\System32\\cmd.exe"
	pattern := f.CleanValue(ast.StringValue("*cmd.exe"))

	globPattern := toGlobPattern(pattern)
	g, err := glob.Compile(globPattern)
	require.NoError(t, err)
	assert.True(t, g.Match(sample))
}

// toGlobPattern is a narrow, test-only translation of the SQL wildcard
// syntax ValueFormatter emits ('%' any-run, '_' single-char, backslash
// escaping both) into glob syntax ('*' any-run, '?' single-char).
func toGlobPattern(sqlPattern string) string {
	var out []rune
	runes := []rune(sqlPattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 < len(runes) && (runes[i+1] == '%' || runes[i+1] == '_') {
				out = append(out, runes[i+1])
				i++
				continue
			}
			out = append(out, runes[i])
		case '%':
			out = append(out, '*')
		case '_':
			out = append(out, '?')
		default:
			out = append(out, runes[i])
		}
	}
	return string(out)
}

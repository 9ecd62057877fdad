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

// Package similartext renders a "did you mean" suggestion suffix for an
// unrecognized name, used by the FieldResolver to hint at likely typos in
// a rule's field names without changing compiled output.
package similartext

import (
	"sort"
	"strings"

	"github.com/futuredata/sigma/internal/text_distance"
)

// Find returns ", maybe you mean X?" (or "X or Y?" for ties) for the
// name(s) in names closest to target, or "" if target is empty, names is
// empty, or nothing is close enough to be worth suggesting.
func Find(names []string, target string) string {
	if target == "" || len(names) == 0 {
		return ""
	}
	return render(closest(names, target))
}

// FindFromMap is Find over a map's keys, sorted for deterministic output.
func FindFromMap[V any](names map[string]V, target string) string {
	if target == "" || len(names) == 0 {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return render(closest(keys, target))
}

func render(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	return ", maybe you mean " + strings.Join(matches, " or ") + "?"
}

// closest returns every name tied for the smallest edit distance to
// target, provided that distance is within the "worth suggesting"
// threshold: half of target's length, rounded down, minimum 1. That
// keeps short, wildly different names (a 19-character typo against a
// 3-character field name) from producing a misleading suggestion.
func closest(names []string, target string) []string {
	threshold := len([]rune(target)) / 2
	if threshold < 1 {
		threshold = 1
	}

	bestDist := -1
	var matches []string
	for _, name := range names {
		d := text_distance.Levenshtein(name, target)
		switch {
		case bestDist == -1 || d < bestDist:
			bestDist = d
			matches = []string{name}
		case d == bestDist:
			matches = append(matches, name)
		}
	}

	if bestDist > threshold {
		return nil
	}
	return matches
}

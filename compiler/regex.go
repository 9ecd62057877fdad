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

// validateRegex compiles a RegexValue case-insensitively before accepting
// it, so a pattern that is well-formed on its own but rejected once
// case-folded (a rare RE2 edge case) still fails loudly rather than
// reaching the BDCL output. This is a single-engine check, not a
// pluggable multi-engine registry — see DESIGN.md for why that was not
// carried over.
func validateRegex(pattern string) error {
	if _, err := regexp.Compile("(?i)" + pattern); err != nil {
		return ErrInvalidRegex.New(pattern, err.Error())
	}
	return nil
}

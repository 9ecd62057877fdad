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

// CountAggFunc is the only aggregation function the compiler supports.
// Any other aggregation function degrades to the default envelope rather
// than failing the rule.
const CountAggFunc = "COUNT"

// Comparison operators a condition's aggregation clause may use.
const (
	OpGT = ">"
	OpGE = ">="
	OpLT = "<"
	OpLE = "<="
	OpEQ = "="
)

// Aggregation describes a Sigma `| count() by ...` clause attached to a
// condition. AggField is carried for completeness but unused by the
// envelope builder (only groupfield and the threshold matter here).
type Aggregation struct {
	AggFunc    string
	AggField   string
	GroupField string
	CondOp     string
	Condition  string
}

// IsCount reports whether this aggregation uses the only supported
// function. A nil Aggregation is never a count.
func (a *Aggregation) IsCount() bool {
	return a != nil && a.AggFunc == CountAggFunc
}

// ConditionParse pairs one parsed boolean condition expression with its
// (possibly absent) aggregation descriptor. A ParsedRule carries one of
// these per `condition:` entry in the Sigma detection block.
type ConditionParse struct {
	ParsedSearch Node
	ParsedAgg    *Aggregation
}

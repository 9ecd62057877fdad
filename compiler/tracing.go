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
	"context"

	"github.com/opentracing/opentracing-go"
)

// startCompileSpan opens a "compile_rule" span against tracer (falling back
// to the global tracer when tracer is nil), tagged with the rule identity.
// The compiler has no concurrency of its own, but tracing composes with
// whatever tracer an embedding batch driver already runs, so it is carried
// here rather than left out for want of a consumer.
func startCompileSpan(ctx context.Context, tracer opentracing.Tracer, ruleID string, conditionCount int) (opentracing.Span, context.Context) {
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, tracer, "compile_rule")
	span.SetTag("rule.id", ruleID)
	span.SetTag("rule.condition_count", conditionCount)
	return span, ctx
}

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

// Package compiler lowers a parsed Sigma condition AST into Black Diamond
// Correlation Language text: the tree-walking visitor, the post-generation
// rewriter, the metadata envelope, and the optional CSV wrapping. Everything
// in this package is pure and synchronous — see Backend's doc comment for
// the concurrency contract.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/futuredata/sigma/ast"
	"github.com/futuredata/sigma/config"
)

// Backend is the Orchestrator: a compiler instance fixed to one
// (SigmaConfig, Options) pair. Unlike the Python original it carries no
// mutable per-rule state — logsource is threaded through Compile as a
// parameter, never stored — so a single *Backend is safe to call Compile on
// concurrently from multiple goroutines for different rules.
type Backend struct {
	fields   FieldResolver
	values   ValueFormatter
	rewriter QueryRewriter
	tenant   TenantAppender
	envelope EnvelopeBuilder

	outputCSV           bool
	sevMappingAsNum     map[string]int
	fulltextSearchField string

	log    *logrus.Entry
	tracer opentracing.Tracer
}

// NewBackend builds a Backend from a decoded SigmaConfig and Options. log
// and tracer may both be nil; sensible defaults (the standard logrus logger,
// the global opentracing tracer) are substituted lazily per call.
func NewBackend(cfg *config.SigmaConfig, opts *config.Options, log *logrus.Entry, tracer opentracing.Tracer) *Backend {
	return &Backend{
		fields:   NewFieldResolver(cfg, log),
		rewriter: QueryRewriter{},
		tenant: TenantAppender{
			Product:               opts.Others.Product,
			Service:               opts.Others.Service,
			AdditionalWhereClause: opts.General.AdditionalWhereClause,
		},
		envelope: EnvelopeBuilder{
			HavingClauseFields: opts.General.HavingClauseFields,
			SevMapping:         opts.General.SevMapping,
		},
		outputCSV:           opts.OutputCSV,
		sevMappingAsNum:     opts.General.SevMappingAsNum,
		fulltextSearchField: opts.General.FullTextSearchField,
		log:                 log,
		tracer:              tracer,
	}
}

// Compile is the per-rule entry point: it runs every condition parse
// through the pipeline (NodeVisitor → QueryRewriter → TenantAppender →
// EnvelopeBuilder), joins multiple results with the literal `\nUNION OR\n`
// separator, and — when configured — wraps the result as a single CSV row.
func (b *Backend) Compile(ctx context.Context, rule *ast.ParsedRule) (string, error) {
	span, _ := startCompileSpan(ctx, b.tracer, rule.ID, len(rule.Conditions))
	defer span.Finish()

	log := scopedLogger(b.log, newCorrelationID(), rule.ID)
	log.WithField("condition_count", len(rule.Conditions)).Debug("compiling rule")

	queries := make([]string, len(rule.Conditions))
	for i, cp := range rule.Conditions {
		q, err := b.compileCondition(rule, cp, log)
		if err != nil {
			return "", errors.Wrapf(err, "rule %s: condition %d", rule.ID, i)
		}
		queries[i] = q
	}

	result := strings.Join(queries, "\nUNION OR\n")

	if b.outputCSV {
		result = CsvEmitter{}.Emit(rule, result, b.sevMappingAsNum[rule.Level])
	}

	log.WithFields(logrus.Fields{
		"union_count": len(queries) - 1,
		"csv":         b.outputCSV,
	}).Info("rule compiled")

	return result, nil
}

func (b *Backend) compileCondition(rule *ast.ParsedRule, cp ast.ConditionParse, log *logrus.Entry) (string, error) {
	visitor := nodeVisitor{
		values:              b.values,
		fields:              b.fields,
		rewriter:            b.rewriter,
		fulltextSearchField: b.fulltextSearchField,
	}

	where, ok, err := visitor.generate(cp.ParsedSearch, rule.Logsource)
	if err != nil {
		return "", err
	}
	if !ok {
		where = ""
	}

	if fts, ferr := (FtsDetector{}).ContainsFullTextSearch(cp.ParsedSearch); ferr == nil && fts {
		log.Debug("condition contains a keyword-only leaf; handled by NodeVisitor's FTS rewrite")
	}

	where = b.rewriter.Rewrite(where)
	where = b.tenant.Append(where, rule.Logsource)

	if cp.ParsedAgg != nil && cp.ParsedAgg.AggFunc != "" && !cp.ParsedAgg.IsCount() {
		log.WithField("aggfunc", cp.ParsedAgg.AggFunc).Warn("unsupported aggregation function, falling back to default envelope")
	}

	return b.envelope.Build(cp.ParsedAgg, where, rule.Timeframe, rule.Level), nil
}

// Compile is the package-level convenience entry point: it builds a
// throwaway Backend (no logger, no tracer) and compiles a single rule.
// Callers that compile many rules against the same config
// should build one *Backend via NewBackend instead, to reuse the FieldResolver
// and to get a shared logger/tracer scoped to their own process.
func Compile(ctx context.Context, rule *ast.ParsedRule, cfg *config.SigmaConfig, opts *config.Options) (string, error) {
	if rule == nil {
		return "", fmt.Errorf("compiler: nil rule")
	}
	return NewBackend(cfg, opts, nil, nil).Compile(ctx, rule)
}

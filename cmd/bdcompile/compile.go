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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/futuredata/sigma/ast"
	"github.com/futuredata/sigma/cache"
	"github.com/futuredata/sigma/compiler"
	"github.com/futuredata/sigma/config"
)

// compileConfig holds the flags the compile subcommand registers: a
// per-command flags struct built by newCompileCmd and closed over by RunE.
type compileConfig struct {
	rulePath        string
	conditionPath   string
	sigmaConfigPath string
	optionsPath     string
	cachePath       string
}

func newCompileCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile one Sigma rule to BDCL",
		Long: `compile reads a Sigma rule's metadata, a JSON-encoded condition AST
(standing in for the out-of-scope Sigma condition-expression parser), a
field-mapping config, and an options file, then prints the compiled BDCL (or
CSV row, if the options enable it) to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.rulePath, "rule", "", "path to the Sigma rule YAML file (required)")
	cmd.Flags().StringVar(&cfg.conditionPath, "condition", "", "path to the JSON-encoded condition AST (required)")
	cmd.Flags().StringVar(&cfg.sigmaConfigPath, "sigmaconfig", "", "path to the field-mapping config YAML file (required)")
	cmd.Flags().StringVar(&cfg.optionsPath, "options", "", "path to the options YAML file (required)")
	cmd.Flags().StringVar(&cfg.cachePath, "cache", "", "optional path to a boltdb cache file")

	for _, name := range []string{"rule", "condition", "sigmaconfig", "options"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runCompile(cmd *cobra.Command, cfg *compileConfig) error {
	rawRule, err := os.ReadFile(cfg.rulePath)
	if err != nil {
		return fmt.Errorf("reading rule file: %w", err)
	}
	rule, err := ast.NewParsedRuleFromYAML(rawRule)
	if err != nil {
		return fmt.Errorf("parsing rule metadata: %w", err)
	}

	rawCondition, err := os.ReadFile(cfg.conditionPath)
	if err != nil {
		return fmt.Errorf("reading condition file: %w", err)
	}
	cp, err := decodeConditionDoc(rawCondition)
	if err != nil {
		return err
	}
	rule.Conditions = []ast.ConditionParse{cp}

	rawSigmaConfig, err := os.ReadFile(cfg.sigmaConfigPath)
	if err != nil {
		return fmt.Errorf("reading sigmaconfig file: %w", err)
	}
	sigmaConfig, err := config.LoadSigmaConfig(rawSigmaConfig)
	if err != nil {
		return fmt.Errorf("parsing sigmaconfig: %w", err)
	}

	rawOptions, err := os.ReadFile(cfg.optionsPath)
	if err != nil {
		return fmt.Errorf("reading options file: %w", err)
	}
	if err := config.ValidateOptions(rawOptions); err != nil {
		return fmt.Errorf("validating options: %w", err)
	}
	opts, err := config.LoadOptions(rawOptions)
	if err != nil {
		return fmt.Errorf("parsing options: %w", err)
	}

	ctx := context.Background()

	var result string
	if cfg.cachePath != "" {
		c, err := cache.Open(cfg.cachePath)
		if err != nil {
			return err
		}
		defer c.Close()
		result, err = c.CompileCached(ctx, rule, sigmaConfig, opts, compiler.Compile)
		if err != nil {
			return err
		}
	} else {
		result, err = compiler.Compile(ctx, rule, sigmaConfig, opts)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

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

import "github.com/spf13/cobra"

// NewRootCmd builds the bdcompile root command and wires its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bdcompile",
		Short: "Compile a Sigma rule to Black Diamond Correlation Language",
		Long: `bdcompile lowers a single Sigma detection rule into BDCL text,
given a field-mapping config and an options file. It is a demonstration
harness around the compiler package, not the batch conversion driver.`,
	}

	cmd.AddCommand(newCompileCmd())
	return cmd
}

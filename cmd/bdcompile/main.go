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

// Command bdcompile is a thin demonstration CLI around the compiler
// package: it compiles a single Sigma rule file against a field-mapping
// config and an options file, and prints the resulting BDCL (or CSV row) to
// stdout. It deliberately does not walk directories, apply an ignore list,
// or write CSV files — that is the out-of-scope batch driver's job; this is
// a one-rule-at-a-time tool for trying the compiler out.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("bdcompile failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

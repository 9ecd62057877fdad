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
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// newCorrelationID mints a per-compile identifier for request-scoped log
// correlation.
func newCorrelationID() string {
	return uuid.NewV4().String()
}

// scopedLogger returns a *logrus.Entry carrying the correlation ID and rule
// ID fields every log line for one Compile call should include. log may be
// nil, in which case a freshly built standard logger is used so callers
// never need to nil-check before logging.
func scopedLogger(log *logrus.Entry, correlationID, ruleID string) *logrus.Entry {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return log.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"rule_id":        ruleID,
	})
}

// Copyright 2020-2021 Dolthub, Inc.
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

// Package planlog wires the planner's stage-by-stage tracing to logrus, the
// same logger the rest of this codebase uses.
package planlog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard returns an entry that drops every record, used as the default
// Logger for a Config that does not care about pipeline tracing.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Stage returns a child entry scoped to a single pipeline stage, so every
// record it emits carries the stage name without the caller repeating it.
func Stage(base *logrus.Entry, name string) *logrus.Entry {
	if base == nil {
		base = Discard()
	}
	return base.WithField("stage", name)
}

// NodeCount logs the before/after node count of a rewrite stage at Trace
// level, the same granularity engine.go uses for query-plan tracing.
func NodeCount(entry *logrus.Entry, before, after int, changed bool) {
	entry.WithFields(logrus.Fields{
		"nodes_before": before,
		"nodes_after":  after,
		"changed":      changed,
	}).Trace("rewrite stage complete")
}

// RecursionCap logs a Warn when a rule hits its iteration safety cap
// without reaching a fixed point.
func RecursionCap(entry *logrus.Entry, passes int) {
	entry.WithField("passes", passes).Warn("rewrite stage hit recursion cap")
}

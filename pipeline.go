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

// Package queryplanner is the top-level entry point: Rewrite wires the
// nine §4.5 pipeline stages, in order, over a tree the adapter package
// has already built from the Analyzer's output.
package queryplanner

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zeedb/queryplanner/catalogcache"
	"github.com/zeedb/queryplanner/planerrors"
	"github.com/zeedb/queryplanner/planlog"
	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/rewrite"
	"github.com/zeedb/queryplanner/rules"
)

// Config bundles the pipeline's injectable dependencies. Every field
// except Catalog is optional; a zero Config runs with a discard logger,
// the real wall clock, and a pass cap of 100. Catalog has no default: it
// is read only when DDL lowering meets a CreateTable.
type Config struct {
	// MaxRewritePasses bounds how many times the Rewrite{sql} expansion
	// stage (§4.5 step 9) may re-enter the pipeline for a single query.
	// The spec's termination contract does not require a cap, but one is
	// kept here as a safety net against a reparse hook that is itself
	// buggy (see planerrors.ErrRecursionLimit).
	MaxRewritePasses int
	// Now supplies the planning-time clock scalar simplification (§4.5
	// step 3) captures once per query; every CurrentDate/CurrentTimestamp
	// reference within that query sees the same value (§5).
	Now func() time.Time
	// Logger receives per-stage node-count and recursion-cap diagnostics.
	Logger *logrus.Entry
	// Catalog backs DDL lowering's table-id reservation (§4.5 step 1).
	Catalog catalogcache.Catalog
}

func (c Config) withDefaults() Config {
	if c.MaxRewritePasses <= 0 {
		c.MaxRewritePasses = 100
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = planlog.Discard()
	}
	return c
}

// Reparse re-parses and re-resolves SQL text generated by DDL/DML
// lowering, handing back a fresh plan.Expr built by the adapter package.
// The embedding integration supplies this, since this package has no
// Analyzer dependency of its own.
type Reparse func(sql string) (plan.Expr, error)

// Rewrite drives tree through all nine pipeline stages to produce the
// logical plan described by §6 "To the Executor".
func Rewrite(tree plan.Expr, cfg Config, reparse Reparse) (plan.Expr, error) {
	cfg = cfg.withDefaults()
	now := cfg.Now()
	cfg.Now = func() time.Time { return now }
	return rewritePass(tree, cfg, reparse, 0)
}

func rewritePass(tree plan.Expr, cfg Config, reparse Reparse, depth int) (plan.Expr, error) {
	if depth >= cfg.MaxRewritePasses {
		return tree, planerrors.ErrRecursionLimit.New("pipeline", cfg.MaxRewritePasses)
	}

	type stage struct {
		name string
		run  func(plan.Expr) (plan.Expr, rewrite.TreeIdentity, error)
	}

	reenter := func(sql string) (plan.Expr, error) {
		parsed, err := reparse(sql)
		if err != nil {
			return plan.Expr{}, err
		}
		return rewritePass(parsed, cfg, reparse, depth+1)
	}

	stages := []stage{
		{"ddl-lowering", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.LowerDDL(cfg.Catalog))
		}},
		{"with-lowering", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.LowerWith())
		}},
		{"scalar-simplification", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.SimplifyScalars(cfg.Now()))
		}},
		{"dependent-join-unnesting", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.BottomUp(e, rules.UnnestDependentJoins())
		}},
		{"predicate-pushdown", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.PushDownPredicates())
		}},
		{"dependent-join-removal", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.BottomUp(e, rules.RemoveDependentJoins())
		}},
		{"join-type-specialization", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.BottomUp(e, rules.SpecializeJoinType())
		}},
		{"projection-pushdown", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.PushDownProjections())
		}},
		{"rewrite-expansion", func(e plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
			return rewrite.TopDown(e, rules.ExpandRewriteSQL(reenter))
		}},
	}

	cur := tree
	for _, s := range stages {
		stageLog := planlog.Stage(cfg.Logger, s.name)
		before := plan.CountNodes(cur)
		next, changed, err := s.run(cur)
		if err != nil {
			if planerrors.ErrRecursionLimit.Is(err) {
				planlog.RecursionCap(stageLog, rewrite.RecursionCap)
			}
			return cur, err
		}
		after := plan.CountNodes(next)
		planlog.NodeCount(stageLog, before, after, bool(changed))
		cur = next
	}
	return cur, nil
}

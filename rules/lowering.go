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

// Package rules implements the nine pipeline stages of §4.5, each
// expressed as one or more rewrite.Rule values driven to a fixed point
// by rewrite.TopDown or rewrite.BottomUp.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zeedb/queryplanner/catalogcache"
	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/rewrite"
	"github.com/zeedb/queryplanner/scalar"
)

// LowerDDL rewrites CreateDatabase/CreateTable/CreateIndex/Drop into a
// Rewrite{sql} placeholder (cat supplies a CreateTable's new id), and
// Update into a Script of CreateTempTable (the selected rows), Delete
// (those rows) and Insert (the reassigned rows) (§4.5 step 1). Intended
// to run under rewrite.TopDown.
func LowerDDL(cat catalogcache.Catalog) rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		switch node.Kind {
		case plan.KindCreateDatabase:
			return plan.RewriteSQL(fmt.Sprintf("CREATE DATABASE %s", node.Table.Name)), rewrite.NewTree, nil
		case plan.KindCreateTable:
			id, err := cat.ReserveID()
			if err != nil {
				return node, rewrite.SameTree, err
			}
			return plan.RewriteSQL(createTableSQL(node.Table, id)), rewrite.NewTree, nil
		case plan.KindCreateIndex:
			return plan.RewriteSQL(fmt.Sprintf("CREATE INDEX %s ON %s", node.Name, node.Table.Name)), rewrite.NewTree, nil
		case plan.KindDrop:
			return plan.RewriteSQL(fmt.Sprintf("DROP TABLE %s", node.Table.Name)), rewrite.NewTree, nil
		case plan.KindUpdate:
			// The rows selected by node.Children[0] are consumed twice (once
			// to delete, once to compute the new values to insert), so they
			// are materialized into a temp table rather than shared as a
			// single Expr subtree: every node in the tree owns its children
			// exclusively (§5).
			attrs, err := node.Children[0].Attributes()
			if err != nil {
				return node, rewrite.SameTree, err
			}
			// A uuid suffix, not just the table id, keeps two Update nodes
			// against the same table within one query tree from colliding
			// on the same temp table name.
			tempName := fmt.Sprintf("__update_%d_%s", node.Table.ID, uuid.NewString())
			cols := attrs.Columns()
			temp := plan.CreateTempTable(tempName, cols, node.Children[0])
			del := plan.Delete(node.Table, plan.GetWith(tempName, cols))
			insertInput := plan.Map(true, node.Assignments, plan.GetWith(tempName, cols))
			ins := plan.Insert(node.Table, insertInput)
			return plan.Script(temp, del, ins), rewrite.NewTree, nil
		default:
			return node, rewrite.SameTree, nil
		}
	}
}

func createTableSQL(t scalar.Table, id int64) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", c.Name, c.Type.String())
	}
	return fmt.Sprintf("CREATE TABLE %s /* id=%d */ (%s)", t.Name, id, strings.Join(cols, ", "))
}

// LowerWith rewrites With{name, columns, left, right} into a Script of a
// CreateTempTable from left followed by right (§4.5 step 2).
func LowerWith() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind != plan.KindWith {
			return node, rewrite.SameTree, nil
		}
		left, right := node.Children[0], node.Children[1]
		temp := plan.CreateTempTable(node.Name, node.BindColumns, left)
		return plan.Script(temp, right), rewrite.NewTree, nil
	}
}

// SimplifyScalars folds CurrentDate/CurrentTimestamp calls to literals
// captured once at now (§4.5 step 3), so every reference within a single
// query sees the same planning-time value per §5's ordering guarantee.
func SimplifyScalars(now time.Time) rewrite.Rule {
	dateLit := scalar.Literal(scalar.Value{Type: scalar.Date, Data: now.UTC().Format("2006-01-02")})
	tsLit := scalar.Literal(scalar.Value{Type: scalar.Timestamp, Data: now.UTC()})

	var simplify func(s scalar.Scalar) (scalar.Scalar, bool)
	simplify = func(s scalar.Scalar) (scalar.Scalar, bool) {
		changed := false
		if s.Kind == scalar.KindScalarCall {
			switch s.Fn {
			case scalar.FuncCurrentDate:
				return dateLit, true
			case scalar.FuncCurrentTimestamp:
				return tsLit, true
			}
		}
		next := s.Map(func(child scalar.Scalar) scalar.Scalar {
			rewritten, ch := simplify(child)
			if ch {
				changed = true
			}
			return rewritten
		})
		return next, changed
	}

	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		changed := false
		if len(node.Predicates) > 0 {
			newPredicates := make([]scalar.Scalar, len(node.Predicates))
			for i, p := range node.Predicates {
				rewritten, ch := simplify(p)
				newPredicates[i] = rewritten
				changed = changed || ch
			}
			node.Predicates = newPredicates
		}
		if len(node.MapProjects) > 0 {
			newProjects := make([]plan.MapProject, len(node.MapProjects))
			for i, p := range node.MapProjects {
				rewritten, ch := simplify(p.Compute)
				newProjects[i] = plan.MapProject{Compute: rewritten, Into: p.Into}
				changed = changed || ch
			}
			node.MapProjects = newProjects
		}
		if changed {
			return node, rewrite.NewTree, nil
		}
		return node, rewrite.SameTree, nil
	}
}

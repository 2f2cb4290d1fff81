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

package rules

import (
	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/rewrite"
	"github.com/zeedb/queryplanner/scalar"
)

// SpecializeJoinType implements §4.9's rewrites: a Filter testing a Mark
// join's mark column specializes the join to Semi or Anti, trivial joins
// against SingleRow collapse to their other side, and a provably
// singleton Single join collapses to an ordinary Inner join. Intended to
// run under rewrite.BottomUp so the Mark/Single it inspects have
// already settled.
func SpecializeJoinType() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind == plan.KindFilter {
			if rewritten, changed, ok := specializeMarkFilter(node); ok {
				return rewritten, changed, nil
			}
		}
		if node.Kind == plan.KindJoin {
			if rewritten, changed, ok := collapseTrivialJoin(node); ok {
				return rewritten, changed, nil
			}
			if rewritten, changed, ok := collapseSingletonJoin(node); ok {
				return rewritten, changed, nil
			}
		}
		return node, rewrite.SameTree, nil
	}
}

func specializeMarkFilter(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, bool) {
	child := node.Children[0]
	if child.Kind != plan.KindJoin || child.JoinKind != plan.JoinMark {
		return plan.Expr{}, rewrite.SameTree, false
	}
	mark := child.MarkColumn

	for i, p := range node.Predicates {
		if isMarkRef(p, mark) {
			return buildSpecialized(node, child, mark, i, plan.JoinSemi, true), rewrite.NewTree, true
		}
		if isNotMarkRef(p, mark) {
			return buildSpecialized(node, child, mark, i, plan.JoinAnti, false), rewrite.NewTree, true
		}
	}
	return plan.Expr{}, rewrite.SameTree, false
}

func isMarkRef(p scalar.Scalar, mark scalar.Column) bool {
	return p.Kind == scalar.KindScalarColumn && p.Col.ID == mark.ID
}

func isNotMarkRef(p scalar.Scalar, mark scalar.Column) bool {
	return p.Kind == scalar.KindScalarCall && p.Fn == scalar.FuncNot && len(p.Args) == 1 && isMarkRef(p.Args[0], mark)
}

func buildSpecialized(node, child plan.Expr, mark scalar.Column, markPredicateIdx int, kind plan.JoinKind, markValue bool) plan.Expr {
	specialized := plan.Join(kind, scalar.Column{}, child.Predicates, child.Children[0], child.Children[1])

	residual := make([]scalar.Scalar, 0, len(node.Predicates)-1)
	for i, p := range node.Predicates {
		if i != markPredicateIdx {
			residual = append(residual, p)
		}
	}
	var withResidual plan.Expr
	if len(residual) == 0 {
		withResidual = specialized
	} else {
		withResidual = plan.Filter(residual, specialized)
	}

	markLiteral := scalar.Literal(scalar.Value{Type: scalar.Bool, Data: markValue})
	return plan.Map(true, []plan.MapProject{{Compute: markLiteral, Into: mark}}, withResidual)
}

func collapseTrivialJoin(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, bool) {
	if node.JoinKind != plan.JoinInner {
		return plan.Expr{}, rewrite.SameTree, false
	}
	left, right := node.Children[0], node.Children[1]
	if result, ok := collapseTrivialSide(left, right); ok {
		return result, rewrite.NewTree, true
	}
	if result, ok := collapseTrivialSide(right, left); ok {
		return result, rewrite.NewTree, true
	}
	return plan.Expr{}, rewrite.SameTree, false
}

// collapseTrivialSide checks whether trivial is SingleRow (or a Map of
// constants over SingleRow) and, if so, returns keep with trivial's
// projections (if any) re-applied on top.
func collapseTrivialSide(trivial, keep plan.Expr) (plan.Expr, bool) {
	if trivial.Kind == plan.KindSingleRow {
		return keep, true
	}
	if trivial.Kind == plan.KindMap && trivial.Children[0].Kind == plan.KindSingleRow {
		allConstant := true
		for _, p := range trivial.MapProjects {
			if p.Compute.References().Len() > 0 {
				allConstant = false
				break
			}
		}
		if allConstant {
			return plan.Map(true, trivial.MapProjects, keep), true
		}
	}
	return plan.Expr{}, false
}

func collapseSingletonJoin(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, bool) {
	if node.JoinKind != plan.JoinSingle || len(node.Predicates) != 0 {
		return plan.Expr{}, rewrite.SameTree, false
	}
	if !isSingleton(node.Children[0]) {
		return plan.Expr{}, rewrite.SameTree, false
	}
	return plan.Join(plan.JoinInner, scalar.Column{}, node.Predicates, node.Children[0], node.Children[1]), rewrite.NewTree, true
}

// isSingleton proves, by structural recursion, that e produces at most
// (and, per §4.9, exactly) one row. An Aggregate with an empty group-by
// counts as a singleton only when proveNonEmpty also certifies its
// input as non-empty.
func isSingleton(e plan.Expr) bool {
	switch e.Kind {
	case plan.KindSingleRow:
		return true
	case plan.KindMap:
		return isSingleton(e.Children[0])
	case plan.KindAggregate:
		return len(e.GroupBy) == 0 && proveNonEmpty(e.Children[0])
	default:
		return false
	}
}

// proveNonEmpty proves, by structural recursion, that e is guaranteed
// to produce at least one row.
func proveNonEmpty(e plan.Expr) bool {
	switch e.Kind {
	case plan.KindSingleRow:
		return true
	case plan.KindMap:
		return proveNonEmpty(e.Children[0])
	case plan.KindAggregate:
		return len(e.GroupBy) == 0 && proveNonEmpty(e.Children[0])
	default:
		return false
	}
}

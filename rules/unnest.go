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

// UnnestDependentJoins decorrelates DependentJoin{parameters, predicates,
// domain, subquery} by pushing the join downward until the subquery side
// no longer references parameters (§4.6). Intended to run under
// rewrite.BottomUp so a subquery's own children have already settled
// before a pattern is matched against its outermost operator.
func UnnestDependentJoins() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind != plan.KindDependentJoin {
			return node, rewrite.SameTree, nil
		}
		domain, subquery := node.Children[0], node.Children[1]
		params := scalar.NewColumnSet(node.Parameters...)

		subRefs, err := subquery.References()
		if err != nil {
			return node, rewrite.SameTree, err
		}
		if !subRefs.ContainsAny(params) {
			// The subquery no longer depends on the domain: collapse to an
			// ordinary join.
			return plan.Join(plan.JoinInner, scalar.Column{}, node.Predicates, domain, subquery), rewrite.NewTree, nil
		}

		switch subquery.Kind {
		case plan.KindFilter:
			return unnestThroughFilter(node, domain, subquery, params)
		case plan.KindMap:
			return unnestThroughMap(node, domain, subquery, params)
		case plan.KindJoin:
			return unnestThroughJoin(node, domain, subquery, params)
		case plan.KindAggregate:
			return unnestThroughAggregate(node, domain, subquery), rewrite.NewTree, nil
		default:
			// No local pattern applies; leave for a later pass (or for
			// dependent-join removal, §4.8, to handle as a remaining case).
			return node, rewrite.SameTree, nil
		}
	}
}

func unnestThroughFilter(node, domain, subquery plan.Expr, params *scalar.ColumnSet) (plan.Expr, rewrite.TreeIdentity, error) {
	filterInput := subquery.Children[0]
	var correlated, uncorrelated []scalar.Scalar
	for _, p := range subquery.Predicates {
		if p.References().ContainsAny(params) {
			correlated = append(correlated, p)
		} else {
			uncorrelated = append(uncorrelated, p)
		}
	}

	inner := plan.DependentJoin(node.Parameters, append(append([]scalar.Scalar{}, node.Predicates...), correlated...), domain, filterInput)
	if len(uncorrelated) == 0 {
		return inner, rewrite.NewTree, nil
	}
	return plan.Filter(uncorrelated, inner), rewrite.NewTree, nil
}

func unnestThroughMap(node, domain, subquery plan.Expr, params *scalar.ColumnSet) (plan.Expr, rewrite.TreeIdentity, error) {
	correlated := false
	for _, p := range subquery.MapProjects {
		if p.Compute.References().ContainsAny(params) {
			correlated = true
			break
		}
	}
	if correlated {
		// A fully general rule would capture fresh parameter-derived
		// columns here; left unhandled (no local progress).
		return node, rewrite.SameTree, nil
	}
	mapInput := subquery.Children[0]
	inner := plan.DependentJoin(node.Parameters, node.Predicates, domain, mapInput)
	return plan.Map(subquery.IncludeExisting, subquery.MapProjects, inner), rewrite.NewTree, nil
}

func unnestThroughJoin(node, domain, subquery plan.Expr, params *scalar.ColumnSet) (plan.Expr, rewrite.TreeIdentity, error) {
	subLeft, subRight := subquery.Children[0], subquery.Children[1]
	leftRefs, err := subLeft.References()
	if err != nil {
		return node, rewrite.SameTree, err
	}
	rightRefs, err := subRight.References()
	if err != nil {
		return node, rewrite.SameTree, err
	}
	leftDep := leftRefs.ContainsAny(params)
	rightDep := rightRefs.ContainsAny(params)

	switch {
	case leftDep && !rightDep:
		newLeft := plan.DependentJoin(node.Parameters, node.Predicates, domain, subLeft)
		return plan.Join(subquery.JoinKind, subquery.MarkColumn, subquery.Predicates, newLeft, subRight), rewrite.NewTree, nil
	case rightDep && !leftDep:
		newRight := plan.DependentJoin(node.Parameters, node.Predicates, domain, subRight)
		return plan.Join(subquery.JoinKind, subquery.MarkColumn, subquery.Predicates, subLeft, newRight), rewrite.NewTree, nil
	case leftDep && rightDep:
		// Both sides depend on the domain: duplicate it, and the
		// correlation predicates that relate it to the subquery, onto
		// each side rather than attempt a single shared dependent join.
		newLeft := plan.DependentJoin(node.Parameters, node.Predicates, domain, subLeft)
		newRight := plan.DependentJoin(node.Parameters, node.Predicates, domain, subRight)
		return plan.Join(subquery.JoinKind, subquery.MarkColumn, subquery.Predicates, newLeft, newRight), rewrite.NewTree, nil
	default:
		// Neither side actually references params (subRefs said otherwise
		// only via a join-level predicate); fall through unchanged.
		return node, rewrite.SameTree, nil
	}
}

func unnestThroughAggregate(node, domain, subquery plan.Expr) plan.Expr {
	aggInput := subquery.Children[0]
	inner := plan.DependentJoin(node.Parameters, node.Predicates, domain, aggInput)
	newGroupBy := append(append([]scalar.Column{}, subquery.GroupBy...), node.Parameters...)
	return plan.Aggregate(newGroupBy, subquery.Aggregates, inner)
}

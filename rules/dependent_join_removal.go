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

// RemoveDependentJoins implements §4.8: any DependentJoin whose
// predicates witness an equality between every declared parameter and a
// subquery-local expression needs no join at all. The witnessed
// expressions are exposed under the parameter's own column identity via
// a Map over the subquery and guarded by a null-rejecting filter (a
// NULL witness would not have joined against the domain); the domain
// itself is dropped entirely, since every value it could contribute is
// now produced by the rename. Falls back to a safe, always-correct but
// less selective join over a deduplicated domain when the witnesses are
// incomplete. Intended to run under rewrite.BottomUp, after predicate
// push-down.
func RemoveDependentJoins() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind != plan.KindDependentJoin {
			return node, rewrite.SameTree, nil
		}
		domain, subquery := node.Children[0], node.Children[1]
		subAttrs, err := subquery.Attributes()
		if err != nil {
			return node, rewrite.SameTree, err
		}

		witness := make(map[int64]scalar.Scalar, len(node.Parameters))
		var residual []scalar.Scalar
		for _, p := range node.Predicates {
			param, w, ok := matchWitness(p, node.Parameters, subAttrs)
			if ok {
				witness[param.ID] = w
				continue
			}
			residual = append(residual, p)
		}

		complete := true
		for _, param := range node.Parameters {
			if _, ok := witness[param.ID]; !ok {
				complete = false
				break
			}
		}

		if !complete {
			dedupedDomain := plan.Aggregate(node.Parameters, nil, domain)
			return plan.Join(plan.JoinInner, scalar.Column{}, node.Predicates, subquery, dedupedDomain), rewrite.NewTree, nil
		}

		mapProjects := make([]plan.MapProject, 0, len(node.Parameters))
		var nullChecks []scalar.Scalar
		for _, param := range node.Parameters {
			w := witness[param.ID]
			// Rename the witness expression directly onto the parameter's
			// own column identity: any residual predicate already written
			// in terms of param resolves against this Map without needing
			// the domain at all.
			mapProjects = append(mapProjects, plan.MapProject{Compute: w, Into: param})
			isNull, _ := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(param))
			notNull, _ := scalar.Call(scalar.FuncNot, scalar.DatePartUnspecified, isNull)
			nullChecks = append(nullChecks, notNull)
		}

		mapped := plan.Map(true, mapProjects, subquery)
		filterPreds := append(append([]scalar.Scalar{}, nullChecks...), residual...)
		return plan.Filter(filterPreds, mapped), rewrite.NewTree, nil
	}
}

// matchWitness reports whether p is an equality between one of params
// and an expression referencing only subAttrs (and no parameter).
func matchWitness(p scalar.Scalar, params []scalar.Column, subAttrs *scalar.ColumnSet) (scalar.Column, scalar.Scalar, bool) {
	if p.Kind != scalar.KindScalarCall || p.Fn != scalar.FuncEqual || len(p.Args) != 2 {
		return scalar.Column{}, scalar.Scalar{}, false
	}
	for _, pair := range [][2]scalar.Scalar{{p.Args[0], p.Args[1]}, {p.Args[1], p.Args[0]}} {
		lhs, rhs := pair[0], pair[1]
		if lhs.Kind != scalar.KindScalarColumn {
			continue
		}
		var param scalar.Column
		matched := false
		for _, cand := range params {
			if cand.ID == lhs.Col.ID {
				param = cand
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if !rhs.References().SubsetOf(subAttrs) {
			continue
		}
		return param, rhs, true
	}
	return scalar.Column{}, scalar.Scalar{}, false
}

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

// PushDownPredicates implements §4.7: a Filter merges into the child it
// sits over when safe, and a join-bearing operator's own predicate list
// is partitioned so the single-side portion moves into that side.
// Intended to run under rewrite.TopDown.
func PushDownPredicates() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		switch node.Kind {
		case plan.KindFilter:
			return pushFilter(node)
		case plan.KindJoin:
			return pushJoinCondition(node)
		case plan.KindDependentJoin:
			return pushDependentJoinCondition(node)
		default:
			return node, rewrite.SameTree, nil
		}
	}
}

func pushFilter(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
	child := node.Children[0]
	switch child.Kind {
	case plan.KindFilter:
		merged := append(append([]scalar.Scalar{}, node.Predicates...), child.Predicates...)
		return plan.Filter(merged, child.Children[0]), rewrite.NewTree, nil

	case plan.KindGet:
		merged := append(append([]scalar.Scalar{}, child.Predicates...), node.Predicates...)
		return plan.Get(child.Table, child.Projects, merged), rewrite.NewTree, nil

	case plan.KindJoin:
		if child.JoinKind == plan.JoinInner || child.JoinKind == plan.JoinSemi {
			merged := append(append([]scalar.Scalar{}, child.Predicates...), node.Predicates...)
			return plan.Join(child.JoinKind, child.MarkColumn, merged, child.Children[0], child.Children[1]), rewrite.NewTree, nil
		}
		rightAttrs, err := child.Children[1].Attributes()
		if err != nil {
			return node, rewrite.SameTree, err
		}
		pushable, residual := partition(node.Predicates, rightAttrs)
		if len(pushable) == 0 {
			return node, rewrite.SameTree, nil
		}
		newRight := plan.Filter(pushable, child.Children[1])
		newJoin := plan.Join(child.JoinKind, child.MarkColumn, child.Predicates, child.Children[0], newRight)
		if len(residual) == 0 {
			return newJoin, rewrite.NewTree, nil
		}
		return plan.Filter(residual, newJoin), rewrite.NewTree, nil

	case plan.KindMap:
		if !child.IncludeExisting {
			return node, rewrite.SameTree, nil
		}
		newCols := scalar.NewColumnSet()
		for _, p := range child.MapProjects {
			newCols.Add(p.Into)
		}
		var pushable, residual []scalar.Scalar
		for _, p := range node.Predicates {
			if p.References().ContainsAny(newCols) {
				residual = append(residual, p)
			} else {
				pushable = append(pushable, p)
			}
		}
		if len(pushable) == 0 {
			return node, rewrite.SameTree, nil
		}
		newChild := plan.Filter(pushable, child.Children[0])
		newMap := plan.Map(child.IncludeExisting, child.MapProjects, newChild)
		if len(residual) == 0 {
			return newMap, rewrite.NewTree, nil
		}
		return plan.Filter(residual, newMap), rewrite.NewTree, nil

	default:
		return node, rewrite.SameTree, nil
	}
}

// partition splits predicates into those referencing only attrs (pushable)
// and everything else (residual), preserving relative order in each group.
func partition(predicates []scalar.Scalar, attrs *scalar.ColumnSet) (pushable, residual []scalar.Scalar) {
	for _, p := range predicates {
		if p.References().SubsetOf(attrs) {
			pushable = append(pushable, p)
		} else {
			residual = append(residual, p)
		}
	}
	return
}

func pushJoinCondition(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
	left, right := node.Children[0], node.Children[1]
	leftAttrs, err := left.Attributes()
	if err != nil {
		return node, rewrite.SameTree, err
	}
	rightAttrs, err := right.Attributes()
	if err != nil {
		return node, rewrite.SameTree, err
	}

	var toLeft, toRight, residual []scalar.Scalar
	pushLeftAllowed := node.JoinKind == plan.JoinInner || node.JoinKind == plan.JoinSemi
	for _, p := range node.Predicates {
		refs := p.References()
		switch {
		case pushLeftAllowed && refs.SubsetOf(leftAttrs):
			toLeft = append(toLeft, p)
		case refs.SubsetOf(rightAttrs):
			toRight = append(toRight, p)
		default:
			residual = append(residual, p)
		}
	}
	if len(toLeft) == 0 && len(toRight) == 0 {
		return node, rewrite.SameTree, nil
	}
	if len(toLeft) > 0 {
		left = plan.Filter(toLeft, left)
	}
	if len(toRight) > 0 {
		right = plan.Filter(toRight, right)
	}
	return plan.Join(node.JoinKind, node.MarkColumn, residual, left, right), rewrite.NewTree, nil
}

func pushDependentJoinCondition(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
	domain, subquery := node.Children[0], node.Children[1]
	params := scalar.NewColumnSet(node.Parameters...)
	domainAttrs, err := domain.Attributes()
	if err != nil {
		return node, rewrite.SameTree, err
	}
	subAttrs, err := subquery.Attributes()
	if err != nil {
		return node, rewrite.SameTree, err
	}

	var toDomain, toSub, residual []scalar.Scalar
	for _, p := range node.Predicates {
		refs := p.References()
		switch {
		case refs.SubsetOf(domainAttrs) && !refs.ContainsAny(params):
			toDomain = append(toDomain, p)
		case refs.SubsetOf(subAttrs):
			toSub = append(toSub, p)
		default:
			residual = append(residual, p)
		}
	}
	if len(toDomain) == 0 && len(toSub) == 0 {
		return node, rewrite.SameTree, nil
	}
	if len(toDomain) > 0 {
		domain = plan.Filter(toDomain, domain)
	}
	if len(toSub) > 0 {
		subquery = plan.Filter(toSub, subquery)
	}
	return plan.DependentJoin(node.Parameters, residual, domain, subquery), rewrite.NewTree, nil
}

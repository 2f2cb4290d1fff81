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

// PushDownProjections implements §4.10: identity Maps are removed,
// adjacent Maps expressible purely as renames are fused, and a rename-only
// Map over a Get folds into the Get's own projection list. Intended to
// run under rewrite.TopDown.
//
// The merge/fold cases below are restricted to outer Maps with
// IncludeExisting == false: once a Map declares its full output column
// list explicitly, there is no ambiguity about which columns the fused
// node must still expose. An IncludeExisting Map is left in place rather
// than guessing which of the collapsed layer's passthrough columns the
// caller actually depends on.
func PushDownProjections() rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind != plan.KindMap {
			return node, rewrite.SameTree, nil
		}
		if ok, err := isIdentityMap(node); err != nil {
			return node, rewrite.SameTree, err
		} else if ok {
			return node.Children[0], rewrite.NewTree, nil
		}

		if node.IncludeExisting {
			return node, rewrite.SameTree, nil
		}
		child := node.Children[0]
		switch child.Kind {
		case plan.KindMap:
			if merged, ok := mergeMapOverMap(node, child); ok {
				return merged, rewrite.NewTree, nil
			}
		case plan.KindGet:
			if merged, ok := foldMapIntoGet(node, child); ok {
				return merged, rewrite.NewTree, nil
			}
		}
		return node, rewrite.SameTree, nil
	}
}

func isIdentityMap(node plan.Expr) (bool, error) {
	inputAttrs, err := node.Children[0].Attributes()
	if err != nil {
		return false, err
	}
	outAttrs, err := node.Attributes()
	if err != nil {
		return false, err
	}
	if outAttrs.Len() != inputAttrs.Len() || !outAttrs.SubsetOf(inputAttrs) {
		return false, nil
	}
	for _, p := range node.MapProjects {
		if p.Compute.Kind != scalar.KindScalarColumn || p.Compute.Col.ID != p.Into.ID {
			return false, nil
		}
	}
	return true, nil
}

func mergeMapOverMap(outer, inner plan.Expr) (plan.Expr, bool) {
	innerDefs := make(map[int64]scalar.Scalar, len(inner.MapProjects))
	for _, p := range inner.MapProjects {
		innerDefs[p.Into.ID] = p.Compute
	}
	newProjects := make([]plan.MapProject, len(outer.MapProjects))
	for i, p := range outer.MapProjects {
		switch p.Compute.Kind {
		case scalar.KindScalarColumn:
			if def, ok := innerDefs[p.Compute.Col.ID]; ok {
				newProjects[i] = plan.MapProject{Compute: def, Into: p.Into}
			} else {
				newProjects[i] = p
			}
		case scalar.KindScalarLiteral:
			newProjects[i] = p
		default:
			return plan.Expr{}, false
		}
	}
	return plan.Map(false, newProjects, inner.Children[0]), true
}

// foldMapIntoGet folds a rename-only Map into its Get child additively:
// the Get's existing projection list is kept in full (a predicate
// pushed down in an earlier stage may still reference one of those
// columns) and the Map's renamed columns are appended, skipping any
// already present by column identity.
func foldMapIntoGet(outer, get plan.Expr) (plan.Expr, bool) {
	getAttrs := scalar.NewColumnSet(get.Projects...)
	combined := append([]scalar.Column{}, get.Projects...)
	seen := scalar.NewColumnSet(get.Projects...)
	for _, p := range outer.MapProjects {
		if p.Compute.Kind != scalar.KindScalarColumn || !getAttrs.Contains(p.Compute.Col) {
			return plan.Expr{}, false
		}
		if !seen.Contains(p.Into) {
			combined = append(combined, p.Into)
			seen.Add(p.Into)
		}
	}
	return plan.Get(get.Table, combined, get.Predicates), true
}

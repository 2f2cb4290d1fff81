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

// Package rewrite provides the two pure higher-order tree-rewrite
// drivers every rule in package rules is built from. The shape mirrors
// the teacher's sql/transform.Node: a rule reports whether it changed
// anything via a TreeIdentity result rather than a plain bool, so a
// driver that threads the identity through a child rewrite can tell,
// without re-walking the tree, whether the parent needs to be rebuilt.
package rewrite

import (
	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/planerrors"
)

// TreeIdentity reports whether a rewrite step produced a structurally
// new tree or left it unchanged.
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

// Rule is one rewrite step. It returns the (possibly unchanged) result,
// whether it changed anything, and an error if the rule cannot apply.
type Rule func(plan.Expr) (plan.Expr, TreeIdentity, error)

// RecursionCap bounds how many times a single Rule may re-fire at the
// same node before TopDown/BottomUp give up chasing a fixed point. The
// spec's termination contract is proved by a well-founded measure per
// rule, so hitting this cap signals a bug in a Rule's measure rather
// than a legitimate non-terminating rewrite.
const RecursionCap = 10000

// TopDown applies f at the current node, re-applying at the rewritten
// node until f reports SameTree, then recurses into every child. This
// is the shape predicate push-down needs: a parent-level rewrite must
// settle before its decision about what to push into children is final.
func TopDown(node plan.Expr, f Rule) (plan.Expr, TreeIdentity, error) {
	cur := node
	overall := SameTree
	for i := 0; ; i++ {
		if i >= RecursionCap {
			return cur, overall, errRecursionCap(cur)
		}
		next, changed, err := f(cur)
		if err != nil {
			return cur, overall, err
		}
		if changed == SameTree {
			break
		}
		cur = next
		overall = NewTree
	}

	var childErr error
	rebuilt := cur.Map(func(child plan.Expr) plan.Expr {
		if childErr != nil {
			return child
		}
		newChild, changed, err := TopDown(child, f)
		if err != nil {
			childErr = err
			return child
		}
		if changed == NewTree {
			overall = NewTree
		}
		return newChild
	})
	if childErr != nil {
		return cur, overall, childErr
	}
	if overall == SameTree {
		return node, SameTree, nil
	}
	return rebuilt, NewTree, nil
}

// BottomUp rewrites every child first, then applies f at the node; if
// f reports NewTree, BottomUp recurses on the rewritten node (its
// children first, then the node itself) so a rule can fire again
// against its own new shape (e.g. dependent-join removal collapsing
// one level at a time).
func BottomUp(node plan.Expr, f Rule) (plan.Expr, TreeIdentity, error) {
	overall := SameTree
	var childErr error
	withNewChildren := node.Map(func(child plan.Expr) plan.Expr {
		if childErr != nil {
			return child
		}
		newChild, changed, err := BottomUp(child, f)
		if err != nil {
			childErr = err
			return child
		}
		if changed == NewTree {
			overall = NewTree
		}
		return newChild
	})
	if childErr != nil {
		return node, overall, childErr
	}

	cur := node
	if overall == NewTree {
		cur = withNewChildren
	}

	for i := 0; ; i++ {
		if i >= RecursionCap {
			return cur, overall, errRecursionCap(cur)
		}
		next, changed, err := f(cur)
		if err != nil {
			return cur, overall, err
		}
		if changed == SameTree {
			break
		}
		cur = next
		overall = NewTree
		var recErr error
		cur = cur.Map(func(child plan.Expr) plan.Expr {
			if recErr != nil {
				return child
			}
			newChild, _, err := BottomUp(child, f)
			if err != nil {
				recErr = err
				return child
			}
			return newChild
		})
		if recErr != nil {
			return cur, overall, recErr
		}
	}

	if overall == SameTree {
		return node, SameTree, nil
	}
	return cur, NewTree, nil
}

func errRecursionCap(node plan.Expr) error {
	return planerrors.ErrRecursionLimit.New(node.Kind.String(), RecursionCap)
}

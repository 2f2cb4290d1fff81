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

package plan

import (
	"github.com/zeedb/queryplanner/planerrors"
	"github.com/zeedb/queryplanner/scalar"
)

// Attributes reports the set of Columns this node produces. It is a
// function only of the node itself, never its parent, and is undefined
// for statement-shaped nodes (DDL leaves, Rewrite, Script) the same way
// it would be for a physical operator: those produce no rows to project.
func (e Expr) Attributes() (*scalar.ColumnSet, error) {
	switch e.Kind {
	case KindSingleRow:
		return scalar.NewColumnSet(), nil
	case KindGet:
		return scalar.NewColumnSet(e.Projects...), nil
	case KindFilter:
		return e.Children[0].Attributes()
	case KindMap:
		return e.mapAttributes()
	case KindJoin:
		return e.joinAttributes()
	case KindDependentJoin:
		left, err := e.Children[0].Attributes()
		if err != nil {
			return nil, err
		}
		right, err := e.Children[1].Attributes()
		if err != nil {
			return nil, err
		}
		set := scalar.NewColumnSet()
		set.AddAll(left)
		set.AddAll(right)
		return set, nil
	case KindAggregate:
		set := scalar.NewColumnSet(e.GroupBy...)
		for _, agg := range e.Aggregates {
			set.Add(agg.Into)
		}
		return set, nil
	case KindLimit, KindSort:
		return e.Children[0].Attributes()
	case KindUnion:
		if len(e.Children) == 0 {
			return scalar.NewColumnSet(), nil
		}
		return e.Children[0].Attributes()
	case KindValues:
		return scalar.NewColumnSet(e.ValuesColumns...), nil
	case KindGetWith:
		return scalar.NewColumnSet(e.BindColumns...), nil
	case KindWith:
		return e.Children[1].Attributes()
	case KindInsert, KindDelete:
		return scalar.NewColumnSet(), nil
	default:
		return nil, planerrors.ErrPhysicalAttributes.New(e.Kind.String())
	}
}

func (e Expr) mapAttributes() (*scalar.ColumnSet, error) {
	set := scalar.NewColumnSet()
	if e.IncludeExisting {
		inputAttrs, err := e.Children[0].Attributes()
		if err != nil {
			return nil, err
		}
		set.AddAll(inputAttrs)
	}
	for _, p := range e.MapProjects {
		set.Add(p.Into)
	}
	return set, nil
}

func (e Expr) joinAttributes() (*scalar.ColumnSet, error) {
	left, err := e.Children[0].Attributes()
	if err != nil {
		return nil, err
	}
	right, err := e.Children[1].Attributes()
	if err != nil {
		return nil, err
	}
	switch e.JoinKind {
	case JoinInner, JoinRight, JoinOuter:
		set := scalar.NewColumnSet()
		set.AddAll(left)
		set.AddAll(right)
		return set, nil
	case JoinSemi, JoinAnti, JoinSingle:
		return right, nil
	case JoinMark:
		set := scalar.NewColumnSet()
		set.AddAll(right)
		set.Add(e.MarkColumn)
		return set, nil
	default:
		return nil, planerrors.ErrPhysicalAttributes.New("Join with unknown kind")
	}
}

// References collects every free Column use inside this node's own
// predicates/projections/group-by/sort keys/value lists, plus
// recursively into its children. DependentJoin is the single exception
// the invariant in §3 calls out: its subquery side may reference
// Parameters that are not in its own attributes().
func (e Expr) References() (*scalar.ColumnSet, error) {
	set := scalar.NewColumnSet()
	for _, p := range e.Predicates {
		set.AddAll(p.References())
	}
	switch e.Kind {
	case KindMap:
		for _, p := range e.MapProjects {
			set.AddAll(p.Compute.References())
		}
	case KindAggregate:
		for _, agg := range e.Aggregates {
			set.AddAll(agg.Input.References())
		}
	case KindSort:
		for _, k := range e.SortKeys {
			set.Add(k.Column)
		}
	case KindValues:
		for _, row := range e.ValuesRows {
			for _, v := range row {
				set.AddAll(v.References())
			}
		}
	case KindUpdate:
		for _, a := range e.Assignments {
			set.AddAll(a.Compute.References())
		}
	}
	for _, c := range e.Children {
		childRefs, err := c.References()
		if err != nil {
			return nil, err
		}
		set.AddAll(childRefs)
	}
	return set, nil
}

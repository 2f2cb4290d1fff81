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

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/rewrite"
	"github.com/zeedb/queryplanner/rules"
	"github.com/zeedb/queryplanner/scalar"
)

func TestPushFilterMergesIntoFilter(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	inner := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, plan.SingleRow())
	outer := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, inner)

	out, changed, err := rules.PushDownPredicates()(outer)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindFilter, out.Kind)
	require.Len(out.Predicates, 2)
	require.Equal(plan.KindSingleRow, out.Children[0].Kind)
}

func TestPushFilterMergesIntoGetPredicates(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	table := scalar.Table{ID: 1, Name: "t"}
	get := plan.Get(table, []scalar.Column{a}, nil)
	filter := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, get)

	out, changed, err := rules.PushDownPredicates()(filter)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindGet, out.Kind)
	require.Len(out.Predicates, 1)
}

func TestPushFilterOverInnerJoinMergesIntoJoinPredicates(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	left := plan.Get(scalar.Table{ID: 1, Name: "l"}, []scalar.Column{a}, nil)
	right := plan.Get(scalar.Table{ID: 2, Name: "r"}, nil, nil)
	join := plan.Join(plan.JoinInner, scalar.Column{}, nil, left, right)
	filter := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, join)

	out, changed, err := rules.PushDownPredicates()(filter)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindJoin, out.Kind)
	require.Len(out.Predicates, 1)
}

func TestPushFilterOverOuterJoinPushesOnlyRightSidePredicates(t *testing.T) {
	require := require.New(t)

	a := col(1, "a") // left side
	b := col(2, "b") // right side
	left := plan.Get(scalar.Table{ID: 1, Name: "l"}, []scalar.Column{a}, nil)
	right := plan.Get(scalar.Table{ID: 2, Name: "r"}, []scalar.Column{b}, nil)
	join := plan.Join(plan.JoinOuter, scalar.Column{}, nil, left, right)
	filter := plan.Filter([]scalar.Scalar{scalar.ColumnRef(b)}, join)

	out, changed, err := rules.PushDownPredicates()(filter)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindJoin, out.Kind)
	require.Equal(plan.KindFilter, out.Children[1].Kind)
}

func TestPushJoinConditionPartitionsByAttributeSubset(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	left := plan.Get(scalar.Table{ID: 1, Name: "l"}, []scalar.Column{a}, nil)
	right := plan.Get(scalar.Table{ID: 2, Name: "r"}, []scalar.Column{b}, nil)
	eq, err := scalar.Call(scalar.FuncEqual, scalar.DatePartUnspecified, scalar.ColumnRef(a), scalar.ColumnRef(b))
	require.NoError(err)
	isNull, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	join := plan.Join(plan.JoinInner, scalar.Column{}, []scalar.Scalar{eq, isNull}, left, right)

	out, changed, err := rules.PushDownPredicates()(join)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	// the single-side predicate (IsNull(a)) pushes into the left side;
	// the cross-side equality stays as the join's own residual predicate.
	require.Len(out.Predicates, 1)
	require.Equal(plan.KindFilter, out.Children[0].Kind)
}

func TestPushDependentJoinConditionPartitionsDomainVsSubquery(t *testing.T) {
	require := require.New(t)

	param := col(1, "p")
	other := col(2, "other") // domain's own non-parameter attribute
	subCol := col(3, "s")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{param, other}, nil)
	subquery := plan.Get(scalar.Table{ID: 2, Name: "sq"}, []scalar.Column{subCol}, nil)

	// domain-only: references no parameter, purely a domain-side filter.
	domainOnly, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(other))
	require.NoError(err)
	subOnly, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(subCol))
	require.NoError(err)
	// references the parameter itself: must stay a residual (correlated)
	// predicate, neither a pure domain nor a pure subquery predicate.
	paramRef, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(param))
	require.NoError(err)

	dj := plan.DependentJoin([]scalar.Column{param}, []scalar.Scalar{domainOnly, subOnly, paramRef}, domain, subquery)

	out, changed, err := rules.PushDownPredicates()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Len(out.Predicates, 1)
	require.Equal(plan.KindFilter, out.Children[0].Kind)
	require.Equal(plan.KindFilter, out.Children[1].Kind)
}

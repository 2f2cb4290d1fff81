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

func TestUnnestCollapsesToJoinWhenSubqueryUncorrelated(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)
	subquery := plan.Get(scalar.Table{ID: 2, Name: "sq"}, []scalar.Column{b}, nil)
	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindJoin, out.Kind)
	require.Equal(plan.JoinInner, out.JoinKind)
}

func TestUnnestThroughFilterPartitionsCorrelatedPredicates(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)
	filterInput := plan.Get(scalar.Table{ID: 2, Name: "sq"}, []scalar.Column{b}, nil)

	correlated, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	uncorrelated, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(b))
	require.NoError(err)
	subquery := plan.Filter([]scalar.Scalar{correlated, uncorrelated}, filterInput)
	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindFilter, out.Kind)
	require.Len(out.Predicates, 1)
	require.Equal(plan.KindDependentJoin, out.Children[0].Kind)
	require.Len(out.Children[0].Predicates, 1)
}

func TestUnnestThroughMapHoistsUncorrelatedProjection(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)

	// The Map's own projection is uncorrelated, but its input still
	// references the parameter (via a Filter), so the subquery as a whole
	// is correlated and dispatch reaches unnestThroughMap.
	corrPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	mapInput := plan.Filter([]scalar.Scalar{corrPred}, plan.Get(scalar.Table{ID: 2, Name: "sq"}, []scalar.Column{b}, nil))
	subquery := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(b), Into: b}}, mapInput)
	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindMap, out.Kind)
	require.Equal(plan.KindDependentJoin, out.Children[0].Kind)
}

func TestUnnestThroughMapLeavesCorrelatedProjectionUnhandled(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)
	mapInput := plan.Get(scalar.Table{ID: 2, Name: "sq"}, nil, nil)
	subquery := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: a}}, mapInput)
	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.SameTree, changed)
	require.Equal(plan.KindDependentJoin, out.Kind)
}

func TestUnnestThroughJoinPushesIntoCorrelatedLeftSide(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	c := col(3, "c")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)

	subLeftBase := plan.Get(scalar.Table{ID: 2, Name: "l"}, nil, nil)
	subLeftPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	subLeft := plan.Filter([]scalar.Scalar{subLeftPred}, subLeftBase)
	subRight := plan.Get(scalar.Table{ID: 3, Name: "r"}, []scalar.Column{c}, nil)
	subquery := plan.Join(plan.JoinInner, scalar.Column{}, nil, subLeft, subRight)

	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindJoin, out.Kind)
	require.Equal(plan.KindDependentJoin, out.Children[0].Kind)
	require.Equal(plan.KindGet, out.Children[1].Kind)
}

func TestUnnestThroughJoinDuplicatesDomainWhenBothSidesCorrelated(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)

	leftPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	subLeft := plan.Filter([]scalar.Scalar{leftPred}, plan.Get(scalar.Table{ID: 2, Name: "l"}, nil, nil))
	rightPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	subRight := plan.Filter([]scalar.Scalar{rightPred}, plan.Get(scalar.Table{ID: 3, Name: "r"}, nil, nil))
	subquery := plan.Join(plan.JoinInner, scalar.Column{}, nil, subLeft, subRight)

	correlationPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	dj := plan.DependentJoin([]scalar.Column{a}, []scalar.Scalar{correlationPred}, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindJoin, out.Kind)
	require.Equal(plan.KindDependentJoin, out.Children[0].Kind)
	require.Equal(plan.KindDependentJoin, out.Children[1].Kind)
	require.Len(out.Children[0].Predicates, 1, "original DependentJoin's correlation predicate must survive on the left copy")
	require.Len(out.Children[1].Predicates, 1, "original DependentJoin's correlation predicate must survive on the right copy")
}

func TestUnnestThroughAggregateRewritesGroupBy(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	sumInto := col(3, "total")
	domain := plan.Get(scalar.Table{ID: 1, Name: "d"}, []scalar.Column{a}, nil)

	aggPred, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)
	aggInput := plan.Filter([]scalar.Scalar{aggPred}, plan.Get(scalar.Table{ID: 2, Name: "sq"}, []scalar.Column{b}, nil))
	subquery := plan.Aggregate([]scalar.Column{b}, []plan.AggregateCall{
		{Name: "SUM", Input: scalar.ColumnRef(b), Into: sumInto},
	}, aggInput)

	dj := plan.DependentJoin([]scalar.Column{a}, nil, domain, subquery)

	out, changed, err := rules.UnnestDependentJoins()(dj)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindAggregate, out.Kind)
	require.Equal([]scalar.Column{b, a}, out.GroupBy)
	require.Equal(plan.KindDependentJoin, out.Children[0].Kind)
}

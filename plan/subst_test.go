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

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/scalar"
)

func TestSubstReplacesFilterPredicateColumn(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	fresh := scalar.Column{ID: 2, Name: "a'", Type: scalar.Int64, Phase: scalar.PhasePlanned}

	tree := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, plan.SingleRow())
	out := tree.Subst(map[int64]scalar.Column{1: fresh})

	require.Len(out.Predicates, 1)
	refs := out.Predicates[0].References()
	require.True(refs.Contains(fresh))
	require.False(refs.Contains(a))
}

func TestSubstRecursesIntoChildren(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	fresh := scalar.Column{ID: 2, Name: "a'", Type: scalar.Int64, Phase: scalar.PhasePlanned}

	inner := plan.Filter([]scalar.Scalar{scalar.ColumnRef(a)}, plan.SingleRow())
	outer := plan.Limit(10, inner)

	out := outer.Subst(map[int64]scalar.Column{1: fresh})
	require.Equal(int64(10), out.LimitCount)
	refs := out.Children[0].Predicates[0].References()
	require.True(refs.Contains(fresh))
}

func TestSubstRewritesGroupByAndAggregateInput(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	fresh := scalar.Column{ID: 3, Name: "a'", Type: scalar.Int64, Phase: scalar.PhasePlanned}
	into := col(2, "total")

	agg := plan.Aggregate([]scalar.Column{a}, []plan.AggregateCall{
		{Name: "SUM", Input: scalar.ColumnRef(a), Into: into},
	}, plan.SingleRow())

	out := agg.Subst(map[int64]scalar.Column{1: fresh})
	require.Equal([]scalar.Column{fresh}, out.GroupBy)
	require.True(out.Aggregates[0].Input.References().Contains(fresh))
}

func TestSubstLeavesUnmappedColumnsUntouched(t *testing.T) {
	require := require.New(t)

	a, b := col(1, "a"), col(2, "b")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a, b}, nil)

	out := get.Subst(map[int64]scalar.Column{99: col(99, "unrelated")})
	require.Equal([]scalar.Column{a, b}, out.Projects)
}

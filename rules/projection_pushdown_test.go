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

func TestPushDownProjectionsRemovesIdentityMap(t *testing.T) {
	require := require.New(t)

	a, b := col(1, "a"), col(2, "b")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a, b}, nil)
	m := plan.Map(false, []plan.MapProject{
		{Compute: scalar.ColumnRef(a), Into: a},
		{Compute: scalar.ColumnRef(b), Into: b},
	}, get)

	out, changed, err := rules.PushDownProjections()(m)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindGet, out.Kind)
}

func TestPushDownProjectionsSkipsIncludeExistingMap(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	into := col(2, "renamed")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a}, nil)
	m := plan.Map(true, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: into}}, get)

	out, changed, err := rules.PushDownProjections()(m)
	require.NoError(err)
	require.Equal(rewrite.SameTree, changed)
	require.Equal(plan.KindMap, out.Kind)
}

func TestPushDownProjectionsMergesMapOverMap(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	a2 := col(2, "a2")
	out3 := col(3, "out")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a}, nil)
	inner := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: a2}}, get)
	outer := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a2), Into: out3}}, inner)

	out, changed, err := rules.PushDownProjections()(outer)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindMap, out.Kind)
	require.Equal(plan.KindGet, out.Children[0].Kind)
	require.Equal(scalar.KindScalarColumn, out.MapProjects[0].Compute.Kind)
	require.Equal(a.ID, out.MapProjects[0].Compute.Col.ID)
	require.Equal(out3.ID, out.MapProjects[0].Into.ID)
}

func TestPushDownProjectionsFoldsRenameOnlyMapIntoGet(t *testing.T) {
	require := require.New(t)

	a, b := col(1, "a"), col(2, "b")
	a2 := col(3, "a2")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a, b}, nil)
	outer := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: a2}}, get)

	out, changed, err := rules.PushDownProjections()(outer)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindGet, out.Kind)
	require.Equal([]scalar.Column{a, b, a2}, out.Projects)
}

func TestPushDownProjectionsFoldIntoGetPreservesColumnStillUsedByPredicate(t *testing.T) {
	require := require.New(t)

	a, b := col(1, "a"), col(2, "b")
	a2 := col(3, "a2")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a, b}, []scalar.Scalar{scalar.ColumnRef(b)})
	outer := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: a2}}, get)

	out, changed, err := rules.PushDownProjections()(outer)
	require.NoError(err)
	require.Equal(rewrite.NewTree, changed)
	require.Equal(plan.KindGet, out.Kind)

	projected := scalar.NewColumnSet(out.Projects...)
	require.True(projected.Contains(b), "Get must keep producing b since its own Predicates still reference it")
	require.True(projected.Contains(a2))
}

func TestPushDownProjectionsLeavesNonColumnComputeUnmerged(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	a2 := col(2, "a2")
	out3 := col(3, "out")
	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, []scalar.Column{a}, nil)
	inner := plan.Map(false, []plan.MapProject{{Compute: scalar.ColumnRef(a), Into: a2}}, get)
	call, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a2))
	require.NoError(err)
	outer := plan.Map(false, []plan.MapProject{{Compute: call, Into: out3}}, inner)

	out, changed, err := rules.PushDownProjections()(outer)
	require.NoError(err)
	require.Equal(rewrite.SameTree, changed)
	require.Equal(plan.KindMap, out.Kind)
	require.Equal(plan.KindMap, out.Children[0].Kind)
}

func TestPushDownProjectionsIgnoresNonMapNodes(t *testing.T) {
	require := require.New(t)

	out, changed, err := rules.PushDownProjections()(plan.SingleRow())
	require.NoError(err)
	require.Equal(rewrite.SameTree, changed)
	require.Equal(plan.KindSingleRow, out.Kind)
}

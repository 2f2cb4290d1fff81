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

package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeedb/queryplanner/scalar"
)

func TestCallValidatesFixedArity(t *testing.T) {
	require := require.New(t)

	_, err := scalar.Call(scalar.FuncNot, scalar.DatePartUnspecified)
	require.Error(err)

	c, err := scalar.Call(scalar.FuncNot, scalar.DatePartUnspecified, scalar.Literal(scalar.Value{Type: scalar.Bool, Data: true}))
	require.NoError(err)
	require.Equal(1, c.Arity())
}

func TestCallValidatesVariadicAndInVariadicArity(t *testing.T) {
	require := require.New(t)

	zero, err := scalar.Call(scalar.FuncCoalesce, scalar.DatePartUnspecified)
	require.NoError(err)
	require.Equal(0, zero.Arity())

	three, err := scalar.Call(scalar.FuncGreatest, scalar.DatePartUnspecified,
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(1)}),
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(2)}),
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(3)}))
	require.NoError(err)
	require.Equal(3, three.Arity())

	// FuncIn is in-variadic: one fixed probe value, then a variadic list.
	_, err = scalar.Call(scalar.FuncIn, scalar.DatePartUnspecified)
	require.Error(err)

	in, err := scalar.Call(scalar.FuncIn, scalar.DatePartUnspecified,
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(1)}),
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(2)}),
		scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(3)}))
	require.NoError(err)
	require.Equal(3, in.Arity())
}

func TestReferencesCollectsColumnsAcrossNestedCalls(t *testing.T) {
	require := require.New(t)

	a := scalar.Column{ID: 1, Name: "a", Type: scalar.Int64}
	b := scalar.Column{ID: 2, Name: "b", Type: scalar.Int64}

	eq, err := scalar.Call(scalar.FuncEqual, scalar.DatePartUnspecified, scalar.ColumnRef(a), scalar.ColumnRef(b))
	require.NoError(err)
	not, err := scalar.Call(scalar.FuncNot, scalar.DatePartUnspecified, eq)
	require.NoError(err)

	refs := not.References()
	require.Equal(2, refs.Len())
	require.True(refs.Contains(a))
	require.True(refs.Contains(b))
}

func TestSubstReplacesColumnByID(t *testing.T) {
	require := require.New(t)

	a := scalar.Column{ID: 1, Name: "a", Type: scalar.Int64}
	fresh := scalar.Column{ID: 99, Name: "a'", Type: scalar.Int64}

	expr, err := scalar.Call(scalar.FuncNot, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)

	out := expr.Subst(map[int64]scalar.Column{1: fresh})
	refs := out.References()
	require.True(refs.Contains(fresh))
	require.False(refs.Contains(a))
}

func TestInlineSubstitutesByColumnIdentityNotName(t *testing.T) {
	require := require.New(t)

	a1 := scalar.Column{ID: 1, Name: "x", Type: scalar.Int64}
	a2 := scalar.Column{ID: 2, Name: "x", Type: scalar.Int64}
	lit := scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(5)})

	tree, err := scalar.Call(scalar.FuncAddInt64, scalar.DatePartUnspecified, scalar.ColumnRef(a1), scalar.ColumnRef(a2))
	require.NoError(err)

	out := scalar.Inline(tree, a1, lit)
	refs := out.References()
	require.False(refs.Contains(a1))
	require.True(refs.Contains(a2))
}

func TestResultTypePicksDesignatedBranch(t *testing.T) {
	require := require.New(t)

	cond := scalar.Literal(scalar.Value{Type: scalar.Bool, Data: true})
	then := scalar.Literal(scalar.Value{Type: scalar.String, Data: "yes"})
	els := scalar.Literal(scalar.Value{Type: scalar.String, Data: "no"})

	ifExpr, err := scalar.Call(scalar.FuncIf, scalar.DatePartUnspecified, cond, then, els)
	require.NoError(err)
	require.Equal(scalar.String, ifExpr.ResultType())
}

func TestCaseNoValueArityIsFlattened(t *testing.T) {
	require := require.New(t)

	branch := scalar.CaseBranch{
		Cond:   scalar.Literal(scalar.Value{Type: scalar.Bool, Data: true}),
		Result: scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(1)}),
	}
	def := scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(0)})
	expr := scalar.CaseNoValueScalar([]scalar.CaseBranch{branch}, def)

	// one branch == (cond, result) pair plus the trailing default
	require.Equal(3, expr.Arity())
	last, err := expr.Child(2)
	require.NoError(err)
	require.Equal(def, last)
}

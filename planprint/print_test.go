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

package planprint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/planprint"
	"github.com/zeedb/queryplanner/scalar"
)

func col(id int64, name string) scalar.Column {
	return scalar.Column{ID: id, Name: name, Type: scalar.Int64}
}

func TestStringIndentsOneLinePerNode(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	get := plan.Get(scalar.Table{ID: 1, Name: "widgets"}, []scalar.Column{a}, nil)
	tree := plan.Limit(10, get)

	p := &planprint.Printer{UseColor: false}
	out := p.String(tree)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(lines, 2)
	require.Equal("Limit", lines[0])
	require.Equal("  Get(widgets)", lines[1])
}

func TestStringAnnotatesJoinAndDependentJoin(t *testing.T) {
	require := require.New(t)

	left := plan.Get(scalar.Table{ID: 1, Name: "l"}, nil, nil)
	right := plan.Get(scalar.Table{ID: 2, Name: "r"}, nil, nil)
	join := plan.Join(plan.JoinInner, scalar.Column{}, nil, left, right)

	p := &planprint.Printer{UseColor: false}
	out := p.String(join)
	require.Contains(out, "Join(Inner)")

	a := col(1, "a")
	dj := plan.DependentJoin([]scalar.Column{a}, nil, left, right)
	out = p.String(dj)
	require.Contains(out, "DependentJoin(params=1)")
}

func TestStringColorizesKindsWhenEnabled(t *testing.T) {
	require := require.New(t)

	get := plan.Get(scalar.Table{ID: 1, Name: "t"}, nil, nil)
	p := &planprint.Printer{UseColor: true}
	out := p.String(get)
	require.NotEqual("Get(t)\n", out)
	require.Contains(out, "Get(t)")
}

func TestScalarRendersLiteralColumnAndCast(t *testing.T) {
	require := require.New(t)

	p := &planprint.Printer{UseColor: false}
	lit := scalar.Literal(scalar.Value{Type: scalar.Int64, Data: int64(42)})
	require.Equal(lit.String(), p.Scalar(lit))

	a := col(1, "a")
	require.Equal(a.String(), p.Scalar(scalar.ColumnRef(a)))

	cast := scalar.Cast(scalar.ColumnRef(a), scalar.String)
	require.Equal("CAST("+a.String()+" AS "+scalar.String.String()+")", p.Scalar(cast))
}

func TestScalarRendersCallAsNameOfArgs(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	call, err := scalar.Call(scalar.FuncIsNull, scalar.DatePartUnspecified, scalar.ColumnRef(a))
	require.NoError(err)

	p := &planprint.Printer{UseColor: false}
	require.Equal(scalar.FuncIsNull.String()+"("+a.String()+")", p.Scalar(call))
}

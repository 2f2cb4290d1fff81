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

package planprint

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/scalar"
)

// ExplainTable renders a tabular EXPLAIN-style dump, one row per node in
// e's pre-order traversal, listing each node's depth, Kind, attributes and
// references. A node whose Kind carries no physical attributes (a Script
// or DDL leaf) renders its planerrors.ErrPhysicalAttributes message in
// place of a column list rather than failing the whole render.
func ExplainTable(e plan.Expr) string {
	var rows [][]string
	collectRows(e, 0, &rows)

	var b strings.Builder
	table := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"depth", "node", "attributes", "references"})
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	return b.String()
}

func collectRows(e plan.Expr, depth int, rows *[][]string) {
	attrs, attrErr := e.Attributes()
	refs, refErr := e.References()

	*rows = append(*rows, []string{
		fmt.Sprintf("%d", depth),
		e.Kind.String(),
		columnSetString(attrs, attrErr),
		columnSetString(refs, refErr),
	})
	for _, c := range e.Children {
		collectRows(c, depth+1, rows)
	}
}

func columnSetString(set *scalar.ColumnSet, err error) string {
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	names := make([]string, 0, set.Len())
	for _, c := range set.Columns() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

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

import "github.com/zeedb/queryplanner/scalar"

// Subst replaces Columns in every predicate, projection, and child
// operator according to mapping (keyed by Column.ID).
func (e Expr) Subst(mapping map[int64]scalar.Column) Expr {
	substCol := func(c scalar.Column) scalar.Column {
		if r, ok := mapping[c.ID]; ok {
			return r
		}
		return c
	}

	clone := e
	if len(e.Predicates) > 0 {
		clone.Predicates = make([]scalar.Scalar, len(e.Predicates))
		for i, p := range e.Predicates {
			clone.Predicates[i] = p.Subst(mapping)
		}
	}
	if len(e.Projects) > 0 {
		clone.Projects = make([]scalar.Column, len(e.Projects))
		for i, c := range e.Projects {
			clone.Projects[i] = substCol(c)
		}
	}
	if len(e.MapProjects) > 0 {
		clone.MapProjects = make([]MapProject, len(e.MapProjects))
		for i, p := range e.MapProjects {
			clone.MapProjects[i] = MapProject{Compute: p.Compute.Subst(mapping), Into: p.Into}
		}
	}
	if len(e.GroupBy) > 0 {
		clone.GroupBy = make([]scalar.Column, len(e.GroupBy))
		for i, c := range e.GroupBy {
			clone.GroupBy[i] = substCol(c)
		}
	}
	if len(e.Aggregates) > 0 {
		clone.Aggregates = make([]AggregateCall, len(e.Aggregates))
		for i, a := range e.Aggregates {
			a.Input = a.Input.Subst(mapping)
			clone.Aggregates[i] = a
		}
	}
	if len(e.SortKeys) > 0 {
		clone.SortKeys = make([]OrderBy, len(e.SortKeys))
		for i, k := range e.SortKeys {
			clone.SortKeys[i] = OrderBy{Column: substCol(k.Column), Descending: k.Descending}
		}
	}
	if len(e.ValuesRows) > 0 {
		clone.ValuesRows = make([][]scalar.Scalar, len(e.ValuesRows))
		for i, row := range e.ValuesRows {
			newRow := make([]scalar.Scalar, len(row))
			for j, v := range row {
				newRow[j] = v.Subst(mapping)
			}
			clone.ValuesRows[i] = newRow
		}
	}
	if len(e.Parameters) > 0 {
		clone.Parameters = make([]scalar.Column, len(e.Parameters))
		for i, c := range e.Parameters {
			clone.Parameters[i] = substCol(c)
		}
	}
	if e.MarkColumn.Name != "" || e.MarkColumn.ID != 0 {
		clone.MarkColumn = substCol(e.MarkColumn)
	}

	return clone.Map(func(child Expr) Expr { return child.Subst(mapping) })
}

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

package scalar

import "fmt"

// ColumnPhase records when a Column was created, so debugging output can
// tell a user-written column from one the planner synthesized partway
// through rewriting.
type ColumnPhase byte

const (
	// PhaseParsed columns come directly off the Analyzer's parse tree.
	PhaseParsed ColumnPhase = iota
	// PhaseConverted columns were introduced while the adapter lowered
	// the Analyzer's tree into this package's Scalar/Expr model.
	PhaseConverted
	// PhasePlanned columns are synthesized by a rewrite rule (a mark
	// column, a dependent-join witness projection, a temp-table column).
	PhasePlanned
)

func (p ColumnPhase) String() string {
	switch p {
	case PhaseParsed:
		return "parsed"
	case PhaseConverted:
		return "converted"
	case PhasePlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Column is a value type: two Columns are the same column iff every field
// compares equal. Columns are immutable once constructed; a rewrite rule
// that wants a "new" column always constructs a fresh Column with a fresh
// ID rather than mutating one in place.
type Column struct {
	Phase ColumnPhase
	ID    int64
	Name  string
	// Table is the originating table name, empty for planner-synthesized
	// columns with no table of origin (e.g. a mark column).
	Table string
	Type  DataType
}

// String renders the column the way the teacher's debug output does for
// synthesized identifiers: a trailing prime marks a column synthesized
// by a rewrite rule (PhasePlanned); parsed and converted columns print
// without one.
func (c Column) String() string {
	name := c.Name
	if c.Table != "" {
		name = fmt.Sprintf("%s.%s", c.Table, c.Name)
	}
	if c.Phase == PhasePlanned {
		return name + "'"
	}
	return name
}

// Equals is structural equality, matching spec's "equality ... structural"
// contract for Column.
func (c Column) Equals(other Column) bool {
	return c.Phase == other.Phase &&
		c.ID == other.ID &&
		c.Name == other.Name &&
		c.Table == other.Table &&
		c.Type.Equals(other.Type)
}

// Less gives Columns a total order (by ID, then Phase, then Name) so
// column sets can be sorted for deterministic output without depending on
// map iteration order.
func (c Column) Less(other Column) bool {
	if c.ID != other.ID {
		return c.ID < other.ID
	}
	if c.Phase != other.Phase {
		return c.Phase < other.Phase
	}
	return c.Name < other.Name
}

// ColumnSet is an ordered, deduplicated collection of Columns, used as the
// return type of references()/attributes() throughout scalar and plan.
type ColumnSet struct {
	cols []Column
	seen map[int64]bool
}

func NewColumnSet(cols ...Column) *ColumnSet {
	s := &ColumnSet{seen: make(map[int64]bool, len(cols))}
	for _, c := range cols {
		s.Add(c)
	}
	return s
}

func (s *ColumnSet) Add(c Column) {
	if s.seen == nil {
		s.seen = make(map[int64]bool)
	}
	if s.seen[c.ID] {
		return
	}
	s.seen[c.ID] = true
	s.cols = append(s.cols, c)
}

func (s *ColumnSet) AddAll(other *ColumnSet) {
	if other == nil {
		return
	}
	for _, c := range other.cols {
		s.Add(c)
	}
}

func (s *ColumnSet) Contains(c Column) bool {
	if s == nil || s.seen == nil {
		return false
	}
	return s.seen[c.ID]
}

// ContainsAny reports whether any column in other is present in s.
func (s *ColumnSet) ContainsAny(other *ColumnSet) bool {
	if s == nil || other == nil {
		return false
	}
	for _, c := range other.cols {
		if s.Contains(c) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every column in s is present in other.
func (s *ColumnSet) SubsetOf(other *ColumnSet) bool {
	if s == nil {
		return true
	}
	for _, c := range s.cols {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

func (s *ColumnSet) Columns() []Column {
	if s == nil {
		return nil
	}
	return s.cols
}

func (s *ColumnSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cols)
}

// Table is the Catalog's description of a physical or temp table, as
// returned by Catalog lookups (see planerrors.ErrCatalogMiss and the
// catalogcache package).
type Table struct {
	ID      int64
	Name    string
	Columns []Column
}

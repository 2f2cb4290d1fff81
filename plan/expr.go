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

// Package plan represents every logical and physical plan operator as a
// single closed, tagged variant, the same design scalar.Scalar uses:
// Expr carries its own Kind tag and a rewrite rule switches on it
// directly rather than type-asserting an interface. Arity and indexed
// child access only ever range over an operator's relational children,
// never its scalar children (those live inside Predicates/Projects and
// are reached through scalar.Scalar's own traversal).
package plan

import "github.com/zeedb/queryplanner/scalar"

// ExprKind tags which plan operator variant an Expr holds.
type ExprKind byte

const (
	KindSingleRow ExprKind = iota
	KindGet
	KindFilter
	KindMap
	KindJoin
	KindDependentJoin
	KindAggregate
	KindLimit
	KindSort
	KindUnion
	KindValues
	KindInsert
	KindDelete
	KindWith
	KindGetWith
	KindCreateTempTable
	KindRewriteSQL
	KindCreateDatabase
	KindCreateTable
	KindCreateIndex
	KindDrop
	KindUpdate
	KindScript
)

func (k ExprKind) String() string {
	switch k {
	case KindSingleRow:
		return "SingleRow"
	case KindGet:
		return "Get"
	case KindFilter:
		return "Filter"
	case KindMap:
		return "Map"
	case KindJoin:
		return "Join"
	case KindDependentJoin:
		return "DependentJoin"
	case KindAggregate:
		return "Aggregate"
	case KindLimit:
		return "Limit"
	case KindSort:
		return "Sort"
	case KindUnion:
		return "Union"
	case KindValues:
		return "Values"
	case KindInsert:
		return "Insert"
	case KindDelete:
		return "Delete"
	case KindWith:
		return "With"
	case KindGetWith:
		return "GetWith"
	case KindCreateTempTable:
		return "CreateTempTable"
	case KindRewriteSQL:
		return "Rewrite"
	case KindCreateDatabase:
		return "CreateDatabase"
	case KindCreateTable:
		return "CreateTable"
	case KindCreateIndex:
		return "CreateIndex"
	case KindDrop:
		return "Drop"
	case KindUpdate:
		return "Update"
	case KindScript:
		return "Script"
	default:
		return "UnknownExpr"
	}
}

// IsLogical reports whether this operator is part of the logical model
// this package's rewrite rules operate on. Every Kind declared here is
// logical; "physical operator" inputs (§3 "Physical operators are
// forbidden inputs...") arrive from outside this package's type system
// entirely; no Kind declared here represents one.
func (k ExprKind) IsLogical() bool { return true }

// Expr is one of the closed set of plan operators. Only the fields
// relevant to Kind are meaningful.
type Expr struct {
	Kind ExprKind

	// Children holds relational children in the operator's declared
	// order (e.g. Join: [left, right]; DependentJoin: [domain,
	// subquery]; Filter/Map/Aggregate/Limit/Sort/CreateTempTable: the
	// single input; Union/Script: the variadic statement/branch list;
	// With: [left, right]).
	Children []Expr

	// Get / DDL leaves
	Table scalar.Table

	// Get's pushed projection and predicate lists.
	Projects   []scalar.Column
	Predicates []scalar.Scalar

	// Map
	IncludeExisting bool
	MapProjects     []MapProject

	// Join / DependentJoin
	JoinKind   JoinKind
	MarkColumn scalar.Column
	Parameters []scalar.Column // DependentJoin only

	// Aggregate
	GroupBy    []scalar.Column
	Aggregates []AggregateCall

	// Limit
	LimitCount int64

	// Sort
	SortKeys []OrderBy

	// Values
	ValuesRows    [][]scalar.Scalar
	ValuesColumns []scalar.Column

	// With / GetWith / CreateTempTable / Script
	Name        string
	BindColumns []scalar.Column

	// Rewrite{sql}
	SQL string

	// Update, pre-lowering only (§4.5 step 1 rewrites this away)
	Assignments []MapProject
}

// SingleRow constructs the unit relation.
func SingleRow() Expr { return Expr{Kind: KindSingleRow} }

// Get constructs a table scan with a pushed projection/predicate list.
func Get(table scalar.Table, projects []scalar.Column, predicates []scalar.Scalar) Expr {
	return Expr{Kind: KindGet, Table: table, Projects: projects, Predicates: predicates}
}

// Filter constructs a predicate filter over input.
func Filter(predicates []scalar.Scalar, input Expr) Expr {
	return Expr{Kind: KindFilter, Predicates: predicates, Children: []Expr{input}}
}

// Map constructs a projection over input.
func Map(includeExisting bool, projects []MapProject, input Expr) Expr {
	return Expr{Kind: KindMap, IncludeExisting: includeExisting, MapProjects: projects, Children: []Expr{input}}
}

// Join constructs a join of the given kind.
func Join(kind JoinKind, mark scalar.Column, predicates []scalar.Scalar, left, right Expr) Expr {
	return Expr{Kind: KindJoin, JoinKind: kind, MarkColumn: mark, Predicates: predicates, Children: []Expr{left, right}}
}

// DependentJoin constructs a dependent join: domain supplies parameter
// bindings, subquery may reference parameters.
func DependentJoin(parameters []scalar.Column, predicates []scalar.Scalar, domain, subquery Expr) Expr {
	return Expr{Kind: KindDependentJoin, Parameters: parameters, Predicates: predicates, Children: []Expr{domain, subquery}}
}

// Aggregate constructs a group-by/aggregate node.
func Aggregate(groupBy []scalar.Column, aggregates []AggregateCall, input Expr) Expr {
	return Expr{Kind: KindAggregate, GroupBy: groupBy, Aggregates: aggregates, Children: []Expr{input}}
}

// Limit constructs a row-count limit over input.
func Limit(n int64, input Expr) Expr {
	return Expr{Kind: KindLimit, LimitCount: n, Children: []Expr{input}}
}

// Sort constructs an ordering over input.
func Sort(keys []OrderBy, input Expr) Expr {
	return Expr{Kind: KindSort, SortKeys: keys, Children: []Expr{input}}
}

// Union constructs the union of its branches.
func Union(branches ...Expr) Expr {
	return Expr{Kind: KindUnion, Children: branches}
}

// Values constructs a literal row set.
func Values(columns []scalar.Column, rows [][]scalar.Scalar) Expr {
	return Expr{Kind: KindValues, ValuesColumns: columns, ValuesRows: rows}
}

// Insert constructs a DML insert of input's rows into table.
func Insert(table scalar.Table, input Expr) Expr {
	return Expr{Kind: KindInsert, Table: table, Children: []Expr{input}}
}

// Delete constructs a DML delete of input's rows from table.
func Delete(table scalar.Table, input Expr) Expr {
	return Expr{Kind: KindDelete, Table: table, Children: []Expr{input}}
}

// With constructs a CTE binding: right may reference name/columns bound
// by left.
func With(name string, columns []scalar.Column, left, right Expr) Expr {
	return Expr{Kind: KindWith, Name: name, BindColumns: columns, Children: []Expr{left, right}}
}

// GetWith constructs a reference to a previously-bound temp table.
func GetWith(name string, columns []scalar.Column) Expr {
	return Expr{Kind: KindGetWith, Name: name, BindColumns: columns}
}

// CreateTempTable constructs the materialization half of a lowered With.
func CreateTempTable(name string, columns []scalar.Column, input Expr) Expr {
	return Expr{Kind: KindCreateTempTable, Name: name, BindColumns: columns, Children: []Expr{input}}
}

// RewriteSQL constructs the §4.5-step-9 re-entrant placeholder.
func RewriteSQL(sql string) Expr {
	return Expr{Kind: KindRewriteSQL, SQL: sql}
}

// Script constructs a sequential list of statements, used by With
// lowering (CreateTempTable, then the body) and by Update lowering
// (CreateTempTable, Delete, then Insert).
func Script(statements ...Expr) Expr {
	return Expr{Kind: KindScript, Children: statements}
}

// CreateDatabase/CreateTable/CreateIndex/Drop are DDL leaves and Update
// is a DML node over the rows to update; all exist only before DDL
// lowering (§4.5 step 1). The pipeline's first stage rewrites each DDL
// leaf into a RewriteSQL placeholder and each Update into a Script.

func CreateDatabase(table scalar.Table) Expr {
	return Expr{Kind: KindCreateDatabase, Table: table}
}

func CreateTable(table scalar.Table) Expr {
	return Expr{Kind: KindCreateTable, Table: table}
}

func CreateIndex(table scalar.Table, name string) Expr {
	return Expr{Kind: KindCreateIndex, Table: table, Name: name}
}

func Drop(table scalar.Table) Expr {
	return Expr{Kind: KindDrop, Table: table}
}

// Update constructs the pre-lowering update leaf: input selects the rows
// to update, Assignments gives their new column values.
func Update(table scalar.Table, assignments []MapProject, input Expr) Expr {
	return Expr{Kind: KindUpdate, Table: table, Assignments: assignments, Children: []Expr{input}}
}

// Arity reports the number of relational children.
func (e Expr) Arity() int {
	return len(e.Children)
}

// Child returns the i-th relational child.
func (e Expr) Child(i int) Expr {
	return e.Children[i]
}

// Map rebuilds the node with every relational child passed through f,
// preserving every other field. Destructive per §5: callers should treat
// e as consumed once Map returns.
func (e Expr) Map(f func(Expr) Expr) Expr {
	if len(e.Children) == 0 {
		return e
	}
	newChildren := make([]Expr, len(e.Children))
	for i, c := range e.Children {
		newChildren[i] = f(c)
	}
	clone := e
	clone.Children = newChildren
	return clone
}

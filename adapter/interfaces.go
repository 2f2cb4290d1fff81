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

// Package adapter translates the Analyzer's resolved scalar expressions
// into this module's scalar.Scalar sum type (BuildScalar). It describes
// resolved plan nodes with AnalyzedNode but has no function that turns
// one into a plan.Expr. It depends only on the two small interfaces
// below, so it never needs to know anything about a concrete parser or
// its protobuf wire format.
package adapter

import "github.com/zeedb/queryplanner/scalar"

// ScalarTag names which of the four Scalar variants an AnalyzedScalar
// stands for.
type ScalarTag byte

const (
	TagLiteral ScalarTag = iota
	TagColumn
	TagCall
	TagCast
)

// Signature is a function reference's argument and return types, exactly
// the shape the adapter needs to disambiguate an overloaded qualified
// name (ZetaSQL:$add splitting into AddInt64/AddDouble by return type,
// and so on).
type Signature struct {
	ArgTypes   []scalar.DataType
	ReturnType scalar.DataType
}

// AnalyzedScalar is the minimal shape a resolved scalar expression from
// the Analyzer must have for BuildScalar to consume it.
type AnalyzedScalar interface {
	Tag() ScalarTag
	// Literal returns the constant value; only meaningful when Tag() ==
	// TagLiteral.
	Literal() scalar.Value
	// Column returns the referenced column; only meaningful when Tag()
	// == TagColumn.
	Column() scalar.Column
	// FunctionName returns the qualified function name (e.g.
	// "ZetaSQL:$add"); only meaningful when Tag() == TagCall.
	FunctionName() string
	// Signature returns the call's argument/return types; only
	// meaningful when Tag() == TagCall.
	Signature() Signature
	// Args returns the call's or cast's operand list.
	Args() []AnalyzedScalar
	// CastTarget returns the conversion target type; only meaningful
	// when Tag() == TagCast.
	CastTarget() scalar.DataType
}

// NodeTag names which plan.Expr variant an AnalyzedNode stands for.
// Nothing in this package reads it or checks it against the node's
// Children()/Scalars().
type NodeTag byte

const (
	NodeSingleRow NodeTag = iota
	NodeGet
	NodeFilter
	NodeMap
	NodeJoin
	NodeDependentJoin
	NodeAggregate
	NodeLimit
	NodeSort
	NodeUnion
	NodeValues
	NodeInsert
	NodeDelete
	NodeWith
	NodeGetWith
	NodeCreateTempTable
	NodeCreateDatabase
	NodeCreateTable
	NodeCreateIndex
	NodeDrop
	NodeUpdate
)

// AnalyzedNode is the shape of a resolved plan node from the Analyzer.
// No function in this package consumes it: only scalar expressions are
// translated (BuildScalar).
type AnalyzedNode interface {
	Tag() NodeTag
	Children() []AnalyzedNode
	Scalars() []AnalyzedScalar
	// Table returns the scan target for NodeGet and the DDL target name
	// for NodeCreateTable/NodeDrop/etc.
	Table() scalar.Table
	// Attributes returns the column list a NodeGet/NodeValues should
	// report producing.
	Attributes() []scalar.Column
	// JoinKind names the join variant for NodeJoin/NodeDependentJoin.
	JoinKind() string
	// Name returns an auxiliary identifier: With's binding name, a
	// temp-table name, and so on.
	Name() string
}

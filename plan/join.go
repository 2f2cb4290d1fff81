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

// JoinKind is the Join operator's variant tag. Single and Mark only ever
// appear mid-pipeline: §6's output contract forbids them from reaching
// the Executor, so join-type specialization (rules.SpecializeJoinType)
// must have rewritten every occurrence away.
type JoinKind byte

const (
	JoinInner JoinKind = iota
	JoinRight
	JoinOuter
	JoinSemi
	JoinAnti
	JoinSingle
	JoinMark
)

func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "Inner"
	case JoinRight:
		return "Right"
	case JoinOuter:
		return "Outer"
	case JoinSemi:
		return "Semi"
	case JoinAnti:
		return "Anti"
	case JoinSingle:
		return "Single"
	case JoinMark:
		return "Mark"
	default:
		return "UnknownJoin"
	}
}

// IsPhysicalOutputKind reports whether this join kind is allowed to
// reach the Executor (§6 "To the Executor"). Single and Mark joins must
// be eliminated by the pipeline before it completes.
func (k JoinKind) IsPhysicalOutputKind() bool {
	switch k {
	case JoinInner, JoinRight, JoinOuter, JoinSemi, JoinAnti:
		return true
	default:
		return false
	}
}

// OrderBy is one Sort key.
type OrderBy struct {
	Column     scalar.Column
	Descending bool
}

// MapProject is one (Scalar, Column) projection pair carried by Map and
// by Update's assignment list.
type MapProject struct {
	Compute scalar.Scalar
	Into    scalar.Column
}

// AggregateCall is one aggregate function application inside an
// Aggregate node's aggregate list.
type AggregateCall struct {
	Name     string // COUNT, SUM, AVG, MIN, MAX, ARRAY_AGG, ANY_VALUE, ...
	Input    scalar.Scalar
	Distinct bool
	Into     scalar.Column
}

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

// DataType is the nominal type of a Scalar, reported without a Catalog
// lookup. It is deliberately small: the planner core only ever needs to
// distinguish result-type families for arithmetic specialization, not the
// full width/precision detail a storage engine would track.
type DataType struct {
	Kind TypeKind
	// Name carries the display name for KindOther, e.g. a decimal or
	// array element type the adapter passed through unexamined.
	Name string
}

// TypeKind enumerates the result-type families the rewrite core reasons
// about directly. Anything else round-trips through KindOther by name.
type TypeKind byte

const (
	KindUnknown TypeKind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindDate
	KindTimestamp
	KindOther
)

func (k TypeKind) String() string {
	switch k {
	case KindBool:
		return "BOOL"
	case KindInt64:
		return "INT64"
	case KindFloat64:
		return "FLOAT64"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

func (t DataType) String() string {
	if t.Kind == KindOther && t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}

func (t DataType) Equals(other DataType) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == KindOther {
		return t.Name == other.Name
	}
	return true
}

var (
	Bool      = DataType{Kind: KindBool}
	Int64     = DataType{Kind: KindInt64}
	Float64   = DataType{Kind: KindFloat64}
	String    = DataType{Kind: KindString}
	Date      = DataType{Kind: KindDate}
	Timestamp = DataType{Kind: KindTimestamp}
)

// Other constructs a pass-through type for anything the core does not
// need to specialize on (decimal, bytes, array/struct element types).
func Other(name string) DataType {
	return DataType{Kind: KindOther, Name: name}
}

// Value is a literal constant. Storage is untyped on purpose: the core
// never evaluates expressions, only moves literals around, so it has no
// need of a typed union the way an executor would.
type Value struct {
	Type DataType
	Data interface{}
}

func (v Value) String() string {
	return fmt.Sprintf("%v", v.Data)
}

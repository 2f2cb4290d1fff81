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

// Package scalar represents scalar expressions exactly once, as a closed,
// tagged variant rather than an interface: a Scalar carries its own kind
// tag and every rewrite rule switches on it directly. This mirrors the
// function sum type's own design (see function_kind.go) and keeps
// structural traversal (arity, indexed child access, map) uniform across
// both levels of the expression tree.
package scalar

import (
	"github.com/zeedb/queryplanner/planerrors"
)

// ScalarKind tags which of the four Scalar variants a value holds.
type ScalarKind byte

const (
	KindScalarLiteral ScalarKind = iota
	KindScalarColumn
	KindScalarCall
	KindScalarCast
)

// CaseBranch is one (condition, result) pair of a CASE expression.
type CaseBranch struct {
	Cond   Scalar
	Result Scalar
}

// Scalar is one of Literal, Column, Call, or Cast. Only the fields
// relevant to Kind are meaningful; constructors below are the only
// sanctioned way to build one, so a Scalar built any other way is a
// programmer error the same way an out-of-range Child index is.
type Scalar struct {
	Kind ScalarKind

	Lit Value

	Col Column

	Fn       FuncKind
	Args     []Scalar
	DatePart DatePart
	Cases    []CaseBranch
	Default  *Scalar
	Value    *Scalar // CaseWithValue's scrutinee; nil for CaseNoValue

	CastTarget DataType
}

// Literal constructs a constant Scalar.
func Literal(v Value) Scalar {
	return Scalar{Kind: KindScalarLiteral, Lit: v}
}

// ColumnRef constructs a reference to a visible Column.
func ColumnRef(c Column) Scalar {
	return Scalar{Kind: KindScalarColumn, Col: c}
}

// Cast constructs an explicit conversion.
func Cast(input Scalar, target DataType) Scalar {
	return Scalar{Kind: KindScalarCast, Args: []Scalar{input}, CastTarget: target}
}

// Call constructs a function application, validating the argument count
// against the variant's fixed arity. This is the "constructors are total"
// contract from the scalar model: a caller can never end up with a Call
// whose Args disagree with Fn's shape.
func Call(fn FuncKind, datePart DatePart, args ...Scalar) (Scalar, error) {
	meta := fn.meta()
	switch meta.shape {
	case shapeFixed:
		if len(args) != meta.fixed {
			return Scalar{}, planerrors.ErrBadArity.New(meta.name, meta.fixed, len(args))
		}
	case shapeVariadic:
		// any length, including zero, is valid
	case shapeInVariadic:
		if len(args) < meta.fixed {
			return Scalar{}, planerrors.ErrBadArity.New(meta.name, meta.fixed, len(args))
		}
	case shapeOptionalTail:
		if len(args) != meta.fixed && len(args) != meta.fixed+1 {
			return Scalar{}, planerrors.ErrBadArity.New(meta.name, meta.fixed, len(args))
		}
	default:
		return Scalar{}, planerrors.ErrAnalyzer.New("Call used for a CASE variant; use CaseNoValue/CaseWithValue")
	}
	return Scalar{Kind: KindScalarCall, Fn: fn, Args: args, DatePart: datePart}, nil
}

// CaseNoValueScalar constructs a CASE WHEN ... THEN ... END with no
// scrutinee.
func CaseNoValueScalar(cases []CaseBranch, def Scalar) Scalar {
	return Scalar{Kind: KindScalarCall, Fn: FuncCaseNoValue, Cases: cases, Default: &def}
}

// CaseWithValueScalar constructs a CASE value WHEN ... THEN ... END.
func CaseWithValueScalar(value Scalar, cases []CaseBranch, def Scalar) Scalar {
	return Scalar{Kind: KindScalarCall, Fn: FuncCaseWithValue, Value: &value, Cases: cases, Default: &def}
}

func (fn FuncKind) meta() funcMeta {
	if int(fn) < 0 || int(fn) >= len(funcTable) {
		return funcMeta{name: "UNKNOWN"}
	}
	return funcTable[fn]
}

// Arity reports the number of Scalar children, using the CASE flattened
// indexing convention for the two CASE variants.
func (s Scalar) Arity() int {
	switch s.Kind {
	case KindScalarLiteral, KindScalarColumn:
		return 0
	case KindScalarCast:
		return 1
	case KindScalarCall:
		meta := s.Fn.meta()
		switch meta.shape {
		case shapeFixed:
			return meta.fixed
		case shapeVariadic:
			return len(s.Args)
		case shapeInVariadic:
			return len(s.Args)
		case shapeOptionalTail:
			return len(s.Args)
		case shapeCaseNoValue:
			return 2*len(s.Cases) + 1
		case shapeCaseWithValue:
			return 1 + 2*len(s.Cases) + 1
		}
	}
	return 0
}

// Child returns the i-th Scalar child. Indexing past Arity is always a
// programmer error (see planerrors.ErrBadArity): the rewrite driver never
// produces such an index on a well-formed tree.
func (s Scalar) Child(i int) (Scalar, error) {
	n := s.Arity()
	if i < 0 || i >= n {
		return Scalar{}, planerrors.ErrBadArity.New(s.label(), n, i+1)
	}
	switch s.Kind {
	case KindScalarCast:
		return s.Args[0], nil
	case KindScalarCall:
		meta := s.Fn.meta()
		switch meta.shape {
		case shapeFixed, shapeVariadic, shapeInVariadic, shapeOptionalTail:
			return s.Args[i], nil
		case shapeCaseNoValue:
			if i == n-1 {
				return *s.Default, nil
			}
			pair := s.Cases[i/2]
			if i%2 == 0 {
				return pair.Cond, nil
			}
			return pair.Result, nil
		case shapeCaseWithValue:
			if i == 0 {
				return *s.Value, nil
			}
			if i == n-1 {
				return *s.Default, nil
			}
			j := i - 1
			pair := s.Cases[j/2]
			if j%2 == 0 {
				return pair.Cond, nil
			}
			return pair.Result, nil
		}
	}
	return Scalar{}, planerrors.ErrBadArity.New(s.label(), n, i+1)
}

func (s Scalar) label() string {
	switch s.Kind {
	case KindScalarLiteral:
		return "Literal"
	case KindScalarColumn:
		return "Column"
	case KindScalarCast:
		return "Cast"
	case KindScalarCall:
		return s.Fn.String()
	default:
		return "Scalar"
	}
}

// Map applies f to every immediate Scalar child, preserving the variant
// tag and, for calls, the FuncKind/DatePart decoration.
func (s Scalar) Map(f func(Scalar) Scalar) Scalar {
	switch s.Kind {
	case KindScalarLiteral, KindScalarColumn:
		return s
	case KindScalarCast:
		return Scalar{Kind: KindScalarCast, Args: []Scalar{f(s.Args[0])}, CastTarget: s.CastTarget}
	case KindScalarCall:
		meta := s.Fn.meta()
		switch meta.shape {
		case shapeFixed, shapeVariadic, shapeInVariadic, shapeOptionalTail:
			newArgs := make([]Scalar, len(s.Args))
			for i, a := range s.Args {
				newArgs[i] = f(a)
			}
			return Scalar{Kind: KindScalarCall, Fn: s.Fn, Args: newArgs, DatePart: s.DatePart}
		case shapeCaseNoValue:
			newCases := make([]CaseBranch, len(s.Cases))
			for i, c := range s.Cases {
				newCases[i] = CaseBranch{Cond: f(c.Cond), Result: f(c.Result)}
			}
			def := f(*s.Default)
			return Scalar{Kind: KindScalarCall, Fn: s.Fn, Cases: newCases, Default: &def}
		case shapeCaseWithValue:
			newCases := make([]CaseBranch, len(s.Cases))
			for i, c := range s.Cases {
				newCases[i] = CaseBranch{Cond: f(c.Cond), Result: f(c.Result)}
			}
			val := f(*s.Value)
			def := f(*s.Default)
			return Scalar{Kind: KindScalarCall, Fn: s.Fn, Value: &val, Cases: newCases, Default: &def}
		}
	}
	return s
}

// ResultType reports the Scalar's result type without a Catalog lookup.
func (s Scalar) ResultType() DataType {
	switch s.Kind {
	case KindScalarLiteral:
		return s.Lit.Type
	case KindScalarColumn:
		return s.Col.Type
	case KindScalarCast:
		return s.CastTarget
	case KindScalarCall:
		meta := s.Fn.meta()
		switch meta.result {
		case resBool:
			return Bool
		case resDate:
			return Date
		case resF64:
			return Float64
		case resI64:
			return Int64
		case resString:
			return String
		case resTimestamp:
			return Timestamp
		case resFirstArg:
			if len(s.Args) == 0 {
				return DataType{}
			}
			return s.Args[0].ResultType()
		case resDesignated:
			return s.designatedResultType()
		}
	}
	return DataType{}
}

// designatedResultType picks the "first value-producing branch" per
// spec: If/Ifnull/Nullif take their second operand's type (the
// then-branch / the fallback value); Case* take their first branch
// result, falling back to the default when there are no branches.
func (s Scalar) designatedResultType() DataType {
	switch s.Fn {
	case FuncIf:
		return s.Args[1].ResultType()
	case FuncIfnull, FuncNullif:
		return s.Args[1].ResultType()
	case FuncCaseNoValue, FuncCaseWithValue:
		if len(s.Cases) > 0 {
			return s.Cases[0].Result.ResultType()
		}
		if s.Default != nil {
			return s.Default.ResultType()
		}
	}
	return DataType{}
}

// References returns the set of Columns mentioned anywhere inside the
// tree. Every call allocates a fresh ColumnSet, the leaf cases (Literal,
// empty-arity Call) included.
func (s Scalar) References() *ColumnSet {
	set := NewColumnSet()
	s.collectReferences(set)
	return set
}

func (s Scalar) collectReferences(set *ColumnSet) {
	if s.Kind == KindScalarColumn {
		set.Add(s.Col)
		return
	}
	n := s.Arity()
	for i := 0; i < n; i++ {
		child, err := s.Child(i)
		if err != nil {
			continue
		}
		child.collectReferences(set)
	}
}

// Subst replaces every referenced Column according to mapping (keyed by
// Column.ID), preserving tree structure.
func (s Scalar) Subst(mapping map[int64]Column) Scalar {
	if s.Kind == KindScalarColumn {
		if replacement, ok := mapping[s.Col.ID]; ok {
			return ColumnRef(replacement)
		}
		return s
	}
	return s.Map(func(child Scalar) Scalar { return child.Subst(mapping) })
}

// Inline replaces every reference to column with expr, substituting
// structurally rather than by name so it is safe to call even when
// multiple columns share a display name.
func Inline(tree Scalar, column Column, expr Scalar) Scalar {
	if tree.Kind == KindScalarColumn && tree.Col.ID == column.ID {
		return expr
	}
	return tree.Map(func(child Scalar) Scalar { return Inline(child, column, expr) })
}

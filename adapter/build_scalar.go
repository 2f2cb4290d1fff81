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

package adapter

import (
	"github.com/pkg/errors"

	"github.com/zeedb/queryplanner/planerrors"
	"github.com/zeedb/queryplanner/scalar"
)

// BuildScalar translates a single Analyzer scalar node, and everything
// beneath it, into this package's scalar.Scalar.
func BuildScalar(node AnalyzedScalar) (scalar.Scalar, error) {
	if node == nil {
		return scalar.Scalar{}, planerrors.ErrAnalyzer.New("nil scalar node")
	}
	switch node.Tag() {
	case TagLiteral:
		return scalar.Literal(node.Literal()), nil
	case TagColumn:
		return scalar.ColumnRef(node.Column()), nil
	case TagCast:
		args := node.Args()
		if len(args) != 1 {
			return scalar.Scalar{}, planerrors.ErrAnalyzer.New("Cast node without exactly one operand")
		}
		input, err := BuildScalar(args[0])
		if err != nil {
			return scalar.Scalar{}, errors.Wrap(err, "adapter: building cast operand")
		}
		return scalar.Cast(input, node.CastTarget()), nil
	case TagCall:
		return buildCall(node)
	default:
		return scalar.Scalar{}, planerrors.ErrAnalyzer.New("scalar node with unknown tag")
	}
}

func buildCall(node AnalyzedScalar) (scalar.Scalar, error) {
	name := node.FunctionName()
	rawArgs := node.Args()

	// lpad/rpad without an explicit pad string default to a single
	// space, so the adapter injects the third operand before counting
	// arguments the same way the Analyzer's own 2-arg overload does.
	if (name == "ZetaSQL:lpad" || name == "ZetaSQL:rpad") && len(rawArgs) == 2 {
		rawArgs = append(rawArgs, spaceLiteral{})
	}

	fn, err := resolveFunc(name, node.Signature(), len(rawArgs))
	if err != nil {
		return scalar.Scalar{}, err
	}

	if fn == scalar.FuncCaseNoValue {
		return buildCaseNoValue(rawArgs)
	}
	if fn == scalar.FuncCaseWithValue {
		return buildCaseWithValue(rawArgs)
	}

	hasDatePart := fn.HasDatePart()
	var datePart scalar.DatePart
	if hasDatePart {
		if len(rawArgs) == 0 {
			return scalar.Scalar{}, planerrors.ErrAnalyzer.New("date-part function called with no arguments")
		}
		last := rawArgs[len(rawArgs)-1]
		rawArgs = rawArgs[:len(rawArgs)-1]
		dp, ok := scalar.ParseDatePart(datePartName(last))
		if !ok {
			return scalar.Scalar{}, planerrors.ErrUnsupportedMode.New(name, "unrecognized date part")
		}
		datePart = dp
	}

	args, err := buildScalars(rawArgs)
	if err != nil {
		return scalar.Scalar{}, errors.Wrap(err, "adapter: building call arguments for "+name)
	}
	result, err := scalar.Call(fn, datePart, args...)
	if err != nil {
		return scalar.Scalar{}, errors.Wrap(err, "adapter: "+name)
	}
	return result, nil
}

func buildScalars(nodes []AnalyzedScalar) ([]scalar.Scalar, error) {
	out := make([]scalar.Scalar, len(nodes))
	for i, n := range nodes {
		s, err := BuildScalar(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func buildCaseNoValue(rawArgs []AnalyzedScalar) (scalar.Scalar, error) {
	if len(rawArgs) == 0 || len(rawArgs)%2 != 1 {
		return scalar.Scalar{}, planerrors.ErrAnalyzer.New("CASE without a value needs an odd argument count (pairs plus a default)")
	}
	args, err := buildScalars(rawArgs)
	if err != nil {
		return scalar.Scalar{}, errors.Wrap(err, "adapter: building CASE branches")
	}
	var cases []scalar.CaseBranch
	for i := 0; i+1 < len(args)-1; i += 2 {
		cases = append(cases, scalar.CaseBranch{Cond: args[i], Result: args[i+1]})
	}
	def := args[len(args)-1]
	return scalar.CaseNoValueScalar(cases, def), nil
}

func buildCaseWithValue(rawArgs []AnalyzedScalar) (scalar.Scalar, error) {
	if len(rawArgs) < 2 || len(rawArgs)%2 != 0 {
		return scalar.Scalar{}, planerrors.ErrAnalyzer.New("CASE with a value needs value + pairs + default")
	}
	args, err := buildScalars(rawArgs)
	if err != nil {
		return scalar.Scalar{}, errors.Wrap(err, "adapter: building CASE branches")
	}
	value := args[0]
	rest := args[1:]
	var cases []scalar.CaseBranch
	for i := 0; i+1 < len(rest)-1; i += 2 {
		cases = append(cases, scalar.CaseBranch{Cond: rest[i], Result: rest[i+1]})
	}
	def := rest[len(rest)-1]
	return scalar.CaseWithValueScalar(value, cases, def), nil
}

// spaceLiteral is the synthetic pad-string operand injected for the
// 2-argument lpad/rpad overloads.
type spaceLiteral struct{}

func (spaceLiteral) Tag() ScalarTag                 { return TagLiteral }
func (spaceLiteral) Literal() scalar.Value          { return scalar.Value{Type: scalar.String, Data: " "} }
func (spaceLiteral) Column() scalar.Column          { return scalar.Column{} }
func (spaceLiteral) FunctionName() string           { return "" }
func (spaceLiteral) Signature() Signature           { return Signature{} }
func (spaceLiteral) Args() []AnalyzedScalar         { return nil }
func (spaceLiteral) CastTarget() scalar.DataType    { return scalar.DataType{} }

// datePartName extracts the date-part keyword from the trailing operand
// of a date-part function call. The Analyzer represents it as a string
// literal (e.g. "DAY"), matching DatePart::from_scalar's source.
func datePartName(node AnalyzedScalar) string {
	if node.Tag() != TagLiteral {
		return ""
	}
	v := node.Literal()
	if s, ok := v.Data.(string); ok {
		return s
	}
	return ""
}

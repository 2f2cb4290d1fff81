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

// Package planprint renders Expr/Scalar trees for trace output and test
// failure messages: a colorized indented tree (String) and a tabular
// EXPLAIN-style attribute/reference dump (ExplainTable).
package planprint

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/scalar"
)

// Printer renders a plan tree, optionally with ANSI color.
type Printer struct {
	UseColor bool
}

// New returns a Printer with color enabled, matching the teacher pack's
// default of colorizing trace output for an interactive terminal.
func New() *Printer { return &Printer{UseColor: true} }

// String renders e as an indented tree, one operator per line, with its
// Kind colorized the way the pack's relation renderer colorizes relation
// names.
func (p *Printer) String(e plan.Expr) string {
	var b strings.Builder
	p.writeNode(&b, e, 0)
	return b.String()
}

func (p *Printer) writeNode(b *strings.Builder, e plan.Expr, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(p.label(e))
	b.WriteString("\n")
	for _, c := range e.Children {
		p.writeNode(b, c, depth+1)
	}
}

func (p *Printer) label(e plan.Expr) string {
	kind := e.Kind.String()
	if !p.UseColor {
		return p.plainLabel(e, kind)
	}
	attr := color.FgBlue
	switch e.Kind {
	case plan.KindJoin, plan.KindDependentJoin:
		attr = color.FgYellow
	case plan.KindFilter:
		attr = color.FgRed
	case plan.KindGet:
		attr = color.FgCyan
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(kind) + p.detail(e)
}

func (p *Printer) plainLabel(e plan.Expr, kind string) string {
	return kind + p.detail(e)
}

func (p *Printer) detail(e plan.Expr) string {
	switch e.Kind {
	case plan.KindGet:
		return fmt.Sprintf("(%s)", e.Table.Name)
	case plan.KindJoin:
		return fmt.Sprintf("(%s)", e.JoinKind.String())
	case plan.KindDependentJoin:
		return fmt.Sprintf("(params=%d)", len(e.Parameters))
	default:
		return ""
	}
}

// Scalar renders s as a single-line parenthesized expression, the same
// shape the teacher's logrus fields use for a short debug value: function
// calls as Name(args...), literals and columns printed via their own
// String methods.
func (p *Printer) Scalar(s scalar.Scalar) string {
	switch s.Kind {
	case scalar.KindScalarLiteral:
		return s.Lit.String()
	case scalar.KindScalarColumn:
		return s.Col.String()
	case scalar.KindScalarCast:
		inner, _ := s.Child(0)
		return fmt.Sprintf("CAST(%s AS %s)", p.Scalar(inner), s.CastTarget.String())
	case scalar.KindScalarCall:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = p.Scalar(a)
		}
		name := s.Fn.String()
		if p.UseColor {
			c := color.New(color.FgGreen)
			c.EnableColor()
			name = c.Sprint(name)
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	default:
		return "?"
	}
}

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

package rules

import (
	"github.com/zeedb/queryplanner/plan"
	"github.com/zeedb/queryplanner/rewrite"
)

// ExpandRewriteSQL implements §4.5 step 9: a Rewrite{sql} placeholder is
// re-parsed and re-submitted to the full pipeline by reenter, which the
// caller (the top-level pipeline) supplies so this package never needs to
// import the Analyzer adapter or the pipeline entry point itself. The
// recursion this introduces is bounded by the caller's own pass counter,
// not by this rule: the generated SQL this package emits (CREATE/DROP
// text) never itself contains a Rewrite, so in practice one
// re-entry suffices. Intended to run under rewrite.TopDown.
func ExpandRewriteSQL(reenter func(sql string) (plan.Expr, error)) rewrite.Rule {
	return func(node plan.Expr) (plan.Expr, rewrite.TreeIdentity, error) {
		if node.Kind != plan.KindRewriteSQL {
			return node, rewrite.SameTree, nil
		}
		expanded, err := reenter(node.SQL)
		if err != nil {
			return node, rewrite.SameTree, err
		}
		return expanded, rewrite.NewTree, nil
	}
}

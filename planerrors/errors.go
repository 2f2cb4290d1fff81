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

// Package planerrors declares the sentinel error kinds returned by the
// planner. Errors the planner raises itself are created from one of these
// kinds, so a caller can distinguish a bug in this package (ErrBadArity,
// ErrPhysicalAttributes) from a user-visible condition (ErrUnknownFunction,
// ErrUnsupportedMode, ErrCatalogMiss) without string matching.
package planerrors

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrBadArity is raised when a Function or Expr is indexed or mapped
	// with a child count that disagrees with its variant's fixed arity.
	// Always a bug in the adapter or a rewrite rule, never user-caused.
	ErrBadArity = errors.NewKind("arity mismatch for %s: expected %d children, got %d")

	// ErrPhysicalAttributes is raised when Attributes is asked of a node
	// whose variant produces no columns (Script, Rewrite, CreateTempTable,
	// the DDL statements and Update) or of a join of unknown kind.
	ErrPhysicalAttributes = errors.NewKind("node %s has no physical attributes")

	// ErrUnknownFunction is raised by the adapter when an analyzed scalar
	// names a qualified function this package does not recognize.
	ErrUnknownFunction = errors.NewKind("unknown function %q with %d argument(s)")

	// ErrUnsupportedMode is raised when a recognized function is invoked
	// in a mode this package deliberately does not implement, e.g.
	// TIMESTAMP_TRUNC with an explicit time zone argument.
	ErrUnsupportedMode = errors.NewKind("unsupported mode for %s: %s")

	// ErrAnalyzer is raised when the externally-supplied analyzed tree
	// violates an invariant the adapter relies on (missing signature,
	// child count disagreeing with the declared variant tag). Treated as
	// structural: the adapter trusts the analyzer's shape contract.
	ErrAnalyzer = errors.NewKind("analyzer produced an inconsistent node: %s")

	// ErrCatalogMiss is raised by a Catalog (catalogcache.MemoryCatalog)
	// asked for a table id or path it does not hold.
	ErrCatalogMiss = errors.NewKind("catalog miss: %s")

	// ErrRecursionLimit is raised when a rewrite rule's re-entrant
	// expansion (the Rewrite{sql} stage) exceeds Config.MaxRewritePasses,
	// and by rewrite.TopDown/BottomUp when a rule re-fires
	// rewrite.RecursionCap times at one node.
	ErrRecursionLimit = errors.NewKind("rewrite stage %s exceeded %d passes without reaching a fixed point")
)

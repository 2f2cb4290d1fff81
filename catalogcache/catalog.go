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

// Package catalogcache defines the read-only Catalog surface the planner
// needs (§6 "To the Catalog") and a badger-backed memoizing decorator
// over it, grounded on the teacher's catalog lookups in engine.go
// (table resolution ahead of building a plan) generalized to this
// package's Table/Column types.
package catalogcache

import "github.com/zeedb/queryplanner/scalar"

// Catalog resolves table ids and paths, and reserves fresh ids for DDL.
// In this module DDL lowering (rules.LowerDDL) is the only caller, and
// it uses only ReserveID.
type Catalog interface {
	// TableByID returns the schema for a table, or planerrors.ErrCatalogMiss
	// if id does not name a table.
	TableByID(id int64) (scalar.Table, error)
	// Resolve maps a dotted catalog path ("db.schema.table") to a numeric
	// id, or planerrors.ErrCatalogMiss if no such path exists.
	Resolve(path string) (int64, error)
	// ReserveID hands out a fresh, never-before-used table id for a
	// CreateTable statement being lowered.
	ReserveID() (int64, error)
}

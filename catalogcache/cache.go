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

package catalogcache

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/zeedb/queryplanner/scalar"
)

// Cache wraps a Catalog with a badger-backed memoization layer keyed by
// numeric table id, so repeated TableByID lookups against the same
// Catalog do not re-pay its lookup cost. Badger is an
// embedded on-disk KV store; opening it in-memory (Options.InMemory)
// keeps this a pure cache with no externally-visible persistence
// contract of its own.
type Cache struct {
	backing Catalog
	db      *badger.DB
}

// NewCache opens an in-memory badger instance fronting backing. Callers
// own the returned Cache's lifetime and must call Close when done.
func NewCache(backing Catalog) (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "catalogcache: opening badger")
	}
	return &Cache{backing: backing, db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

type cachedTable struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Columns []cachedColumn `json:"columns"`
}

type cachedColumn struct {
	Phase byte   `json:"phase"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Table string `json:"table"`
	Type  string `json:"type"`
}

func tableKey(id int64) []byte {
	return []byte(fmt.Sprintf("table:%d", id))
}

// TableByID serves from the badger cache when present, otherwise falls
// through to the backing Catalog and populates the cache.
func (c *Cache) TableByID(id int64) (scalar.Table, error) {
	var out scalar.Table
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tableKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var ct cachedTable
			if err := json.Unmarshal(val, &ct); err != nil {
				return err
			}
			out = fromCachedTable(ct)
			found = true
			return nil
		})
	})
	if err != nil {
		return scalar.Table{}, errors.Wrap(err, "catalogcache: reading table cache")
	}
	if found {
		return out, nil
	}

	table, err := c.backing.TableByID(id)
	if err != nil {
		return scalar.Table{}, err
	}

	payload, err := json.Marshal(toCachedTable(table))
	if err != nil {
		return scalar.Table{}, errors.Wrap(err, "catalogcache: encoding table cache entry")
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tableKey(table.ID), payload)
	}); err != nil {
		return scalar.Table{}, errors.Wrap(err, "catalogcache: writing table cache entry")
	}
	return table, nil
}

// Resolve is not memoized: path resolution is cheap relative to the
// schema fetch it typically precedes, and caching it would require a
// second keyspace for a marginal win.
func (c *Cache) Resolve(path string) (int64, error) {
	return c.backing.Resolve(path)
}

// ReserveID always defers to the backing Catalog: a cached id reservation
// would risk handing out the same id twice across Cache instances.
func (c *Cache) ReserveID() (int64, error) {
	return c.backing.ReserveID()
}

// Invalidate drops a table's cached entry, used after DDL lowering
// changes or drops a table's schema.
func (c *Cache) Invalidate(id int64) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tableKey(id))
	})
}

func toCachedTable(t scalar.Table) cachedTable {
	ct := cachedTable{ID: t.ID, Name: t.Name, Columns: make([]cachedColumn, len(t.Columns))}
	for i, c := range t.Columns {
		ct.Columns[i] = cachedColumn{Phase: byte(c.Phase), ID: c.ID, Name: c.Name, Table: c.Table, Type: typeName(c.Type)}
	}
	return ct
}

func fromCachedTable(ct cachedTable) scalar.Table {
	t := scalar.Table{ID: ct.ID, Name: ct.Name, Columns: make([]scalar.Column, len(ct.Columns))}
	for i, c := range ct.Columns {
		t.Columns[i] = scalar.Column{
			Phase: scalar.ColumnPhase(c.Phase),
			ID:    c.ID,
			Name:  c.Name,
			Table: c.Table,
			Type:  typeFromName(c.Type),
		}
	}
	return t
}

func typeName(t scalar.DataType) string {
	if t.Kind == scalar.KindOther {
		return "OTHER:" + t.Name
	}
	return t.Kind.String()
}

func typeFromName(s string) scalar.DataType {
	switch s {
	case "BOOL":
		return scalar.Bool
	case "INT64":
		return scalar.Int64
	case "FLOAT64":
		return scalar.Float64
	case "STRING":
		return scalar.String
	case "DATE":
		return scalar.Date
	case "TIMESTAMP":
		return scalar.Timestamp
	default:
		if len(s) > 6 && s[:6] == "OTHER:" {
			return scalar.Other(s[6:])
		}
		return scalar.DataType{}
	}
}

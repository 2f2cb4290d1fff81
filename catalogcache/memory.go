// Copyright 2021 Dolthub, Inc.
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
	"strconv"
	"sync"

	"github.com/zeedb/queryplanner/planerrors"
	"github.com/zeedb/queryplanner/scalar"
)

// MemoryCatalog is a trivial name/id-keyed Catalog backed by plain maps,
// the in-memory analogue of the teacher's test.Catalog fixture (a
// DatabaseProvider-backed struct with no locking or persistence of its
// own). Used by the rules and catalogcache tests, including as the
// Cache's backing Catalog.
type MemoryCatalog struct {
	mu     sync.Mutex
	tables map[int64]scalar.Table
	paths  map[string]int64
	nextID int64
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		tables: make(map[int64]scalar.Table),
		paths:  make(map[string]int64),
		nextID: 1,
	}
}

// Put registers a table under both its id and a catalog path, for tests
// to set up fixtures before exercising a rule.
func (m *MemoryCatalog) Put(path string, table scalar.Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table.ID] = table
	m.paths[path] = table.ID
	if table.ID >= m.nextID {
		m.nextID = table.ID + 1
	}
}

func (m *MemoryCatalog) TableByID(id int64) (scalar.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return scalar.Table{}, planerrors.ErrCatalogMiss.New("#" + strconv.FormatInt(id, 10))
	}
	return t, nil
}

func (m *MemoryCatalog) Resolve(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.paths[path]
	if !ok {
		return 0, planerrors.ErrCatalogMiss.New(path)
	}
	return id, nil
}

func (m *MemoryCatalog) ReserveID() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return id, nil
}

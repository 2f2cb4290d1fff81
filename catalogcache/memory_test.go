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

package catalogcache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeedb/queryplanner/catalogcache"
	"github.com/zeedb/queryplanner/scalar"
)

func TestMemoryCatalogPutAndLookup(t *testing.T) {
	require := require.New(t)

	cat := catalogcache.NewMemoryCatalog()
	table := scalar.Table{ID: 7, Name: "orders", Columns: []scalar.Column{
		{ID: 1, Name: "id", Type: scalar.Int64},
	}}
	cat.Put("db.orders", table)

	got, err := cat.TableByID(7)
	require.NoError(err)
	require.Equal(table, got)

	id, err := cat.Resolve("db.orders")
	require.NoError(err)
	require.Equal(int64(7), id)
}

func TestMemoryCatalogMissReturnsError(t *testing.T) {
	require := require.New(t)

	cat := catalogcache.NewMemoryCatalog()
	_, err := cat.TableByID(404)
	require.Error(err)

	_, err = cat.Resolve("no.such.table")
	require.Error(err)
}

func TestMemoryCatalogReserveIDMonotonic(t *testing.T) {
	require := require.New(t)

	cat := catalogcache.NewMemoryCatalog()
	first, err := cat.ReserveID()
	require.NoError(err)
	second, err := cat.ReserveID()
	require.NoError(err)
	require.Less(first, second)
}

func TestMemoryCatalogReserveIDAfterPutNeverCollides(t *testing.T) {
	require := require.New(t)

	cat := catalogcache.NewMemoryCatalog()
	cat.Put("db.big", scalar.Table{ID: 100, Name: "big"})

	id, err := cat.ReserveID()
	require.NoError(err)
	require.Greater(id, int64(100))
}

// Copyright 2010-2025 Google LLC
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

package streetgraph

import (
	"strings"
	"sync"
	"testing"

	"github.com/shopsolve/orsamples/internal/routing"
	"github.com/stretchr/testify/require"
)

func loadSmall(t *testing.T) *Graph {
	t.Helper()
	g, err := LoadFile("testdata/small.yaml")
	require.NoError(t, err)
	return g
}

func TestLoadFile(t *testing.T) {
	g := loadSmall(t)
	require.Equal(t, 5, g.NumNodes())

	lat, lon, ok := g.Coordinates(3)
	require.True(t, ok)
	require.Equal(t, 35.6690, lat)
	require.Equal(t, 139.7400, lon)

	_, _, ok = g.Coordinates(42)
	require.False(t, ok)
}

func TestShortestPathLength(t *testing.T) {
	g := loadSmall(t)
	cases := []struct {
		name     string
		from, to int64
		want     int64
	}{
		{"Oneway", 1, 3, 150},
		{"AgainstOneway", 3, 1, 200},
		{"Rounded", 2, 3, 100},
		{"TwoHops", 1, 4, 200},
		{"Self", 2, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.ShortestPathLength(tc.from, tc.to)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestShortestPathLength_Errors(t *testing.T) {
	g := loadSmall(t)

	_, err := g.ShortestPathLength(4, 1)
	require.ErrorIs(t, err, ErrNoPath)

	_, err = g.ShortestPathLength(1, 5)
	require.ErrorIs(t, err, ErrNoPath)

	_, err = g.ShortestPathLength(1, 42)
	require.ErrorIs(t, err, ErrUnknownNode)

	_, err = g.ShortestPathLength(42, 1)
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestShortestPath(t *testing.T) {
	g := loadSmall(t)

	path, err := g.ShortestPath(1, 4)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3, 4}, path)

	path, err = g.ShortestPath(3, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 2, 1}, path)

	path, err = g.ShortestPath(2, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, path)

	_, err = g.ShortestPath(4, 2)
	require.ErrorIs(t, err, ErrNoPath)
}

func TestConcurrentQueries(t *testing.T) {
	g := loadSmall(t)
	var wg sync.WaitGroup
	got := make([]int64, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := g.ShortestPathLength(3, 1)
			if err == nil {
				got[i] = d
			}
		}(i)
	}
	wg.Wait()
	for _, d := range got {
		require.Equal(t, int64(200), d)
	}
}

func TestMetric(t *testing.T) {
	g := loadSmall(t)
	var m routing.Metric = g

	d, err := m.Distance(routing.Location{NearestNode: 3}, routing.Location{NearestNode: 1})
	require.NoError(t, err)
	require.Equal(t, int64(200), d)
}

func TestPath(t *testing.T) {
	g := loadSmall(t)
	var pf routing.PathFinder = g

	from := routing.Location{Name: "a", Lat: 35.6679, Lon: 139.7389, NearestNode: 1}
	to := routing.Location{Name: "b", Lat: 35.6681, Lon: 139.7401, NearestNode: 4}
	got, err := pf.Path(from, to)
	require.NoError(t, err)
	want := [][2]float64{
		{35.6679, 139.7389},
		{35.6680, 139.7390},
		{35.6690, 139.7400},
		{35.6680, 139.7400},
		{35.6681, 139.7401},
	}
	require.Equal(t, want, got)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "DuplicateNode",
			doc:  "nodes: [{id: 1}, {id: 1}]\n",
			want: ErrInvalidGraph,
		},
		{
			name: "NegativeLength",
			doc:  "nodes: [{id: 1}, {id: 2}]\nedges: [{from: 1, to: 2, length: -3}]\n",
			want: ErrInvalidGraph,
		},
		{
			name: "UnknownEndpoint",
			doc:  "nodes: [{id: 1}]\nedges: [{from: 1, to: 2, length: 3}]\n",
			want: ErrUnknownNode,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("nodes: [{id: 1, elevation: 3}]\n"))
	require.Error(t, err)
}

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

// Package streetgraph measures road distances on a street network.
//
// A Graph is a directed, weighted lvlath graph whose vertices are street
// nodes and whose edges are road segments with their length in meters. Two-way
// roads are stored as a pair of opposite edges. Shortest paths are computed
// with Dijkstra's algorithm once per source node and kept for later queries.
package streetgraph

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"

	log "github.com/golang/glog"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
	"github.com/shopsolve/orsamples/internal/instance"
	"github.com/shopsolve/orsamples/internal/routing"
)

var (
	// ErrUnknownNode is returned for node IDs that are not in the graph.
	ErrUnknownNode = errors.New("streetgraph: unknown node")
	// ErrNoPath is returned when the target cannot be reached from the source.
	ErrNoPath = errors.New("streetgraph: no path")
	// ErrInvalidGraph is wrapped by every validation error of New.
	ErrInvalidGraph = errors.New("streetgraph: invalid graph")
)

// Node is a street intersection or dead end.
type Node struct {
	ID  int64   `yaml:"id"`
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Edge is a road segment. Unless Oneway is set it can be driven both ways.
type Edge struct {
	From   int64   `yaml:"from"`
	To     int64   `yaml:"to"`
	Length float64 `yaml:"length"`
	Oneway bool    `yaml:"oneway"`
}

type document struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Graph is a street network. It is safe for concurrent use.
type Graph struct {
	g      *core.Graph
	coords map[int64][2]float64

	mu    sync.Mutex
	trees map[int64]*dijkstra.Result
}

func vertex(id int64) string { return strconv.FormatInt(id, 10) }

// New builds a graph from its nodes and edges. Edge lengths are rounded to
// whole meters and self-loops are dropped.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	cg, err := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())
	if err != nil {
		return nil, fmt.Errorf("streetgraph: %w", err)
	}
	g := &Graph{
		g:      cg,
		coords: make(map[int64][2]float64, len(nodes)),
		trees:  make(map[int64]*dijkstra.Result),
	}
	for _, n := range nodes {
		if _, ok := g.coords[n.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate node %d", ErrInvalidGraph, n.ID)
		}
		if err := g.g.AddVertex(vertex(n.ID)); err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrInvalidGraph, n.ID, err)
		}
		g.coords[n.ID] = [2]float64{n.Lat, n.Lon}
	}
	var loops int
	for _, e := range edges {
		for _, id := range []int64{e.From, e.To} {
			if _, ok := g.coords[id]; !ok {
				return nil, fmt.Errorf("edge %d-%d: %w %d", e.From, e.To, ErrUnknownNode, id)
			}
		}
		if math.IsNaN(e.Length) || math.IsInf(e.Length, 0) || e.Length < 0 {
			return nil, fmt.Errorf("%w: edge %d-%d has length %v", ErrInvalidGraph, e.From, e.To, e.Length)
		}
		if e.From == e.To {
			loops++
			continue
		}
		w := math.Round(e.Length)
		if _, err := g.g.AddEdge(vertex(e.From), vertex(e.To), w); err != nil {
			return nil, fmt.Errorf("%w: edge %d-%d: %v", ErrInvalidGraph, e.From, e.To, err)
		}
		if !e.Oneway {
			if _, err := g.g.AddEdge(vertex(e.To), vertex(e.From), w); err != nil {
				return nil, fmt.Errorf("%w: edge %d-%d: %v", ErrInvalidGraph, e.To, e.From, err)
			}
		}
	}
	log.V(1).Infof("Street graph: %d nodes, %d arcs, %d self-loops dropped", g.g.VertexCount(), g.g.EdgeCount(), loops)
	return g, nil
}

// Load reads a YAML street graph with "nodes" and "edges" lists.
func Load(r io.Reader) (*Graph, error) {
	var doc document
	if err := instance.Decode(r, &doc); err != nil {
		return nil, err
	}
	return New(doc.Nodes, doc.Edges)
}

// LoadFile reads the YAML street graph at path.
func LoadFile(path string) (*Graph, error) {
	var doc document
	if err := instance.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	g, err := New(doc.Nodes, doc.Edges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.coords) }

// Coordinates returns the latitude and longitude of a node.
func (g *Graph) Coordinates(id int64) (lat, lon float64, ok bool) {
	c, ok := g.coords[id]
	return c[0], c[1], ok
}

func (g *Graph) shortestPaths(from int64) (*dijkstra.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if res, ok := g.trees[from]; ok {
		return res, nil
	}
	res, err := dijkstra.Dijkstra(g.g, vertex(from), dijkstra.WithPathTracking())
	if err != nil {
		return nil, fmt.Errorf("streetgraph: shortest paths from %d: %w", from, err)
	}
	g.trees[from] = res
	return res, nil
}

// lookup returns the shortest path tree rooted at from once it is known that
// to can be reached.
func (g *Graph) lookup(from, to int64) (*dijkstra.Result, error) {
	for _, id := range []int64{from, to} {
		if _, ok := g.coords[id]; !ok {
			return nil, fmt.Errorf("%w %d", ErrUnknownNode, id)
		}
	}
	res, err := g.shortestPaths(from)
	if err != nil {
		return nil, err
	}
	// Unreachable vertices are kept with an infinite distance.
	ok, err := res.HasPathTo(vertex(to))
	if err != nil || !ok {
		return nil, fmt.Errorf("%w from %d to %d", ErrNoPath, from, to)
	}
	return res, nil
}

// ShortestPathLength returns the length in meters of the shortest path.
func (g *Graph) ShortestPathLength(from, to int64) (int64, error) {
	res, err := g.lookup(from, to)
	if err != nil {
		return 0, err
	}
	d, err := res.DistanceTo(vertex(to))
	if err != nil {
		return 0, fmt.Errorf("streetgraph: distance from %d to %d: %w", from, to, err)
	}
	// Edge weights are whole meters, so the sum is exact.
	return int64(d), nil
}

// ShortestPath returns the nodes of the shortest path, both ends included.
func (g *Graph) ShortestPath(from, to int64) ([]int64, error) {
	res, err := g.lookup(from, to)
	if err != nil {
		return nil, err
	}
	vs, err := res.PathTo(vertex(to))
	if errors.Is(err, dijkstra.ErrNoPath) {
		return nil, fmt.Errorf("%w from %d to %d", ErrNoPath, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("streetgraph: path from %d to %d: %w", from, to, err)
	}
	path := make([]int64, len(vs))
	for i, v := range vs {
		if path[i], err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("streetgraph: broken path to %d at %q", to, v)
		}
	}
	return path, nil
}

// Distance implements routing.Metric using the nearest street nodes of the
// two locations.
func (g *Graph) Distance(from, to routing.Location) (int64, error) {
	return g.ShortestPathLength(from.NearestNode, to.NearestNode)
}

// Path implements routing.PathFinder. The points run from the first location
// along the streets to the second one.
func (g *Graph) Path(from, to routing.Location) ([][2]float64, error) {
	nodes, err := g.ShortestPath(from.NearestNode, to.NearestNode)
	if err != nil {
		return nil, err
	}
	points := make([][2]float64, 0, len(nodes)+2)
	points = append(points, [2]float64{from.Lat, from.Lon})
	for _, id := range nodes {
		points = append(points, g.coords[id])
	}
	return append(points, [2]float64{to.Lat, to.Lon}), nil
}

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

package routing

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/shopsolve/orsamples/internal/cpsat"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// DefaultTimeLimit bounds the routing search unless the caller overrides it.
const DefaultTimeLimit = 30 * time.Second

// Stop is one visit on a route.
type Stop struct {
	Node int
	// Load is the number of parcels on board on arrival, before loading.
	Load int64
	// Arrival is the earliest arrival time along the route, in seconds.
	Arrival int64
	// LegDistance is the distance to the next stop; zero on the last stop.
	LegDistance int64
}

// Route is the tour of one vehicle. It starts and ends at the depot.
type Route struct {
	Vehicle  int
	Stops    []Stop
	Distance int64
	// Load is the number of parcels on board back at the depot.
	Load int64
	// Time is the arrival time back at the depot.
	Time int64
}

// Empty reports whether the vehicle leaves the depot at all.
func (r *Route) Empty() bool { return len(r.Stops) <= 2 }

// Plan is one route per vehicle.
type Plan struct {
	Status        cmpb.CpSolverStatus
	Routes        []Route
	TotalDistance int64
	TotalTime     int64
}

// TraceRoute follows nodes (depot first and last) and computes loads, the
// earliest arrival at every stop and the leg distances.
func TraceRoute(data *Data, ev *Evaluators, vehicle int, nodes []int) Route {
	r := Route{Vehicle: vehicle}
	var load int64
	t := data.TimeWindows[data.Depot].Open
	for k, node := range nodes {
		last := k == len(nodes)-1
		if k > 0 {
			prev := nodes[k-1]
			t += ev.Time.Time(prev, node)
			if !last && t < data.TimeWindows[node].Open {
				t = data.TimeWindows[node].Open
			}
			load += ev.Demand.Demand(prev, node)
			r.Distance += ev.Distance.Distance(prev, node)
		}
		stop := Stop{Node: node, Load: load, Arrival: t}
		if !last {
			stop.LegDistance = ev.Distance.Distance(node, nodes[k+1])
		}
		r.Stops = append(r.Stops, stop)
	}
	r.Load = load
	r.Time = t
	return r
}

// Solve plans the routes with the fewest total meters that visit every shop
// once, stay within the vehicle capacity and respect the time windows.
//
// Vehicles leave the depot when it opens. Waiting at a shop before it opens is
// allowed; every vehicle must be back at the depot by the horizon.
// DefaultTimeLimit applies unless opts sets another limit.
func Solve(ctx context.Context, data *Data, ev *Evaluators, opts ...cpsat.Option) (*Plan, error) {
	n := data.NumLocations()
	depot := data.Depot
	start := data.TimeWindows[depot].Open

	for i, tw := range data.TimeWindows {
		if i != depot && min(tw.Close, data.Horizon) < start {
			return nil, fmt.Errorf("routing: %w: %s closes at %s, before the depot opens", cpsat.ErrNoSolution, data.Locations[i].Name, data.Locations[i].Close)
		}
	}

	// The routes constraint roots every circuit at node 0.
	node := func(i int) int32 { return int32((i - depot + n) % n) }

	model := cpmodel.NewCpModelBuilder()

	load := make([]cpmodel.IntVar, n)
	arrival := make([]cpmodel.IntVar, n)
	for i := 0; i < n; i++ {
		if i == depot {
			continue
		}
		tw := data.TimeWindows[i]
		load[i] = model.NewIntVar(data.Demands[depot], data.Vehicle.Capacity-data.Demands[i]).WithName(fmt.Sprintf("load_%d", i))
		arrival[i] = model.NewIntVar(max(tw.Open, start), min(tw.Close, data.Horizon)).WithName(fmt.Sprintf("arrival_%d", i))
	}

	routes := model.AddMultipleCircuitConstraint()
	arcs := make([][]cpmodel.BoolVar, n)
	present := make([][]bool, n)
	distance := cpmodel.NewLinearExpr()
	departures := cpmodel.NewLinearExpr()
	var numArcs int
	for i := 0; i < n; i++ {
		arcs[i] = make([]cpmodel.BoolVar, n)
		present[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			travel := ev.Time.Time(i, j)
			earliest := max(data.TimeWindows[i].Open, start)
			if i == depot {
				earliest = start
			}
			// Arcs that cannot reach j before it closes are left out.
			if j != depot && earliest+travel > min(data.TimeWindows[j].Close, data.Horizon) {
				continue
			}
			arc := model.NewBoolVar().WithName(fmt.Sprintf("arc_%d_%d", i, j))
			arcs[i][j] = arc
			present[i][j] = true
			numArcs++
			routes.AddRoute(node(i), node(j), arc)
			distance.AddTerm(arc, ev.Distance.Distance(i, j))

			switch {
			case i == depot:
				departures.Add(arc)
				model.AddEquality(load[j], cpmodel.NewConstant(data.Demands[depot])).OnlyEnforceIf(arc)
				model.AddGreaterOrEqual(arrival[j], cpmodel.NewConstant(start+travel)).OnlyEnforceIf(arc)
			case j == depot:
				model.AddLessOrEqual(cpmodel.NewLinearExpr().Add(arrival[i]).AddConstant(travel), cpmodel.NewConstant(data.Horizon)).OnlyEnforceIf(arc)
			default:
				model.AddEquality(load[j], cpmodel.NewLinearExpr().Add(load[i]).AddConstant(ev.Demand.Demand(i, j))).OnlyEnforceIf(arc)
				model.AddGreaterOrEqual(arrival[j], cpmodel.NewLinearExpr().Add(arrival[i]).AddConstant(travel)).OnlyEnforceIf(arc)
			}
		}
	}
	model.AddLessOrEqual(departures, cpmodel.NewConstant(int64(data.NumVehicles)))
	model.Minimize(distance)
	log.V(1).Infof("Routing model: %d locations, %d of %d arcs kept", n, numArcs, n*(n-1))

	opts = append([]cpsat.Option{cpsat.WithTimeLimit(DefaultTimeLimit)}, opts...)
	res, err := cpsat.Solve(ctx, model, opts...)
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}

	next := make([]int, n)
	var firsts []int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !present[i][j] || !cpmodel.SolutionBooleanValue(res, arcs[i][j]) {
				continue
			}
			if i == depot {
				firsts = append(firsts, j)
			} else {
				next[i] = j
			}
		}
	}
	sort.Ints(firsts)

	plan := &Plan{Status: res.GetStatus()}
	for v := 0; v < data.NumVehicles; v++ {
		nodes := []int{depot}
		if v < len(firsts) {
			for cur := firsts[v]; cur != depot; cur = next[cur] {
				nodes = append(nodes, cur)
			}
		}
		nodes = append(nodes, depot)
		r := TraceRoute(data, ev, v, nodes)
		plan.Routes = append(plan.Routes, r)
		plan.TotalDistance += r.Distance
		plan.TotalTime += r.Time
	}
	return plan, nil
}

// Check verifies that plan visits every location of data exactly once and
// honors the capacity, the time windows and the horizon.
func (p *Plan) Check(data *Data) error {
	if len(p.Routes) > data.NumVehicles {
		return fmt.Errorf("%d routes for %d vehicles", len(p.Routes), data.NumVehicles)
	}
	visits := make([]int, data.NumLocations())
	for _, r := range p.Routes {
		if len(r.Stops) < 2 || r.Stops[0].Node != data.Depot || r.Stops[len(r.Stops)-1].Node != data.Depot {
			return fmt.Errorf("vehicle %d does not start and end at the depot", r.Vehicle)
		}
		for _, s := range r.Stops[1 : len(r.Stops)-1] {
			visits[s.Node]++
			tw := data.TimeWindows[s.Node]
			if s.Arrival < tw.Open || s.Arrival > tw.Close {
				return fmt.Errorf("vehicle %d reaches %s at %d, outside [%d, %d]", r.Vehicle, data.Locations[s.Node].Name, s.Arrival, tw.Open, tw.Close)
			}
			if s.Load+data.Demands[s.Node] > data.Vehicle.Capacity {
				return fmt.Errorf("vehicle %d exceeds its capacity at %s", r.Vehicle, data.Locations[s.Node].Name)
			}
		}
		if r.Load > data.Vehicle.Capacity {
			return fmt.Errorf("vehicle %d returns with %d parcels, capacity is %d", r.Vehicle, r.Load, data.Vehicle.Capacity)
		}
		if r.Time > data.Horizon {
			return fmt.Errorf("vehicle %d returns at %d, after the horizon %d", r.Vehicle, r.Time, data.Horizon)
		}
	}
	for i, v := range visits {
		if i != data.Depot && v != 1 {
			return fmt.Errorf("%s is visited %d times", data.Locations[i].Name, v)
		}
	}
	return nil
}

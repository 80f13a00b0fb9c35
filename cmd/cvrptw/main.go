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

// The cvrptw command plans the parcel pickup at thirteen Roppongi shops with
// three vehicles. Each vehicle carries at most 80 parcels and every shop must
// be reached within its time window.
//
// Distances are great-circle distances unless -graph names a street graph, in
// which case they are shortest road distances between the shops' nearest
// street nodes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/golang/glog"
	"github.com/shopsolve/orsamples/internal/cpsat"
	"github.com/shopsolve/orsamples/internal/instance"
	"github.com/shopsolve/orsamples/internal/routing"
	"github.com/shopsolve/orsamples/internal/streetgraph"
)

var (
	instancePath = flag.String("instance", "", "YAML routing instance; the Roppongi shops when empty")
	graphPath    = flag.String("graph", "", "YAML street graph used to measure distances")
	timeLimit    = flag.Duration("time_limit", routing.DefaultTimeLimit, "solver time limit")
	workers      = flag.Int("workers", 0, "number of parallel search workers; solver default when zero")
	geojsonPath  = flag.String("geojson", "", "file to write the routes to as GeoJSON")
)

func writeGeoJSON(path string, data *routing.Data, plan *routing.Plan, paths routing.PathFinder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := routing.WriteGeoJSON(f, data, plan, paths); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func cvrptw(ctx context.Context, w io.Writer) error {
	in := routing.DefaultInstance()
	if *instancePath != "" {
		if err := instance.DecodeFile(*instancePath, in); err != nil {
			return err
		}
	}
	data, err := in.Data()
	if err != nil {
		return err
	}

	var (
		metric routing.Metric = routing.HaversineMetric{}
		paths  routing.PathFinder
	)
	if *graphPath != "" {
		g, err := streetgraph.LoadFile(*graphPath)
		if err != nil {
			return err
		}
		metric, paths = g, g
	}
	ev, err := routing.NewEvaluators(data, metric)
	if err != nil {
		return err
	}

	plan, err := routing.Solve(ctx, data, ev, cpsat.WithTimeLimit(*timeLimit), cpsat.WithWorkers(*workers))
	switch {
	case errors.Is(err, cpsat.ErrNoSolution):
		plan = nil
	case err != nil:
		return err
	default:
		if err := plan.Check(data); err != nil {
			log.Warningf("Plan check failed: %v", err)
		}
	}

	printer := &routing.ConsolePrinter{Data: data, Plan: plan}
	printer.Print(w)

	if *geojsonPath != "" && plan != nil {
		if err := writeGeoJSON(*geojsonPath, data, plan, paths); err != nil {
			return err
		}
		log.Infof("Wrote routes to %s", *geojsonPath)
	}
	return nil
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cvrptw(ctx, os.Stdout); err != nil {
		log.Exitf("cvrptw returned with error: %v", err)
	}
}

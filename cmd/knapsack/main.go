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

// The knapsack command packs the plush toys worth the most into a 7 kg bag.
// With -instance it solves a multi-dimensional 0/1 knapsack read from YAML.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"time"

	log "github.com/golang/glog"
	"github.com/shopsolve/orsamples/internal/cpsat"
	"github.com/shopsolve/orsamples/internal/instance"
	"github.com/shopsolve/orsamples/internal/knapsack"
)

var (
	instancePath = flag.String("instance", "", "YAML knapsack instance; the plush toy instance when empty")
	timeLimit    = flag.Duration("time_limit", 0, "solver time limit; no limit when zero")
	workers      = flag.Int("workers", 0, "number of parallel search workers; solver default when zero")
)

func solveKnapsack(ctx context.Context, w io.Writer) error {
	p := knapsack.Default()
	if *instancePath != "" {
		p = &knapsack.Problem{}
		if err := instance.DecodeFile(*instancePath, p); err != nil {
			return err
		}
	}

	sol, err := knapsack.Solve(ctx, p, cpsat.WithTimeLimit(*timeLimit), cpsat.WithWorkers(*workers))
	if err != nil && !errors.Is(err, cpsat.ErrNoSolution) {
		return err
	}
	sol.Print(w, p)
	return nil
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := solveKnapsack(ctx, os.Stdout); err != nil {
		log.Exitf("solveKnapsack returned with error: %v", err)
	}
	log.V(1).Infof("Solved in %v", time.Since(start))
}

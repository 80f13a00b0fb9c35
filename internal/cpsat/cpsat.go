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

// Package cpsat runs CP-SAT models built with cpmodel.Builder.
//
// It turns functional options into a SatParameters proto, ties the solve to a
// context.Context through the interruptible solver entry point, and logs the
// model size and search statistics at verbosity 1.
package cpsat

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"google.golang.org/protobuf/proto"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

var (
	// ErrNoSolution is returned when the search ends without a feasible solution,
	// either because the model is infeasible or because a limit was reached first.
	ErrNoSolution = errors.New("no solution found")

	// ErrInvalidModel is returned when the solver rejects the model.
	ErrInvalidModel = errors.New("invalid CP model")
)

// Option sets one solver parameter.
type Option func(*sppb.SatParameters)

// WithTimeLimit bounds the wall time of the search. Non-positive durations are ignored.
func WithTimeLimit(d time.Duration) Option {
	return func(p *sppb.SatParameters) {
		if d > 0 {
			p.MaxTimeInSeconds = proto.Float64(d.Seconds())
		}
	}
}

// WithWorkers sets the number of parallel search workers. Zero keeps the solver default.
func WithWorkers(n int) Option {
	return func(p *sppb.SatParameters) {
		if n > 0 {
			p.NumWorkers = proto.Int32(int32(n))
		}
	}
}

// WithSearchLog makes the solver print its own progress log.
func WithSearchLog() Option {
	return func(p *sppb.SatParameters) {
		p.LogSearchProgress = proto.Bool(true)
	}
}

// Parameters builds the parameter proto for opts.
func Parameters(opts ...Option) *sppb.SatParameters {
	params := &sppb.SatParameters{}
	for _, opt := range opts {
		opt(params)
	}
	return params
}

// Feasible reports whether the response carries a solution.
func Feasible(res *cmpb.CpSolverResponse) bool {
	switch res.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		return true
	}
	return false
}

// Solve instantiates the model held by b and solves it. Cancelling ctx stops
// the search; the response then holds the best solution found so far, if any.
//
// A response without a solution is returned together with ErrNoSolution so
// callers can still inspect its status.
func Solve(ctx context.Context, b *cpmodel.Builder, opts ...Option) (*cmpb.CpSolverResponse, error) {
	m, err := b.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate the CP model: %w", err)
	}
	log.V(1).Infof("Solving %d variables, %d constraints", len(m.GetVariables()), len(m.GetConstraints()))

	res, err := cpmodel.SolveCpModelInterruptibleWithParameters(m, Parameters(opts...), ctx.Done())
	if err != nil {
		return nil, fmt.Errorf("failed to solve the model: %w", err)
	}
	log.V(1).Infof("Status: %v, objective: %v, bound: %v, conflicts: %d, branches: %d, wall time: %.3fs",
		res.GetStatus(), res.GetObjectiveValue(), res.GetBestObjectiveBound(),
		res.GetNumConflicts(), res.GetNumBranches(), res.GetWallTime())

	switch {
	case res.GetStatus() == cmpb.CpSolverStatus_MODEL_INVALID:
		return res, fmt.Errorf("%w: %s", ErrInvalidModel, res.GetSolutionInfo())
	case !Feasible(res):
		return res, fmt.Errorf("%w (status %v)", ErrNoSolution, res.GetStatus())
	}
	return res, nil
}

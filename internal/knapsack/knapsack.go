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

// Package knapsack solves 0/1 knapsack problems with the CP-SAT solver.
//
// A problem may carry several weight dimensions, each with its own capacity;
// an item is packed only if it fits in every dimension.
package knapsack

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/shopsolve/orsamples/internal/cpsat"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// ErrInvalidProblem is wrapped by every validation error.
var ErrInvalidProblem = errors.New("invalid knapsack problem")

// Problem is a multi-dimensional 0/1 knapsack instance.
type Problem struct {
	Name   string  `yaml:"name"`
	Values []int64 `yaml:"values"`
	// Weights is indexed [dimension][item].
	Weights    [][]int64 `yaml:"weights"`
	Capacities []int64   `yaml:"capacities"`
}

// Default returns the plush toy instance: four toys worth 16, 19, 23 and 28
// weighing 2, 3, 4 and 5 kg, and a bag that holds 7 kg.
func Default() *Problem {
	return &Problem{
		Name:       "plush toys",
		Values:     []int64{16, 19, 23, 28},
		Weights:    [][]int64{{2, 3, 4, 5}},
		Capacities: []int64{7},
	}
}

// Validate checks the shape and signs of the instance.
func (p *Problem) Validate() error {
	if len(p.Values) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidProblem)
	}
	if len(p.Weights) == 0 {
		return fmt.Errorf("%w: no weight dimension", ErrInvalidProblem)
	}
	if len(p.Weights) != len(p.Capacities) {
		return fmt.Errorf("%w: %d weight dimensions but %d capacities", ErrInvalidProblem, len(p.Weights), len(p.Capacities))
	}
	for i, v := range p.Values {
		if v < 0 {
			return fmt.Errorf("%w: item %d has negative value %d", ErrInvalidProblem, i, v)
		}
	}
	for d, row := range p.Weights {
		if len(row) != len(p.Values) {
			return fmt.Errorf("%w: dimension %d has %d weights for %d items", ErrInvalidProblem, d, len(row), len(p.Values))
		}
		for i, w := range row {
			if w < 0 {
				return fmt.Errorf("%w: item %d has negative weight %d in dimension %d", ErrInvalidProblem, i, w, d)
			}
		}
		if p.Capacities[d] < 0 {
			return fmt.Errorf("%w: dimension %d has negative capacity %d", ErrInvalidProblem, d, p.Capacities[d])
		}
	}
	return nil
}

// Solution is the packing chosen by the solver.
type Solution struct {
	Status      cmpb.CpSolverStatus
	Value       int64
	PackedItems []int
	// PackedWeights is indexed [dimension][k] for the k-th packed item.
	PackedWeights [][]int64
}

// Solve finds the most valuable set of items that fits in every dimension.
func Solve(ctx context.Context, p *Problem, opts ...cpsat.Option) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	model := cpmodel.NewCpModelBuilder()

	// x[i] is true when item i goes into the knapsack.
	x := make([]cpmodel.BoolVar, len(p.Values))
	for i := range x {
		x[i] = model.NewBoolVar().WithName(fmt.Sprintf("item_%d", i))
	}

	for d, row := range p.Weights {
		load := cpmodel.NewLinearExpr()
		for i, w := range row {
			load.AddTerm(x[i], w)
		}
		model.AddLessOrEqual(load, cpmodel.NewConstant(p.Capacities[d])).WithName(fmt.Sprintf("capacity_%d", d))
	}

	value := cpmodel.NewLinearExpr()
	for i, v := range p.Values {
		value.AddTerm(x[i], v)
	}
	model.Maximize(value)

	res, err := cpsat.Solve(ctx, model, opts...)
	if err != nil {
		return nil, fmt.Errorf("knapsack %q: %w", p.Name, err)
	}

	sol := &Solution{
		Status:        res.GetStatus(),
		PackedWeights: make([][]int64, len(p.Weights)),
	}
	for i := range x {
		if !cpmodel.SolutionBooleanValue(res, x[i]) {
			continue
		}
		sol.PackedItems = append(sol.PackedItems, i)
		sol.Value += p.Values[i]
		for d := range p.Weights {
			sol.PackedWeights[d] = append(sol.PackedWeights[d], p.Weights[d][i])
		}
	}
	return sol, nil
}

// Print writes the packed items, their weights and the total value of s, a
// solution of p. A nil s prints "No solution found.".
func (s *Solution) Print(w io.Writer, p *Problem) {
	if s == nil {
		fmt.Fprintln(w, "No solution found.")
		return
	}
	fmt.Fprintf(w, "Packed items: %v\n", s.PackedItems)
	if len(s.PackedWeights) == 1 {
		fmt.Fprintf(w, "Packed weights: %v\n", s.PackedWeights[0])
	} else {
		for d, row := range s.PackedWeights {
			fmt.Fprintf(w, "Packed weights (dimension %d, capacity %d): %v\n", d, p.Capacities[d], row)
		}
	}
	fmt.Fprintf(w, "Total value: %d\n", s.Value)
}

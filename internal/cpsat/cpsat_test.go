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

package cpsat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

func TestParameters(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want *sppb.SatParameters
	}{
		{
			name: "Empty",
			want: &sppb.SatParameters{},
		},
		{
			name: "TimeLimitAndWorkers",
			opts: []Option{WithTimeLimit(30 * time.Second), WithWorkers(4)},
			want: &sppb.SatParameters{
				MaxTimeInSeconds: proto.Float64(30),
				NumWorkers:       proto.Int32(4),
			},
		},
		{
			name: "IgnoresNonPositive",
			opts: []Option{WithTimeLimit(0), WithWorkers(-1)},
			want: &sppb.SatParameters{},
		},
		{
			name: "SearchLog",
			opts: []Option{WithSearchLog()},
			want: &sppb.SatParameters{LogSearchProgress: proto.Bool(true)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Parameters(test.opts...)
			if diff := cmp.Diff(test.want, got, protocmp.Transform()); diff != "" {
				t.Errorf("Parameters() returned unexpected diff (-want+got):\n%v", diff)
			}
		})
	}
}

func TestSolve(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	x := model.NewIntVar(1, 10)
	y := model.NewIntVar(1, 10)
	model.AddEquality(cpmodel.NewLinearExpr().AddSum(x, y), cpmodel.NewConstant(15))
	model.Maximize(cpmodel.NewLinearExpr().AddTerm(x, 7).AddTerm(y, 1))

	res, err := Solve(context.Background(), model, WithTimeLimit(10*time.Second))
	if err != nil {
		t.Fatalf("Solve returned unexpected error %v", err)
	}
	if got, want := res.GetStatus(), cmpb.CpSolverStatus_OPTIMAL; got != want {
		t.Errorf("Solve() returned status = %v, want %v", got, want)
	}
	if got, want := cpmodel.SolutionIntegerValue(res, x), int64(10); got != want {
		t.Errorf("SolutionIntegerValue(x) = %v, want %v", got, want)
	}
}

func TestSolve_Infeasible(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	x := model.NewIntVar(0, 3)
	model.AddGreaterThan(x, cpmodel.NewConstant(5))

	res, err := Solve(context.Background(), model)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Solve() returned error %v, want %v", err, ErrNoSolution)
	}
	if got, want := res.GetStatus(), cmpb.CpSolverStatus_INFEASIBLE; got != want {
		t.Errorf("Solve() returned status = %v, want %v", got, want)
	}
}

func TestSolve_InvalidModel(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	x := model.NewIntVar(0, -1)
	model.Maximize(x)

	if _, err := Solve(context.Background(), model); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Solve() returned error %v, want %v", err, ErrInvalidModel)
	}
}

func TestSolve_Cancelled(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	x := model.NewIntVar(0, 10)
	model.Maximize(x)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Solve(ctx, model)
	if err != nil && !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Solve() with cancelled context returned unexpected error %v", err)
	}
	if res.GetStatus() == cmpb.CpSolverStatus_MODEL_INVALID {
		t.Errorf("Solve() with cancelled context returned status %v", res.GetStatus())
	}
}

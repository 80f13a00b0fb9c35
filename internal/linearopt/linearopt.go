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

// Package linearopt solves small linear programs with gonum's simplex method.
//
// Problems are stated with non-negative variables, optional upper bounds and
// constraints of the form a·x <= b, a·x >= b or a·x = b. StandardForm rewrites
// them into the equality form min c·x, Ax = b, x >= 0 that lp.Simplex accepts.
package linearopt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInvalidProblem is wrapped by every validation error.
var ErrInvalidProblem = errors.New("invalid linear program")

// Sense is the relation between a constraint's left and right hand sides.
type Sense string

// Constraint senses.
const (
	LessOrEqual    Sense = "<="
	GreaterOrEqual Sense = ">="
	Equal          Sense = "="
)

// Constraint is Coeffs·x Sense RHS.
type Constraint struct {
	Name   string    `yaml:"name"`
	Coeffs []float64 `yaml:"coeffs"`
	Sense  Sense     `yaml:"sense"`
	RHS    float64   `yaml:"rhs"`
}

// Variable is a continuous variable bounded below by zero.
type Variable struct {
	Name string `yaml:"name"`
	// Upper is nil for variables without an upper bound.
	Upper *float64 `yaml:"upper"`
}

// Problem is a linear program.
type Problem struct {
	Name        string       `yaml:"name"`
	Maximize    bool         `yaml:"maximize"`
	Objective   []float64    `yaml:"objective"`
	Variables   []Variable   `yaml:"variables"`
	Constraints []Constraint `yaml:"constraints"`
}

func bound(v float64) *float64 { return &v }

// Default returns the linear relaxation of the plush toy knapsack:
//
//	maximize   16x1 + 19x2 + 23x3 + 28x4
//	subject to  2x1 +  3x2 +  4x3 +  5x4 <= 7
//	            0 <= xi <= 1
func Default() *Problem {
	return &Problem{
		Name:      "plush toys relaxation",
		Maximize:  true,
		Objective: []float64{16, 19, 23, 28},
		Variables: []Variable{
			{Name: "x1", Upper: bound(1)},
			{Name: "x2", Upper: bound(1)},
			{Name: "x3", Upper: bound(1)},
			{Name: "x4", Upper: bound(1)},
		},
		Constraints: []Constraint{
			{Name: "weight", Coeffs: []float64{2, 3, 4, 5}, Sense: LessOrEqual, RHS: 7},
		},
	}
}

// Validate checks dimensions and that every variable is bounded by at least one
// constraint or an upper bound; gonum rejects all-zero columns.
func (p *Problem) Validate() error {
	n := len(p.Objective)
	if n == 0 {
		return fmt.Errorf("%w: no variables", ErrInvalidProblem)
	}
	if len(p.Variables) != 0 && len(p.Variables) != n {
		return fmt.Errorf("%w: %d variables but %d objective coefficients", ErrInvalidProblem, len(p.Variables), n)
	}
	used := make([]bool, n)
	for i, v := range p.Variables {
		if v.Upper == nil {
			continue
		}
		if *v.Upper < 0 {
			return fmt.Errorf("%w: variable %s has negative upper bound %v", ErrInvalidProblem, p.varName(i), *v.Upper)
		}
		used[i] = true
	}
	for r, c := range p.Constraints {
		if len(c.Coeffs) != n {
			return fmt.Errorf("%w: constraint %d has %d coefficients, want %d", ErrInvalidProblem, r, len(c.Coeffs), n)
		}
		switch c.Sense {
		case LessOrEqual, GreaterOrEqual, Equal:
		default:
			return fmt.Errorf("%w: constraint %d has unknown sense %q", ErrInvalidProblem, r, c.Sense)
		}
		for i, a := range c.Coeffs {
			if a != 0 {
				used[i] = true
			}
		}
	}
	for i, ok := range used {
		if !ok {
			return fmt.Errorf("%w: variable %s appears in no constraint and has no upper bound", ErrInvalidProblem, p.varName(i))
		}
	}
	return nil
}

func (p *Problem) varName(i int) string {
	if i < len(p.Variables) && p.Variables[i].Name != "" {
		return p.Variables[i].Name
	}
	return "x" + strconv.Itoa(i+1)
}

// StandardForm returns c, A and b such that minimizing c·y subject to Ay = b,
// y >= 0 solves p. The first len(p.Objective) entries of y are p's variables;
// the rest are slack columns, one per inequality and one per upper bound.
// Rows are flipped so that b >= 0.
func (p *Problem) StandardForm() (c []float64, A *mat.Dense, b []float64) {
	n := len(p.Objective)
	var slacks, bounded int
	for _, con := range p.Constraints {
		if con.Sense != Equal {
			slacks++
		}
	}
	for _, v := range p.Variables {
		if v.Upper != nil {
			bounded++
		}
	}
	rows, cols := len(p.Constraints)+bounded, n+slacks+bounded

	c = make([]float64, cols)
	for i, v := range p.Objective {
		if p.Maximize {
			v = -v
		}
		c[i] = v
	}

	A = mat.NewDense(rows, cols, nil)
	b = make([]float64, rows)
	row, slack := 0, n
	for _, con := range p.Constraints {
		for i, a := range con.Coeffs {
			A.Set(row, i, a)
		}
		switch con.Sense {
		case LessOrEqual:
			A.Set(row, slack, 1)
			slack++
		case GreaterOrEqual:
			A.Set(row, slack, -1)
			slack++
		}
		b[row] = con.RHS
		row++
	}
	for i, v := range p.Variables {
		if v.Upper == nil {
			continue
		}
		A.Set(row, i, 1)
		A.Set(row, slack, 1)
		slack++
		b[row] = *v.Upper
		row++
	}
	for r := range b {
		if b[r] < 0 {
			b[r] = -b[r]
			for j := 0; j < cols; j++ {
				A.Set(r, j, -A.At(r, j))
			}
		}
	}
	return c, A, b
}

// Status is the outcome of a solve.
type Status int

// Solve outcomes.
const (
	Optimal Status = iota
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Solution holds the objective value and the value of each variable of p.
// Both are only meaningful when Status is Optimal.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solve runs the simplex method on p.
func Solve(p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, A, b := p.StandardForm()
	rows, cols := A.Dims()
	log.V(1).Infof("Standard form of %q: %d rows, %d columns", p.Name, rows, cols)

	opt, x, err := lp.Simplex(c, A, b, 0, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Solution{Status: Infeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Solution{Status: Unbounded}, nil
	case err != nil:
		return nil, fmt.Errorf("linear program %q: %w", p.Name, err)
	}
	if p.Maximize {
		opt = -opt
	}
	return &Solution{
		Status:    Optimal,
		Objective: opt,
		Values:    x[:len(p.Objective)],
	}, nil
}

// round trims simplex round-off for display.
func round(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

// Print writes the status, the objective value and one line per variable.
func (s *Solution) Print(w io.Writer, p *Problem) {
	fmt.Fprintf(w, "Status: %v\n", s.Status)
	if s.Status != Optimal {
		return
	}
	fmt.Fprintf(w, "Objective: %v\n", round(s.Objective))
	for i, v := range s.Values {
		fmt.Fprintf(w, "%s = %v\n", p.varName(i), round(v))
	}
}

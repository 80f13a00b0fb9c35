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

// The linear_optimization command solves the linear relaxation of the plush
// toy knapsack with the simplex method, or the linear program given with
// -instance.
package main

import (
	"flag"
	"io"
	"os"

	log "github.com/golang/glog"
	"github.com/shopsolve/orsamples/internal/instance"
	"github.com/shopsolve/orsamples/internal/linearopt"
)

var instancePath = flag.String("instance", "", "YAML linear program; the plush toy relaxation when empty")

func linearOptimization(w io.Writer) error {
	p := linearopt.Default()
	if *instancePath != "" {
		p = &linearopt.Problem{}
		if err := instance.DecodeFile(*instancePath, p); err != nil {
			return err
		}
	}

	sol, err := linearopt.Solve(p)
	if err != nil {
		return err
	}
	sol.Print(w, p)
	return nil
}

func main() {
	flag.Parse()
	if err := linearOptimization(os.Stdout); err != nil {
		log.Exitf("linearOptimization returned with error: %v", err)
	}
}

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

package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearOptimization(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		want     string
	}{
		{
			name: "PlushToysRelaxation",
			want: "Status: OPTIMAL\n" +
				"Objective: 46.5\n" +
				"x1 = 1\n" +
				"x2 = 1\n" +
				"x3 = 0.5\n" +
				"x4 = 0\n",
		},
		{
			// Bread is the cheaper source of calories and covers the protein too.
			name:     "Diet",
			instance: "testdata/diet.yaml",
			want: "Status: OPTIMAL\n" +
				"Objective: 36.363636364\n" +
				"bread = 18.181818182\n" +
				"milk = 0\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			old := *instancePath
			*instancePath = test.instance
			defer func() { *instancePath = old }()

			var b strings.Builder
			if err := linearOptimization(&b); err != nil {
				t.Fatalf("linearOptimization returned unexpected error %v", err)
			}
			if diff := cmp.Diff(test.want, b.String()); diff != "" {
				t.Errorf("linearOptimization() returned unexpected diff (-want+got):\n%v", diff)
			}
		})
	}
}

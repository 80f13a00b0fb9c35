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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func set[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestCVRPTW(t *testing.T) {
	tests := []struct {
		name  string
		graph string
	}{
		{name: "GreatCircle"},
		{name: "Streets", graph: "testdata/small_streets.yaml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set(t, instancePath, "testdata/small.yaml")
			set(t, graphPath, test.graph)
			set(t, timeLimit, 10*time.Second)
			out := filepath.Join(t.TempDir(), "plan.geojson")
			set(t, geojsonPath, out)

			var b strings.Builder
			if err := cvrptw(context.Background(), &b); err != nil {
				t.Fatalf("cvrptw returned unexpected error %v", err)
			}
			// "north" and "far north" share a van, "south" takes the other one.
			if !strings.Contains(b.String(), "Total distance: 666m\n") {
				t.Errorf("cvrptw() printed:\n%s\nwant a total distance of 666m", b.String())
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("ReadFile returned unexpected error %v", err)
			}
			fc, err := geojson.UnmarshalFeatureCollection(data)
			if err != nil {
				t.Fatalf("UnmarshalFeatureCollection returned unexpected error %v", err)
			}
			var lines int
			for _, f := range fc.Features {
				if _, ok := f.Geometry.(orb.LineString); ok {
					lines++
				}
			}
			if lines != 2 {
				t.Errorf("plan has %d route lines, want 2", lines)
			}
		})
	}
}

func TestCVRPTW_NoSolution(t *testing.T) {
	set(t, instancePath, "testdata/closed.yaml")
	out := filepath.Join(t.TempDir(), "plan.geojson")
	set(t, geojsonPath, out)

	var b strings.Builder
	if err := cvrptw(context.Background(), &b); err != nil {
		t.Fatalf("cvrptw returned unexpected error %v", err)
	}
	if got, want := b.String(), "No solution found.\n"; got != want {
		t.Errorf("cvrptw() printed %q, want %q", got, want)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("cvrptw() wrote %s without a plan", out)
	}
}

func TestCVRPTW_InvalidInstance(t *testing.T) {
	set(t, instancePath, "testdata/small_streets.yaml")
	var b strings.Builder
	if err := cvrptw(context.Background(), &b); err == nil {
		t.Errorf("cvrptw() returned nil error for a street graph given as the instance")
	}
}

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
	"fmt"
	"io"
	"strings"

	"github.com/shopsolve/orsamples/internal/clock"
)

// Colors are assigned to vehicles in order and reused when the fleet is larger.
var Colors = []string{"red", "blue", "green", "orange", "yellow"}

// Color returns the display color of a vehicle.
func Color(vehicle int) string {
	return Colors[vehicle%len(Colors)]
}

// ConsolePrinter writes a plan as text, one block per vehicle followed by the totals.
type ConsolePrinter struct {
	Data *Data
	// Plan is nil when the solver found no solution.
	Plan *Plan
}

// Print writes the plan to w.
func (p *ConsolePrinter) Print(w io.Writer) {
	if p.Plan == nil {
		fmt.Fprintln(w, "No solution found.")
		return
	}
	for _, r := range p.Plan.Routes {
		var b strings.Builder
		fmt.Fprintf(&b, "Vehicle %d (%s):\n", r.Vehicle, Color(r.Vehicle))
		for k, s := range r.Stops {
			name := p.Data.Locations[s.Node].Name
			if k == len(r.Stops)-1 {
				fmt.Fprintf(&b, " %s load(%d) %s\n", name, s.Load, clock.FormatHourMin(s.Arrival))
				break
			}
			fmt.Fprintf(&b, " [%s load %d+%d %s] --|%dm|-->", name, s.Load, p.Data.Demands[s.Node], clock.FormatHourMin(s.Arrival), s.LegDistance)
		}
		fmt.Fprintf(&b, " - Route distance: %dm\n", r.Distance)
		fmt.Fprintf(&b, " - Route load:     %d\n", r.Load)
		fmt.Fprintf(&b, " - Route time:     %s\n", clock.FormatDuration(r.Time))
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintf(w, "Total distance: %dm\n", p.Plan.TotalDistance)
	fmt.Fprintf(w, "Total time: %s\n", clock.FormatDuration(p.Plan.TotalTime))
}

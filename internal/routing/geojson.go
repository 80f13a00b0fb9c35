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
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/shopsolve/orsamples/internal/clock"
)

// PathFinder returns the [lat, lon] points of the way between two locations,
// both ends included.
type PathFinder interface {
	Path(from, to Location) ([][2]float64, error)
}

func point(lat, lon float64) orb.Point { return orb.Point{lon, lat} }

// PlanFeatures converts the plan to a GeoJSON FeatureCollection: a Point per
// visited location and a LineString per non-empty route. Legs follow paths when
// it is non-nil and are straight lines otherwise.
func PlanFeatures(data *Data, plan *Plan, paths PathFinder) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	depot := data.Locations[data.Depot]
	f := geojson.NewFeature(point(depot.Lat, depot.Lon))
	f.Properties["name"] = depot.Name
	f.Properties["depot"] = true
	f.Properties["marker-color"] = "black"
	fc.Append(f)

	for _, r := range plan.Routes {
		if r.Empty() {
			continue
		}
		color := Color(r.Vehicle)
		var line orb.LineString
		for k := 0; k < len(r.Stops)-1; k++ {
			from, to := data.Locations[r.Stops[k].Node], data.Locations[r.Stops[k+1].Node]
			leg := [][2]float64{{from.Lat, from.Lon}, {to.Lat, to.Lon}}
			if paths != nil {
				p, err := paths.Path(from, to)
				if err != nil {
					return nil, fmt.Errorf("path from %s to %s: %w", from.Name, to.Name, err)
				}
				leg = p
			}
			for i, pt := range leg {
				if i == 0 && len(line) > 0 {
					continue
				}
				line = append(line, point(pt[0], pt[1]))
			}
		}
		f := geojson.NewFeature(line)
		f.Properties["vehicle"] = r.Vehicle
		f.Properties["stroke"] = color
		f.Properties["distance"] = r.Distance
		f.Properties["load"] = r.Load
		f.Properties["duration"] = clock.FormatDuration(r.Time)
		fc.Append(f)

		for _, s := range r.Stops[1 : len(r.Stops)-1] {
			loc := data.Locations[s.Node]
			f := geojson.NewFeature(point(loc.Lat, loc.Lon))
			f.Properties["name"] = loc.Name
			f.Properties["vehicle"] = r.Vehicle
			f.Properties["marker-color"] = color
			f.Properties["arrival"] = clock.FormatHourMin(s.Arrival)
			f.Properties["load"] = s.Load
			f.Properties["demand"] = data.Demands[s.Node]
			fc.Append(f)
		}
	}
	return fc, nil
}

// WriteGeoJSON writes PlanFeatures(data, plan, paths) to w, indented.
func WriteGeoJSON(w io.Writer, data *Data, plan *Plan, paths PathFinder) error {
	fc, err := PlanFeatures(data, plan, paths)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

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
	"math"
)

// Metric measures the travel distance between two locations, in meters.
type Metric interface {
	Distance(from, to Location) (int64, error)
}

// HaversineMetric is the great-circle distance between the coordinates of two
// locations. It is used when no street graph is available.
type HaversineMetric struct{}

const earthRadius = 6371000.0

// Distance implements Metric.
func (HaversineMetric) Distance(from, to Location) (int64, error) {
	return int64(math.Round(haversineMeters(from.Lat, from.Lon, to.Lat, to.Lon))), nil
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceCallback returns the distance in meters between two location indices.
// All pairs are measured once, when the callback is created.
type DistanceCallback struct {
	matrix [][]int64
}

// NewDistanceCallback measures every ordered pair of locations with metric.
func NewDistanceCallback(data *Data, metric Metric) (*DistanceCallback, error) {
	n := data.NumLocations()
	matrix := make([][]int64, n)
	for from := 0; from < n; from++ {
		matrix[from] = make([]int64, n)
		for to := 0; to < n; to++ {
			if from == to {
				continue
			}
			d, err := metric.Distance(data.Locations[from], data.Locations[to])
			if err != nil {
				return nil, fmt.Errorf("distance from %s to %s: %w", data.Locations[from].Name, data.Locations[to].Name, err)
			}
			if d < 0 {
				return nil, fmt.Errorf("distance from %s to %s is negative (%d)", data.Locations[from].Name, data.Locations[to].Name, d)
			}
			matrix[from][to] = d
		}
	}
	return &DistanceCallback{matrix: matrix}, nil
}

// Distance returns the distance from one location index to another.
func (c *DistanceCallback) Distance(from, to int) int64 {
	return c.matrix[from][to]
}

// DemandCallback returns the number of parcels picked up when leaving a location.
type DemandCallback struct {
	demands []int64
}

// NewDemandCallback wraps the demands of data.
func NewDemandCallback(data *Data) *DemandCallback {
	return &DemandCallback{demands: data.Demands}
}

// Demand returns the demand of from; to is ignored.
func (c *DemandCallback) Demand(from, to int) int64 {
	return c.demands[from]
}

// TimeCallback returns the time between leaving for one location and being
// able to leave for the next: the loading time at the origin plus the drive.
type TimeCallback struct {
	total [][]int64
}

// NewTimeCallback precomputes service plus travel time for every ordered pair.
func NewTimeCallback(data *Data, distance *DistanceCallback) *TimeCallback {
	n := data.NumLocations()
	total := make([][]int64, n)
	for from := 0; from < n; from++ {
		total[from] = make([]int64, n)
		for to := 0; to < n; to++ {
			if from == to {
				continue
			}
			service := data.Demands[from] * data.TimePerDemand
			travel := float64(distance.Distance(from, to)) / data.Vehicle.Speed
			total[from][to] = service + int64(travel)
		}
	}
	return &TimeCallback{total: total}
}

// Time returns the service time at from plus the travel time to to, in seconds.
func (c *TimeCallback) Time(from, to int) int64 {
	return c.total[from][to]
}

// Evaluators bundles the callbacks of one instance.
type Evaluators struct {
	Distance *DistanceCallback
	Demand   *DemandCallback
	Time     *TimeCallback
}

// NewEvaluators builds all callbacks for data, measuring distances with metric.
func NewEvaluators(data *Data, metric Metric) (*Evaluators, error) {
	dist, err := NewDistanceCallback(data, metric)
	if err != nil {
		return nil, err
	}
	return &Evaluators{
		Distance: dist,
		Demand:   NewDemandCallback(data),
		Time:     NewTimeCallback(data, dist),
	}, nil
}

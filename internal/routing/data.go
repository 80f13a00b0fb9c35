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

// Package routing plans pickup routes for a small fleet under capacity and
// time-window constraints (CVRPTW).
//
// Data holds the instance, the callbacks in this package turn it into the
// distance, demand and travel-time matrices, and Solve hands the resulting
// model to the CP-SAT solver.
package routing

import (
	"errors"
	"fmt"

	"github.com/shopsolve/orsamples/internal/clock"
)

// ErrInvalidData is wrapped by every validation error.
var ErrInvalidData = errors.New("invalid routing data")

// Default instance parameters.
const (
	DefaultCapacity      = 80
	DefaultSpeedKMH      = 25
	DefaultNumVehicles   = 3
	DefaultTimePerDemand = 60
	// DefaultHorizon caps both the waiting time and the route duration, in seconds.
	DefaultHorizon = 4 * 3600
)

// Vehicle describes the (homogeneous) fleet.
type Vehicle struct {
	// Capacity is the number of parcels a vehicle can carry.
	Capacity int64
	// Speed is in meters per second.
	Speed float64
}

// KMH converts a speed in km/h to meters per second.
func KMH(v float64) float64 { return v * 1000 / 3600 }

// Location is a shop or the depot.
type Location struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
	// NearestNode is the street graph node closest to the location.
	NearestNode int64 `yaml:"nearest_node"`
	// Open and Close bound the arrival time, as "HH:MM".
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// TimeWindow is an arrival interval in seconds from the start of the day.
type TimeWindow struct {
	Open, Close int64
}

// Data is a validated CVRPTW instance.
type Data struct {
	Vehicle     Vehicle
	NumVehicles int
	Locations   []Location
	Demands     []int64
	Depot       int
	TimeWindows []TimeWindow
	// TimePerDemand is the loading time per parcel, in seconds.
	TimePerDemand int64
	Horizon       int64
}

// NumLocations returns the number of locations, depot included.
func (d *Data) NumLocations() int { return len(d.Locations) }

// Option overrides a default of NewData.
type Option func(*Data)

// WithVehicle sets the fleet's vehicle type.
func WithVehicle(v Vehicle) Option { return func(d *Data) { d.Vehicle = v } }

// WithNumVehicles sets the fleet size.
func WithNumVehicles(n int) Option { return func(d *Data) { d.NumVehicles = n } }

// WithDepot sets the index of the depot location.
func WithDepot(i int) Option { return func(d *Data) { d.Depot = i } }

// WithTimePerDemand sets the loading time per parcel, in seconds.
func WithTimePerDemand(sec int64) Option { return func(d *Data) { d.TimePerDemand = sec } }

// WithHorizon sets the planning horizon, in seconds.
func WithHorizon(sec int64) Option { return func(d *Data) { d.Horizon = sec } }

// NewData builds and validates an instance. Demands are indexed like locations.
func NewData(locations []Location, demands []int64, opts ...Option) (*Data, error) {
	d := &Data{
		Vehicle:       Vehicle{Capacity: DefaultCapacity, Speed: KMH(DefaultSpeedKMH)},
		NumVehicles:   DefaultNumVehicles,
		Locations:     locations,
		Demands:       demands,
		TimePerDemand: DefaultTimePerDemand,
		Horizon:       DefaultHorizon,
	}
	for _, opt := range opts {
		opt(d)
	}

	switch {
	case len(locations) < 2:
		return nil, fmt.Errorf("%w: need a depot and at least one shop, got %d locations", ErrInvalidData, len(locations))
	case len(demands) != len(locations):
		return nil, fmt.Errorf("%w: %d demands for %d locations", ErrInvalidData, len(demands), len(locations))
	case d.Depot < 0 || d.Depot >= len(locations):
		return nil, fmt.Errorf("%w: depot index %d out of range", ErrInvalidData, d.Depot)
	case d.NumVehicles <= 0:
		return nil, fmt.Errorf("%w: %d vehicles", ErrInvalidData, d.NumVehicles)
	case d.Vehicle.Capacity <= 0:
		return nil, fmt.Errorf("%w: vehicle capacity %d", ErrInvalidData, d.Vehicle.Capacity)
	case d.Vehicle.Speed <= 0:
		return nil, fmt.Errorf("%w: vehicle speed %v", ErrInvalidData, d.Vehicle.Speed)
	case d.TimePerDemand < 0:
		return nil, fmt.Errorf("%w: negative loading time %d", ErrInvalidData, d.TimePerDemand)
	case d.Horizon <= 0:
		return nil, fmt.Errorf("%w: horizon %d", ErrInvalidData, d.Horizon)
	}
	for i, q := range demands {
		if q < 0 {
			return nil, fmt.Errorf("%w: %s has negative demand %d", ErrInvalidData, locations[i].Name, q)
		}
		if q+demands[d.Depot] > d.Vehicle.Capacity && i != d.Depot {
			return nil, fmt.Errorf("%w: demand %d of %s exceeds the vehicle capacity", ErrInvalidData, q, locations[i].Name)
		}
	}

	d.TimeWindows = make([]TimeWindow, len(locations))
	for i, loc := range locations {
		open, err := clock.ParseHourMin(loc.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, loc.Name, err)
		}
		closing, err := clock.ParseHourMin(loc.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, loc.Name, err)
		}
		if closing < open {
			return nil, fmt.Errorf("%w: %s closes at %s before it opens at %s", ErrInvalidData, loc.Name, loc.Close, loc.Open)
		}
		if open > d.Horizon {
			return nil, fmt.Errorf("%w: %s opens at %s, after the horizon", ErrInvalidData, loc.Name, loc.Open)
		}
		d.TimeWindows[i] = TimeWindow{Open: open, Close: closing}
	}
	return d, nil
}

// Instance is the file form of a CVRPTW instance.
type Instance struct {
	Capacity      int64      `yaml:"capacity"`
	SpeedKMH      float64    `yaml:"speed_kmh"`
	NumVehicles   int        `yaml:"num_vehicles"`
	Depot         int        `yaml:"depot"`
	TimePerDemand int64      `yaml:"time_per_demand"`
	Horizon       int64      `yaml:"horizon"`
	Locations     []Location `yaml:"locations"`
	Demands       []int64    `yaml:"demands"`
}

// DefaultInstance returns the Roppongi shops served by three vehicles.
func DefaultInstance() *Instance {
	locations, demands := DefaultShops()
	return &Instance{
		Capacity:      DefaultCapacity,
		SpeedKMH:      DefaultSpeedKMH,
		NumVehicles:   DefaultNumVehicles,
		TimePerDemand: DefaultTimePerDemand,
		Horizon:       DefaultHorizon,
		Locations:     locations,
		Demands:       demands,
	}
}

// Data validates the instance.
func (in *Instance) Data() (*Data, error) {
	return NewData(in.Locations, in.Demands,
		WithVehicle(Vehicle{Capacity: in.Capacity, Speed: KMH(in.SpeedKMH)}),
		WithNumVehicles(in.NumVehicles),
		WithDepot(in.Depot),
		WithTimePerDemand(in.TimePerDemand),
		WithHorizon(in.Horizon),
	)
}

// DefaultShops returns the Roppongi area shops with the depot first, and the
// number of parcels to pick up at each.
func DefaultShops() ([]Location, []int64) {
	locations := []Location{
		{NearestNode: 1809615572, Open: "00:00", Close: "00:00", Name: "アークヒルズ店", Lat: 35.6681770, Lon: 139.7397242},
		{NearestNode: 251864110, Open: "00:00", Close: "00:30", Name: "港赤坂九丁目店", Lat: 35.6680961, Lon: 139.7328141},
		{NearestNode: 1760515775, Open: "00:00", Close: "02:00", Name: "城山トラストタワー", Lat: 35.6649108, Lon: 139.7431470},
		{NearestNode: 2162858601, Open: "00:00", Close: "00:50", Name: "合同庁舎第７号館", Lat: 35.6715977, Lon: 139.7483260},
		{NearestNode: 499193143, Open: "00:00", Close: "02:00", Name: "東麻布三丁目", Lat: 35.6571622, Lon: 139.7392354},
		{NearestNode: 1618521241, Open: "00:00", Close: "02:00", Name: "虎ノ門一丁目", Lat: 35.6685010, Lon: 139.7489690},
		{NearestNode: 499189994, Open: "00:00", Close: "02:00", Name: "赤坂六丁目店", Lat: 35.6700138, Lon: 139.7337181},
		{NearestNode: 2207933301, Open: "00:00", Close: "02:00", Name: "100 元麻布店", Lat: 35.6578560, Lon: 139.7274620},
		{NearestNode: 499192852, Open: "00:00", Close: "02:00", Name: "麻布十番一丁目店", Lat: 35.657044, Lon: 139.736167},
		{NearestNode: 1655440289, Open: "00:00", Close: "02:00", Name: "西麻布店", Lat: 35.6603463, Lon: 139.7230918},
		{NearestNode: 4414312668, Open: "00:00", Close: "02:00", Name: "赤坂氷川公園前店", Lat: 35.6713681, Lon: 139.7372166},
		{NearestNode: 1655503992, Open: "00:00", Close: "02:00", Name: "虎ノ門琴平点", Lat: 35.6703080, Lon: 139.7487411},
		{NearestNode: 1482491357, Open: "00:00", Close: "02:00", Name: "新橋六丁目店", Lat: 35.661263, Lon: 139.754532},
	}
	demands := []int64{1, 19, 21, 6, 19, 7, 12, 16, 6, 16, 8, 14, 21}
	return locations, demands
}

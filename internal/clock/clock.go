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

// Package clock converts between "HH:MM" wall-clock strings and seconds.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHourMin returns the number of seconds since midnight for a "HH:MM" string.
func ParseHourMin(s string) (int64, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("clock: %q is not in HH:MM form", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 {
		return 0, fmt.Errorf("clock: invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock: invalid minute in %q", s)
	}
	return int64(hour)*3600 + int64(minute)*60, nil
}

func split(sec int64) (h, m, s int64) {
	if sec < 0 {
		sec = 0
	}
	return sec / 3600, sec % 3600 / 60, sec % 60
}

// FormatHourMin formats seconds as "HH:MM", dropping the seconds.
func FormatHourMin(sec int64) string {
	h, m, _ := split(sec)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatHourMinSec formats seconds as "HH:MM:SS".
func FormatHourMinSec(sec int64) string {
	h, m, s := split(sec)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration formats seconds as "HHhMMmSSs".
func FormatDuration(sec int64) string {
	h, m, s := split(sec)
	return fmt.Sprintf("%02dh%02dm%02ds", h, m, s)
}

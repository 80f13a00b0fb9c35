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

// Package instance reads problem instances from YAML files.
//
// Decoding is strict: a key that does not match a field of the target struct
// is reported as an error instead of being silently dropped.
package instance

import (
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

// Decode reads one YAML document from r into v.
func Decode(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("instance: empty document")
		}
		return fmt.Errorf("instance: %w", err)
	}
	return nil
}

// DecodeFile reads the YAML file at path into v.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("instance: %w", err)
	}
	defer f.Close()
	if err := Decode(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("Loaded instance from %s", path)
	return nil
}

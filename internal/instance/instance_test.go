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

package instance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	Name   string  `yaml:"name"`
	Values []int64 `yaml:"values"`
}

func TestDecode(t *testing.T) {
	var got item
	if err := Decode(strings.NewReader("name: toys\nvalues: [16, 19]\n"), &got); err != nil {
		t.Fatalf("Decode returned unexpected error %v", err)
	}
	want := item{Name: "toys", Values: []int64{16, 19}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() returned unexpected diff (-want+got):\n%v", diff)
	}
}

func TestDecode_UnknownField(t *testing.T) {
	var got item
	if err := Decode(strings.NewReader("name: toys\nweight: 3\n"), &got); err == nil {
		t.Errorf("Decode() with unknown field returned nil error, want an error")
	}
}

func TestDecode_Empty(t *testing.T) {
	var got item
	if err := Decode(strings.NewReader(""), &got); err == nil {
		t.Errorf("Decode() of empty input returned nil error, want an error")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.yaml")
	if err := os.WriteFile(path, []byte("name: bag\n"), 0o644); err != nil {
		t.Fatalf("WriteFile returned unexpected error %v", err)
	}
	var got item
	if err := DecodeFile(path, &got); err != nil {
		t.Fatalf("DecodeFile returned unexpected error %v", err)
	}
	if got.Name != "bag" {
		t.Errorf("DecodeFile() name = %q, want %q", got.Name, "bag")
	}
	if err := DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"), &got); err == nil {
		t.Errorf("DecodeFile() of missing file returned nil error, want an error")
	}
}

// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

// Package golden loads the YAML fixtures describing the worked
// serialization scenarios (§8 of the specification) used by
// serialize_test.go, modeled on the YAML-fixture-to-struct loading
// convention in sarchlab-zeonica's core.Program machinery.
package golden

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one entry in a fixture file: a name, an expected index
// the pipeline is serialized from, and the expected flat descriptor
// rows it must lower to.
type Scenario struct {
	Name        string `yaml:"name"`
	StartIndex  uint   `yaml:"start_index"`
	Description string `yaml:"description"`
	Expect      []Row  `yaml:"expect"`
	NextIndex   uint   `yaml:"next_index"`
}

// Row is one expected Descriptor, in the same shape a test can compare
// field-by-field against a built pfq.Descriptor without depending on
// package pfq from this low-level package (avoiding an import cycle
// risk were golden ever reused from pfq's own tests).
type Row struct {
	Symbol string   `yaml:"symbol"`
	Args   []string `yaml:"args"`
	Next   string   `yaml:"next"` // decimal index, or "terminal"
}

// File is the top-level shape of a fixture file: a named list of
// scenarios, so one file can hold S1..S6 together.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and parses a fixture file from path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("golden: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("golden: parsing %s: %w", path, err)
	}
	return f, nil
}

// ByName returns the scenario named n, and whether it was found.
func (f File) ByName(n string) (Scenario, bool) {
	for _, s := range f.Scenarios {
		if s.Name == n {
			return s, true
		}
	}
	return Scenario{}, false
}

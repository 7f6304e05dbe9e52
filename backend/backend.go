// Copyright 2026 Google Inc.
//
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

// Package backend defines the interface between the sensors registry and
// the sources of chip data, along with the descriptors those sources produce.
//
// Backends are not safe for concurrent use; the registry serializes all
// calls into a backend.
package backend // import "github.com/soumya92/sensors/backend"

import (
	"errors"
	"fmt"
	"math"

	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/feature"
)

// Backend provides chips and raw value access.
type Backend interface {
	// Load reads the given configuration files, reporting diagnostics
	// to diag. It is called exactly once, before any other method.
	Load(files []config.File, diag config.DiagFunc) error
	// Chips scans for chips. Each call returns a fresh snapshot.
	Chips() ([]Chip, error)
	// Read returns the value of a subfeature, in engineering units.
	Read(chip *Chip, sf *Subfeature) (float64, error)
	// Write sets the value of a subfeature, given in engineering units.
	Write(chip *Chip, sf *Subfeature, v float64) error
	// Sets returns the configured set statements for the chip.
	Sets(chip *Chip) []config.Set
	// AdapterName returns a human-readable name for a bus.
	AdapterName(bus chipname.Bus) (string, bool)
	// Close releases any resources held by the backend.
	Close() error
}

// Chip describes a detected chip.
type Chip struct {
	Name chipname.ChipName
	// Path is a backend-specific location for the chip, e.g. its sysfs
	// directory.
	Path     string
	Features []Feature
}

// Feature describes a single measurement of a chip.
type Feature struct {
	// Name is the backend name of the feature, e.g. "temp1".
	Name string
	Type feature.Type
	// Number is the position of the feature in the chip, from 0.
	Number int
	// Index distinguishes features of the same type, from 0.
	Index int
	// Label is the human-readable label, empty if the chip or
	// configuration does not provide one.
	Label       string
	Subfeatures []Subfeature
}

// Subfeature describes a single value of a feature.
type Subfeature struct {
	// Name is the backend name of the subfeature, e.g. "temp1_input".
	Name string
	Type feature.SubfeatureType
	// Number is the position of the subfeature in the chip, from 0.
	Number int
	// Mapping is the Number of the feature the subfeature belongs to.
	Mapping int
	Flags   feature.Flags
	// Range is the range of values accepted on write.
	Range Range
}

// Range is a closed interval. The zero Range is unbounded.
type Range struct {
	Min, Max float64
}

// Unbounded accepts any finite value.
var Unbounded = Range{math.Inf(-1), math.Inf(1)}

// Contains returns true if v is a finite value within the range.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if r == (Range{}) {
		return true
	}
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Errors returned by backends. Backends wrap these, possibly alongside
// the underlying cause.
var (
	// ErrNoDevice means the chip or subfeature no longer exists.
	ErrNoDevice = errors.New("backend: no such device")
	// ErrIO is a transient or unknown I/O failure.
	ErrIO = errors.New("backend: I/O error")
	// ErrInvalid means the device rejected a written value.
	ErrInvalid = errors.New("backend: invalid value")
)

// FatalError is returned when the backend is no longer usable, e.g. when
// sysfs disappears after a successful load.
type FatalError struct {
	// Proc is the backend operation that failed.
	Proc string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Proc, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

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

package sensors

import (
	"errors"
	"fmt"

	"github.com/soumya92/sensors/chipname"
)

// Lifecycle and access errors.
var (
	// ErrAlreadyInitialized is returned by Init while a registry is active.
	ErrAlreadyInitialized = errors.New("sensors: already initialized")
	// ErrNotInitialized is returned by Shutdown on a registry that is not
	// active, including one that was already shut down.
	ErrNotInitialized = errors.New("sensors: not initialized")
	// ErrUseAfterShutdown is returned by operations on chips, features and
	// subfeatures after their registry has been shut down.
	ErrUseAfterShutdown = errors.New("sensors: use after shutdown")
	// ErrNotReadable is returned when reading a subfeature without ModeR.
	ErrNotReadable = errors.New("sensors: subfeature not readable")
	// ErrNotWritable is returned when writing a subfeature without ModeW.
	ErrNotWritable = errors.New("sensors: subfeature not writable")
	// ErrOutOfRange is returned when writing a value the subfeature does
	// not accept.
	ErrOutOfRange = errors.New("sensors: value out of range")
	// ErrFatal is returned when the backend reported an unrecoverable
	// condition and the fatal error sink returned.
	ErrFatal = errors.New("sensors: fatal error")
	// ErrForeignFeature is returned when a feature is used with a chip it
	// does not belong to.
	ErrForeignFeature = errors.New("sensors: feature belongs to another chip")
)

// InitError is returned by Init when the backend could not be loaded.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("sensors: init: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ReadError is returned when a subfeature could not be read.
type ReadError struct {
	Chip       chipname.ChipName
	Subfeature string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("sensors: reading %s/%s: %v", e.Chip, e.Subfeature, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is returned when a subfeature could not be written.
type WriteError struct {
	Chip       chipname.ChipName
	Subfeature string
	Value      float64
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sensors: writing %g to %s/%s: %v", e.Value, e.Chip, e.Subfeature, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

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
	"math"

	"github.com/soumya92/sensors/backend"
)

// Read returns the current value of the subfeature in engineering units,
// e.g. degrees Celsius, volts or RPM. Errors are always *ReadError.
func (s *Subfeature) Read() (float64, error) {
	c := s.feature.chip
	var v float64
	err := c.r.do(func(b backend.Backend) error {
		if !s.desc.Flags.Readable() {
			return ErrNotReadable
		}
		var err error
		v, err = b.Read(&c.desc, s.desc)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = fmt.Errorf("%w: non-finite value %g", backend.ErrIO, v)
		}
		return err
	})
	if err != nil {
		return 0, &ReadError{c.desc.Name, s.desc.Name, err}
	}
	return v, nil
}

// ReadOrDefault returns the current value of the subfeature, or def if it
// cannot be read.
func (s *Subfeature) ReadOrDefault(def float64) float64 {
	if v, err := s.Read(); err == nil {
		return v
	}
	return def
}

// Write sets the value of the subfeature, given in engineering units.
// The backend is not called if the subfeature is not writable or the value
// is outside its range. Errors are always *WriteError.
func (s *Subfeature) Write(v float64) error {
	c := s.feature.chip
	err := c.r.do(func(b backend.Backend) error {
		if !s.desc.Flags.Writable() {
			return ErrNotWritable
		}
		if !s.desc.Range.Contains(v) {
			return fmt.Errorf("%w: %g not in %s", ErrOutOfRange, v, s.desc.Range)
		}
		err := b.Write(&c.desc, s.desc, v)
		if errors.Is(err, backend.ErrInvalid) {
			return fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
		return err
	})
	if err != nil {
		return &WriteError{c.desc.Name, s.desc.Name, v, err}
	}
	return nil
}

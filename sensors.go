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

// Package sensors provides access to hardware monitoring chips: voltages,
// temperatures, fan speeds, currents, power, energy and humidity.
//
// A process initializes a single Registry, finds chips by name pattern,
// then reads and writes the subfeatures of their features:
//
//	r, err := sensors.Init()
//	if err != nil { ... }
//	defer r.Shutdown()
//	chips, err := r.FindChips(chipname.Any())
//	for _, chip := range chips {
//	    features, _ := chip.Features()
//	    for _, f := range features {
//	        input, ok, _ := f.Subfeature(f.Type().Main())
//	        ...
//	    }
//	}
//
// By default chips are read from /sys/class/hwmon, configured by the
// lm-sensors configuration files.
package sensors // import "github.com/soumya92/sensors"

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/backend/sysfs"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	l "github.com/soumya92/sensors/logging"
)

// Registry is the process-wide session with a backend. All chips,
// features and subfeatures obtained from a registry become invalid when
// it is shut down.
type Registry struct {
	// Serializes all backend calls.
	mu      sync.Mutex
	backend backend.Backend
	closed  bool
}

var (
	activeMu sync.Mutex
	active   *Registry
)

type options struct {
	backend backend.Backend
	files   []config.File
	fs      afero.Fs
}

// Option configures Init.
type Option func(*options)

// WithBackend uses the given backend instead of sysfs.
func WithBackend(b backend.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithConfigFiles loads the given configuration files instead of the
// default ones. Unlike the defaults, the files must exist. Directories are
// expanded to the *.conf files they contain.
func WithConfigFiles(paths ...string) Option {
	return func(o *options) {
		o.files = []config.File{}
		for _, p := range paths {
			o.files = append(o.files, config.File{Path: p})
		}
	}
}

// WithFs sets the filesystem used for configuration files and the default
// sysfs backend.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// Init loads the backend and its configuration. Configuration diagnostics
// are reported to the parse error sink. Only one registry may be active at
// a time; Init returns ErrAlreadyInitialized until it is shut down.
func Init(opts ...Option) (*Registry, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, ErrAlreadyInitialized
	}
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = sysfs.New(o.fs)
	}
	if o.files == nil {
		o.files = config.DefaultFiles(o.fs)
	}
	loaded := false
	defer func() {
		if loaded {
			return
		}
		if cerr := o.backend.Close(); cerr != nil {
			l.Log("closing backend after failed load: %v", cerr)
		}
	}()
	if err := o.backend.Load(o.files, reportParse); err != nil {
		return nil, &InitError{err}
	}
	loaded = true
	r := &Registry{backend: o.backend}
	l.Labelf(r, "%T", o.backend)
	active = r
	return r, nil
}

// Shutdown releases the backend. It returns ErrNotInitialized if the
// registry is not active.
func (r *Registry) Shutdown() error {
	if r == nil {
		return ErrNotInitialized
	}
	activeMu.Lock()
	defer activeMu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.backend == nil {
		return ErrNotInitialized
	}
	r.closed = true
	if active == r {
		active = nil
	}
	l.Fine("%s: shutdown", l.ID(r))
	if err := r.backend.Close(); err != nil {
		return fmt.Errorf("sensors: shutdown: %w", err)
	}
	return nil
}

// locked runs fn with exclusive access to the backend.
func (r *Registry) locked(fn func(backend.Backend) error) error {
	if r == nil {
		return ErrNotInitialized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrUseAfterShutdown
	}
	if r.backend == nil {
		return ErrNotInitialized
	}
	return fn(r.backend)
}

// do is like locked, but also reports fatal backend errors to the fatal
// error sink. The sink is called without holding the lock.
func (r *Registry) do(fn func(backend.Backend) error) error {
	err := r.locked(fn)
	var fe *backend.FatalError
	if errors.As(err, &fe) {
		reportFatal(fe.Proc, fe.Err.Error())
		return fmt.Errorf("%w: %w", ErrFatal, err)
	}
	return err
}

func (r *Registry) alive() error {
	return r.locked(func(backend.Backend) error { return nil })
}

// FindChips scans the backend for chips matching the pattern, in backend
// order. Every call rescans; use chipname.Any() to find all chips.
func (r *Registry) FindChips(match chipname.ChipName) ([]*Chip, error) {
	var chips []*Chip
	err := r.do(func(b backend.Backend) error {
		all, err := b.Chips()
		if err != nil {
			return err
		}
		for _, c := range all {
			if err := c.Name.Validate(); err != nil {
				return &backend.FatalError{Proc: "FindChips", Err: fmt.Errorf("backend reported chip %#v: %w", c.Name, err)}
			}
			if c.Name.Matches(match) {
				chips = append(chips, newChip(r, c))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.Fine("%s: %d chips match %s", l.ID(r), len(chips), match)
	return chips, nil
}

// AdapterName returns the name of the adapter for a bus, e.g.
// "ISA adapter" or the name of an i2c controller.
func (r *Registry) AdapterName(bus chipname.Bus) (name string, ok bool, err error) {
	err = r.do(func(b backend.Backend) error {
		name, ok = b.AdapterName(bus)
		return nil
	})
	return name, ok, err
}

// DoChipSets applies the set statements of the configuration to all chips
// matching the pattern. It attempts every statement, and returns the errors
// of all failed ones.
func (r *Registry) DoChipSets(match chipname.ChipName) error {
	chips, err := r.FindChips(match)
	if err != nil {
		return err
	}
	var errs []error
	for _, c := range chips {
		var sets []config.Set
		err := r.do(func(b backend.Backend) error {
			sets = b.Sets(&c.desc)
			return nil
		})
		if err != nil {
			return err
		}
		for _, s := range sets {
			if err := c.apply(s); err != nil {
				errs = append(errs, fmt.Errorf("%s (%s): %w", s.Subfeature, s.Location, err))
			}
		}
	}
	return errors.Join(errs...)
}

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
	"fmt"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/feature"
)

// Chip is a detected chip.
type Chip struct {
	r        *Registry
	desc     backend.Chip
	features []*Feature
}

// Feature is a single measurement of a chip, e.g. one temperature sensor.
type Feature struct {
	chip        *Chip
	desc        *backend.Feature
	subfeatures []*Subfeature
}

// Subfeature is a single value of a feature, e.g. the current temperature
// or its high limit.
type Subfeature struct {
	feature *Feature
	desc    *backend.Subfeature
}

func newChip(r *Registry, desc backend.Chip) *Chip {
	c := &Chip{r: r, desc: desc}
	for i := range c.desc.Features {
		f := &Feature{chip: c, desc: &c.desc.Features[i]}
		for j := range f.desc.Subfeatures {
			f.subfeatures = append(f.subfeatures, &Subfeature{f, &f.desc.Subfeatures[j]})
		}
		c.features = append(c.features, f)
	}
	return c
}

// Name returns the name of the chip. It is never a wildcard.
func (c *Chip) Name() chipname.ChipName { return c.desc.Name }

// Path returns the backend location of the chip, e.g. its sysfs directory.
func (c *Chip) Path() string { return c.desc.Path }

func (c *Chip) String() string { return c.desc.Name.String() }

// Features returns the features of the chip, in backend order.
func (c *Chip) Features() ([]*Feature, error) {
	if err := c.r.alive(); err != nil {
		return nil, err
	}
	return append([]*Feature(nil), c.features...), nil
}

// Label returns the label of a feature of this chip: the label from the
// configuration or the chip if there is one, otherwise the feature name.
func (c *Chip) Label(f *Feature) (string, error) {
	if err := c.r.alive(); err != nil {
		return "", err
	}
	if f.chip != c {
		return "", fmt.Errorf("%w: %s is not on %s", ErrForeignFeature, f.Name(), c)
	}
	if f.desc.Label != "" {
		return f.desc.Label, nil
	}
	return f.desc.Name, nil
}

func (c *Chip) subfeatureNamed(name string) *Subfeature {
	for _, f := range c.features {
		for _, s := range f.subfeatures {
			if s.desc.Name == name {
				return s
			}
		}
	}
	return nil
}

func (c *Chip) featureNamed(name string) *Feature {
	for _, f := range c.features {
		if f.desc.Name == name {
			return f
		}
	}
	return nil
}

// apply evaluates a set statement and writes the result.
func (c *Chip) apply(s config.Set) error {
	sf := c.subfeatureNamed(s.Subfeature)
	if sf == nil {
		return fmt.Errorf("sensors: no subfeature %s on %s", s.Subfeature, c)
	}
	v, err := s.Value.Eval(config.Env{Lookup: func(name string) (float64, error) {
		f := c.featureNamed(name)
		if f == nil {
			return 0, fmt.Errorf("sensors: no feature %s on %s", name, c)
		}
		main, ok, err := f.Subfeature(f.Type().Main())
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("sensors: feature %s has no %s", name, f.Type().Main())
		}
		return main.Read()
	}})
	if err != nil {
		return err
	}
	return sf.Write(v)
}

// Chip returns the chip the feature belongs to.
func (f *Feature) Chip() *Chip { return f.chip }

// Name returns the backend name of the feature, e.g. "temp1".
func (f *Feature) Name() string { return f.desc.Name }

// Type returns the type of the feature.
func (f *Feature) Type() feature.Type { return f.desc.Type }

// Index distinguishes features of the same type on a chip, from 0.
func (f *Feature) Index() int { return f.desc.Index }

// Number returns the position of the feature in the chip, from 0.
func (f *Feature) Number() int { return f.desc.Number }

func (f *Feature) String() string { return f.chip.String() + "/" + f.desc.Name }

// Label is shorthand for f.Chip().Label(f).
func (f *Feature) Label() (string, error) { return f.chip.Label(f) }

// Subfeatures returns the subfeatures of the feature, in backend order.
func (f *Feature) Subfeatures() ([]*Subfeature, error) {
	if err := f.chip.r.alive(); err != nil {
		return nil, err
	}
	return append([]*Subfeature(nil), f.subfeatures...), nil
}

// Subfeature returns the subfeature of the given type. ok is false if the
// feature has no such subfeature.
func (f *Feature) Subfeature(t feature.SubfeatureType) (*Subfeature, bool, error) {
	if err := f.chip.r.alive(); err != nil {
		return nil, false, err
	}
	for _, s := range f.subfeatures {
		if s.desc.Type == t {
			return s, true, nil
		}
	}
	return nil, false, nil
}

// Feature returns the feature the subfeature belongs to.
func (s *Subfeature) Feature() *Feature { return s.feature }

// Name returns the backend name of the subfeature, e.g. "temp1_input".
func (s *Subfeature) Name() string { return s.desc.Name }

// Type returns the type of the subfeature.
func (s *Subfeature) Type() feature.SubfeatureType { return s.desc.Type }

// Number returns the position of the subfeature in the chip, from 0.
func (s *Subfeature) Number() int { return s.desc.Number }

// Mapping returns the Number of the feature the subfeature belongs to.
func (s *Subfeature) Mapping() int { return s.desc.Mapping }

// Flags returns the access mode of the subfeature.
func (s *Subfeature) Flags() feature.Flags { return s.desc.Flags }

// Readable returns true if the subfeature can be read.
func (s *Subfeature) Readable() bool { return s.desc.Flags.Readable() }

// Writable returns true if the subfeature can be written.
func (s *Subfeature) Writable() bool { return s.desc.Flags.Writable() }

// Range returns the values accepted by Write.
func (s *Subfeature) Range() backend.Range { return s.desc.Range }

func (s *Subfeature) String() string { return s.feature.chip.String() + "/" + s.desc.Name }

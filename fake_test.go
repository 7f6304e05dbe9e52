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
	"sync"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/feature"
)

// fakeBackend is a scripted backend.Backend.
type fakeBackend struct {
	sync.Mutex
	chips  []backend.Chip
	values map[string]float64
	sets   []config.Set
	// Errors to return from the corresponding methods.
	loadErr, chipsErr, readErr, writeErr, closeErr error
	// Diagnostics reported from Load.
	diags  []string
	loads  int
	closes int
	reads  int
	writes int
}

func key(chip *backend.Chip, sf *backend.Subfeature) string {
	return chip.Name.String() + "/" + sf.Name
}

func (f *fakeBackend) Load(files []config.File, diag config.DiagFunc) error {
	f.Lock()
	defer f.Unlock()
	f.loads++
	for i, d := range f.diags {
		diag(d, "fake.conf", i+1)
	}
	return f.loadErr
}

func (f *fakeBackend) Chips() ([]backend.Chip, error) {
	f.Lock()
	defer f.Unlock()
	if f.chipsErr != nil {
		return nil, f.chipsErr
	}
	return append([]backend.Chip(nil), f.chips...), nil
}

func (f *fakeBackend) Read(chip *backend.Chip, sf *backend.Subfeature) (float64, error) {
	f.Lock()
	defer f.Unlock()
	f.reads++
	if f.readErr != nil {
		return 0, f.readErr
	}
	v, ok := f.values[key(chip, sf)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", backend.ErrNoDevice, key(chip, sf))
	}
	return v, nil
}

func (f *fakeBackend) Write(chip *backend.Chip, sf *backend.Subfeature, v float64) error {
	f.Lock()
	defer f.Unlock()
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.values[key(chip, sf)] = v
	return nil
}

func (f *fakeBackend) Sets(chip *backend.Chip) []config.Set {
	return f.sets
}

func (f *fakeBackend) AdapterName(bus chipname.Bus) (string, bool) {
	if bus.Type == chipname.BusISA {
		return "ISA adapter", true
	}
	return "", false
}

func (f *fakeBackend) Close() error {
	f.Lock()
	defer f.Unlock()
	f.closes++
	return f.closeErr
}

func tempFeature(name string, number int, label string, subs ...backend.Subfeature) backend.Feature {
	f := backend.Feature{Name: name, Type: feature.Temp, Number: number, Index: number, Label: label}
	for i, s := range subs {
		s.Mapping = number
		s.Number = number*10 + i
		f.Subfeatures = append(f.Subfeatures, s)
	}
	return f
}

func ro(name string, t feature.SubfeatureType) backend.Subfeature {
	return backend.Subfeature{Name: name, Type: t, Flags: feature.ModeR}
}

func rw(name string, t feature.SubfeatureType) backend.Subfeature {
	return backend.Subfeature{Name: name, Type: t, Flags: feature.ModeR | feature.ModeW}
}

func newFake() *fakeBackend {
	chip := func(name string, features ...backend.Feature) backend.Chip {
		return backend.Chip{Name: chipname.MustParse(name), Path: "/fake/" + name, Features: features}
	}
	return &fakeBackend{
		chips: []backend.Chip{
			chip("coretemp-isa-0000",
				tempFeature("temp1", 0, "Core 0",
					ro("temp1_input", feature.TempInput),
					rw("temp1_max", feature.TempMax),
					backend.Subfeature{
						Name:  "temp1_max_alarm",
						Type:  feature.TempMaxAlarm,
						Flags: feature.ModeR | feature.ModeW,
						Range: backend.Range{Min: 0, Max: 1},
					},
					backend.Subfeature{Name: "temp1_offset", Type: feature.TempOffset, Flags: feature.ModeW},
				),
				tempFeature("temp2", 1, "",
					ro("temp2_input", feature.TempInput),
				),
			),
			chip("k10temp-pci-00c3", tempFeature("temp1", 0, "Tctl", ro("temp1_input", feature.TempInput))),
			chip("lm78-i2c-0-2d"),
			chip("k10temp-pci-00cb", tempFeature("temp1", 0, "", ro("temp1_input", feature.TempInput))),
		},
		values: map[string]float64{
			"coretemp-isa-0000/temp1_input":     42,
			"coretemp-isa-0000/temp1_max":       80,
			"coretemp-isa-0000/temp1_max_alarm": 0,
			"coretemp-isa-0000/temp2_input":     45,
			"k10temp-pci-00c3/temp1_input":      63.5,
			"k10temp-pci-00cb/temp1_input":      60,
		},
	}
}

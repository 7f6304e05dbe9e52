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

// Package psutil implements a read-only backend that exposes the
// temperature sensors reported by gopsutil. It works on platforms without
// hwmon sysfs, at the cost of thresholds being read-only and alarms
// unavailable.
package psutil // import "github.com/soumya92/sensors/backend/psutil"

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/afero"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/feature"
	l "github.com/soumya92/sensors/logging"
)

const readTimeout = 10 * time.Second

// Backend exposes gopsutil temperature sensors as virtual chips. Sensor
// keys are grouped into chips by the text before their first underscore,
// e.g. "coretemp_core_0" becomes feature "core_0" of chip
// "coretemp-virtual-0".
type Backend struct {
	fs           afero.Fs
	cfg          *config.Config
	temperatures func(context.Context) ([]host.TemperatureStat, error)
}

var _ backend.Backend = (*Backend)(nil)

// New creates a psutil backend. The filesystem is only used to read
// configuration files.
func New(fs afero.Fs) *Backend {
	return &Backend{
		fs:           fs,
		cfg:          &config.Config{},
		temperatures: host.SensorsTemperaturesWithContext,
	}
}

// Load implements backend.Backend. Only label and ignore statements are
// used; compute and set statements have no effect.
func (b *Backend) Load(files []config.File, diag config.DiagFunc) error {
	cfg, err := config.Load(b.fs, files, diag)
	b.cfg = cfg
	return err
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	b.cfg = &config.Config{}
	return nil
}

func (b *Backend) read() ([]host.TemperatureStat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	temps, err := b.temperatures(ctx)
	if err != nil {
		// Some platforms report warnings alongside partial results.
		if len(temps) > 0 {
			l.Fine("%s: partial results: %v", l.ID(b), err)
			return temps, nil
		}
		return nil, fmt.Errorf("%w: %w", backend.ErrIO, err)
	}
	return temps, nil
}

func splitKey(key string) (prefix, label string) {
	prefix, label, found := strings.Cut(key, "_")
	if !found {
		label = key
	}
	if prefix == "" {
		prefix = "psutil"
	}
	return strings.ReplaceAll(prefix, "-", "_"), label
}

// Chips implements backend.Backend.
func (b *Backend) Chips() ([]backend.Chip, error) {
	temps, err := b.read()
	if err != nil {
		return nil, err
	}
	var chips []backend.Chip
	byPrefix := map[string]int{}
	count := map[string]int{}
	for _, t := range temps {
		prefix, label := splitKey(t.SensorKey)
		idx, ok := byPrefix[prefix]
		if !ok {
			idx = len(chips)
			byPrefix[prefix] = idx
			chips = append(chips, backend.Chip{
				Name: chipname.ChipName{
					Prefix: prefix,
					Bus:    chipname.Bus{Type: chipname.BusVirtual, Nr: chipname.BusNrIgnore},
				},
				Path: prefix,
			})
		}
		chip := &chips[idx]
		count[prefix]++
		name := "temp" + strconv.Itoa(count[prefix])
		cc := b.cfg.ForChip(chip.Name)
		if cc.Ignored(name) {
			continue
		}
		if lbl, ok := cc.Label(name); ok {
			label = lbl
		}
		f := backend.Feature{
			Name:   name,
			Type:   feature.Temp,
			Number: len(chip.Features),
			Index:  len(chip.Features),
			Label:  label,
		}
		sfNumber := 0
		for _, prev := range chip.Features {
			sfNumber += len(prev.Subfeatures)
		}
		add := func(st feature.SubfeatureType) {
			f.Subfeatures = append(f.Subfeatures, backend.Subfeature{
				Name:    t.SensorKey + "_" + st.Suffix(),
				Type:    st,
				Number:  sfNumber,
				Mapping: f.Number,
				Flags:   feature.ModeR,
				Range:   backend.Unbounded,
			})
			sfNumber++
		}
		add(feature.TempInput)
		if t.High != 0 {
			add(feature.TempMax)
		}
		if t.Critical != 0 {
			add(feature.TempCrit)
		}
		chip.Features = append(chip.Features, f)
	}
	return chips, nil
}

// Read implements backend.Backend.
func (b *Backend) Read(chip *backend.Chip, sf *backend.Subfeature) (float64, error) {
	temps, err := b.read()
	if err != nil {
		return 0, err
	}
	key := strings.TrimSuffix(sf.Name, "_"+sf.Type.Suffix())
	for _, t := range temps {
		if t.SensorKey != key {
			continue
		}
		switch sf.Type {
		case feature.TempInput:
			return t.Temperature, nil
		case feature.TempMax:
			return t.High, nil
		case feature.TempCrit:
			return t.Critical, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", backend.ErrNoDevice, sf.Name)
}

// Write implements backend.Backend. All values are read-only.
func (b *Backend) Write(chip *backend.Chip, sf *backend.Subfeature, v float64) error {
	return fmt.Errorf("%w: %s is read-only", backend.ErrInvalid, sf.Name)
}

// Sets implements backend.Backend.
func (b *Backend) Sets(chip *backend.Chip) []config.Set {
	return nil
}

// AdapterName implements backend.Backend.
func (b *Backend) AdapterName(bus chipname.Bus) (string, bool) {
	if bus.Type == chipname.BusVirtual {
		return "Virtual device", true
	}
	return "", false
}

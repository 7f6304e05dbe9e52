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

// Package sysfs implements a backend that reads chips from the Linux hwmon
// class in sysfs (/sys/class/hwmon).
//
// Values are read from attribute files such as temp1_input, scaled from the
// integer units used by the kernel (e.g. millidegrees) to engineering units,
// and then transformed by any compute statement in the configuration.
package sysfs // import "github.com/soumya92/sensors/backend/sysfs"

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/feature"
	l "github.com/soumya92/sensors/logging"
)

// Root is the default sysfs mount point.
const Root = "/sys"

// maxComputeDepth bounds compute expressions that refer to other features.
const maxComputeDepth = 8

// Backend reads hwmon chips from sysfs.
type Backend struct {
	fs   afero.Fs
	root string
	cfg  *config.Config
}

var _ backend.Backend = (*Backend)(nil)

// New creates a sysfs backend that reads from the given filesystem,
// with sysfs mounted at /sys.
func New(fs afero.Fs) *Backend {
	b := &Backend{fs: fs, root: Root, cfg: &config.Config{}}
	l.Label(b, fs.Name())
	return b
}

func (b *Backend) classDir() string {
	return path.Join(b.root, "class", "hwmon")
}

// Load implements backend.Backend.
func (b *Backend) Load(files []config.File, diag config.DiagFunc) error {
	if _, err := b.fs.Stat(b.classDir()); err != nil {
		return fmt.Errorf("sysfs: hwmon class not available: %w", err)
	}
	cfg, err := config.Load(b.fs, files, diag)
	b.cfg = cfg
	return err
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	b.cfg = &config.Config{}
	return nil
}

// Chips implements backend.Backend. Chips are returned in order of their
// hwmon device number.
func (b *Backend) Chips() ([]backend.Chip, error) {
	entries, err := afero.ReadDir(b.fs, b.classDir())
	if err != nil {
		return nil, &backend.FatalError{Proc: "Chips", Err: err}
	}
	type hwmon struct {
		nr  int
		dir string
	}
	var devices []hwmon
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "hwmon") {
			continue
		}
		if nr, ok := atoi(strings.TrimPrefix(e.Name(), "hwmon"), 10); ok {
			devices = append(devices, hwmon{nr, path.Join(b.classDir(), e.Name())})
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].nr < devices[j].nr })
	var chips []backend.Chip
	for _, d := range devices {
		if chip, ok := b.readChip(d.dir); ok {
			chips = append(chips, chip)
		}
	}
	l.Fine("%s: found %d chips", l.ID(b), len(chips))
	return chips, nil
}

func (b *Backend) readChip(dir string) (backend.Chip, bool) {
	chip := backend.Chip{Path: dir}
	prefix, err := afero.ReadFile(b.fs, path.Join(dir, "name"))
	if err != nil {
		l.Fine("%s: no name: %v", dir, err)
		return chip, false
	}
	name := strings.ReplaceAll(strings.TrimSpace(string(prefix)), "-", "_")
	if name == "" {
		l.Fine("%s: empty name", dir)
		return chip, false
	}
	var ok bool
	chip.Name, ok = b.identify(dir, name)
	if !ok {
		return chip, false
	}
	attrs, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		l.Fine("%s: %v", dir, err)
		return chip, false
	}

	type key struct {
		t  feature.Type
		nr int
	}
	byKey := map[key]*backend.Feature{}
	var keys []key
	for _, attr := range attrs {
		t, nr, st, ok := parseAttr(attr.Name())
		if !ok {
			continue
		}
		var flags feature.Flags
		if attr.Mode().Perm()&0444 != 0 {
			flags |= feature.ModeR
		}
		if attr.Mode().Perm()&0222 != 0 {
			flags |= feature.ModeW
		}
		if flags == 0 {
			continue
		}
		if st.Computed() {
			flags |= feature.ComputeMapping
		}
		k := key{t, nr}
		f, ok := byKey[k]
		if !ok {
			f = &backend.Feature{Name: featureName(t, nr), Type: t}
			byKey[k] = f
			keys = append(keys, k)
		}
		rng := backend.Unbounded
		if st.IsBoolean() {
			rng = backend.Range{Min: 0, Max: 1}
		}
		f.Subfeatures = append(f.Subfeatures, backend.Subfeature{
			Name:  attr.Name(),
			Type:  st,
			Flags: flags,
			Range: rng,
		})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].t != keys[j].t {
			return keys[i].t < keys[j].t
		}
		return keys[i].nr < keys[j].nr
	})

	cc := b.cfg.ForChip(chip.Name)
	sfNumber := 0
	index := map[feature.Type]int{}
	for _, k := range keys {
		f := byKey[k]
		if cc.Ignored(f.Name) {
			continue
		}
		f.Number = len(chip.Features)
		f.Index = index[f.Type]
		index[f.Type]++
		if lbl, ok := cc.Label(f.Name); ok {
			f.Label = lbl
		} else if lbl, err := afero.ReadFile(b.fs, path.Join(dir, f.Name+"_label")); err == nil {
			f.Label = strings.TrimSpace(string(lbl))
		}
		sort.Slice(f.Subfeatures, func(i, j int) bool {
			return f.Subfeatures[i].Type < f.Subfeatures[j].Type
		})
		for i := range f.Subfeatures {
			f.Subfeatures[i].Number = sfNumber
			f.Subfeatures[i].Mapping = f.Number
			sfNumber++
		}
		chip.Features = append(chip.Features, *f)
	}
	return chip, true
}

// Read implements backend.Backend.
func (b *Backend) Read(chip *backend.Chip, sf *backend.Subfeature) (float64, error) {
	return b.read(chip, sf, 0)
}

func (b *Backend) read(chip *backend.Chip, sf *backend.Subfeature, depth int) (float64, error) {
	data, err := afero.ReadFile(b.fs, path.Join(chip.Path, sf.Name))
	if err != nil {
		return 0, b.ioError("Read", err, false)
	}
	raw, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil || !finite(raw) {
		return 0, fmt.Errorf("%w: %s: malformed value %q", backend.ErrIO, sf.Name, data)
	}
	v := raw / sf.Type.Scaling()
	comp, ok := b.compute(chip, sf)
	if !ok {
		return v, nil
	}
	v, err = comp.From.Eval(config.Env{Raw: v, HasRaw: true, Lookup: b.lookup(chip, depth)})
	if err != nil {
		return 0, fmt.Errorf("sysfs: computing %s (%s): %w", sf.Name, comp.Location, err)
	}
	if !finite(v) {
		return 0, fmt.Errorf("%w: computing %s (%s): result is %g", backend.ErrInvalid, sf.Name, comp.Location, v)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Write implements backend.Backend.
func (b *Backend) Write(chip *backend.Chip, sf *backend.Subfeature, v float64) error {
	if comp, ok := b.compute(chip, sf); ok {
		var err error
		v, err = comp.To.Eval(config.Env{Raw: v, HasRaw: true, Lookup: b.lookup(chip, 0)})
		if err != nil {
			return fmt.Errorf("sysfs: computing %s (%s): %w", sf.Name, comp.Location, err)
		}
	}
	raw := math.Round(v * sf.Type.Scaling())
	if !finite(raw) {
		return fmt.Errorf("%w: %s: %g", backend.ErrInvalid, sf.Name, v)
	}
	f, err := b.fs.OpenFile(path.Join(chip.Path, sf.Name), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return b.ioError("Write", err, true)
	}
	_, err = f.WriteString(strconv.FormatFloat(raw, 'f', 0, 64))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return b.ioError("Write", err, true)
	}
	l.Fine("%s: wrote %s = %g", l.ID(b), sf.Name, raw)
	return nil
}

// compute returns the compute statement that applies to a subfeature.
func (b *Backend) compute(chip *backend.Chip, sf *backend.Subfeature) (config.Compute, bool) {
	if sf.Flags&feature.ComputeMapping == 0 || sf.Mapping >= len(chip.Features) {
		return config.Compute{}, false
	}
	return b.cfg.ForChip(chip.Name).Compute(chip.Features[sf.Mapping].Name)
}

// lookup resolves references to other features in compute expressions to
// the value of their main subfeature.
func (b *Backend) lookup(chip *backend.Chip, depth int) func(string) (float64, error) {
	return func(name string) (float64, error) {
		if depth >= maxComputeDepth {
			return 0, fmt.Errorf("%w: compute expressions nested too deeply at %s", backend.ErrInvalid, name)
		}
		for i := range chip.Features {
			f := &chip.Features[i]
			if f.Name != name {
				continue
			}
			for j := range f.Subfeatures {
				if f.Subfeatures[j].Type == f.Type.Main() {
					return b.read(chip, &f.Subfeatures[j], depth+1)
				}
			}
		}
		return 0, fmt.Errorf("%w: no feature %q on %s", backend.ErrInvalid, name, chip.Name)
	}
}

// ioError classifies a filesystem error. Errors after sysfs itself has
// disappeared are fatal.
func (b *Backend) ioError(proc string, err error, write bool) error {
	if _, serr := b.fs.Stat(b.classDir()); serr != nil {
		return &backend.FatalError{Proc: proc, Err: serr}
	}
	switch {
	case isNoDevice(err):
		return fmt.Errorf("%w: %w", backend.ErrNoDevice, err)
	case errors.Is(err, os.ErrPermission):
		return err
	case write && isInvalid(err):
		return fmt.Errorf("%w: %w", backend.ErrInvalid, err)
	}
	return fmt.Errorf("%w: %w", backend.ErrIO, err)
}

// Sets implements backend.Backend.
func (b *Backend) Sets(chip *backend.Chip) []config.Set {
	return b.cfg.ForChip(chip.Name).Sets()
}

var adapterNames = map[chipname.BusType]string{
	chipname.BusISA:     "ISA adapter",
	chipname.BusPCI:     "PCI adapter",
	chipname.BusSPI:     "SPI adapter",
	chipname.BusHID:     "HID adapter",
	chipname.BusVirtual: "Virtual device",
	chipname.BusACPI:    "ACPI interface",
}

// AdapterName implements backend.Backend. Names of i2c adapters are read
// from sysfs, falling back to bus statements in the configuration.
func (b *Backend) AdapterName(bus chipname.Bus) (string, bool) {
	if name, ok := adapterNames[bus.Type]; ok {
		return name, true
	}
	if bus.Type != chipname.BusI2C {
		return "", false
	}
	data, err := afero.ReadFile(b.fs,
		path.Join(b.root, "class", "i2c-adapter", fmt.Sprintf("i2c-%d", bus.Nr), "name"))
	if err == nil {
		return strings.TrimSpace(string(data)), true
	}
	return b.cfg.AdapterName(bus)
}

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

package sysfs

import (
	"path"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/feature"
	l "github.com/soumya92/sensors/logging"
)

// identify determines the bus and address of the chip in a hwmon directory
// from its device link. Chips without a device link are virtual. ok is false
// for devices on unsupported buses.
func (b *Backend) identify(dir, prefix string) (name chipname.ChipName, ok bool) {
	name = chipname.ChipName{
		Prefix: prefix,
		Bus:    chipname.Bus{Type: chipname.BusVirtual, Nr: chipname.BusNrIgnore},
	}
	lr, canLink := b.fs.(afero.LinkReader)
	if !canLink {
		return name, true
	}
	dev, err := lr.ReadlinkIfPossible(path.Join(dir, "device"))
	if err != nil {
		return name, true
	}
	subsystem, err := lr.ReadlinkIfPossible(path.Join(dir, "device", "subsystem"))
	if err != nil {
		l.Fine("%s: device without subsystem: %v", dir, err)
		return name, false
	}
	bus, addr, ok := parseDevice(path.Base(subsystem), path.Base(dev))
	if !ok {
		l.Fine("%s: unsupported device %s on %s", dir, path.Base(dev), path.Base(subsystem))
		return name, false
	}
	name.Bus, name.Addr = bus, addr
	return name, true
}

// parseDevice extracts the bus and address from the sysfs name of a device
// on the given subsystem.
func parseDevice(subsystem, dev string) (bus chipname.Bus, addr int, ok bool) {
	bus.Nr = chipname.BusNrIgnore
	switch subsystem {
	case "i2c":
		// <bus>-<addr>, e.g. 0-002d.
		nr, a, found := strings.Cut(dev, "-")
		bus.Type = chipname.BusI2C
		if bus.Nr, ok = atoi(nr, 10); !ok || !found {
			return bus, 0, false
		}
		addr, ok = atoi(a, 16)
	case "spi":
		// spi<bus>.<chipselect>, e.g. spi1.0.
		nr, a, found := strings.Cut(strings.TrimPrefix(dev, "spi"), ".")
		bus.Type = chipname.BusSPI
		if bus.Nr, ok = atoi(nr, 10); !ok || !found {
			return bus, 0, false
		}
		addr, ok = atoi(a, 10)
	case "pci":
		// <domain>:<bus>:<slot>.<function>, e.g. 0000:00:18.3.
		bus.Type = chipname.BusPCI
		parts := strings.FieldsFunc(dev, func(r rune) bool { return r == ':' || r == '.' })
		if len(parts) != 4 {
			return bus, 0, false
		}
		var v [4]int
		for i, p := range parts {
			if v[i], ok = atoi(p, 16); !ok {
				return bus, 0, false
			}
		}
		addr = v[0]<<16 + v[1]<<8 + v[2]<<3 + v[3]
	case "platform", "of_platform":
		// <name>.<id>, where the id is usually the I/O port, e.g. it87.656.
		bus.Type = chipname.BusISA
		addr, ok = suffixNumber(dev, "."), true
	case "acpi":
		// <hid>:<instance>, e.g. ACPI000D:00.
		bus.Type = chipname.BusACPI
		addr, ok = suffixNumber(dev, ":"), true
	case "hid":
		// <bus>:<vendor>:<product>.<id>, e.g. 0003:1B1C:0C10.0001.
		bus.Type = chipname.BusHID
		parts := strings.FieldsFunc(dev, func(r rune) bool { return r == ':' || r == '.' })
		if len(parts) != 4 {
			return bus, 0, false
		}
		if bus.Nr, ok = atoi(parts[0], 16); !ok {
			return bus, 0, false
		}
		addr, ok = atoi(parts[3], 16)
	default:
		return bus, 0, false
	}
	return bus, addr, ok
}

// suffixNumber returns the decimal number following the last sep in s,
// or 0 if s has no such suffix.
func suffixNumber(s, sep string) int {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return 0
	}
	n, _ := atoi(s[i+len(sep):], 10)
	return n
}

func atoi(s string, base int) (int, bool) {
	n, err := strconv.ParseUint(s, base, 32)
	return int(n), err == nil
}

// parseAttr splits a hwmon attribute name such as "temp1_max" into its
// feature type, feature number and subfeature type.
func parseAttr(name string) (t feature.Type, nr int, st feature.SubfeatureType, ok bool) {
	if name == feature.BeepEnable.Prefix() {
		return feature.BeepEnable, 0, feature.BeepEnableValue, true
	}
	i := strings.IndexFunc(name, func(r rune) bool { return '0' <= r && r <= '9' })
	if i <= 0 {
		return
	}
	j := i
	for j < len(name) && '0' <= name[j] && name[j] <= '9' {
		j++
	}
	if j == len(name) || name[j] != '_' {
		return
	}
	if t, ok = feature.TypeByPrefix(name[:i]); !ok {
		return
	}
	if nr, ok = atoi(name[i:j], 10); !ok {
		return
	}
	st, ok = feature.SubfeatureBySuffix(t, name[j+1:])
	return
}

// featureName returns the name of a feature as used in attribute names and
// configuration files, e.g. "temp1" or "cpu0_vid".
func featureName(t feature.Type, nr int) string {
	switch t {
	case feature.VID:
		return t.Prefix() + strconv.Itoa(nr) + "_vid"
	case feature.BeepEnable:
		return t.Prefix()
	}
	return t.Prefix() + strconv.Itoa(nr)
}

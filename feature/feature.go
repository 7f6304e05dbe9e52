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

// Package feature defines the kinds of measurements a chip can expose
// (features), the individual values within each of them (subfeatures),
// and the hwmon sysfs naming and scaling conventions that go with them.
package feature // import "github.com/soumya92/sensors/feature"

import (
	"fmt"
	"math"
)

// Type is the kind of a feature.
type Type int

// Feature types. The numeric values match libsensors.
const (
	In         Type = 0x00
	Fan        Type = 0x01
	Temp       Type = 0x02
	Power      Type = 0x03
	Energy     Type = 0x04
	Curr       Type = 0x05
	Humidity   Type = 0x06
	VID        Type = 0x10
	Intrusion  Type = 0x11
	BeepEnable Type = 0x18
	Unknown    Type = math.MaxInt32
)

type typeInfo struct {
	name string
	// sysfs attribute prefix, e.g. "temp" for temp1_input.
	prefix  string
	scaling float64
}

var types = map[Type]typeInfo{
	In:         {"IN", "in", 1000},
	Fan:        {"FAN", "fan", 1},
	Temp:       {"TEMP", "temp", 1000},
	Power:      {"POWER", "power", 1000000},
	Energy:     {"ENERGY", "energy", 1000000},
	Curr:       {"CURR", "curr", 1000},
	Humidity:   {"HUMIDITY", "humidity", 1000},
	VID:        {"VID", "cpu", 1000},
	Intrusion:  {"INTRUSION", "intrusion", 1},
	BeepEnable: {"BEEP_ENABLE", "beep_enable", 1},
	Unknown:    {"UNKNOWN", "", 1},
}

// Types returns all known feature types except Unknown, in sort order.
func Types() []Type {
	return []Type{In, Fan, Temp, Power, Energy, Curr, Humidity, VID, Intrusion, BeepEnable}
}

func (t Type) String() string {
	if info, ok := types[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Prefix returns the sysfs attribute prefix for features of this type,
// e.g. "in", "fan", "temp". For VID features the prefix is "cpu", as in
// "cpu0_vid".
func (t Type) Prefix() string {
	return types[t].prefix
}

// Valid returns true if t is a known feature type (including Unknown).
func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// Main returns the subfeature that represents the primary value of
// a feature of this type, e.g. TempInput for Temp.
func (t Type) Main() SubfeatureType {
	switch t {
	case Power:
		return PowerAverage
	case Intrusion:
		return IntrusionAlarm
	case Unknown:
		return SubfeatureUnknown
	}
	return SubfeatureType(int(t) << 8)
}

// TypeByPrefix returns the feature type for a sysfs attribute prefix.
func TypeByPrefix(prefix string) (Type, bool) {
	for _, t := range Types() {
		if types[t].prefix == prefix {
			return t, true
		}
	}
	return Unknown, false
}

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

// Package format renders subfeature values for display, and converts them
// to typed quantities from github.com/martinlindhe/unit.
package format // import "github.com/soumya92/sensors/format"

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/martinlindhe/unit"

	"github.com/soumya92/sensors/feature"
)

// Temperature converts a value read from a temperature subfeature.
func Temperature(v float64) unit.Temperature { return unit.FromCelsius(v) }

// Voltage converts a value read from an in or vid subfeature.
func Voltage(v float64) unit.Voltage { return unit.Voltage(v) * unit.Volt }

// Current converts a value read from a curr subfeature.
func Current(v float64) unit.ElectricCurrent {
	return unit.ElectricCurrent(v) * unit.Ampere
}

// Formatter renders subfeature values the way sensors(1) does.
type Formatter struct {
	// Fahrenheit shows temperatures in degrees Fahrenheit.
	Fahrenheit bool
}

// Reading formats v using the default Formatter.
func Reading(t feature.SubfeatureType, v float64) string {
	return Formatter{}.Reading(t, v)
}

// Reading formats a value read from a subfeature of type t.
func (f Formatter) Reading(t feature.SubfeatureType, v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	if t.IsBoolean() {
		return flag(t, v)
	}
	switch t {
	case feature.FanDiv, feature.FanPulses, feature.TempType:
		return fmt.Sprintf("%g", v)
	case feature.PowerAverageInterval:
		return fmt.Sprintf("%.1f s", v)
	}
	switch t.Feature() {
	case feature.In:
		if small(v) {
			return fmt.Sprintf("%+.0f mV", Voltage(v).Millivolts())
		}
		return fmt.Sprintf("%+.2f V", Voltage(v).Volts())
	case feature.VID:
		return fmt.Sprintf("%+.3f V", Voltage(v).Volts())
	case feature.Fan:
		return fmt.Sprintf("%.0f RPM", v)
	case feature.Temp:
		if f.Fahrenheit {
			return fmt.Sprintf("%+.1f°F", Temperature(v).Fahrenheit())
		}
		return fmt.Sprintf("%+.1f°C", Temperature(v).Celsius())
	case feature.Power:
		return humanize.SIWithDigits(v, 2, "W")
	case feature.Energy:
		return humanize.SIWithDigits(v, 2, "J")
	case feature.Curr:
		if small(v) {
			return fmt.Sprintf("%+.0f mA", Current(v).Milliamperes())
		}
		return fmt.Sprintf("%+.2f A", Current(v).Amperes())
	case feature.Humidity:
		return fmt.Sprintf("%.1f %%RH", v)
	}
	return fmt.Sprintf("%g", v)
}

// small values of in and curr readings are shown in milli-units.
func small(v float64) bool {
	return v != 0 && math.Abs(v) < 1
}

func flag(t feature.SubfeatureType, v float64) string {
	on := v != 0
	switch t {
	case feature.BeepEnableValue:
		if on {
			return "enabled"
		}
		return "disabled"
	case feature.FanFault, feature.TempFault:
		if on {
			return "FAULT"
		}
	default:
		if on {
			return "ALARM"
		}
	}
	return "ok"
}

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

package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soumya92/sensors/feature"
)

func TestReading(t *testing.T) {
	for _, tc := range []struct {
		typ      feature.SubfeatureType
		value    float64
		expected string
	}{
		{feature.TempInput, 42, "+42.0°C"},
		{feature.TempMax, -5, "-5.0°C"},
		{feature.TempOffset, 1.5, "+1.5°C"},
		{feature.InInput, 1.2, "+1.20 V"},
		{feature.InInput, 0.85, "+850 mV"},
		{feature.InMin, 0, "+0.00 V"},
		{feature.InInput, -1.5, "-1.50 V"},
		{feature.VIDValue, 1.1, "+1.100 V"},
		{feature.FanInput, 1200.4, "1200 RPM"},
		{feature.FanDiv, 8, "8"},
		{feature.TempType, 4, "4"},
		{feature.PowerAverage, 12.25, "12.25 W"},
		{feature.PowerInput, 1250, "1.25 kW"},
		{feature.PowerAverageInterval, 1, "1.0 s"},
		{feature.EnergyInput, 3600, "3.6 kJ"},
		{feature.EnergyInput, 12.25, "12.25 J"},
		{feature.CurrInput, 0.5, "+500 mA"},
		{feature.CurrInput, 2.5, "+2.50 A"},
		{feature.HumidityInput, 45, "45.0 %RH"},
		{feature.TempCritAlarm, 1, "ALARM"},
		{feature.TempCritAlarm, 0, "ok"},
		{feature.FanFault, 1, "FAULT"},
		{feature.FanFault, 0, "ok"},
		{feature.IntrusionAlarm, 1, "ALARM"},
		{feature.BeepEnableValue, 1, "enabled"},
		{feature.BeepEnableValue, 0, "disabled"},
		{feature.TempInput, math.NaN(), "N/A"},
	} {
		assert.Equal(t, tc.expected, Reading(tc.typ, tc.value), "%s = %g", tc.typ, tc.value)
	}
}

func TestFahrenheit(t *testing.T) {
	f := Formatter{Fahrenheit: true}
	assert.Equal(t, "+107.6°F", f.Reading(feature.TempInput, 42))
	assert.Equal(t, "+32.0°F", f.Reading(feature.TempMax, 0))
	assert.Equal(t, "+1.20 V", f.Reading(feature.InInput, 1.2), "only temperatures change")
}

func TestQuantities(t *testing.T) {
	assert.InDelta(t, 315.15, Temperature(42).Kelvin(), 1e-9)
	assert.InDelta(t, 1200, Voltage(1.2).Millivolts(), 1e-9)
	assert.InDelta(t, 500, Current(0.5).Milliamperes(), 1e-9)
}

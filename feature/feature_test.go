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

package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibsensorsValues(t *testing.T) {
	// Spot checks against the libsensors ABI.
	assert.Equal(t, 0x000, int(InInput))
	assert.Equal(t, 0x007, int(InHighest))
	assert.Equal(t, 0x080, int(InAlarm))
	assert.Equal(t, 0x085, int(InCritAlarm))
	assert.Equal(t, 0x182, int(FanDiv))
	assert.Equal(t, 0x200, int(TempInput))
	assert.Equal(t, 0x204, int(TempCrit))
	assert.Equal(t, 0x283, int(TempCritAlarm))
	assert.Equal(t, 0x289, int(TempLcritAlarm))
	assert.Equal(t, 0x303, int(PowerInput))
	assert.Equal(t, 0x380, int(PowerAverageInterval))
	assert.Equal(t, 0x400, int(EnergyInput))
	assert.Equal(t, 0x585, int(CurrCritAlarm))
	assert.Equal(t, 0x600, int(HumidityInput))
	assert.Equal(t, 0x1000, int(VIDValue))
	assert.Equal(t, 0x1101, int(IntrusionBeep))
	assert.Equal(t, 0x1800, int(BeepEnableValue))
}

func TestSubfeatureOwnership(t *testing.T) {
	total := 0
	for _, ft := range Types() {
		subs := SubfeatureTypes(ft)
		require.NotEmpty(t, subs, "%s has subfeatures", ft)
		for i, s := range subs {
			assert.Equal(t, ft, s.Feature(), "%s belongs to %s", s, ft)
			if i > 0 {
				assert.Less(t, int(subs[i-1]), int(s), "sorted")
			}
			got, ok := SubfeatureBySuffix(ft, s.Suffix())
			assert.True(t, ok)
			assert.Equal(t, s, got, "lookup by suffix %q", s.Suffix())
		}
		total += len(subs)
	}
	assert.Greater(t, total, 70)
	assert.Equal(t, Unknown, SubfeatureUnknown.Feature())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "TEMP_CRIT_ALARM", TempCritAlarm.String())
	assert.Equal(t, "POWER_AVERAGE_HIGHEST", PowerAverageHighest.String())
	assert.Equal(t, "FAN_FAULT", FanFault.String())
	assert.Equal(t, "SubfeatureType(12345)", SubfeatureType(12345).String())
	assert.Equal(t, "TEMP", Temp.String())
	assert.Equal(t, "BEEP_ENABLE", BeepEnable.String())
	assert.Equal(t, "Type(99)", Type(99).String())
	assert.False(t, Type(99).Valid())
	assert.True(t, Unknown.Valid())
	assert.False(t, SubfeatureType(12345).Valid())
}

func TestPrefixes(t *testing.T) {
	for _, tc := range []struct {
		typ    Type
		prefix string
	}{
		{In, "in"}, {Fan, "fan"}, {Temp, "temp"}, {Power, "power"},
		{Energy, "energy"}, {Curr, "curr"}, {Humidity, "humidity"},
		{VID, "cpu"}, {Intrusion, "intrusion"}, {BeepEnable, "beep_enable"},
	} {
		assert.Equal(t, tc.prefix, tc.typ.Prefix())
		typ, ok := TypeByPrefix(tc.prefix)
		assert.True(t, ok)
		assert.Equal(t, tc.typ, typ)
	}
	_, ok := TypeByPrefix("pwm")
	assert.False(t, ok)
}

func TestComputedAndBoolean(t *testing.T) {
	assert.True(t, TempInput.Computed())
	assert.True(t, TempMax.Computed())
	assert.False(t, TempCritAlarm.Computed())
	assert.False(t, FanDiv.Computed())
	assert.False(t, SubfeatureUnknown.Computed())
	assert.False(t, BeepEnableValue.Computed())
	assert.True(t, VIDValue.Computed())

	assert.True(t, TempCritAlarm.IsBoolean())
	assert.True(t, FanFault.IsBoolean())
	assert.True(t, IntrusionAlarm.IsBoolean())
	assert.True(t, BeepEnableValue.IsBoolean())
	assert.False(t, FanDiv.IsBoolean())
	assert.False(t, TempType.IsBoolean())
	assert.False(t, TempInput.IsBoolean())
	assert.False(t, PowerAverageInterval.IsBoolean())

	assert.True(t, TempCritAlarm.IsAlarm())
	assert.True(t, InMaxAlarm.IsAlarm())
	assert.True(t, IntrusionAlarm.IsAlarm())
	assert.False(t, FanFault.IsAlarm())
	assert.False(t, IntrusionBeep.IsAlarm())
	assert.False(t, TempInput.IsAlarm())
	assert.False(t, SubfeatureUnknown.IsAlarm())
}

func TestScaling(t *testing.T) {
	for _, tc := range []struct {
		sub     SubfeatureType
		scaling float64
	}{
		{InInput, 1000},
		{InMaxAlarm, 1},
		{FanInput, 1},
		{FanDiv, 1},
		{TempInput, 1000},
		{TempOffset, 1000},
		{TempType, 1},
		{TempCritAlarm, 1},
		{PowerInput, 1e6},
		{PowerAverageInterval, 1000},
		{EnergyInput, 1e6},
		{CurrInput, 1000},
		{HumidityInput, 1000},
		{VIDValue, 1000},
		{IntrusionAlarm, 1},
		{BeepEnableValue, 1},
	} {
		assert.Equal(t, tc.scaling, tc.sub.Scaling(), "%s", tc.sub)
	}
}

func TestMainSubfeature(t *testing.T) {
	assert.Equal(t, TempInput, Temp.Main())
	assert.Equal(t, InInput, In.Main())
	assert.Equal(t, FanInput, Fan.Main())
	assert.Equal(t, PowerAverage, Power.Main())
	assert.Equal(t, IntrusionAlarm, Intrusion.Main())
	assert.Equal(t, VIDValue, VID.Main())
	assert.Equal(t, BeepEnableValue, BeepEnable.Main())
}

func TestFlags(t *testing.T) {
	assert.True(t, ModeR.Readable())
	assert.False(t, ModeR.Writable())
	rw := ModeR | ModeW
	assert.True(t, rw.Writable())
	assert.Equal(t, "r-", ModeR.String())
	assert.Equal(t, "rwc", (rw | ComputeMapping).String())
	assert.Equal(t, "--", Flags(0).String())
}

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
	"fmt"
	"math"
	"sort"
	"strings"
)

// SubfeatureType is the kind of a subfeature. It encodes the owning
// feature type in the upper bits, and sets bit 0x80 for values that are
// not subject to compute statements (alarms, beeps, faults, etc.).
type SubfeatureType int

const nonComputed = 0x80

// Subfeature types. The numeric values match libsensors.
const (
	InInput SubfeatureType = SubfeatureType(In)<<8 + iota
	InMin
	InMax
	InLcrit
	InCrit
	InAverage
	InLowest
	InHighest
)

const (
	InAlarm SubfeatureType = SubfeatureType(In)<<8 | nonComputed + iota
	InMinAlarm
	InMaxAlarm
	InBeep
	InLcritAlarm
	InCritAlarm
)

const (
	FanInput SubfeatureType = SubfeatureType(Fan)<<8 + iota
	FanMin
	FanMax
)

const (
	FanAlarm SubfeatureType = SubfeatureType(Fan)<<8 | nonComputed + iota
	FanFault
	FanDiv
	FanBeep
	FanPulses
	FanMinAlarm
	FanMaxAlarm
)

const (
	TempInput SubfeatureType = SubfeatureType(Temp)<<8 + iota
	TempMax
	TempMaxHyst
	TempMin
	TempCrit
	TempCritHyst
	TempLcrit
	TempEmergency
	TempEmergencyHyst
	TempLowest
	TempHighest
	TempMinHyst
	TempLcritHyst
)

const (
	TempAlarm SubfeatureType = SubfeatureType(Temp)<<8 | nonComputed + iota
	TempMaxAlarm
	TempMinAlarm
	TempCritAlarm
	TempFault
	TempType
	TempOffset
	TempBeep
	TempEmergencyAlarm
	TempLcritAlarm
)

const (
	PowerAverage SubfeatureType = SubfeatureType(Power)<<8 + iota
	PowerAverageHighest
	PowerAverageLowest
	PowerInput
	PowerInputHighest
	PowerInputLowest
	PowerCap
	PowerCapHyst
	PowerMax
	PowerCrit
	PowerMin
	PowerLcrit
)

const (
	PowerAverageInterval SubfeatureType = SubfeatureType(Power)<<8 | nonComputed + iota
	PowerAlarm
	PowerCapAlarm
	PowerMaxAlarm
	PowerCritAlarm
	PowerMinAlarm
	PowerLcritAlarm
)

const (
	EnergyInput SubfeatureType = SubfeatureType(Energy) << 8
)

const (
	CurrInput SubfeatureType = SubfeatureType(Curr)<<8 + iota
	CurrMin
	CurrMax
	CurrLcrit
	CurrCrit
	CurrAverage
	CurrLowest
	CurrHighest
)

const (
	CurrAlarm SubfeatureType = SubfeatureType(Curr)<<8 | nonComputed + iota
	CurrMinAlarm
	CurrMaxAlarm
	CurrBeep
	CurrLcritAlarm
	CurrCritAlarm
)

const (
	HumidityInput SubfeatureType = SubfeatureType(Humidity) << 8
	VIDValue      SubfeatureType = SubfeatureType(VID) << 8
)

const (
	IntrusionAlarm SubfeatureType = SubfeatureType(Intrusion)<<8 + iota
	IntrusionBeep
)

const (
	BeepEnableValue   SubfeatureType = SubfeatureType(BeepEnable) << 8
	SubfeatureUnknown SubfeatureType = math.MaxInt32
)

type subfeatureInfo struct {
	name string
	// sysfs attribute suffix, e.g. "crit_alarm" for temp1_crit_alarm.
	suffix string
}

var subfeatures = map[SubfeatureType]subfeatureInfo{
	InInput:      {"IN_INPUT", "input"},
	InMin:        {"IN_MIN", "min"},
	InMax:        {"IN_MAX", "max"},
	InLcrit:      {"IN_LCRIT", "lcrit"},
	InCrit:       {"IN_CRIT", "crit"},
	InAverage:    {"IN_AVERAGE", "average"},
	InLowest:     {"IN_LOWEST", "lowest"},
	InHighest:    {"IN_HIGHEST", "highest"},
	InAlarm:      {"IN_ALARM", "alarm"},
	InMinAlarm:   {"IN_MIN_ALARM", "min_alarm"},
	InMaxAlarm:   {"IN_MAX_ALARM", "max_alarm"},
	InBeep:       {"IN_BEEP", "beep"},
	InLcritAlarm: {"IN_LCRIT_ALARM", "lcrit_alarm"},
	InCritAlarm:  {"IN_CRIT_ALARM", "crit_alarm"},

	FanInput:    {"FAN_INPUT", "input"},
	FanMin:      {"FAN_MIN", "min"},
	FanMax:      {"FAN_MAX", "max"},
	FanAlarm:    {"FAN_ALARM", "alarm"},
	FanFault:    {"FAN_FAULT", "fault"},
	FanDiv:      {"FAN_DIV", "div"},
	FanBeep:     {"FAN_BEEP", "beep"},
	FanPulses:   {"FAN_PULSES", "pulses"},
	FanMinAlarm: {"FAN_MIN_ALARM", "min_alarm"},
	FanMaxAlarm: {"FAN_MAX_ALARM", "max_alarm"},

	TempInput:          {"TEMP_INPUT", "input"},
	TempMax:            {"TEMP_MAX", "max"},
	TempMaxHyst:        {"TEMP_MAX_HYST", "max_hyst"},
	TempMin:            {"TEMP_MIN", "min"},
	TempCrit:           {"TEMP_CRIT", "crit"},
	TempCritHyst:       {"TEMP_CRIT_HYST", "crit_hyst"},
	TempLcrit:          {"TEMP_LCRIT", "lcrit"},
	TempEmergency:      {"TEMP_EMERGENCY", "emergency"},
	TempEmergencyHyst:  {"TEMP_EMERGENCY_HYST", "emergency_hyst"},
	TempLowest:         {"TEMP_LOWEST", "lowest"},
	TempHighest:        {"TEMP_HIGHEST", "highest"},
	TempMinHyst:        {"TEMP_MIN_HYST", "min_hyst"},
	TempLcritHyst:      {"TEMP_LCRIT_HYST", "lcrit_hyst"},
	TempAlarm:          {"TEMP_ALARM", "alarm"},
	TempMaxAlarm:       {"TEMP_MAX_ALARM", "max_alarm"},
	TempMinAlarm:       {"TEMP_MIN_ALARM", "min_alarm"},
	TempCritAlarm:      {"TEMP_CRIT_ALARM", "crit_alarm"},
	TempFault:          {"TEMP_FAULT", "fault"},
	TempType:           {"TEMP_TYPE", "type"},
	TempOffset:         {"TEMP_OFFSET", "offset"},
	TempBeep:           {"TEMP_BEEP", "beep"},
	TempEmergencyAlarm: {"TEMP_EMERGENCY_ALARM", "emergency_alarm"},
	TempLcritAlarm:     {"TEMP_LCRIT_ALARM", "lcrit_alarm"},

	PowerAverage:         {"POWER_AVERAGE", "average"},
	PowerAverageHighest:  {"POWER_AVERAGE_HIGHEST", "average_highest"},
	PowerAverageLowest:   {"POWER_AVERAGE_LOWEST", "average_lowest"},
	PowerInput:           {"POWER_INPUT", "input"},
	PowerInputHighest:    {"POWER_INPUT_HIGHEST", "input_highest"},
	PowerInputLowest:     {"POWER_INPUT_LOWEST", "input_lowest"},
	PowerCap:             {"POWER_CAP", "cap"},
	PowerCapHyst:         {"POWER_CAP_HYST", "cap_hyst"},
	PowerMax:             {"POWER_MAX", "max"},
	PowerCrit:            {"POWER_CRIT", "crit"},
	PowerMin:             {"POWER_MIN", "min"},
	PowerLcrit:           {"POWER_LCRIT", "lcrit"},
	PowerAverageInterval: {"POWER_AVERAGE_INTERVAL", "average_interval"},
	PowerAlarm:           {"POWER_ALARM", "alarm"},
	PowerCapAlarm:        {"POWER_CAP_ALARM", "cap_alarm"},
	PowerMaxAlarm:        {"POWER_MAX_ALARM", "max_alarm"},
	PowerCritAlarm:       {"POWER_CRIT_ALARM", "crit_alarm"},
	PowerMinAlarm:        {"POWER_MIN_ALARM", "min_alarm"},
	PowerLcritAlarm:      {"POWER_LCRIT_ALARM", "lcrit_alarm"},

	EnergyInput: {"ENERGY_INPUT", "input"},

	CurrInput:      {"CURR_INPUT", "input"},
	CurrMin:        {"CURR_MIN", "min"},
	CurrMax:        {"CURR_MAX", "max"},
	CurrLcrit:      {"CURR_LCRIT", "lcrit"},
	CurrCrit:       {"CURR_CRIT", "crit"},
	CurrAverage:    {"CURR_AVERAGE", "average"},
	CurrLowest:     {"CURR_LOWEST", "lowest"},
	CurrHighest:    {"CURR_HIGHEST", "highest"},
	CurrAlarm:      {"CURR_ALARM", "alarm"},
	CurrMinAlarm:   {"CURR_MIN_ALARM", "min_alarm"},
	CurrMaxAlarm:   {"CURR_MAX_ALARM", "max_alarm"},
	CurrBeep:       {"CURR_BEEP", "beep"},
	CurrLcritAlarm: {"CURR_LCRIT_ALARM", "lcrit_alarm"},
	CurrCritAlarm:  {"CURR_CRIT_ALARM", "crit_alarm"},

	HumidityInput: {"HUMIDITY_INPUT", "input"},

	VIDValue: {"VID", "vid"},

	IntrusionAlarm: {"INTRUSION_ALARM", "alarm"},
	IntrusionBeep:  {"INTRUSION_BEEP", "beep"},

	BeepEnableValue: {"BEEP_ENABLE", ""},

	SubfeatureUnknown: {"UNKNOWN", ""},
}

var sortedSubfeatures []SubfeatureType

func init() {
	for t := range subfeatures {
		if t != SubfeatureUnknown {
			sortedSubfeatures = append(sortedSubfeatures, t)
		}
	}
	sort.Slice(sortedSubfeatures, func(i, j int) bool {
		return sortedSubfeatures[i] < sortedSubfeatures[j]
	})
}

// SubfeatureTypes returns all subfeature types of the given feature type,
// in numeric order. This is also the order in which subfeatures of a
// feature are enumerated.
func SubfeatureTypes(t Type) []SubfeatureType {
	var res []SubfeatureType
	for _, s := range sortedSubfeatures {
		if s.Feature() == t {
			res = append(res, s)
		}
	}
	return res
}

func (s SubfeatureType) String() string {
	if info, ok := subfeatures[s]; ok {
		return info.name
	}
	return fmt.Sprintf("SubfeatureType(%d)", int(s))
}

// Valid returns true if s is a known subfeature type.
func (s SubfeatureType) Valid() bool {
	_, ok := subfeatures[s]
	return ok
}

// Feature returns the type of feature this subfeature belongs to.
func (s SubfeatureType) Feature() Type {
	if s == SubfeatureUnknown {
		return Unknown
	}
	return Type(int(s) >> 8)
}

// Suffix returns the sysfs attribute suffix, e.g. "crit_alarm".
// Subfeatures that are the whole attribute (beep_enable) have no suffix.
func (s SubfeatureType) Suffix() string {
	return subfeatures[s].suffix
}

// Computed returns true if the value of this subfeature is transformed
// by the compute statement of the owning feature.
func (s SubfeatureType) Computed() bool {
	switch s {
	case SubfeatureUnknown, BeepEnableValue:
		return false
	}
	return int(s)&nonComputed == 0
}

// IsBoolean returns true for subfeatures that only take the values 0 and 1.
func (s SubfeatureType) IsBoolean() bool {
	switch s {
	case BeepEnableValue, IntrusionAlarm, IntrusionBeep:
		return true
	case FanDiv, FanPulses, TempType, TempOffset, PowerAverageInterval:
		return false
	}
	return !s.Computed() && s != SubfeatureUnknown
}

// IsAlarm returns true for alarm subfeatures, such as temp1_crit_alarm
// or intrusion0_alarm.
func (s SubfeatureType) IsAlarm() bool {
	return s.Feature() != Unknown && strings.HasSuffix(s.Suffix(), "alarm")
}

// Scaling returns the factor by which the raw sysfs value is divided
// to obtain the value in engineering units.
func (s SubfeatureType) Scaling() float64 {
	switch s {
	case PowerAverageInterval, TempOffset:
		return 1000
	case FanDiv, FanPulses, TempType:
		return 1
	}
	if s.IsBoolean() {
		return 1
	}
	if info, ok := types[s.Feature()]; ok {
		return info.scaling
	}
	return 1
}

// SubfeatureBySuffix returns the subfeature type owned by t that has the
// given sysfs suffix.
func SubfeatureBySuffix(t Type, suffix string) (SubfeatureType, bool) {
	for _, s := range SubfeatureTypes(t) {
		if subfeatures[s].suffix == suffix {
			return s, true
		}
	}
	return SubfeatureUnknown, false
}

// Flags describe how the value of a subfeature can be accessed.
type Flags uint32

// Subfeature flags. The numeric values match libsensors.
const (
	ModeR          Flags = 1
	ModeW          Flags = 2
	ComputeMapping Flags = 4
)

// Readable returns true if the subfeature can be read.
func (f Flags) Readable() bool { return f&ModeR != 0 }

// Writable returns true if the subfeature can be written.
func (f Flags) Writable() bool { return f&ModeW != 0 }

func (f Flags) String() string {
	s := ""
	if f.Readable() {
		s += "r"
	} else {
		s += "-"
	}
	if f.Writable() {
		s += "w"
	} else {
		s += "-"
	}
	if f&ComputeMapping != 0 {
		s += "c"
	}
	return s
}

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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/feature"
)

type coretemp struct {
	chip                           *Chip
	temp1, temp2                   *Feature
	input, max, alarm, offset, in2 *Subfeature
}

func setupCoretemp(t *testing.T) (*coretemp, *fakeBackend) {
	r, fake := initFake(t)
	chips, err := r.FindChips(chipname.MustParse("coretemp-*"))
	require.NoError(t, err)
	require.Len(t, chips, 1)
	c := &coretemp{chip: chips[0]}
	features, err := c.chip.Features()
	require.NoError(t, err)
	require.Len(t, features, 2)
	c.temp1, c.temp2 = features[0], features[1]
	sub := func(f *Feature, st feature.SubfeatureType) *Subfeature {
		s, ok, err := f.Subfeature(st)
		require.NoError(t, err)
		require.True(t, ok, "%s on %s", st, f)
		return s
	}
	c.input = sub(c.temp1, feature.TempInput)
	c.max = sub(c.temp1, feature.TempMax)
	c.alarm = sub(c.temp1, feature.TempMaxAlarm)
	c.offset = sub(c.temp1, feature.TempOffset)
	c.in2 = sub(c.temp2, feature.TempInput)
	return c, fake
}

func TestRead(t *testing.T) {
	c, fake := setupCoretemp(t)

	v, err := c.input.Read()
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	v, err = c.in2.Read()
	require.NoError(t, err)
	assert.Equal(t, 45.0, v)

	_, err = c.offset.Read()
	assert.True(t, errors.Is(err, ErrNotReadable))
	assert.Equal(t, 2, fake.reads, "unreadable subfeature does not reach the backend")

	fake.readErr = backend.ErrNoDevice
	_, err = c.input.Read()
	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "coretemp-isa-0000", re.Chip.String())
	assert.Equal(t, "temp1_input", re.Subfeature)
	assert.True(t, errors.Is(err, backend.ErrNoDevice))
	assert.Contains(t, err.Error(), "coretemp-isa-0000/temp1_input")
	assert.Equal(t, 12.5, c.input.ReadOrDefault(12.5))
}

func TestReadNonFinite(t *testing.T) {
	c, fake := setupCoretemp(t)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		fake.values["coretemp-isa-0000/temp1_input"] = v
		_, err := c.input.Read()
		var re *ReadError
		require.True(t, errors.As(err, &re), "%g", v)
		assert.True(t, errors.Is(err, backend.ErrIO), "%g", v)
		assert.Equal(t, 40.0, c.input.ReadOrDefault(40), "%g", v)
	}
}

func TestWrite(t *testing.T) {
	c, fake := setupCoretemp(t)

	require.NoError(t, c.max.Write(85))
	assert.Equal(t, 85.0, fake.values["coretemp-isa-0000/temp1_max"])
	v, err := c.max.Read()
	require.NoError(t, err)
	assert.Equal(t, 85.0, v)

	require.NoError(t, c.offset.Write(-2), "write-only subfeature")
	assert.Equal(t, -2.0, fake.values["coretemp-isa-0000/temp1_offset"])
	writes := fake.writes

	err = c.input.Write(50)
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, 50.0, we.Value)
	assert.True(t, errors.Is(err, ErrNotWritable))
	assert.Equal(t, 42.0, fake.values["coretemp-isa-0000/temp1_input"], "value unchanged")

	for _, bad := range []float64{2, -1, math.NaN(), math.Inf(1)} {
		err = c.alarm.Write(bad)
		assert.True(t, errors.Is(err, ErrOutOfRange), "%g", bad)
	}
	assert.True(t, errors.Is(c.max.Write(math.NaN()), ErrOutOfRange), "NaN is never accepted")
	assert.Equal(t, writes, fake.writes, "rejected writes do not reach the backend")
	require.NoError(t, c.alarm.Write(1))

	fake.writeErr = backend.ErrInvalid
	err = c.max.Write(1000)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(err, backend.ErrInvalid))

	fake.writeErr = backend.ErrIO
	err = c.max.Write(70)
	assert.True(t, errors.Is(err, backend.ErrIO))
	assert.False(t, errors.Is(err, ErrOutOfRange))
}

func TestDescriptors(t *testing.T) {
	c, _ := setupCoretemp(t)

	assert.Equal(t, "/fake/coretemp-isa-0000", c.chip.Path())
	assert.Equal(t, "temp1", c.temp1.Name())
	assert.Equal(t, feature.Temp, c.temp1.Type())
	assert.Equal(t, 0, c.temp1.Number())
	assert.Equal(t, 1, c.temp2.Index())
	assert.Same(t, c.chip, c.temp1.Chip())
	assert.Same(t, c.temp1, c.max.Feature())
	assert.Equal(t, "coretemp-isa-0000/temp1", c.temp1.String())
	assert.Equal(t, "coretemp-isa-0000/temp1_max", c.max.String())
	assert.Equal(t, feature.TempMax, c.max.Type())
	assert.Equal(t, 0, c.max.Mapping())
	assert.Equal(t, 1, c.max.Number())
	assert.Equal(t, feature.ModeR|feature.ModeW, c.max.Flags())
	assert.Equal(t, backend.Range{Min: 0, Max: 1}, c.alarm.Range())

	subs, err := c.temp1.Subfeatures()
	require.NoError(t, err)
	require.Len(t, subs, 4)
	assert.Same(t, c.input, subs[0])
	subs[0] = nil
	again, _ := c.temp1.Subfeatures()
	assert.Same(t, c.input, again[0], "snapshot slices")

	crit, ok, err := c.temp1.Subfeature(feature.TempCrit)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, crit)
}

func TestLabels(t *testing.T) {
	c, _ := setupCoretemp(t)

	label, err := c.chip.Label(c.temp1)
	require.NoError(t, err)
	assert.Equal(t, "Core 0", label)
	label, err = c.temp2.Label()
	require.NoError(t, err)
	assert.Equal(t, "temp2", label, "falls back to the feature name")

	k10, err := c.chip.r.FindChips(chipname.MustParse("k10temp-pci-00c3"))
	require.NoError(t, err)
	require.Len(t, k10, 1)
	_, err = k10[0].Label(c.temp1)
	assert.True(t, errors.Is(err, ErrForeignFeature))
}

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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumya92/sensors/backend"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/feature"
)

func captureStderr(t *testing.T) *bytes.Buffer {
	buf := new(bytes.Buffer)
	old := stderr
	stderr = buf
	t.Cleanup(func() { stderr = old })
	return buf
}

func TestFatalErrorSink(t *testing.T) {
	r, fake := initFake(t)
	type call struct{ proc, msg string }
	var calls []call
	defer SetFatalErrorSink(func(proc, msg string) {
		calls = append(calls, call{proc, msg})
	})()

	fake.chipsErr = &backend.FatalError{Proc: "Chips", Err: errors.New("hwmon class vanished")}
	_, err := r.FindChips(chipname.Any())
	assert.True(t, errors.Is(err, ErrFatal))
	var fe *backend.FatalError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, []call{{"Chips", "hwmon class vanished"}}, calls)

	fake.chipsErr = backend.ErrIO
	_, err = r.FindChips(chipname.Any())
	assert.False(t, errors.Is(err, ErrFatal))
	assert.Len(t, calls, 1, "ordinary errors do not reach the sink")
}

func TestWildcardChipIsFatal(t *testing.T) {
	r, fake := initFake(t)
	var procs []string
	defer SetFatalErrorSink(func(proc, msg string) { procs = append(procs, proc) })()

	fake.chips = append(fake.chips, backend.Chip{Name: chipname.MustParse("lm78-i2c-*-2d")})
	chips, err := r.FindChips(chipname.Any())
	assert.True(t, errors.Is(err, ErrFatal))
	assert.Nil(t, chips)
	assert.Equal(t, []string{"FindChips"}, procs)
}

func TestAmbiguousChipIsFatal(t *testing.T) {
	for _, name := range []chipname.ChipName{
		{Prefix: "lm78", Bus: chipname.Bus{Type: chipname.BusI2C, Nr: chipname.BusNrIgnore}, Addr: 0x2d},
		{Prefix: "foo", Bus: chipname.Bus{Type: chipname.BusISA, Nr: 3}, Addr: 0x290},
		{Prefix: "a-b", Bus: chipname.Bus{Type: chipname.BusISA, Nr: chipname.BusNrIgnore}, Addr: 0},
		{Prefix: "lm78", Bus: chipname.Bus{Type: chipname.BusI2C, Nr: 40000}, Addr: 0x2d},
	} {
		r, fake := initFake(t)
		var procs []string
		restore := SetFatalErrorSink(func(proc, msg string) { procs = append(procs, proc) })

		fake.chips = append(fake.chips, backend.Chip{Name: name})
		chips, err := r.FindChips(chipname.Any())
		assert.True(t, errors.Is(err, ErrFatal), "%#v", name)
		assert.True(t, errors.Is(err, chipname.ErrNotConcrete), "%#v", name)
		assert.Nil(t, chips)
		assert.Equal(t, []string{"FindChips"}, procs)
		restore()
		require.NoError(t, r.Shutdown())
	}
}

func TestFatalSinkMayUseRegistry(t *testing.T) {
	r, fake := initFake(t)
	chips, err := r.FindChips(chipname.MustParse("coretemp-*"))
	require.NoError(t, err)
	features, _ := chips[0].Features()
	input, _, _ := features[0].Subfeature(feature.TempInput)

	fake.readErr = &backend.FatalError{Proc: "Read", Err: errors.New("gone")}
	handled := false
	defer SetFatalErrorSink(func(proc, msg string) {
		// Calls back into the registry must not deadlock.
		assert.NoError(t, r.Shutdown())
		handled = true
	})()
	_, err = input.Read()
	assert.True(t, errors.Is(err, ErrFatal))
	assert.True(t, handled)
}

func TestDefaultFatalErrorSink(t *testing.T) {
	buf := captureStderr(t)
	code := -1
	oldExit := osExit
	osExit = func(c int) { code = c }
	defer func() { osExit = oldExit }()

	r, fake := initFake(t)
	fake.chipsErr = &backend.FatalError{Proc: "Chips", Err: errors.New("no hwmon")}
	_, err := r.FindChips(chipname.Any())
	assert.True(t, errors.Is(err, ErrFatal))
	assert.Equal(t, 1, code)
	assert.Equal(t, "sensors: fatal error in Chips: no hwmon\n", buf.String())
}

func TestDefaultParseErrorSink(t *testing.T) {
	buf := captureStderr(t)
	DefaultParseErrorSink("bad", "", 0)
	DefaultParseErrorSink("bad", "/etc/sensors3.conf", 0)
	DefaultParseErrorSink("bad", "/etc/sensors3.conf", 12)
	assert.Equal(t,
		"sensors: parse error: bad\n"+
			"sensors: parse error: bad in file /etc/sensors3.conf\n"+
			"sensors: parse error: bad in file /etc/sensors3.conf, line 12\n",
		buf.String())
}

func TestParseErrorSinkRestore(t *testing.T) {
	buf := captureStderr(t)
	var first, second []string
	restoreFirst := SetParseErrorSink(func(msg, _ string, _ int) { first = append(first, msg) })
	restoreSecond := SetParseErrorSink(func(msg, _ string, _ int) { second = append(second, msg) })

	reportParse("a", "", 0)
	restoreSecond()
	reportParse("b", "", 0)
	restoreFirst()
	reportParse("c", "", 0)

	assert.Equal(t, []string{"a"}, second, "last sink wins")
	assert.Equal(t, []string{"b"}, first, "restore reinstates the previous sink")
	assert.Equal(t, "sensors: parse error: c\n", buf.String(), "default sink")

	defer SetParseErrorSink(nil)()
	reportParse("d", "f.conf", 3)
	assert.Contains(t, buf.String(), "d in file f.conf, line 3", "nil selects the default")
}

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

// Package fakesys provides an in-memory filesystem for testing code that
// reads hwmon sysfs trees. It adds symbolic links and error injection on top
// of afero's MemMapFs.
package fakesys // import "github.com/soumya92/sensors/testing/fakesys"

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/spf13/afero"
)

// HwmonRoot is the directory containing hwmon class devices.
const HwmonRoot = "/sys/class/hwmon"

// Fs is an afero.Fs that also implements afero.LinkReader.
type Fs struct {
	afero.Fs
	mu    sync.Mutex
	links map[string]string
	errs  map[string]error
}

var _ afero.LinkReader = (*Fs)(nil)

// New creates an empty filesystem.
func New() *Fs {
	return &Fs{
		Fs:    afero.NewMemMapFs(),
		links: map[string]string{},
		errs:  map[string]error{},
	}
}

// Symlink records a link at newname pointing to oldname. Links are only
// visible through ReadlinkIfPossible; paths are not resolved through them.
func (f *Fs) Symlink(oldname, newname string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[path.Clean(newname)] = oldname
}

// ReadlinkIfPossible implements afero.LinkReader.
func (f *Fs) ReadlinkIfPossible(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if target, ok := f.links[path.Clean(name)]; ok {
		return target, nil
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: os.ErrNotExist}
}

// FailWith makes any attempt to open the named file return err.
// A nil err removes the failure.
func (f *Fs) FailWith(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, path.Clean(name))
	} else {
		f.errs[path.Clean(name)] = err
	}
}

func (f *Fs) injected(op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[path.Clean(name)]; ok {
		return &os.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

// Open implements afero.Fs.
func (f *Fs) Open(name string) (afero.File, error) {
	if err := f.injected("open", name); err != nil {
		return nil, err
	}
	return f.Fs.Open(name)
}

// OpenFile implements afero.Fs.
func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.injected("open", name); err != nil {
		return nil, err
	}
	return f.Fs.OpenFile(name, flag, perm)
}

// WriteFile writes a file, creating parent directories as needed.
// It panics on failure, which is only possible for injected errors.
func (f *Fs) WriteFile(name, contents string, perm os.FileMode) {
	if err := afero.WriteFile(f.Fs, name, []byte(contents), perm); err != nil {
		panic(err)
	}
}

// ReadFile returns the contents of a file, or "" if it cannot be read.
func (f *Fs) ReadFile(name string) string {
	data, _ := afero.ReadFile(f.Fs, name)
	return string(data)
}

// Chip is a hwmon class device under construction.
type Chip struct {
	fs  *Fs
	dir string
}

// AddChip creates /sys/class/hwmon/hwmon<n> with the given name attribute.
func (f *Fs) AddChip(n int, name string) *Chip {
	c := &Chip{f, fmt.Sprintf("%s/hwmon%d", HwmonRoot, n)}
	f.WriteFile(c.dir+"/name", name+"\n", 0444)
	return c
}

// Dir returns the hwmon directory of the chip.
func (c *Chip) Dir() string { return c.dir }

// Path returns the path to an attribute of the chip.
func (c *Chip) Path(attr string) string { return c.dir + "/" + attr }

// RO adds a read-only attribute.
func (c *Chip) RO(attr, value string) *Chip {
	c.fs.WriteFile(c.Path(attr), value+"\n", 0444)
	return c
}

// RW adds a read-write attribute.
func (c *Chip) RW(attr, value string) *Chip {
	c.fs.WriteFile(c.Path(attr), value+"\n", 0644)
	return c
}

// WO adds a write-only attribute.
func (c *Chip) WO(attr, value string) *Chip {
	c.fs.WriteFile(c.Path(attr), value+"\n", 0200)
	return c
}

// Device links the chip to a device on a bus. The device is given by its
// sysfs directory name, e.g. "0-002d" for i2c or "coretemp.0" for platform
// devices, and the subsystem by its bus name, e.g. "i2c" or "platform".
func (c *Chip) Device(subsystem, device string) *Chip {
	c.fs.Symlink("../../../"+device, c.Path("device"))
	c.fs.Symlink("../../../../bus/"+subsystem, c.Path("device/subsystem"))
	return c
}

// AddI2CAdapter creates /sys/class/i2c-adapter/i2c-<nr>/name.
func (f *Fs) AddI2CAdapter(nr int, name string) {
	f.WriteFile(fmt.Sprintf("/sys/class/i2c-adapter/i2c-%d/name", nr), name+"\n", 0444)
}

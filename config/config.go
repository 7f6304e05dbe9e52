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

// Package config parses lm-sensors configuration files (sensors.conf).
//
// A configuration is a sequence of chip blocks, each starting with a chip
// statement listing the chip name patterns it applies to, followed by
// label, ignore, set and compute statements for features of matching chips:
//
//	chip "lm78-*" "lm79-*"
//	    label in0 "VCore"
//	    compute in3 ((6.8/10)+1)*@, @/((6.8/10)+1)
//	    set in0_min 1.8 * 0.95
//	    ignore fan3
//
// Bus statements, which may appear anywhere, name i2c adapters:
//
//	bus "i2c-0" "SMBus I801 adapter at 0400"
package config // import "github.com/soumya92/sensors/config"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/soumya92/sensors/chipname"
	l "github.com/soumya92/sensors/logging"
)

// ErrParse is wrapped by errors returned when a configuration file
// contains syntax errors.
var ErrParse = errors.New("config: parse error")

// DiagFunc receives diagnostics produced while parsing configuration files.
// The filename is empty and lineno is 0 if the diagnostic is not tied to a
// location.
type DiagFunc func(msg, filename string, lineno int)

// Location is the position of a statement in a configuration file.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Label is a "label <feature> <text>" statement.
type Label struct {
	Feature string
	Text    string
	Location
}

// Ignore is an "ignore <feature>" statement.
type Ignore struct {
	Feature string
	Location
}

// Set is a "set <subfeature> <expr>" statement.
type Set struct {
	Subfeature string
	Value      Expr
	Location
}

// Compute is a "compute <feature> <from>, <to>" statement.
// From converts raw values to user values, To is its inverse.
type Compute struct {
	Feature string
	From    Expr
	To      Expr
	Location
}

// ChipBlock holds the statements following a chip statement.
type ChipBlock struct {
	Patterns []chipname.ChipName
	Labels   []Label
	Ignores  []Ignore
	Sets     []Set
	Computes []Compute
	Location
}

// Bus is a "bus <bus> <adapter>" statement.
type Bus struct {
	Bus     chipname.Bus
	Adapter string
	Location
}

// Config is a parsed configuration.
type Config struct {
	Chips []*ChipBlock
	Buses []Bus
}

// Merge appends the statements of other to c. Statements from other
// take precedence over those already in c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	c.Chips = append(c.Chips, other.Chips...)
	c.Buses = append(c.Buses, other.Buses...)
}

// AdapterName returns the adapter name given by the last bus statement
// for the bus.
func (c *Config) AdapterName(bus chipname.Bus) (string, bool) {
	for i := len(c.Buses) - 1; i >= 0; i-- {
		if c.Buses[i].Bus == bus {
			return c.Buses[i].Adapter, true
		}
	}
	return "", false
}

// File is a configuration file or directory to load.
type File struct {
	Path string
	// Optional files are silently skipped if they do not exist.
	Optional bool
}

// Default configuration locations.
const (
	DefaultFile    = "/etc/sensors3.conf"
	FallbackFile   = "/etc/sensors.conf"
	DefaultConfDir = "/etc/sensors.d"
)

// DefaultFiles returns the configuration files to load when none are
// given explicitly: /etc/sensors3.conf, or /etc/sensors.conf if the former
// does not exist, followed by /etc/sensors.d.
func DefaultFiles(fs afero.Fs) []File {
	main := DefaultFile
	if _, err := fs.Stat(DefaultFile); os.IsNotExist(err) {
		main = FallbackFile
	}
	return []File{{main, true}, {DefaultConfDir, true}}
}

// Load parses and merges the given files. Directories are expanded to the
// *.conf files they contain, in lexical order. All diagnostics are reported
// to diag; the returned error is non-nil if any file could not be read or
// contained syntax errors. The returned Config always holds everything that
// could be parsed.
func Load(fs afero.Fs, files []File, diag DiagFunc) (*Config, error) {
	cfg := &Config{}
	var errs []error
	for _, f := range files {
		paths, err := expand(fs, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, p := range paths {
			file, err := fs.Open(p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			parsed, err := Parse(file, p, diag)
			file.Close()
			cfg.Merge(parsed)
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	l.Fine("loaded %d chip blocks, %d bus statements", len(cfg.Chips), len(cfg.Buses))
	return cfg, errors.Join(errs...)
}

func expand(fs afero.Fs, f File) ([]string, error) {
	info, err := fs.Stat(f.Path)
	if err != nil {
		if f.Optional && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{f.Path}, nil
	}
	entries, err := afero.ReadDir(fs, f.Path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), ".conf") {
			continue
		}
		paths = append(paths, filepath.Join(f.Path, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

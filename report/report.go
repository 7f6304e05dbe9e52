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

// Package report takes a snapshot of the chips in a registry, and writes it
// in the output formats of the sensors(1) command.
package report // import "github.com/soumya92/sensors/report"

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/soumya92/sensors"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/format"
)

// Chip is a snapshot of a chip and all its readable values.
type Chip struct {
	Name     string    `json:"name" yaml:"name"`
	Adapter  string    `json:"adapter,omitempty" yaml:"adapter,omitempty"`
	Path     string    `json:"path" yaml:"path"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature is a snapshot of a feature.
type Feature struct {
	Name        string       `json:"name" yaml:"name"`
	Label       string       `json:"label" yaml:"label"`
	Type        string       `json:"type" yaml:"type"`
	Subfeatures []Subfeature `json:"subfeatures" yaml:"subfeatures"`
}

// Subfeature is a snapshot of a subfeature. Value is nil if the subfeature
// is not readable or could not be read, in which case Error holds the
// reason for the latter.
type Subfeature struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Flags   string   `json:"flags" yaml:"flags"`
	Value   *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Display string   `json:"display,omitempty" yaml:"display,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`

	suffix string
	main   bool
}

// Collect snapshots all chips matching any of the patterns, or all chips
// if no patterns are given. Each chip is included once, in the order the
// registry reports them.
func Collect(r *sensors.Registry, f format.Formatter, patterns ...chipname.ChipName) ([]Chip, error) {
	if len(patterns) == 0 {
		patterns = []chipname.ChipName{chipname.Any()}
	}
	seen := map[string]bool{}
	var out []Chip
	for _, p := range patterns {
		chips, err := r.FindChips(p)
		if err != nil {
			return nil, err
		}
		for _, c := range chips {
			if seen[c.String()] {
				continue
			}
			seen[c.String()] = true
			snap, err := collectChip(r, f, c)
			if err != nil {
				return nil, err
			}
			out = append(out, snap)
		}
	}
	return out, nil
}

func collectChip(r *sensors.Registry, f format.Formatter, c *sensors.Chip) (Chip, error) {
	snap := Chip{Name: c.String(), Path: c.Path()}
	adapter, ok, err := r.AdapterName(c.Name().Bus)
	if err != nil {
		return snap, err
	}
	if ok {
		snap.Adapter = adapter
	}
	features, err := c.Features()
	if err != nil {
		return snap, err
	}
	for _, feat := range features {
		label, err := c.Label(feat)
		if err != nil {
			return snap, err
		}
		fs := Feature{Name: feat.Name(), Label: label, Type: feat.Type().String()}
		subs, err := feat.Subfeatures()
		if err != nil {
			return snap, err
		}
		for _, s := range subs {
			ss := Subfeature{
				Name:   s.Name(),
				Type:   s.Type().String(),
				Flags:  s.Flags().String(),
				suffix: s.Type().Suffix(),
				main:   s.Type() == feat.Type().Main(),
			}
			if s.Readable() {
				if v, err := s.Read(); err != nil {
					ss.Error = err.Error()
				} else {
					ss.Value = &v
					ss.Display = f.Reading(s.Type(), v)
				}
			}
			fs.Subfeatures = append(fs.Subfeatures, ss)
		}
		snap.Features = append(snap.Features, fs)
	}
	return snap, nil
}

// Write writes chips to w in the named format: "text", "raw", "json"
// or "yaml".
func Write(w io.Writer, outputFormat string, chips []Chip) error {
	switch outputFormat {
	case "text":
		return WriteText(w, chips)
	case "raw":
		return WriteRaw(w, chips)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(chips)
	case "yaml":
		out, err := yaml.Marshal(chips)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("report: unknown format %q", outputFormat)
}

// WriteText writes chips the way sensors(1) does: the main value of each
// feature, followed by its other values in parentheses.
func WriteText(w io.Writer, chips []Chip) error {
	ew := &errWriter{w: w}
	for i, c := range chips {
		if i > 0 {
			ew.printf("\n")
		}
		writeHeader(ew, c)
		for _, f := range c.Features {
			main := "N/A"
			var extra []string
			for _, s := range f.Subfeatures {
				val := s.Display
				if s.Value == nil {
					if s.Error == "" {
						continue
					}
					val = "N/A"
				}
				if s.main {
					main = val
				} else {
					extra = append(extra, s.suffix+" = "+val)
				}
			}
			line := fmt.Sprintf("%-14s %s", f.Label+":", main)
			if len(extra) > 0 {
				line += "  (" + strings.Join(extra, ", ") + ")"
			}
			ew.printf("%s\n", line)
		}
	}
	return ew.err
}

// WriteRaw writes chips the way "sensors -u" does, with every readable
// value on its own line.
func WriteRaw(w io.Writer, chips []Chip) error {
	ew := &errWriter{w: w}
	for i, c := range chips {
		if i > 0 {
			ew.printf("\n")
		}
		writeHeader(ew, c)
		for _, f := range c.Features {
			ew.printf("%s:\n", f.Label)
			for _, s := range f.Subfeatures {
				if s.Value != nil {
					ew.printf("  %s: %.3f\n", s.Name, *s.Value)
				}
			}
		}
	}
	return ew.err
}

func writeHeader(ew *errWriter, c Chip) {
	ew.printf("%s\n", c.Name)
	if c.Adapter != "" {
		ew.printf("Adapter: %s\n", c.Adapter)
	}
}

// errWriter keeps the first error from a sequence of writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}

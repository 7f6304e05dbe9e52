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

//go:build !sensorsdebuglog

// Package logging provides debug logging for the sensors packages.
// It uses build tags to provide nop functions in the default case, and
// actual logging functions when built with `-tags sensorsdebuglog`.
//
// Nothing user-visible is ever reported through this package; diagnostics
// meant for callers go through the error sinks in package sensors.
package logging // import "github.com/soumya92/sensors/logging"

import "io"

// SetOutput sets the output stream for logging.
func SetOutput(output io.Writer) {}

// SetFlags sets flags to control logging output.
func SetFlags(flags int) {}

// Log logs a formatted message.
func Log(format string, args ...interface{}) {}

// Fine logs a formatted message if fine logging is enabled for the
// calling package. Enable fine logging using the commandline flag,
// `--finelog=$pkg1,$pkg2`. [Requires debug logging].
func Fine(format string, args ...interface{}) {}

// ID returns a name for the given value of the form 'type'<label>,
// providing log statements with additional context.
func ID(thing interface{}) string { return "" }

// Label adds a label to thing, incorporated as part of its identifier.
// For example, the sysfs backend uses
//	logging.Label(chip, "/sys/class/hwmon/hwmon3")
// which makes its ID sysfs.chip<.../hwmon3>.
func Label(thing interface{}, label string) {}

// Labelf is Label with built-in formatting. Because all logging functions
// are no-ops without sensorsdebuglog, the formatting only happens if debug
// logging is on.
func Labelf(thing interface{}, format string, args ...interface{}) {}

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
	"fmt"
	"io"
	"os"

	"github.com/soumya92/sensors/base/value"
)

// FatalErrorSink is called when the backend reports an unrecoverable
// condition. proc names the failing backend operation.
type FatalErrorSink func(proc, msg string)

// ParseErrorSink is called for each diagnostic produced while parsing
// configuration files. filename is empty and lineno is 0 for diagnostics
// without a location.
type ParseErrorSink func(msg, filename string, lineno int)

var (
	fatalSink value.Value[FatalErrorSink]
	parseSink value.Value[ParseErrorSink]
)

// For tests.
var (
	stderr io.Writer = os.Stderr
	osExit           = os.Exit
)

// SetFatalErrorSink installs a process-wide fatal error sink, replacing the
// current one. A nil sink selects DefaultFatalErrorSink. The returned
// function reinstates the sink that was replaced.
func SetFatalErrorSink(s FatalErrorSink) (restore func()) {
	old := fatalSink.Swap(s)
	return func() { fatalSink.Set(old) }
}

// SetParseErrorSink installs a process-wide parse error sink, replacing the
// current one. A nil sink selects DefaultParseErrorSink. The returned
// function reinstates the sink that was replaced.
func SetParseErrorSink(s ParseErrorSink) (restore func()) {
	old := parseSink.Swap(s)
	return func() { parseSink.Set(old) }
}

// DefaultFatalErrorSink prints the error to stderr and exits the process
// with status 1.
func DefaultFatalErrorSink(proc, msg string) {
	fmt.Fprintf(stderr, "sensors: fatal error in %s: %s\n", proc, msg)
	osExit(1)
}

// DefaultParseErrorSink prints the diagnostic to stderr.
func DefaultParseErrorSink(msg, filename string, lineno int) {
	switch {
	case filename == "":
		fmt.Fprintf(stderr, "sensors: parse error: %s\n", msg)
	case lineno == 0:
		fmt.Fprintf(stderr, "sensors: parse error: %s in file %s\n", msg, filename)
	default:
		fmt.Fprintf(stderr, "sensors: parse error: %s in file %s, line %d\n", msg, filename, lineno)
	}
}

func reportFatal(proc, msg string) {
	s := fatalSink.Get()
	if s == nil {
		s = DefaultFatalErrorSink
	}
	s(proc, msg)
}

func reportParse(msg, filename string, lineno int) {
	s := parseSink.Get()
	if s == nil {
		s = DefaultParseErrorSink
	}
	s(msg, filename, lineno)
}

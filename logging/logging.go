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

//go:build sensorsdebuglog

package logging // import "github.com/soumya92/sensors/logging"

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

func construct() {
	pc, file, _, ok := runtime.Caller(0)
	if !ok {
		return
	}
	fnName := runtime.FuncForPC(pc).Name()
	if pkg, ok := trimSuffix(fnName, "/logging.construct"); ok {
		rootPkg = pkg
		srcRoot, _ = trimSuffix(file, "logging/logging.go")
	}
	logger = log.New(os.Stderr, "", 0)
	SetFlags(log.LstdFlags | log.Lshortfile)
	for _, arg := range os.Args {
		if pkgs, ok := trimPrefix(arg, "--finelog="); ok {
			fineLogPkgs = append(fineLogPkgs, strings.Split(pkgs, ",")...)
		}
		if pkgs, ok := trimPrefix(arg, "-finelog="); ok {
			fineLogPkgs = append(fineLogPkgs, strings.Split(pkgs, ",")...)
		}
	}
}

func init() {
	// runtime.Caller(0) behaves differently in init functions.
	construct()
}

func trimSuffix(s, suffix string) (result string, trimmed bool) {
	return strings.TrimSuffix(s, suffix), strings.HasSuffix(s, suffix)
}

func trimPrefix(s, prefix string) (result string, trimmed bool) {
	return strings.TrimPrefix(s, prefix), strings.HasPrefix(s, prefix)
}

var rootPkg = "#unknown#"
var srcRoot = ""

// shorten shortens a package/function/type for logging. It removes the
// module path from sensors packages, and simplifies receiver syntax, so
// "github.com/soumya92/sensors/backend/sysfs.(*Backend).Read"
// becomes "backend/sysfs.Backend.Read".
func shorten(path string) string {
	path = strings.NewReplacer("*", "", "(", "", ")", "").Replace(path)
	if sub, ok := trimPrefix(path, rootPkg+"/"); ok {
		return sub
	}
	if root, ok := trimPrefix(path, rootPkg+"."); ok {
		return "sensors." + root
	}
	return path
}

var fineLogPkgs = []string{}
var fineLogCache sync.Map

func fineLogEnabled(pkg string) bool {
	if cached, ok := fineLogCache.Load(pkg); ok {
		return cached.(bool)
	}
	enabled := false
	for _, p := range fineLogPkgs {
		if strings.HasPrefix(pkg, p) {
			enabled = true
			break
		}
	}
	fineLogCache.Store(pkg, enabled)
	return enabled
}

// caller returns the calling function's short name and source location.
func caller() (fn string, loc string) {
	pc, file, line, ok := runtime.Caller(2)
	if fFlags := int(atomic.LoadInt64(&fileFlags)); fFlags != 0 {
		file, _ = trimPrefix(file, srcRoot)
		if fFlags&log.Lshortfile != 0 {
			file = filepath.Base(file)
		}
		loc = fmt.Sprintf("%s:%d", file, line)
	}
	if !ok {
		return "unknown", loc
	}
	return shorten(runtime.FuncForPC(pc).Name()), loc
}

var fileFlags int64
var logger *log.Logger

func doLog(fn, loc string, format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if atomic.LoadInt64(&fileFlags) != 0 {
		out = fmt.Sprintf("%s (%s) %s", loc, fn, out)
	}
	logger.Output(3, out)
}

// SetOutput sets the output stream for logging.
func SetOutput(output io.Writer) {
	logger.SetOutput(output)
}

// SetFlags sets flags to control logging output.
func SetFlags(flags int) {
	fFlags := flags & (log.Llongfile | log.Lshortfile)
	atomic.StoreInt64(&fileFlags, int64(fFlags))
	logger.SetFlags(flags &^ fFlags)
}

// Log logs a formatted message.
func Log(format string, args ...interface{}) {
	fn, loc := caller()
	doLog(fn, loc, format, args...)
}

// Fine logs a formatted message if fine logging is enabled for the
// calling package. Enable fine logging using the commandline flag,
// `--finelog=$pkg1,$pkg2`. [Requires debug logging].
func Fine(format string, args ...interface{}) {
	fn, loc := caller()
	if fineLogEnabled(fn) {
		doLog(fn, loc, format, args...)
	}
}

var labels sync.Map // of uintptr -> string

func addr(thing interface{}) (uintptr, bool) {
	v := reflect.ValueOf(thing)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}

// ID returns a name for the given value of the form 'type'<label>,
// providing log statements with additional context.
func ID(thing interface{}) string {
	typ := reflect.TypeOf(thing)
	if typ == nil {
		return "nil"
	}
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	name := typ.Name()
	if typ.PkgPath() != "" {
		name = shorten(typ.PkgPath()) + "." + name
	}
	if a, ok := addr(thing); ok {
		if l, ok := labels.Load(a); ok {
			return fmt.Sprintf("%s<%s>", name, l)
		}
		return fmt.Sprintf("%s@%x", name, a)
	}
	return name
}

// Label adds a label to thing, incorporated as part of its identifier.
// For example, the sysfs backend uses
//	logging.Label(chip, "/sys/class/hwmon/hwmon3")
// which makes its ID sysfs.chip<.../hwmon3>.
func Label(thing interface{}, label string) {
	if a, ok := addr(thing); ok {
		labels.Store(a, label)
	}
}

// Labelf is Label with built-in formatting. Because all logging functions
// are no-ops without sensorsdebuglog, the formatting only happens if debug
// logging is on.
func Labelf(thing interface{}, format string, args ...interface{}) {
	Label(thing, fmt.Sprintf(format, args...))
}

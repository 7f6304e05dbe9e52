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

// sensors prints the current readings of all chips, like sensors(1).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/soumya92/sensors"
	"github.com/soumya92/sensors/backend/psutil"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/config"
	"github.com/soumya92/sensors/format"
	"github.com/soumya92/sensors/report"
)

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }

var (
	configFiles  fileList
	outputFormat = flag.String("format", "text", "output format: text, raw, json or yaml")
	doSets       = flag.Bool("s", false, "apply set statements from the configuration")
	fahrenheit   = flag.Bool("f", false, "show temperatures in degrees Fahrenheit")
	watch        = flag.Bool("watch", false, "print again whenever the configuration changes")
	usePsutil    = flag.Bool("psutil", false, "read temperatures through gopsutil instead of sysfs")
)

func init() {
	flag.Var(&configFiles, "c", "configuration file or directory (repeatable)")
}

func main() {
	flag.Parse()
	var patterns []chipname.ChipName
	for _, arg := range flag.Args() {
		p, err := chipname.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		patterns = append(patterns, p)
	}
	if err := run(patterns); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if !*watch {
		return
	}
	paths := []string(configFiles)
	if len(paths) == 0 {
		paths = []string{config.DefaultFile, config.FallbackFile, config.DefaultConfDir}
	}
	w := config.Watch(paths...)
	defer w.Unsubscribe()
	for {
		select {
		case <-w.Updates:
			fmt.Println()
			if err := run(patterns); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		case err := <-w.Errors:
			fmt.Fprintf(os.Stderr, "watching configuration: %v\n", err)
			return
		}
	}
}

func run(patterns []chipname.ChipName) (err error) {
	var opts []sensors.Option
	if len(configFiles) > 0 {
		opts = append(opts, sensors.WithConfigFiles(configFiles...))
	}
	if *usePsutil {
		opts = append(opts, sensors.WithBackend(psutil.New(afero.NewOsFs())))
	}
	r, err := sensors.Init(opts...)
	if err != nil {
		return err
	}
	defer shutdown(r, &err)
	if *doSets {
		sets := patterns
		if len(sets) == 0 {
			sets = []chipname.ChipName{chipname.Any()}
		}
		for _, p := range sets {
			if err := r.DoChipSets(p); err != nil {
				return err
			}
		}
	}
	chips, err := report.Collect(r, format.Formatter{Fahrenheit: *fahrenheit}, patterns...)
	if err != nil {
		return err
	}
	return report.Write(os.Stdout, *outputFormat, chips)
}

// shutdown releases r, reporting its error in *err unless one is already set.
func shutdown(r *sensors.Registry, err *error) {
	if serr := r.Shutdown(); serr != nil && *err == nil {
		*err = serr
	}
}

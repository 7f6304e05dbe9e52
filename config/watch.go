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

package config

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/soumya92/sensors/base/notifier"
	l "github.com/soumya92/sensors/logging"
)

// Watcher notifies of changes to configuration files. Directories such as
// /etc/sensors.d are watched for changes to any file they contain.
type Watcher struct {
	Updates <-chan struct{}
	Errors  <-chan error

	fswatcher *fsnotify.Watcher
	// Paths whose changes are notified, and directories whose children's
	// changes are notified.
	files   map[string]bool
	dirs    map[string]bool
	notify  *notifier.Notifier
	errorCh chan error
	done    int32 // atomic bool.
}

// Watch creates a watcher for the given configuration paths. Paths that do
// not exist yet are picked up when they are created, as long as their
// parent directory exists.
func Watch(paths ...string) *Watcher {
	w := &Watcher{files: map[string]bool{}, dirs: map[string]bool{}}
	l.Labelf(w, "%v", paths)
	w.errorCh = make(chan error, 1)
	w.Errors = w.errorCh
	w.notify = notifier.New()
	w.Updates = w.notify.C()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errorCh <- err
		return w
	}
	w.fswatcher = watcher
	added := map[string]bool{}
	add := func(p string) {
		if added[p] {
			return
		}
		added[p] = true
		if err := watcher.Add(p); err != nil {
			l.Fine("%s: not watching %s: %v", l.ID(w), p, err)
		}
	}
	for _, p := range paths {
		p = filepath.Clean(p)
		w.files[p] = true
		add(filepath.Dir(p))
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			w.dirs[p] = true
			add(p)
		}
	}
	go w.watchLoop()
	return w
}

// Unsubscribe stops watching and frees any resources used.
func (w *Watcher) Unsubscribe() {
	if w.fswatcher != nil && atomic.CompareAndSwapInt32(&w.done, 0, 1) {
		l.Fine("%s done", l.ID(w))
		w.fswatcher.Close()
	}
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fswatcher.Events:
			if !ok {
				return
			}
			l.Fine("%s notified: %s", l.ID(w), event)
			if event.Op == fsnotify.Chmod {
				continue
			}
			if w.files[event.Name] || w.dirs[filepath.Dir(event.Name)] {
				w.notify.Notify()
			}
		case err, ok := <-w.fswatcher.Errors:
			if !ok {
				return
			}
			l.Log("%s: %v", l.ID(w), err)
			select {
			case w.errorCh <- err:
			default:
			}
		}
	}
}

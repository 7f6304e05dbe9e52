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

// Package notifier provides coalescing update notifications.
package notifier // import "github.com/soumya92/sensors/base/notifier"

import (
	"sync/atomic"

	l "github.com/soumya92/sensors/logging"
)

// Notifier delivers notifications on a channel with room for one. A
// notification sent while another is pending is dropped, so a consumer
// that re-reads state on each notification always sees the latest state.
type Notifier struct {
	ch      chan struct{}
	dropped atomic.Int64
}

// New constructs a notifier with nothing pending.
func New() *Notifier {
	n := &Notifier{ch: make(chan struct{}, 1)}
	l.Fine("%s: new", l.ID(n))
	return n
}

// C returns the channel that receives notifications.
func (n *Notifier) C() <-chan struct{} {
	return n.ch
}

// Notify sends a notification unless one is already pending.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
		l.Fine("%s: notified", l.ID(n))
	default:
		n.dropped.Add(1)
	}
}

// Coalesced returns the number of notifications dropped because another
// was still pending.
func (n *Notifier) Coalesced() int64 {
	return n.dropped.Load()
}

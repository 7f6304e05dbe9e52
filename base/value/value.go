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

// Package value provides atomically replaceable values of any type, such as
// the error sinks, which may be swapped while other goroutines read them.
package value // import "github.com/soumya92/sensors/base/value"

import (
	"sync/atomic"

	l "github.com/soumya92/sensors/logging"
)

// box allows storing nil and interface values in the atomic.Value.
type box[T any] struct {
	value T
}

// Value provides atomic storage of a T. The zero value holds the zero T.
type Value[T any] struct {
	value atomic.Value // of box[T]
}

// Get returns the currently stored value.
func (v *Value[T]) Get() T {
	if b, ok := v.value.Load().(box[T]); ok {
		return b.value
	}
	var zero T
	return zero
}

// Set updates the stored value.
func (v *Value[T]) Set(value T) {
	v.Swap(value)
}

// Swap updates the stored value and returns the previous one.
func (v *Value[T]) Swap(value T) (old T) {
	if b, ok := v.value.Swap(box[T]{value}).(box[T]); ok {
		old = b.value
	}
	l.Fine("%s: Store %#v", l.ID(v), value)
	return old
}

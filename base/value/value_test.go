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

package value

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValue(t *testing.T) {
	var v Value[string]
	assert.Equal(t, "", v.Get())
	var f Value[func() int]
	assert.Nil(t, f.Get())
}

func TestSetAndSwap(t *testing.T) {
	var v Value[int]
	v.Set(4)
	assert.Equal(t, 4, v.Get())
	assert.Equal(t, 4, v.Swap(5))
	assert.Equal(t, 5, v.Get())
}

func TestInterfaceValues(t *testing.T) {
	var v Value[interface{}]
	v.Set("string")
	v.Set(42)
	v.Set(nil)
	assert.Nil(t, v.Get())
}

func TestConcurrentAccess(t *testing.T) {
	var v Value[int]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v.Set(i)
			v.Get()
		}(i)
	}
	wg.Wait()
	assert.Less(t, v.Get(), 50)
}

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

package backend

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	assert.True(t, Unbounded.Contains(0))
	assert.True(t, Unbounded.Contains(-1e300))
	assert.False(t, Unbounded.Contains(math.NaN()))
	assert.False(t, Unbounded.Contains(math.Inf(1)))
	assert.True(t, Range{}.Contains(42))
	assert.False(t, Range{}.Contains(math.NaN()))

	boolean := Range{0, 1}
	assert.True(t, boolean.Contains(0))
	assert.True(t, boolean.Contains(1))
	assert.False(t, boolean.Contains(2))
	assert.False(t, boolean.Contains(-0.5))
	assert.Equal(t, "[0, 1]", boolean.String())
}

func TestFatalError(t *testing.T) {
	err := error(&FatalError{Proc: "Chips", Err: os.ErrNotExist})
	assert.Equal(t, "Chips: file does not exist", err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist))
	var fe *FatalError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "Chips", fe.Proc)
}

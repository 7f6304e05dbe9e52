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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	lookup := func(name string) (float64, error) {
		switch name {
		case "in1":
			return 3.3, nil
		case "temp1":
			return 40, nil
		}
		return 0, errors.New("no such feature")
	}
	for _, tc := range []struct {
		expr string
		raw  float64
		want float64
	}{
		{"1", 0, 1},
		{"@", 5, 5},
		{"-@", 5, -5},
		{"@ * 2 + 1", 5, 11},
		{"1 + @ * 2", 5, 11},
		{"(1 + @) * 2", 5, 12},
		{"@ - 1 - 1", 5, 3},
		{"@ / 2 / 5", 20, 2},
		{"((6.8/10)+1)*@", 2, 3.36},
		{"^0", 0, 1},
		{"`1", 0, 0},
		{"^`@", 7, 7},
		{"--@", 5, 5},
		{"in1 * 2", 0, 6.6},
		{"(temp1 - 32) / 1.8", 0, 40.0 / 9},
		{".5 * @", 4, 2},
	} {
		e, err := ParseExpr(tc.expr)
		require.NoError(t, err, tc.expr)
		got, err := e.Eval(Env{Raw: tc.raw, HasRaw: true, Lookup: lookup})
		require.NoError(t, err, tc.expr)
		assert.InDelta(t, tc.want, got, 1e-9, tc.expr)
	}
}

func TestEvalErrors(t *testing.T) {
	e, err := ParseExpr("@ / (1 - 1)")
	require.NoError(t, err)
	_, err = e.Eval(Env{Raw: 1, HasRaw: true})
	assert.True(t, errors.Is(err, ErrDivideByZero))

	e, _ = ParseExpr("@ * 2")
	_, err = e.Eval(Env{})
	assert.Error(t, err, "@ without raw value")

	e, _ = ParseExpr("in1 + 1")
	_, err = e.Eval(Env{})
	assert.Error(t, err, "reference without lookup")

	e, _ = ParseExpr("`(0 - 1)")
	v, err := e.Eval(Env{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	for _, bad := range []string{"", "1 +", "(1", "1 2", "* 3", "1,2"} {
		_, err := ParseExpr(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestRefs(t *testing.T) {
	e, err := ParseExpr("(in1 + in2) * @ / -temp3")
	require.NoError(t, err)
	var refs []string
	e.Refs(func(name string) { refs = append(refs, name) })
	assert.Equal(t, []string{"in1", "in2", "temp3"}, refs)
	assert.True(t, UsesRaw(e))
	assert.Equal(t, "(((in1 + in2) * @) / -temp3)", e.String())

	e, _ = ParseExpr("^2 - 1.5")
	assert.False(t, UsesRaw(e))
	assert.Equal(t, "(^2 - 1.5)", e.String())
}

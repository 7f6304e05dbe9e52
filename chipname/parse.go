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

package chipname

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is returned when a chip name cannot be parsed.
type ParseError struct {
	// Input is the complete text given to Parse.
	Input string
	// Offset is the byte offset of Token in Input.
	Offset int
	// Token is the offending substring. It may be empty if a
	// component was missing.
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chipname: %s %q at offset %d in %q",
		e.Reason, e.Token, e.Offset, e.Input)
}

type token struct {
	text   string
	offset int
}

func tokenize(text string) []token {
	var toks []token
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '-' {
			toks = append(toks, token{text[start:i], start})
			start = i + 1
		}
	}
	return toks
}

// Parse parses a chip name of the form prefix[-bustype[-busnr][-addr]].
// The prefix, bus type, bus number and address may each be "*".
//
// Bus types isa, pci, virtual and acpi have no bus number, and the token
// following them is the address. A missing bus type, bus number or address
// is treated as a wildcard.
func Parse(text string) (ChipName, error) {
	res := Any()
	fail := func(t token, reason string) (ChipName, error) {
		return ChipName{}, &ParseError{
			Input:  text,
			Offset: t.offset,
			Token:  t.text,
			Reason: reason,
		}
	}
	toks := tokenize(text)
	if toks[0].text == "" {
		return fail(toks[0], "empty prefix")
	}
	if toks[0].text != "*" {
		res.Prefix = toks[0].text
	}
	toks = toks[1:]
	if len(toks) == 0 {
		return res, nil
	}

	busTok := toks[0]
	toks = toks[1:]
	switch busTok.text {
	case "*":
		res.Bus.Type = BusAny
	default:
		found := false
		for typ, name := range busTokens {
			if name == busTok.text {
				res.Bus.Type, found = typ, true
				break
			}
		}
		if !found {
			return fail(busTok, "unknown bus type")
		}
	}

	switch {
	case res.Bus.Type == BusAny && len(toks) > 1,
		res.Bus.Type.HasNumber() && len(toks) > 0:
		nr, err := parseNr(toks[0].text)
		if err != nil {
			return fail(toks[0], "invalid bus number")
		}
		res.Bus.Nr = nr
		toks = toks[1:]
	case res.Bus.Type != BusAny && !res.Bus.Type.HasNumber():
		res.Bus.Nr = BusNrIgnore
	}

	if len(toks) == 0 {
		return res, nil
	}
	addr, err := parseAddr(toks[0].text)
	if err != nil {
		return fail(toks[0], "invalid address")
	}
	res.Addr = addr
	if len(toks) > 1 {
		rest := toks[1]
		rest.text = text[rest.offset:]
		return fail(rest, "trailing characters")
	}
	return res, nil
}

// MustParse is like Parse but panics if the name cannot be parsed.
// It simplifies initialisation of package-level patterns.
func MustParse(text string) ChipName {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parseNr(s string) (int, error) {
	if s == "*" {
		return BusNrAny, nil
	}
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	nr, err := strconv.ParseInt(s, 10, 16) // MaxBusNr
	return int(nr), err
}

func parseAddr(s string) (int, error) {
	if s == "*" {
		return AddrAny, nil
	}
	if s == "" || strings.TrimLeft(s, "0123456789abcdef") != "" {
		return 0, strconv.ErrSyntax
	}
	addr, err := strconv.ParseInt(s, 16, 32) // MaxAddr
	return int(addr), err
}

// ParseBus parses a concrete bus identifier such as "i2c-0" or "isa".
func ParseBus(text string) (Bus, error) {
	toks := tokenize(text)
	fail := func(t token, reason string) (Bus, error) {
		return Bus{}, &ParseError{Input: text, Offset: t.offset, Token: t.text, Reason: reason}
	}
	var bus Bus
	found := false
	for typ, name := range busTokens {
		if name == toks[0].text {
			bus.Type, found = typ, true
			break
		}
	}
	if !found {
		return fail(toks[0], "unknown bus type")
	}
	if !bus.Type.HasNumber() {
		if len(toks) > 1 {
			rest := toks[1]
			rest.text = text[rest.offset:]
			return fail(rest, "trailing characters")
		}
		bus.Nr = BusNrIgnore
		return bus, nil
	}
	if len(toks) != 2 {
		end := token{offset: len(text)}
		if len(toks) > 2 {
			end = toks[2]
			end.text = text[end.offset:]
		}
		return fail(end, "expected bus number")
	}
	nr, err := parseNr(toks[1].text)
	if err != nil || nr == BusNrAny {
		return fail(toks[1], "invalid bus number")
	}
	bus.Nr = nr
	return bus, nil
}

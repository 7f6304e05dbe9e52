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

// Package chipname provides the identity of a hardware monitoring chip, and
// conversion to and from its canonical textual form, e.g. "lm78-i2c-0-2d".
//
// A ChipName may be concrete, in which case it identifies exactly one
// detected chip, or a pattern, where any field can hold a wildcard sentinel
// that matches every value of that field.
package chipname // import "github.com/soumya92/sensors/chipname"

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// BusType identifies the kind of bus a chip is attached to.
type BusType int

// Supported bus types. The numeric values match libsensors.
const (
	BusAny     BusType = -1
	BusISA     BusType = 0
	BusPCI     BusType = 1
	BusSPI     BusType = 2
	BusI2C     BusType = 3
	BusHID     BusType = 4
	BusVirtual BusType = 5
	BusACPI    BusType = 6
)

var busTokens = map[BusType]string{
	BusISA:     "isa",
	BusPCI:     "pci",
	BusSPI:     "spi",
	BusI2C:     "i2c",
	BusHID:     "hid",
	BusVirtual: "virtual",
	BusACPI:    "acpi",
}

// BusTypes returns all concrete bus types, in numeric order.
func BusTypes() []BusType {
	return []BusType{BusISA, BusPCI, BusSPI, BusI2C, BusHID, BusVirtual, BusACPI}
}

// String returns the canonical token for the bus type, "*" for BusAny.
func (b BusType) String() string {
	if b == BusAny {
		return "*"
	}
	if tok, ok := busTokens[b]; ok {
		return tok
	}
	return fmt.Sprintf("BusType(%d)", int(b))
}

// Valid returns true if b is BusAny or one of the known bus types.
func (b BusType) Valid() bool {
	_, ok := busTokens[b]
	return ok || b == BusAny
}

// HasNumber returns true for bus types that carry a bus number
// in their textual form (i2c, spi, hid).
func (b BusType) HasNumber() bool {
	switch b {
	case BusI2C, BusSPI, BusHID:
		return true
	}
	return false
}

// Bus number sentinels.
const (
	// BusNrAny matches any bus number.
	BusNrAny = -1
	// BusNrIgnore is the bus number of chips on buses without numbering.
	BusNrIgnore = -2
)

// Bus identifies a bus instance.
type Bus struct {
	Type BusType
	Nr   int
}

// String formats the bus as "<type>-<nr>", e.g. "i2c-0".
func (b Bus) String() string {
	switch b.Nr {
	case BusNrAny:
		return b.Type.String() + "-*"
	case BusNrIgnore:
		return b.Type.String()
	}
	return fmt.Sprintf("%s-%d", b.Type, b.Nr)
}

// PrefixAny is the wildcard prefix.
const PrefixAny = ""

// AddrAny is the wildcard address.
const AddrAny = -1

// ChipName identifies a chip (or a set of chips, for patterns).
// ChipNames are values; two ChipNames are equal iff all fields are equal.
type ChipName struct {
	Prefix string
	Bus    Bus
	Addr   int
}

// Any returns a pattern that matches every chip.
func Any() ChipName {
	return ChipName{
		Prefix: PrefixAny,
		Bus:    Bus{Type: BusAny, Nr: BusNrAny},
		Addr:   AddrAny,
	}
}

// IsWildcard returns true if any field of the name is a wildcard.
func (c ChipName) IsWildcard() bool {
	return c.Prefix == PrefixAny ||
		c.Bus.Type == BusAny ||
		c.Bus.Nr == BusNrAny ||
		c.Addr == AddrAny
}

// Limits of the numeric fields that the textual form can carry.
const (
	MaxBusNr = math.MaxInt16
	MaxAddr  = math.MaxInt32
)

// ErrNotConcrete is wrapped by errors from Validate.
var ErrNotConcrete = errors.New("chipname: not a concrete chip name")

// Validate returns nil if c identifies exactly one chip, i.e. it has no
// wildcard fields and its String form parses back to c.
func (c ChipName) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrNotConcrete, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Prefix == PrefixAny || c.Prefix == "*":
		return invalid("wildcard prefix")
	case strings.Contains(c.Prefix, "-"):
		return invalid("prefix %q contains '-'", c.Prefix)
	case c.Bus.Type == BusAny:
		return invalid("wildcard bus type")
	case !c.Bus.Type.Valid():
		return invalid("unknown bus type %s", c.Bus.Type)
	case c.Addr < 0 || c.Addr > MaxAddr:
		return invalid("address %d out of range", c.Addr)
	}
	if !c.Bus.Type.HasNumber() {
		if c.Bus.Nr != BusNrIgnore {
			return invalid("%s bus cannot have bus number %d", c.Bus.Type, c.Bus.Nr)
		}
		return nil
	}
	if c.Bus.Nr < 0 || c.Bus.Nr > MaxBusNr {
		return invalid("%s bus number %d out of range", c.Bus.Type, c.Bus.Nr)
	}
	return nil
}

// Matches returns true if the chip c is matched by the pattern.
// Every non-wildcard field of pattern must be equal to the corresponding
// field in c. A chip on a bus without numbering (BusNrIgnore) is only
// matched by a pattern bus number of BusNrIgnore or BusNrAny, which falls
// out of plain equality.
func (c ChipName) Matches(pattern ChipName) bool {
	if pattern.Prefix != PrefixAny && pattern.Prefix != c.Prefix {
		return false
	}
	if pattern.Bus.Type != BusAny && pattern.Bus.Type != c.Bus.Type {
		return false
	}
	if pattern.Bus.Nr != BusNrAny && pattern.Bus.Nr != c.Bus.Nr {
		return false
	}
	if pattern.Addr != AddrAny && pattern.Addr != c.Addr {
		return false
	}
	return true
}

// String formats the chip name in canonical form. Concrete names use
// the same widths as lm-sensors, e.g. "coretemp-isa-0000" or
// "lm78-i2c-0-2d". Wildcard fields are rendered as "*".
func (c ChipName) String() string {
	prefix := c.Prefix
	if prefix == PrefixAny {
		prefix = "*"
	}
	if c.Bus.Type == BusAny {
		if c.Bus.Nr == BusNrAny || c.Bus.Nr == BusNrIgnore {
			return fmt.Sprintf("%s-*-%s", prefix, formatAddr(c.Addr, "%x"))
		}
		return fmt.Sprintf("%s-*-%d-%s", prefix, c.Bus.Nr, formatAddr(c.Addr, "%x"))
	}
	if !c.Bus.Type.HasNumber() {
		addrFmt := "%x"
		if c.Bus.Type == BusISA || c.Bus.Type == BusPCI {
			addrFmt = "%04x"
		}
		return fmt.Sprintf("%s-%s-%s", prefix, c.Bus.Type, formatAddr(c.Addr, addrFmt))
	}
	addrFmt := "%x"
	if c.Bus.Type == BusI2C {
		addrFmt = "%02x"
	}
	return fmt.Sprintf("%s-%s-%s-%s",
		prefix, c.Bus.Type, formatNr(c.Bus.Nr), formatAddr(c.Addr, addrFmt))
}

func formatAddr(addr int, format string) string {
	if addr == AddrAny {
		return "*"
	}
	return fmt.Sprintf(format, addr)
}

func formatNr(nr int) string {
	if nr == BusNrAny || nr == BusNrIgnore {
		return "*"
	}
	return fmt.Sprintf("%d", nr)
}

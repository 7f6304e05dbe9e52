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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soumya92/sensors/chipname"
	l "github.com/soumya92/sensors/logging"
)

type tokKind int

const (
	tokName tokKind = iota
	tokNumber
	tokString
	tokOp
)

type tok struct {
	kind tokKind
	text string
	num  float64
	op   byte
}

func (t tok) String() string {
	switch t.kind {
	case tokName:
		return fmt.Sprintf("name %q", t.text)
	case tokNumber:
		return fmt.Sprintf("number %s", t.text)
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.op)
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// lex splits a single line into tokens. Everything after an unquoted
// '#' is a comment.
func lex(line string) ([]tok, error) {
	var toks []tok
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			return toks, nil
		case strings.IndexByte("+-*/(),@^`", c) >= 0:
			toks = append(toks, tok{kind: tokOp, op: c, text: string(c)})
			i++
		case isNameStart(c):
			j := i + 1
			for j < len(line) && (isNameStart(line[j]) || isDigit(line[j])) {
				j++
			}
			toks = append(toks, tok{kind: tokName, text: line[i:j]})
			i = j
		case isDigit(c) || c == '.':
			j := i
			for j < len(line) && (isDigit(line[j]) || line[j] == '.') {
				j++
			}
			num, err := strconv.ParseFloat(line[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", line[i:j])
			}
			toks = append(toks, tok{kind: tokNumber, text: line[i:j], num: num})
			i = j
		case c == '"':
			s, n, err := lexString(line[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok{kind: tokString, text: s})
			i += n
		default:
			return nil, fmt.Errorf("invalid character %q", c)
		}
	}
	return toks, nil
}

// lexString reads a quoted string at the start of s, returning the
// unescaped contents and the number of bytes consumed.
func lexString(s string) (string, int, error) {
	var out strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			return out.String(), i + 1, nil
		case '\\':
			i++
			if i == len(s) {
				break
			}
			switch s[i] {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(s[i])
			}
		default:
			out.WriteByte(s[i])
		}
	}
	return "", 0, errors.New("unterminated string")
}

type parser struct {
	toks []tok
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }
func (p *parser) peek() tok  { return p.toks[p.pos] }

func (p *parser) next() tok {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) peekOp(ops ...byte) bool {
	if p.done() || p.peek().kind != tokOp {
		return false
	}
	return strings.IndexByte(string(ops), p.peek().op) >= 0
}

func (p *parser) expect(kind tokKind, what string) (tok, error) {
	if p.done() {
		return tok{}, fmt.Errorf("expected %s", what)
	}
	t := p.next()
	if t.kind != kind {
		return tok{}, fmt.Errorf("expected %s, got %s", what, t)
	}
	return t, nil
}

func (p *parser) end() error {
	if !p.done() {
		return fmt.Errorf("unexpected %s", p.peek())
	}
	return nil
}

// Parse reads a configuration file. Each syntax error is reported to diag,
// along with warnings such as duplicate statements. Parsing continues past
// errors, and the returned Config holds all valid statements. If any syntax
// errors were found the returned error wraps ErrParse.
func Parse(r io.Reader, filename string, diag DiagFunc) (*Config, error) {
	if diag == nil {
		diag = func(string, string, int) {}
	}
	st := &state{cfg: &Config{}, diag: diag}
	errCount := 0
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		loc := Location{filename, lineno}
		toks, err := lex(scanner.Text())
		if err == nil && len(toks) > 0 {
			err = st.statement(&parser{toks: toks}, loc)
		}
		if err != nil {
			l.Fine("%s: %v", loc, err)
			diag(err.Error(), filename, lineno)
			errCount++
		}
	}
	if err := scanner.Err(); err != nil {
		return st.cfg, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	if errCount > 0 {
		return st.cfg, fmt.Errorf("%w: %d error(s) in %s", ErrParse, errCount, filename)
	}
	return st.cfg, nil
}

type state struct {
	cfg     *Config
	current *ChipBlock
	diag    DiagFunc
}

func (s *state) warn(loc Location, format string, args ...interface{}) {
	s.diag(fmt.Sprintf(format, args...), loc.File, loc.Line)
}

func (s *state) statement(p *parser, loc Location) error {
	kw, err := p.expect(tokName, "statement")
	if err != nil {
		return err
	}
	switch kw.text {
	case "chip":
		return s.chip(p, loc)
	case "bus":
		return s.bus(p, loc)
	case "label", "ignore", "set", "compute":
		if s.current == nil {
			return fmt.Errorf("%s statement before first chip statement", kw.text)
		}
	default:
		return fmt.Errorf("unknown statement %q", kw.text)
	}
	name, err := p.expect(tokName, "feature name")
	if err != nil {
		return err
	}
	b := s.current
	switch kw.text {
	case "label":
		text, err := p.expect(tokString, "label text")
		if err != nil {
			return err
		}
		if err := p.end(); err != nil {
			return err
		}
		for _, lbl := range b.Labels {
			if lbl.Feature == name.text {
				s.warn(loc, "duplicate label for %s, previously defined at %s", name.text, lbl.Location)
			}
		}
		b.Labels = append(b.Labels, Label{name.text, text.text, loc})
	case "ignore":
		if err := p.end(); err != nil {
			return err
		}
		b.Ignores = append(b.Ignores, Ignore{name.text, loc})
	case "set":
		val, err := p.expr()
		if err != nil {
			return err
		}
		if err := p.end(); err != nil {
			return err
		}
		if UsesRaw(val) {
			return errors.New("@ is not allowed in set statements")
		}
		b.Sets = append(b.Sets, Set{name.text, val, loc})
	case "compute":
		from, err := p.expr()
		if err != nil {
			return err
		}
		if !p.peekOp(',') {
			return errors.New("expected , between compute expressions")
		}
		p.next()
		to, err := p.expr()
		if err != nil {
			return err
		}
		if err := p.end(); err != nil {
			return err
		}
		for _, c := range b.Computes {
			if c.Feature == name.text {
				s.warn(loc, "duplicate compute for %s, previously defined at %s", name.text, c.Location)
			}
		}
		b.Computes = append(b.Computes, Compute{name.text, from, to, loc})
	}
	return nil
}

func (s *state) chip(p *parser, loc Location) error {
	block := &ChipBlock{Location: loc}
	// Statements up to the next chip statement belong to this block even
	// if some of its patterns are invalid.
	s.current = block
	s.cfg.Chips = append(s.cfg.Chips, block)
	if p.done() {
		return errors.New("chip statement without chip names")
	}
	for !p.done() {
		t, err := p.expect(tokString, "chip name")
		if err != nil {
			return err
		}
		name, err := chipname.Parse(t.text)
		if err != nil {
			return fmt.Errorf("invalid chip name %q: %w", t.text, err)
		}
		block.Patterns = append(block.Patterns, name)
	}
	return nil
}

func (s *state) bus(p *parser, loc Location) error {
	t, err := p.expect(tokString, "bus name")
	if err != nil {
		return err
	}
	bus, err := chipname.ParseBus(t.text)
	if err != nil {
		return fmt.Errorf("invalid bus %q: %w", t.text, err)
	}
	adapter, err := p.expect(tokString, "adapter name")
	if err != nil {
		return err
	}
	// Old configurations also name the algorithm, which is ignored.
	if !p.done() && p.peek().kind == tokString {
		p.next()
	}
	if err := p.end(); err != nil {
		return err
	}
	s.cfg.Buses = append(s.cfg.Buses, Bus{bus, adapter.text, loc})
	return nil
}

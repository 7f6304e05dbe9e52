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
	"fmt"
	"math"
	"strconv"
)

// ErrDivideByZero is returned when an expression divides by zero.
var ErrDivideByZero = errors.New("config: division by zero")

// Env provides the values an expression may refer to.
type Env struct {
	// Raw is the value of "@". HasRaw is false in contexts where "@"
	// is not available, e.g. set statements.
	Raw    float64
	HasRaw bool
	// Lookup returns the current value of a named feature.
	// A nil Lookup rejects all references.
	Lookup func(name string) (float64, error)
}

// Expr is a parsed arithmetic expression.
type Expr interface {
	Eval(env Env) (float64, error)
	String() string
	// Refs calls fn for every feature name referenced by the expression.
	Refs(fn func(name string))
}

// Number is a constant.
type Number float64

func (n Number) Eval(Env) (float64, error) { return float64(n), nil }
func (n Number) String() string            { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) Refs(func(string))         {}

// Raw is the "@" operand.
type Raw struct{}

func (Raw) Eval(env Env) (float64, error) {
	if !env.HasRaw {
		return 0, errors.New("config: @ used outside compute statement")
	}
	return env.Raw, nil
}
func (Raw) String() string    { return "@" }
func (Raw) Refs(func(string)) {}

// Ref refers to the value of another feature of the same chip.
type Ref string

func (r Ref) Eval(env Env) (float64, error) {
	if env.Lookup == nil {
		return 0, fmt.Errorf("config: unresolved reference to %q", string(r))
	}
	return env.Lookup(string(r))
}
func (r Ref) String() string       { return string(r) }
func (r Ref) Refs(fn func(string)) { fn(string(r)) }

// Unary is a prefix operator: '-' (negation), '^' (exp) or '`' (ln).
type Unary struct {
	Op byte
	X  Expr
}

func (u Unary) Eval(env Env) (float64, error) {
	x, err := u.X.Eval(env)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case '-':
		return -x, nil
	case '^':
		return math.Exp(x), nil
	case '`':
		return math.Log(x), nil
	}
	return 0, fmt.Errorf("config: unknown operator %q", u.Op)
}

func (u Unary) String() string       { return fmt.Sprintf("%c%s", u.Op, u.X) }
func (u Unary) Refs(fn func(string)) { u.X.Refs(fn) }

// Binary is an infix operator: '+', '-', '*' or '/'.
type Binary struct {
	Op   byte
	X, Y Expr
}

func (b Binary) Eval(env Env) (float64, error) {
	x, err := b.X.Eval(env)
	if err != nil {
		return 0, err
	}
	y, err := b.Y.Eval(env)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case '+':
		return x + y, nil
	case '-':
		return x - y, nil
	case '*':
		return x * y, nil
	case '/':
		if y == 0 {
			return 0, ErrDivideByZero
		}
		return x / y, nil
	}
	return 0, fmt.Errorf("config: unknown operator %q", b.Op)
}

func (b Binary) String() string { return fmt.Sprintf("(%s %c %s)", b.X, b.Op, b.Y) }

func (b Binary) Refs(fn func(string)) {
	b.X.Refs(fn)
	b.Y.Refs(fn)
}

// UsesRaw returns true if "@" appears in the expression.
func UsesRaw(e Expr) bool {
	switch e := e.(type) {
	case Raw:
		return true
	case Unary:
		return UsesRaw(e.X)
	case Binary:
		return UsesRaw(e.X) || UsesRaw(e.Y)
	}
	return false
}

// ParseExpr parses a standalone expression, e.g. "(@ * 2) - 1".
func ParseExpr(text string) (Expr, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected %s", p.peek())
	}
	return e, nil
}

// expr := term { ('+'|'-') term }
func (p *parser) expr() (Expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peekOp('+', '-') {
		op := p.next().op
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = Binary{op, x, y}
	}
	return x, nil
}

// term := unary { ('*'|'/') unary }
func (p *parser) term() (Expr, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peekOp('*', '/') {
		op := p.next().op
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = Binary{op, x, y}
	}
	return x, nil
}

// unary := ('-'|'^'|'`') unary | primary
func (p *parser) unary() (Expr, error) {
	if p.peekOp('-', '^', '`') {
		op := p.next().op
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{op, x}, nil
	}
	return p.primary()
}

// primary := number | name | '@' | '(' expr ')'
func (p *parser) primary() (Expr, error) {
	if p.done() {
		return nil, errors.New("unexpected end of expression")
	}
	t := p.next()
	switch {
	case t.kind == tokNumber:
		return Number(t.num), nil
	case t.kind == tokName:
		return Ref(t.text), nil
	case t.kind == tokOp && t.op == '@':
		return Raw{}, nil
	case t.kind == tokOp && t.op == '(':
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.peekOp(')') {
			return nil, errors.New("missing )")
		}
		p.next()
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %s", t)
}

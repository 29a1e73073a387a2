// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package licensing

import (
	"fmt"
	"sort"
	"strings"
)

// Expression is a boolean expression over license-key atoms. Expressions
// are immutable once built; Simplify returns a new expression.
type Expression struct {
	op   operator
	key  string        // license key, set when op == opSymbol
	args []*Expression // operands, set when op == opAnd or opOr
}

type operator int

const (
	opSymbol operator = iota
	opAnd
	opOr
)

// Symbol returns an expression consisting of a single license key.
func Symbol(key string) *Expression {
	return &Expression{op: opSymbol, key: key}
}

// And combines expressions with boolean AND. Nil operands are dropped.
// A single remaining operand is returned as-is.
func And(exprs ...*Expression) *Expression {
	return combine(opAnd, exprs)
}

// Or combines expressions with boolean OR. Nil operands are dropped.
func Or(exprs ...*Expression) *Expression {
	return combine(opOr, exprs)
}

func combine(op operator, exprs []*Expression) *Expression {
	var args []*Expression
	for _, e := range exprs {
		if e != nil {
			args = append(args, e)
		}
	}
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		return args[0]
	}
	return &Expression{op: op, args: args}
}

// IsSymbol reports whether the expression is a single license key.
func (e *Expression) IsSymbol() bool {
	return e.op == opSymbol
}

// String renders the expression in its canonical textual form. AND binds
// tighter than OR, so only OR sub-expressions of an AND are parenthesized.
func (e *Expression) String() string {
	switch e.op {
	case opSymbol:
		return e.key
	case opAnd:
		return e.render(" AND ")
	case opOr:
		return e.render(" OR ")
	}
	return ""
}

func (e *Expression) render(sep string) string {
	parts := make([]string, 0, len(e.args))
	for _, arg := range e.args {
		s := arg.String()
		if e.op == opAnd && arg.op == opOr {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

// Simplify returns an equivalent expression in canonical form: nested
// same-operator expressions are flattened, duplicate operands removed,
// absorbed operands dropped (a AND (a OR b) == a) and operands ordered
// deterministically.
func (e *Expression) Simplify() *Expression {
	if e.op == opSymbol {
		return e
	}

	// Simplify operands first, flattening same-operator children.
	var flat []*Expression
	for _, arg := range e.args {
		arg = arg.Simplify()
		if arg.op == e.op {
			flat = append(flat, arg.args...)
		} else {
			flat = append(flat, arg)
		}
	}

	// Idempotence: drop duplicate operands.
	seen := make(map[string]bool, len(flat))
	var uniq []*Expression
	for _, arg := range flat {
		s := arg.String()
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, arg)
		}
	}

	// Absorption: inside an AND, an OR operand that lists one of the other
	// operands as an alternative adds nothing (and dually for OR).
	var kept []*Expression
	for _, arg := range uniq {
		if arg.op != dual(e.op) || !absorbed(arg, uniq) {
			kept = append(kept, arg)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].String() < kept[j].String()
	})

	if len(kept) == 1 {
		return kept[0]
	}
	return &Expression{op: e.op, args: kept}
}

func dual(op operator) operator {
	if op == opAnd {
		return opOr
	}
	return opAnd
}

// absorbed reports whether any operand of sub also appears as a sibling
// of sub among all.
func absorbed(sub *Expression, all []*Expression) bool {
	for _, inner := range sub.args {
		is := inner.String()
		for _, sibling := range all {
			if sibling != sub && sibling.String() == is {
				return true
			}
		}
	}
	return false
}

// Parse parses a license expression string such as
// "gpl-2.0 AND (mit OR bsd-new)". Atoms are bare license keys; AND and OR
// are case-insensitive keywords and AND binds tighter than OR. Keys are not
// validated against any symbol list.
func Parse(s string) (*Expression, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty license expression")
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q in license expression %q", p.tokens[p.pos], s)
	}
	return expr, nil
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '(', ')':
			flush()
			tokens = append(tokens, string(r))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseOr() (*Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	args := []*Expression{left}
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "or") {
			break
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	return combine(opOr, args), nil
}

func (p *parser) parseAnd() (*Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	args := []*Expression{left}
	for {
		tok, ok := p.peek()
		if !ok || !strings.EqualFold(tok, "and") {
			break
		}
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	return combine(opAnd, args), nil
}

func (p *parser) parsePrimary() (*Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("license expression ends with an operator")
	}
	switch {
	case tok == "(":
		p.pos++
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing != ")" {
			return nil, fmt.Errorf("unbalanced parenthesis in license expression")
		}
		p.pos++
		return expr, nil
	case tok == ")":
		return nil, fmt.Errorf("unbalanced parenthesis in license expression")
	case strings.EqualFold(tok, "and") || strings.EqualFold(tok, "or"):
		return nil, fmt.Errorf("misplaced operator %q in license expression", tok)
	default:
		p.pos++
		return Symbol(tok), nil
	}
}

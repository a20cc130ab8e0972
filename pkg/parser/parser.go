// Package parser turns propositional-logic text into a formula tree.
//
// # Usage
//
//	f, err := parser.Parse("P /\\ (~Q)")
//	if err != nil {
//	    // errors.Is(err, parser.ErrInvalidSyntax) holds for every failure
//	}
//	fmt.Println(f) // (P ∧ ¬Q)
//
// # Grammar Overview
//
// Whitespace is removed before parsing, then the whole remainder must be
// consumed by a single term. Alternatives are tried in order and the first
// one that matches wins (PEG ordered choice):
//
//	term          → conjunction | disjunction | implication | factor
//	conjunction   → factor (AND factor)+     one AND spelling per list
//	disjunction   → factor (OR factor)+      one OR spelling per list
//	implication   → factor ARROW factor
//	factor        → variable | contradiction | "(" term ")" | negation
//	negation      → NOT factor
//	variable      → letter+                  except "X"
//	contradiction → "X" | "⊥"
//
// Conjunctions and disjunctions cannot be mixed at the same level without
// parentheses: "P∧Q∨R" is rejected while "(P∧Q)∨R" is accepted.
package parser

import (
	"strings"

	"github.com/leapstack-labs/leaplogic/pkg/formula"
)

// Parse parses input as one whole term.
// On failure it returns a *ParseError and no tree.
func Parse(input string) (*formula.Node, error) {
	src, offsets := normalize(input)
	p := newParser(src)

	node, next, ok := p.term(0)
	if ok && next == len(src) {
		return node, nil
	}
	if ok {
		p.fail(next)
	}
	return nil, p.syntaxError(input, offsets)
}

// Valid reports whether input parses as a whole term.
func Valid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// parser holds the normalized input. Every production is a function from a
// start offset to (node, end offset, ok) and never mutates shared state
// besides the failure high-water mark and the factor memo, both of which
// depend only on the offset.
type parser struct {
	src      string
	furthest int
	factors  map[int]factorResult
}

type factorResult struct {
	node *formula.Node
	next int
	ok   bool
}

func newParser(src string) *parser {
	return &parser{
		src:      src,
		furthest: -1,
		factors:  make(map[int]factorResult),
	}
}

// fail records that nothing matched at pos.
func (p *parser) fail(pos int) {
	if pos > p.furthest {
		p.furthest = pos
	}
}

// ---------- Productions ----------

func (p *parser) term(pos int) (*formula.Node, int, bool) {
	if n, next, ok := p.list(pos, andOperators, formula.And); ok {
		return n, next, true
	}
	if n, next, ok := p.list(pos, orOperators, formula.Or); ok {
		return n, next, true
	}
	if n, next, ok := p.implication(pos); ok {
		return n, next, true
	}
	return p.factor(pos)
}

// list parses factor (SEP factor)+ where SEP is the first spelling in ops
// found after the leading factor. Later separators must repeat that exact
// spelling. A separator not followed by a factor ends the list before it.
func (p *parser) list(pos int, ops []string, build func(...*formula.Node) *formula.Node) (*formula.Node, int, bool) {
	first, cur, ok := p.factor(pos)
	if !ok {
		return nil, pos, false
	}
	sep, ok := p.matchAny(cur, ops)
	if !ok {
		return nil, pos, false
	}

	children := []*formula.Node{first}
	for strings.HasPrefix(p.src[cur:], sep) {
		child, next, ok := p.factor(cur + len(sep))
		if !ok {
			break
		}
		children = append(children, child)
		cur = next
	}
	if len(children) < 2 {
		return nil, pos, false
	}
	return build(children...), cur, true
}

func (p *parser) implication(pos int) (*formula.Node, int, bool) {
	left, cur, ok := p.factor(pos)
	if !ok {
		return nil, pos, false
	}
	arrow, ok := p.matchAny(cur, arrowOperators)
	if !ok {
		return nil, pos, false
	}
	right, next, ok := p.factor(cur + len(arrow))
	if !ok {
		return nil, pos, false
	}
	return formula.Implies(left, right), next, true
}

// factor is memoized per offset: term retries it for every alternative, and
// without the memo nested parentheses cost 4^depth.
func (p *parser) factor(pos int) (*formula.Node, int, bool) {
	if r, ok := p.factors[pos]; ok {
		return r.node, r.next, r.ok
	}
	n, next, ok := p.parseFactor(pos)
	p.factors[pos] = factorResult{node: n, next: next, ok: ok}
	return n, next, ok
}

func (p *parser) parseFactor(pos int) (*formula.Node, int, bool) {
	if n, next, ok := p.variable(pos); ok {
		return n, next, true
	}
	if n, next, ok := p.contradiction(pos); ok {
		return n, next, true
	}
	if n, next, ok := p.paren(pos); ok {
		return n, next, true
	}
	if n, next, ok := p.negation(pos); ok {
		return n, next, true
	}
	p.fail(pos)
	return nil, pos, false
}

// variable consumes a run of ASCII letters. The run "X" on its own is the
// contradiction, so it never reaches formula.Var.
func (p *parser) variable(pos int) (*formula.Node, int, bool) {
	end := pos
	for end < len(p.src) && isLetter(p.src[end]) {
		end++
	}
	if end == pos {
		return nil, pos, false
	}
	name := p.src[pos:end]
	if name == formula.ContradictionName {
		return formula.Contradiction(), end, true
	}
	return formula.Var(name), end, true
}

func (p *parser) contradiction(pos int) (*formula.Node, int, bool) {
	if strings.HasPrefix(p.src[pos:], formula.ContradictionGlyph) {
		return formula.Contradiction(), pos + len(formula.ContradictionGlyph), true
	}
	return nil, pos, false
}

func (p *parser) paren(pos int) (*formula.Node, int, bool) {
	if !p.hasByte(pos, '(') {
		return nil, pos, false
	}
	inner, next, ok := p.term(pos + 1)
	if !ok {
		return nil, pos, false
	}
	if !p.hasByte(next, ')') {
		p.fail(next)
		return nil, pos, false
	}
	return inner, next + 1, true
}

func (p *parser) negation(pos int) (*formula.Node, int, bool) {
	op, ok := p.matchAny(pos, notOperators)
	if !ok {
		return nil, pos, false
	}
	child, next, ok := p.factor(pos + len(op))
	if !ok {
		return nil, pos, false
	}
	return formula.Not(child), next, true
}

// ---------- Helpers ----------

// matchAny returns the first spelling in ops that starts at pos.
func (p *parser) matchAny(pos int, ops []string) (string, bool) {
	rest := p.src[pos:]
	for _, op := range ops {
		if strings.HasPrefix(rest, op) {
			return op, true
		}
	}
	return "", false
}

func (p *parser) hasByte(pos int, b byte) bool {
	return pos < len(p.src) && p.src[pos] == b
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

package formula

import "strings"

// Connective glyphs used by the canonical rendering.
const (
	AndGlyph     = "∧"
	OrGlyph      = "∨"
	ImpliesGlyph = "→"
	NotGlyph     = "¬"
)

// String renders n in canonical notation.
//
// Conjunctions and disjunctions are parenthesized unless they hold a single
// child, implications are always parenthesized, negation binds to its child
// with no space.
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	switch n.kind {
	case KindConjunction:
		renderList(sb, n.children, AndGlyph)
	case KindDisjunction:
		renderList(sb, n.children, OrGlyph)
	case KindImplication:
		sb.WriteByte('(')
		n.children[0].render(sb)
		sb.WriteString(" " + ImpliesGlyph + " ")
		n.children[1].render(sb)
		sb.WriteByte(')')
	case KindNegation:
		sb.WriteString(NotGlyph)
		n.children[0].render(sb)
	case KindVariable:
		sb.WriteString(n.name)
	case KindContradiction:
		sb.WriteString(ContradictionName)
	default:
		panic("formula: render of unknown " + n.kind.String())
	}
}

func renderList(sb *strings.Builder, children []*Node, glyph string) {
	if len(children) == 1 {
		children[0].render(sb)
		return
	}
	sb.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			sb.WriteString(" " + glyph + " ")
		}
		c.render(sb)
	}
	sb.WriteByte(')')
}

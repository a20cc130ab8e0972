// Package formula provides the propositional-logic syntax tree.
//
// A formula is a tree of *Node values. Every node has one of six kinds and is
// built bottom-up through the constructors in this file:
//
//	f := formula.Implies(formula.Var("P"), formula.Or(formula.Var("P"), formula.Var("Q")))
//	fmt.Println(f)                       // (P → (P ∨ Q))
//	props := f.Propositions()            // [P Q]
//	verdict, _ := f.IsTautology(props)   // formula.Yes
//
// Nodes are immutable once built. Each child belongs to exactly one parent, so
// a tree never shares subtrees or holds back-references.
package formula

import "fmt"

// ContradictionName is the reserved identifier for the constant false.
// No variable may carry this name.
const ContradictionName = "X"

// ContradictionGlyph is the alternative spelling of the constant false.
const ContradictionGlyph = "⊥"

// Kind identifies the variant of a Node.
type Kind uint8

// Node kinds.
const (
	KindConjunction Kind = iota + 1
	KindDisjunction
	KindImplication
	KindNegation
	KindVariable
	KindContradiction
)

var kindNames = [...]string{
	KindConjunction:   "conjunction",
	KindDisjunction:   "disjunction",
	KindImplication:   "implication",
	KindNegation:      "negation",
	KindVariable:      "variable",
	KindContradiction: "contradiction",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is a single formula node.
//
// The payload depends on the kind:
//   - conjunction, disjunction: one or more children
//   - implication: exactly two children, antecedent then consequent
//   - negation: exactly one child
//   - variable: a name
//   - contradiction: nothing
type Node struct {
	kind     Kind
	children []*Node
	name     string
}

// And builds a conjunction. It panics when called without children.
func And(children ...*Node) *Node {
	return newList(KindConjunction, children)
}

// Or builds a disjunction. It panics when called without children.
func Or(children ...*Node) *Node {
	return newList(KindDisjunction, children)
}

func newList(kind Kind, children []*Node) *Node {
	if len(children) == 0 {
		panic(fmt.Sprintf("formula: %s requires at least one child", kind))
	}
	for _, c := range children {
		mustNotBeNil(kind, c)
	}
	owned := make([]*Node, len(children))
	copy(owned, children)
	return &Node{kind: kind, children: owned}
}

// Implies builds the implication antecedent → consequent.
func Implies(antecedent, consequent *Node) *Node {
	mustNotBeNil(KindImplication, antecedent)
	mustNotBeNil(KindImplication, consequent)
	return &Node{kind: KindImplication, children: []*Node{antecedent, consequent}}
}

// Not builds the negation of child.
func Not(child *Node) *Node {
	mustNotBeNil(KindNegation, child)
	return &Node{kind: KindNegation, children: []*Node{child}}
}

// Var builds a variable. Using the reserved ContradictionName or an empty
// name is a programming error and panics.
func Var(name string) *Node {
	if name == ContradictionName {
		panic(fmt.Sprintf("formula: %q is reserved for the contradiction", name))
	}
	if name == "" {
		panic("formula: variable name must not be empty")
	}
	return &Node{kind: KindVariable, name: name}
}

// Contradiction builds the constant false.
func Contradiction() *Node {
	return &Node{kind: KindContradiction}
}

func mustNotBeNil(kind Kind, n *Node) {
	if n == nil {
		panic(fmt.Sprintf("formula: nil child in %s", kind))
	}
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the variable name, or "" for every other kind.
func (n *Node) Name() string {
	return n.name
}

// Children returns a copy of the child list.
// For an implication the antecedent comes first.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

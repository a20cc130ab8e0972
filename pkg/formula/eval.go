package formula

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnboundVariable is returned by Evaluate when the assignment lacks a
// variable referenced by the formula.
var ErrUnboundVariable = errors.New("unbound variable")

// Assignment maps variable names to truth values.
type Assignment map[string]bool

// Evaluate computes the truth value of n under a.
//
// Conjunctions stop at the first false child and disjunctions at the first
// true child. The only failure is a variable missing from a.
func (n *Node) Evaluate(a Assignment) (bool, error) {
	switch n.kind {
	case KindConjunction:
		for _, c := range n.children {
			v, err := c.Evaluate(a)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil

	case KindDisjunction:
		for _, c := range n.children {
			v, err := c.Evaluate(a)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil

	case KindImplication:
		left, err := n.children[0].Evaluate(a)
		if err != nil {
			return false, err
		}
		if !left {
			return true, nil
		}
		return n.children[1].Evaluate(a)

	case KindNegation:
		v, err := n.children[0].Evaluate(a)
		if err != nil {
			return false, err
		}
		return !v, nil

	case KindVariable:
		v, ok := a[n.name]
		if !ok {
			return false, fmt.Errorf("%w %q", ErrUnboundVariable, n.name)
		}
		return v, nil

	case KindContradiction:
		return false, nil

	default:
		return false, fmt.Errorf("formula: evaluate of unknown %s", n.kind)
	}
}

// Variables returns the set of variable names referenced by n.
func (n *Node) Variables() map[string]struct{} {
	set := make(map[string]struct{})
	n.collect(set)
	return set
}

func (n *Node) collect(set map[string]struct{}) {
	switch n.kind {
	case KindVariable:
		set[n.name] = struct{}{}
	case KindContradiction:
	default:
		for _, c := range n.children {
			c.collect(set)
		}
	}
}

// Propositions returns the distinct variable names of n in lexicographic
// order. Index c of the result is bit c of the tautology enumeration index.
func (n *Node) Propositions() []string {
	set := n.Variables()
	props := make([]string, 0, len(set))
	for name := range set {
		props = append(props, name)
	}
	sort.Strings(props)
	return props
}

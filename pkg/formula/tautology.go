package formula

import (
	"errors"
	"fmt"
)

// MaxPropositions is the largest number of distinct variables for which
// exhaustive checking is attempted (2^15 assignments).
const MaxPropositions = 15

// ErrTooManyPropositions is returned by TruthTable beyond MaxPropositions.
var ErrTooManyPropositions = errors.New("too many propositions")

// Verdict is the outcome of a tautology check.
type Verdict int

// Verdicts.
const (
	// Undetermined means the check was refused because the formula has
	// more than MaxPropositions variables.
	Undetermined Verdict = iota
	Yes
	No
)

func (v Verdict) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "too many propositions"
	}
}

// MarshalText encodes the verdict as its String form.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// IsTautology reports whether n is true under every assignment of props.
//
// props should cover every variable of n, normally the result of
// Propositions. For enumeration index i the variable props[c] takes the
// value of bit c of i. The first falsifying assignment ends the check.
//
// With incomplete props the result depends on evaluation order: a missing
// variable yields ErrUnboundVariable only if it is looked up, so a
// short-circuited assignment may still produce a verdict.
func (n *Node) IsTautology(props []string) (Verdict, error) {
	if len(props) > MaxPropositions {
		return Undetermined, nil
	}
	a := make(Assignment, len(props))
	total := 1 << len(props)
	for i := 0; i < total; i++ {
		assign(a, props, i)
		v, err := n.Evaluate(a)
		if err != nil {
			return Undetermined, fmt.Errorf("assignment %d: %w", i, err)
		}
		if !v {
			return No, nil
		}
	}
	return Yes, nil
}

func assign(a Assignment, props []string, i int) {
	for c, name := range props {
		a[name] = i>>c&1 == 1
	}
}

// Row is one line of a truth table.
type Row struct {
	Values []bool // same order as the props passed to TruthTable
	Result bool
}

// TruthTable evaluates n under every assignment of props, in the same
// order IsTautology uses.
func (n *Node) TruthTable(props []string) ([]Row, error) {
	if len(props) > MaxPropositions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPropositions, len(props), MaxPropositions)
	}
	total := 1 << len(props)
	rows := make([]Row, 0, total)
	a := make(Assignment, len(props))
	for i := 0; i < total; i++ {
		assign(a, props, i)
		v, err := n.Evaluate(a)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
		values := make([]bool, len(props))
		for c, name := range props {
			values[c] = a[name]
		}
		rows = append(rows, Row{Values: values, Result: v})
	}
	return rows, nil
}

package arg

import "fmt"

type ArityKind int

const (
	ArityImplicit ArityKind = iota
	ArityExactly
	ArityZeroOrOne
	ArityZeroOrMore
	ArityOneOrMore
)

// Arity describes how many values one argument consumes.
// Implicit consumes one value and binds it as a scalar, Exactly(n) binds a slice.
type Arity struct {
	Kind ArityKind `json:"kind"`
	N    int       `json:"n,omitempty"`
}

var (
	Implicit   = Arity{Kind: ArityImplicit, N: 1}
	ZeroOrOne  = Arity{Kind: ArityZeroOrOne}
	ZeroOrMore = Arity{Kind: ArityZeroOrMore}
	OneOrMore  = Arity{Kind: ArityOneOrMore}
)

func Exactly(n int) Arity {
	return Arity{Kind: ArityExactly, N: n}
}

// Fixed returns the number of values for bounded arities.
func (a Arity) Fixed() (int, bool) {
	switch a.Kind {
	case ArityImplicit:
		return 1, true
	case ArityExactly:
		return a.N, true
	default:
		return 0, false
	}
}

// Open reports whether the arity absorbs an unbounded run of values.
func (a Arity) Open() bool {
	return a.Kind == ArityZeroOrMore || a.Kind == ArityOneOrMore
}

// Min returns the least number of values the arity accepts.
func (a Arity) Min() int {
	switch a.Kind {
	case ArityImplicit:
		return 1
	case ArityExactly:
		return a.N
	case ArityOneOrMore:
		return 1
	default:
		return 0
	}
}

// Multiple reports whether bound values are collected into a slice.
func (a Arity) Multiple() bool {
	return a.Kind == ArityExactly || a.Open()
}

func (a Arity) String() string {
	switch a.Kind {
	case ArityExactly:
		return fmt.Sprintf("%d", a.N)
	case ArityZeroOrOne:
		return "?"
	case ArityZeroOrMore:
		return "*"
	case ArityOneOrMore:
		return "+"
	default:
		return "1"
	}
}

// Describe renders the arity for error messages, e.g. "2 values".
func (a Arity) Describe() string {
	switch a.Kind {
	case ArityExactly:
		if a.N == 1 {
			return "1 value"
		}
		return fmt.Sprintf("%d values", a.N)
	case ArityZeroOrOne:
		return "at most 1 value"
	case ArityZeroOrMore:
		return "any number of values"
	case ArityOneOrMore:
		return "at least 1 value"
	default:
		return "1 value"
	}
}

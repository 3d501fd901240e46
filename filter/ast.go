// Package filter implements the Haystack filter-expression grammar: a
// hand-written recursive-descent parser producing a small typed AST, and
// an evaluator that never errors on data — mistyped comparisons and
// broken reference chains degrade to false rather than raising.
package filter

import (
	"strings"

	"github.com/haystack-go/hscore/value"
)

// Op enumerates the operators that can appear in a Binary or Unary node.
type Op string

const (
	OpAnd   Op = "and"
	OpOr    Op = "or"
	OpEq    Op = "=="
	OpNe    Op = "!="
	OpLt    Op = "<"
	OpLe    Op = "<="
	OpGt    Op = ">"
	OpGe    Op = ">="
	OpHas   Op = "has"
	OpNot   Op = "not"
	OpLike  Op = "like"
	OpIn    Op = "in"
)

// Node is the common type of every AST node.
type Node interface {
	String() string
}

// Path is an "a->b->c" reference-hop chain. A bare tag is a Path of length 1.
type Path struct {
	Segments []string
}

func (p Path) String() string { return strings.Join(p.Segments, "->") }

// Binary is a two-operand node: "left op right". For and/or, left and
// right are themselves Nodes; for comparisons, right is a Literal.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
}

func (b Binary) String() string { return b.Left.String() + " " + string(b.Op) + " " + b.Right.String() }

// Unary is a one-operand node: "not right" or the implicit "has right".
type Unary struct {
	Op    Op
	Right Node
}

func (u Unary) String() string { return string(u.Op) + " " + u.Right.String() }

// Literal wraps a scalar or list value.Value used as the right-hand side
// of a comparison, like, or in expression.
type Literal struct {
	Value value.Value
}

func (l Literal) String() string { return l.Value.String() }

// AST is the root of a parsed filter expression.
type AST struct {
	Head Node
}

func (a AST) String() string {
	if a.Head == nil {
		return "<empty>"
	}
	return a.Head.String()
}

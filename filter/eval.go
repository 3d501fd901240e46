package filter

import (
	"strings"
	"time"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// notFound is the sentinel returned by resolvePath when a path cannot be
// fully dereferenced. It mirrors the role of Python's NOT_FOUND
// singleton: identity comparison (not equality) distinguishes "found a
// falsy value" from "path broke", so has/not reduce to a pointer check
// rather than three-valued logic.
type notFoundSentinel struct{}

func (notFoundSentinel) Kind() value.Kind       { return value.KindNull }
func (notFoundSentinel) Equal(value.Value) bool { return false }
func (notFoundSentinel) String() string         { return "NOT_FOUND" }

var notFound value.Value = notFoundSentinel{}

func isNotFound(v value.Value) bool {
	_, ok := v.(notFoundSentinel)
	return ok
}

// Index maps a Ref's name to the Dict that carries an "id" tag equal to
// that Ref, built once per grid so that a->b hop resolution is O(1).
type Index struct {
	byID map[string]value.Dict
}

// NewIndex builds a Ref-resolution index over g's rows, keyed by the
// row's "id" tag.
func NewIndex(g *grid.Grid) *Index {
	idx := &Index{byID: make(map[string]value.Dict, len(g.Rows))}
	for _, row := range g.Rows {
		idVal, ok := row.Get("id")
		if !ok {
			continue
		}
		ref, ok := idVal.(value.Ref)
		if !ok {
			continue
		}
		idx.byID[ref.Name] = row
	}
	return idx
}

func (idx *Index) resolve(ref value.Ref) (value.Dict, bool) {
	d, ok := idx.byID[ref.Name]
	return d, ok
}

// Eval applies ast to every row of g in source order, returning the
// subset of rows for which the filter evaluates true. Evaluation never
// errors: mistyped comparisons and broken ref chains simply evaluate
// false.
func Eval(ast *AST, g *grid.Grid) []value.Dict {
	idx := NewIndex(g)
	var out []value.Dict
	for _, row := range g.Rows {
		if evalNode(ast.Head, idx, row) {
			out = append(out, row)
		}
	}
	return out
}

// Matches reports whether row (drawn from g, or using idx directly)
// satisfies ast. Exposed separately from Eval so callers (e.g. the
// in-memory Provider) can test one entity at a time.
func Matches(ast *AST, idx *Index, row value.Dict) bool {
	return evalNode(ast.Head, idx, row)
}

func evalNode(node Node, idx *Index, row value.Dict) bool {
	switch n := node.(type) {
	case Unary:
		switch n.Op {
		case OpHas:
			return evalNode(n.Right, idx, row)
		case OpNot:
			return !evalNode(n.Right, idx, row)
		}
		return false
	case Binary:
		switch n.Op {
		case OpAnd:
			return evalNode(n.Left, idx, row) && evalNode(n.Right, idx, row)
		case OpOr:
			return evalNode(n.Left, idx, row) || evalNode(n.Right, idx, row)
		case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
			left := resolvePath(pathOf(n.Left), idx, row)
			right := n.Right.(Literal).Value
			return compare(n.Op, left, right)
		case OpLike:
			left := resolvePath(pathOf(n.Left), idx, row)
			right := n.Right.(Literal).Value
			return likeMatch(left, right)
		case OpIn:
			left := resolvePath(pathOf(n.Left), idx, row)
			right := n.Right.(Literal).Value
			return inList(left, right)
		}
		return false
	case Path:
		return !isNotFound(resolvePath(n, idx, row))
	default:
		return false
	}
}

// pathOf unwraps a node that is known to be (or wrap) a bare Path, as
// produced for the left operand of a comparison or the operand of "not".
func pathOf(n Node) Path {
	switch t := n.(type) {
	case Path:
		return t
	case Unary:
		if t.Op == OpHas {
			return pathOf(t.Right)
		}
	}
	return Path{}
}

// resolvePath walks a->b->c, following Ref hops through idx for every
// segment but the last, and returns notFound on any break: a missing
// tag, a non-Ref intermediate value, an unresolved Ref, or a falsy
// (Null/false) terminal value.
func resolvePath(p Path, idx *Index, row value.Dict) value.Value {
	cur := row
	for i, seg := range p.Segments {
		v, ok := cur.Get(seg)
		if !ok {
			return notFound
		}
		if i == len(p.Segments)-1 {
			if isFalsy(v) {
				return notFound
			}
			return v
		}
		ref, ok := v.(value.Ref)
		if !ok {
			return notFound
		}
		next, ok := idx.resolve(ref)
		if !ok {
			return notFound
		}
		cur = next
	}
	return notFound
}

func isFalsy(v value.Value) bool {
	switch t := v.(type) {
	case value.Null:
		return true
	case value.Bool:
		return !bool(t)
	default:
		return false
	}
}

// compare implements the typed comparison rules: same-kind numeric
// comparisons require matching units, strings order lexicographically
// by code point, datetimes order by instant, booleans are equality-only,
// and any type mismatch (including a broken path) is false rather than
// an error.
func compare(op Op, left, right value.Value) bool {
	if isNotFound(left) {
		return false
	}
	switch op {
	case OpEq:
		return left.Equal(right)
	case OpNe:
		return !left.Equal(right)
	}

	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok || l.Unit != r.Unit {
			return false
		}
		return orderedCompare(op, l.Value, r.Value)
	case value.Str:
		r, ok := right.(value.Str)
		if !ok {
			return false
		}
		return orderedCompare(op, string(l), string(r))
	case value.DateTime:
		r, ok := right.(value.DateTime)
		if !ok {
			return false
		}
		return orderedDateTimeCompare(op, l.Time, r.Time)
	default:
		return false
	}
}

type ordered interface {
	~float64 | ~string
}

func orderedCompare[T ordered](op Op, a, b T) bool {
	switch op {
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	default:
		return false
	}
}

func orderedDateTimeCompare(op Op, a, b time.Time) bool {
	switch op {
	case OpLt:
		return a.Before(b)
	case OpLe:
		return a.Before(b) || a.Equal(b)
	case OpGt:
		return a.After(b)
	case OpGe:
		return a.After(b) || a.Equal(b)
	default:
		return false
	}
}

// likeMatch implements Haystack's "*"-wildcard string match: "*" matches
// any run of characters, everything else is literal.
func likeMatch(left, right value.Value) bool {
	if isNotFound(left) {
		return false
	}
	l, ok := left.(value.Str)
	if !ok {
		return false
	}
	r, ok := right.(value.Str)
	if !ok {
		return false
	}
	return wildcardMatch(string(l), string(r))
}

func wildcardMatch(s, pattern string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return s == pattern
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	if !strings.HasSuffix(s, parts[len(parts)-1]) {
		return false
	}
	if len(parts) > 2 {
		s = s[:len(s)-len(parts[len(parts)-1])]
		for _, mid := range parts[1 : len(parts)-1] {
			idx := strings.Index(s, mid)
			if idx < 0 {
				return false
			}
			s = s[idx+len(mid):]
		}
	}
	return true
}

// inList implements the "in" one-of-list operator against a value.List literal.
func inList(left, right value.Value) bool {
	if isNotFound(left) {
		return false
	}
	list, ok := right.(value.List)
	if !ok {
		return false
	}
	for _, item := range list {
		if left.Equal(item) {
			return true
		}
	}
	return false
}

package sqlfilter

import (
	"strings"

	jsoncodec "github.com/haystack-go/hscore/codec/json"
	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/filter"
	"github.com/haystack-go/hscore/value"
)

// Limitation documents a translation that could not be expressed
// faithfully in SQL and instead compiles to a superset match. The
// caller decides whether to accept the superset (and verify candidates
// in-process) or reject the query.
type Limitation struct {
	Reason string
}

// Translate walks ast and produces a parameterised WHERE clause
// (without the leading "WHERE") over an "entity" JSON column, plus its
// bind arguments. A non-nil Limitation means the emitted clause is a
// superset match: SQLite's ban on parenthesised UNION/INTERSECT forces
// ref-hop disjunctions to degrade from an exact join into an
// unconstrained hop, verified in-process by the caller.
func Translate(ast *filter.AST, dialect Dialect) (where string, args []any, limitation *Limitation, err error) {
	t := &translator{dialect: dialect, entityCol: "entity"}
	clause, err := t.walk(ast.Head)
	if err != nil {
		return "", nil, nil, err
	}
	return clause, t.args, t.limitation, nil
}

type translator struct {
	dialect    Dialect
	entityCol  string
	args       []any
	limitation *Limitation
}

func (t *translator) walk(n filter.Node) (string, error) {
	switch node := n.(type) {
	case filter.Path:
		return t.hasClause(node), nil
	case filter.Unary:
		return t.walkUnary(node)
	case filter.Binary:
		return t.walkBinary(node)
	default:
		return "", errors.Newf("sqlfilter: unsupported node %T", n)
	}
}

func (t *translator) walkUnary(n filter.Unary) (string, error) {
	switch n.Op {
	case filter.OpHas:
		return t.walk(n.Right)
	case filter.OpNot:
		inner, err := t.walk(n.Right)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	default:
		return "", errors.Newf("sqlfilter: unsupported unary operator %q", n.Op)
	}
}

func (t *translator) walkBinary(n filter.Binary) (string, error) {
	switch n.Op {
	case filter.OpAnd:
		left, err := t.walk(n.Left)
		if err != nil {
			return "", err
		}
		right, err := t.walk(n.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + " AND " + right + ")", nil
	case filter.OpOr:
		left, err := t.walk(n.Left)
		if err != nil {
			return "", err
		}
		right, err := t.walk(n.Right)
		if err != nil {
			return "", err
		}
		if !t.dialect.ParenthesizedSetOpsAllowed() && pathCrossesRefHop(n.Left, n.Right) {
			t.limitation = &Limitation{
				Reason: "disjunction spans a ref-hop path; SQLite forbids parenthesised UNION/INTERSECT so this clause degrades to a superset match",
			}
		}
		return "(" + left + " OR " + right + ")", nil
	case filter.OpEq, filter.OpNe, filter.OpLt, filter.OpLe, filter.OpGt, filter.OpGe:
		return t.walkComparison(n)
	case filter.OpLike:
		return t.walkLike(n)
	case filter.OpIn:
		return t.walkIn(n)
	default:
		return "", errors.Newf("sqlfilter: unsupported binary operator %q", n.Op)
	}
}

// hasClause emits the "has" predicate: present and not JSON false/null.
func (t *translator) hasClause(p filter.Path) string {
	expr := t.pathExpr(p)
	return expr + " IS NOT NULL AND " + expr + " <> 'false'"
}

func (t *translator) walkComparison(n filter.Binary) (string, error) {
	path, ok := pathOf(n.Left)
	if !ok {
		return "", errors.Newf("sqlfilter: left side of %q must be a path", n.Op)
	}
	lit, ok := n.Right.(filter.Literal)
	if !ok {
		return "", errors.Newf("sqlfilter: right side of %q must be a literal", n.Op)
	}
	expr := t.pathExpr(path)
	sqlOp, err := sqlComparisonOp(n.Op)
	if err != nil {
		return "", err
	}
	t.args = append(t.args, jsoncodec.EncodeScalarSigil(lit.Value))
	return expr + " " + sqlOp + " ?", nil
}

func (t *translator) walkLike(n filter.Binary) (string, error) {
	path, ok := pathOf(n.Left)
	if !ok {
		return "", errors.Newf("sqlfilter: left side of like must be a path")
	}
	lit, ok := n.Right.(filter.Literal)
	if !ok {
		return "", errors.Newf("sqlfilter: right side of like must be a string literal")
	}
	str, ok := lit.Value.(value.Str)
	if !ok {
		return "", errors.Newf("sqlfilter: right side of like must be a string literal")
	}
	expr := t.pathExpr(path)
	pattern := "s:" + strings.ReplaceAll(string(str), "*", "%")
	t.args = append(t.args, pattern)
	return expr + " LIKE ?", nil
}

func (t *translator) walkIn(n filter.Binary) (string, error) {
	path, ok := pathOf(n.Left)
	if !ok {
		return "", errors.Newf("sqlfilter: left side of in must be a path")
	}
	lit, ok := n.Right.(filter.Literal)
	if !ok {
		return "", errors.Newf("sqlfilter: right side of in must be a list literal")
	}
	items, ok := lit.Value.(value.List)
	if !ok || len(items) == 0 {
		return "1 = 0", nil
	}
	expr := t.pathExpr(path)
	placeholders := make([]string, len(items))
	for i, item := range items {
		placeholders[i] = "?"
		t.args = append(t.args, jsoncodec.EncodeScalarSigil(item))
	}
	return expr + " IN (" + strings.Join(placeholders, ", ") + ")", nil
}

// pathExpr compiles a path into a SQL expression: a single-segment path
// is a direct json_extract; a multi-segment a->b path compiles to a
// correlated subquery that resolves the ref's "id" through the
// "entities" table (whatever table the caller queries), per the two-step
// pattern in spec.md §4.G.
func (t *translator) pathExpr(p filter.Path) string {
	if len(p.Segments) == 1 {
		return t.dialect.JSONExtract(t.entityCol, "$."+p.Segments[0])
	}

	inner := t.dialect.JSONExtract(t.entityCol, "$."+p.Segments[0])
	inner = stripRefSigil(inner)
	table := t.quotedTable()
	expr := t.dialect.JSONExtract(t.entityCol, "$."+p.Segments[len(p.Segments)-1])
	subquery := "(SELECT " + expr + " FROM " + table +
		" WHERE " + t.dialect.JSONExtract(t.entityCol, "$.id") + " = " + inner + ")"
	return subquery
}

// stripRefSigil wraps a ref-valued json_extract expression with a
// substr() call that strips the "r:" sigil prefix so it can be compared
// against a bare id column value.
func stripRefSigil(expr string) string {
	return "substr(" + expr + ", 3)"
}

func (t *translator) quotedTable() string {
	return t.dialect.QuoteIdent("entities")
}

func pathOf(n filter.Node) (filter.Path, bool) {
	switch v := n.(type) {
	case filter.Path:
		return v, true
	case filter.Unary:
		if v.Op == filter.OpHas {
			return pathOf(v.Right)
		}
	}
	return filter.Path{}, false
}

// pathCrossesRefHop reports whether either side of a disjunction
// involves a multi-segment (ref-hop) path, the case the documented
// SQLite limitation applies to.
func pathCrossesRefHop(left, right filter.Node) bool {
	return nodeCrossesRefHop(left) || nodeCrossesRefHop(right)
}

func nodeCrossesRefHop(n filter.Node) bool {
	switch v := n.(type) {
	case filter.Path:
		return len(v.Segments) > 1
	case filter.Unary:
		return nodeCrossesRefHop(v.Right)
	case filter.Binary:
		return nodeCrossesRefHop(v.Left) || nodeCrossesRefHop(v.Right)
	default:
		return false
	}
}

func sqlComparisonOp(op filter.Op) (string, error) {
	switch op {
	case filter.OpEq:
		return "=", nil
	case filter.OpNe:
		return "<>", nil
	case filter.OpLt:
		return "<", nil
	case filter.OpLe:
		return "<=", nil
	case filter.OpGt:
		return ">", nil
	case filter.OpGe:
		return ">=", nil
	default:
		return "", errors.Newf("sqlfilter: not a comparison operator: %q", op)
	}
}


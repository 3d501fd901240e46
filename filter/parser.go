package filter

import (
	"strings"

	"github.com/haystack-go/hscore/value"
	"github.com/haystack-go/hscore/zinc"
)

// Parse parses a Haystack filter expression into an AST.
//
//	filter  := or
//	or      := and ("or" and)*
//	and     := cmp ("and" cmp)*
//	cmp     := unary ( cmpOp scalar | "like" scalar | "in" list )?
//	unary   := "not" unary | "(" filter ")" | path
//	path    := id ("->" id)*
func Parse(src string) (*AST, error) {
	p := &parser{lex: newLexer(src), src: src}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind == tokEOF {
		return nil, newParseError(KindEmptyExpression, 0, src, "empty filter expression")
	}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, newParseError(KindTrailingInput, p.cur.pos, src,
			"unexpected trailing input: "+p.cur.text,
			"remove everything after the expression", "wrap the expression in parentheses")
	}
	return &AST{Head: node}, nil
}

type parser struct {
	lex *lexer
	src string
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseCmp() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	switch p.cur.kind {
	case tokCmpOp:
		op := Op(p.cur.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit, err := p.parseScalarLiteral()
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, Left: left, Right: lit}, nil
	case tokLike:
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit, err := p.parseScalarLiteral()
		if err != nil {
			return nil, err
		}
		return Binary{Op: OpLike, Left: left, Right: lit}, nil
	case tokIn:
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit, err := p.parseListLiteral()
		if err != nil {
			return nil, err
		}
		return Binary{Op: OpIn, Left: left, Right: lit}, nil
	default:
		return left, nil
	}
}

func (p *parser) parseUnary() (Node, error) {
	switch p.cur.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpNot, Right: right}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, newParseError(KindUnexpectedToken, p.cur.pos, p.src,
				"expected closing parenthesis", "add a matching ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpHas, Right: path}, nil
	}
}

func (p *parser) parsePath() (Path, error) {
	if p.cur.kind != tokIdent {
		return Path{}, newParseError(KindUnexpectedToken, p.cur.pos, p.src,
			"expected a tag name", "filter paths start with a lowercase identifier")
	}
	segments := []string{p.cur.text}
	if err := p.advance(); err != nil {
		return Path{}, err
	}
	for p.cur.kind == tokArrow {
		if err := p.advance(); err != nil {
			return Path{}, err
		}
		if p.cur.kind != tokIdent {
			return Path{}, newParseError(KindUnexpectedToken, p.cur.pos, p.src,
				"expected a tag name after '->'")
		}
		segments = append(segments, p.cur.text)
		if err := p.advance(); err != nil {
			return Path{}, err
		}
	}
	return Path{Segments: segments}, nil
}

func (p *parser) parseScalarLiteral() (Literal, error) {
	if p.cur.kind != tokScalar && p.cur.kind != tokIdent {
		return Literal{}, newParseError(KindBadScalar, p.cur.pos, p.src, "expected a scalar literal")
	}
	text := p.cur.text
	pos := p.cur.pos
	v, err := zinc.ParseScalar(text, zinc.Ver3)
	if err != nil {
		return Literal{}, newParseError(KindBadScalar, pos, p.src, "invalid scalar literal: "+text)
	}
	if err := p.advance(); err != nil {
		return Literal{}, err
	}
	return Literal{Value: v}, nil
}

func (p *parser) parseListLiteral() (Literal, error) {
	if p.cur.kind != tokList {
		return Literal{}, newParseError(KindBadScalar, p.cur.pos, p.src,
			"expected a bracketed list after 'in'", "use [a, b, c] syntax")
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(p.cur.text, "["), "]")
	pos := p.cur.pos
	var list value.List
	for _, part := range splitTopLevel(inner, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := zinc.ParseScalar(part, zinc.Ver3)
		if err != nil {
			return Literal{}, newParseError(KindBadScalar, pos, p.src, "invalid list element: "+part)
		}
		list = append(list, v)
	}
	if err := p.advance(); err != nil {
		return Literal{}, err
	}
	return Literal{Value: list}, nil
}

// splitTopLevel splits s on sep, ignoring occurrences inside quoted
// strings or backtick URIs.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	inURI := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && !inURI:
			inQuote = !inQuote
		case c == '`' && !inQuote:
			inURI = !inURI
		}
		if c == sep && !inQuote && !inURI {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	parts = append(parts, cur.String())
	return parts
}

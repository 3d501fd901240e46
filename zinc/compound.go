package zinc

import "github.com/haystack-go/hscore/value"

func (s *scanner) parseList(ver Version) (value.Value, error) {
	s.advance() // '['
	var items []value.Value
	s.skipInlineSpaces()
	if s.match(']') {
		return value.List(items), nil
	}
	for {
		s.skipInlineSpaces()
		v, err := s.parseScalar(ver)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		s.skipInlineSpaces()
		if s.match(',') {
			continue
		}
		if s.match(']') {
			break
		}
		return nil, s.errorf(KindUnexpectedToken, "expected ',' or ']' in list")
	}
	return value.List(items), nil
}

func (s *scanner) parseDict(ver Version) (value.Value, error) {
	s.advance() // '{'
	d := value.NewDict()
	s.skipInlineSpaces()
	if s.match('}') {
		return d, nil
	}
	for {
		s.skipInlineSpaces()
		name := s.readWhile(isIdentChar)
		if name == "" {
			return nil, s.errorf(KindUnexpectedToken, "expected tag name in dict literal")
		}
		s.skipInlineSpaces()
		if s.match(':') {
			s.skipInlineSpaces()
			v, err := s.parseScalar(ver)
			if err != nil {
				return nil, err
			}
			d.Set(name, v)
		} else {
			d.Set(name, value.Marker{})
		}
		s.skipInlineSpaces()
		if s.match(',') {
			continue
		}
		if s.match('}') {
			break
		}
		if isIdentStart(s.peek()) {
			continue
		}
		return nil, s.errorf(KindUnexpectedToken, "expected ',', whitespace, or '}' in dict literal")
	}
	return d, nil
}

// parseNestedGrid scans balanced "<<...>>" content and recursively
// parses it as a full Zinc grid, implementing the nested-grid sentinel.
func (s *scanner) parseNestedGrid(ver Version) (value.Value, error) {
	s.advance()
	s.advance() // "<<"
	start := s.pos
	depth := 1
	for !s.eof() {
		if s.peek() == '<' && s.peekAt(1) == '<' {
			depth++
			s.advance()
			s.advance()
			continue
		}
		if s.peek() == '>' && s.peekAt(1) == '>' {
			depth--
			if depth == 0 {
				break
			}
			s.advance()
			s.advance()
			continue
		}
		s.advance()
	}
	inner := string(s.src[start:s.pos])
	s.advance()
	s.advance() // closing ">>"
	return ParseGrid(inner)
}

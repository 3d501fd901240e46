package zinc

import (
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// ParseGrid parses a complete Zinc grid: a "ver" header line, a column
// definition line, and zero or more row lines, terminated by a blank
// line or end of input.
func ParseGrid(src string) (*grid.Grid, error) {
	s := newScanner(src)
	return s.parseGrid()
}

func (s *scanner) parseGrid() (*grid.Grid, error) {
	meta, ver, err := s.parseMetaLine()
	if err != nil {
		return nil, err
	}
	cols, err := s.parseColsLine(ver)
	if err != nil {
		return nil, err
	}
	rows, err := s.parseRows(ver, cols)
	if err != nil {
		return nil, err
	}
	return &grid.Grid{Meta: meta, Cols: cols, Rows: rows}, nil
}

func (s *scanner) parseMetaLine() (value.Dict, Version, error) {
	meta := value.NewDict()
	s.skipInlineSpaces()
	if !s.matchWord("ver") {
		return meta, Ver3, s.errorf(KindUnexpectedToken, "grid must start with a ver header")
	}
	s.skipInlineSpaces()
	if !s.match(':') {
		return meta, Ver3, s.errorf(KindUnexpectedToken, "expected ':' after ver")
	}
	s.skipInlineSpaces()
	if s.peek() != '"' {
		return meta, Ver3, s.errorf(KindUnexpectedToken, "expected quoted version string")
	}
	verStr, err := s.parseQuotedString('"')
	if err != nil {
		return meta, Ver3, err
	}
	ver, err := NearestVersion(verStr)
	if err != nil {
		return meta, Ver3, err
	}
	meta.Set("ver", value.Str(verStr))

	for {
		s.skipInlineSpaces()
		if s.eof() {
			return meta, ver, nil
		}
		if s.peek() == '\n' {
			s.advance()
			return meta, ver, nil
		}
		name := s.readWhile(isIdentChar)
		if name == "" {
			return meta, ver, s.errorf(KindUnexpectedToken, "expected metadata tag name")
		}
		if s.match(':') {
			v, err := s.parseScalar(ver)
			if err != nil {
				return meta, ver, err
			}
			meta.Set(name, v)
		} else {
			meta.Set(name, value.Marker{})
		}
	}
}

func (s *scanner) parseColsLine(ver Version) ([]grid.Column, error) {
	var cols []grid.Column
	seen := make(map[string]bool)
	for {
		s.skipInlineSpaces()
		name := s.readWhile(isIdentChar)
		if name == "" {
			return nil, s.errorf(KindUnexpectedToken, "expected a column name")
		}
		if seen[name] {
			return nil, s.errorf(KindDuplicateColumn, "duplicate column %q", name)
		}
		seen[name] = true

		colMeta := value.NewDict()
		for {
			s.skipInlineSpaces()
			if s.eof() || s.peek() == ',' || s.peek() == '\n' {
				break
			}
			tagName := s.readWhile(isIdentChar)
			if tagName == "" {
				break
			}
			if s.match(':') {
				v, err := s.parseScalar(ver)
				if err != nil {
					return nil, err
				}
				colMeta.Set(tagName, v)
			} else {
				colMeta.Set(tagName, value.Marker{})
			}
		}
		cols = append(cols, grid.Column{Name: name, Meta: colMeta})

		s.skipInlineSpaces()
		if s.match(',') {
			continue
		}
		break
	}
	s.skipInlineSpaces()
	if s.peek() == '\n' {
		s.advance()
	}
	return cols, nil
}

func (s *scanner) parseRows(ver Version, cols []grid.Column) ([]value.Dict, error) {
	var rows []value.Dict
	for !s.eof() {
		s.skipInlineSpaces()
		if s.eof() {
			break
		}
		if s.peek() == '\n' {
			s.advance()
			break
		}

		row := value.NewDict()
		for i := range cols {
			s.skipInlineSpaces()
			var v value.Value = value.Null{}
			if s.peek() != ',' && s.peek() != '\n' && !s.eof() {
				pv, err := s.parseScalar(ver)
				if err != nil {
					return nil, err
				}
				v = pv
			}
			if _, isNull := v.(value.Null); !isNull {
				row.Set(cols[i].Name, v)
			}
			s.skipInlineSpaces()
			if i < len(cols)-1 {
				if !s.match(',') {
					return nil, s.errorf(KindUnexpectedToken, "expected ',' between row cells")
				}
			}
		}
		s.skipInlineSpaces()
		if s.peek() == '\n' {
			s.advance()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

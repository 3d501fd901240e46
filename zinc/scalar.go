package zinc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/haystack-go/hscore/value"
)

// ParseScalar parses a single Zinc scalar literal in isolation, the
// same grammar used for grid cells.
func ParseScalar(src string, ver Version) (value.Value, error) {
	s := newScanner(src)
	v, err := s.parseScalar(ver)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *scanner) parseScalar(ver Version) (value.Value, error) {
	s.skipInlineSpaces()
	if s.eof() {
		return value.Null{}, nil
	}

	r := s.peek()
	switch {
	case r == '"':
		str, err := s.parseQuotedString('"')
		if err != nil {
			return nil, err
		}
		return value.Str(str), nil
	case r == '`':
		str, err := s.parseQuotedString('`')
		if err != nil {
			return nil, err
		}
		return value.Uri(str), nil
	case r == '@':
		return s.parseRef()
	case r == '[':
		return s.parseList(ver)
	case r == '{':
		return s.parseDict(ver)
	case r == '<' && s.peekAt(1) == '<':
		return s.parseNestedGrid(ver)
	case isDigit(r) || ((r == '-' || r == '+') && isDigit(s.peekAt(1))):
		return s.parseNumberOrDateTime()
	case r == '-' && s.matchWord("-INF"):
		return value.Number{Value: math.Inf(-1)}, nil
	case isIdentStart(r):
		return s.parseIdentScalar(ver)
	default:
		return nil, s.errorf(KindUnknownScalar, "unexpected character %q", r)
	}
}

func (s *scanner) matchWord(w string) bool {
	rs := []rune(w)
	for i, r := range rs {
		if s.peekAt(i) != r {
			return false
		}
	}
	for range rs {
		s.advance()
	}
	return true
}

func (s *scanner) parseIdentScalar(ver Version) (value.Value, error) {
	word := s.readWhile(isIdentChar)
	switch word {
	case "N":
		return value.Null{}, nil
	case "M":
		return value.Marker{}, nil
	case "R":
		return value.Remove{}, nil
	case "NA":
		if ver < Ver3 {
			return nil, s.errorf(KindUnknownScalar, "NA requires Zinc 3.0")
		}
		return value.NA{}, nil
	case "T":
		return value.Bool(true), nil
	case "F":
		return value.Bool(false), nil
	case "INF":
		return value.Number{Value: math.Inf(1)}, nil
	case "NaN":
		return value.Number{Value: math.NaN()}, nil
	}
	if s.peek() == '(' {
		return s.parseTaggedLiteral(word, ver)
	}
	return nil, s.errorf(KindUnknownScalar, "unrecognized scalar literal %q", word)
}

// parseTaggedLiteral handles Bin(<mime>), C(lat,lng), and XStr-style
// Type("payload") literals, all of which share the `Ident(...)` shape.
func (s *scanner) parseTaggedLiteral(tag string, ver Version) (value.Value, error) {
	s.advance() // '('
	switch tag {
	case "C":
		lat := s.readWhile(func(r rune) bool { return r != ',' })
		s.match(',')
		lng := s.readWhile(func(r rune) bool { return r != ')' })
		s.match(')')
		latF, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
		lngF, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
		if err1 != nil || err2 != nil {
			return nil, s.errorf(KindBadNumber, "bad coordinate %q,%q", lat, lng)
		}
		return value.Coord{Lat: latF, Lng: lngF}, nil
	case "Bin":
		mime := s.readWhile(func(r rune) bool { return r != ')' })
		s.match(')')
		return value.Bin{MIME: mime}, nil
	default:
		if s.peek() != '"' {
			return nil, s.errorf(KindUnexpectedToken, "expected quoted payload after %s(", tag)
		}
		payload, err := s.parseQuotedString('"')
		if err != nil {
			return nil, err
		}
		s.match(')')
		return value.XStr{Type: tag, Encoded: payload}, nil
	}
}

func (s *scanner) parseRef() (value.Value, error) {
	s.advance() // '@'
	name := s.readWhile(func(r rune) bool {
		return isIdentChar(r) || r == ':' || r == '-' || r == '.' || r == '~'
	})
	s.skipInlineSpaces()
	var dis string
	if s.peek() == '"' {
		var err error
		dis, err = s.parseQuotedString('"')
		if err != nil {
			return nil, err
		}
	}
	return value.Ref{Name: name, Dis: dis}, nil
}

func (s *scanner) parseQuotedString(quote rune) (string, error) {
	startLine, startCol := s.line, s.col
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.eof() {
			return "", newParseError(startLine, startCol, KindUnterminatedStr, "unterminated string")
		}
		r := s.advance()
		if r == quote {
			return b.String(), nil
		}
		if r == '\\' {
			unescaped, err := s.unescape(quote)
			if err != nil {
				return "", err
			}
			b.WriteString(unescaped)
			continue
		}
		b.WriteRune(r)
	}
}

func (s *scanner) unescape(quote rune) (string, error) {
	if s.eof() {
		return "", s.errorf(KindBadEscape, "dangling escape")
	}
	r := s.advance()
	switch r {
	case 'n':
		return "\n", nil
	case 'r':
		return "\r", nil
	case 't':
		return "\t", nil
	case '"':
		return "\"", nil
	case '`':
		return "`", nil
	case '\\':
		return "\\", nil
	case '$':
		return "$", nil
	case 'u':
		if s.pos+4 > len(s.src) {
			return "", s.errorf(KindBadEscape, "incomplete \\u escape")
		}
		hex := string(s.src[s.pos : s.pos+4])
		for i := 0; i < 4; i++ {
			s.advance()
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return "", s.errorf(KindBadEscape, "invalid \\u escape %q", hex)
		}
		return string(rune(n)), nil
	default:
		if r == quote {
			return string(r), nil
		}
		return "", s.errorf(KindBadEscape, "unknown escape \\%c", r)
	}
}

var unitChars = func(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '%' || r == '/' || r == '°' || r == 'Δ' || r == 'µ':
		return true
	}
	return false
}

func (s *scanner) parseNumberOrDateTime() (value.Value, error) {
	startLine, startCol := s.line, s.col
	numStr := s.readWhile(func(r rune) bool {
		return isDigit(r) || r == '-' || r == '+' || r == '.' || r == '_' || r == 'e' || r == 'E'
	})

	// Date/DateTime: YYYY-MM-DD once the first hyphen run matches that shape.
	if looksLikeDate(numStr) && s.peek() != ':' {
		return s.finishDateOrDateTime(numStr, startLine, startCol)
	}
	if s.peek() == ':' {
		return s.finishTime(numStr)
	}

	cleaned := strings.ReplaceAll(numStr, "_", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, newParseError(startLine, startCol, KindBadNumber, "invalid number %q", numStr)
	}
	unit := s.readWhile(unitChars)
	return value.Number{Value: f, Unit: unit}, nil
}

func looksLikeDate(s string) bool {
	return len(s) == 10 && s[4] == '-' && s[7] == '-'
}

func (s *scanner) finishDateOrDateTime(dateStr string, line, col int) (value.Value, error) {
	y, mo, d, err := parseDateParts(dateStr)
	if err != nil {
		return nil, newParseError(line, col, KindBadNumber, "%v", err)
	}
	if s.peek() != 'T' {
		return value.Date{Year: y, Month: mo, Day: d}, nil
	}
	s.advance() // 'T'
	timePart := s.readWhile(func(r rune) bool {
		return isDigit(r) || r == ':' || r == '.'
	})
	hh, mm, ss, ms, err := parseTimeParts(timePart)
	if err != nil {
		return nil, newParseError(line, col, KindBadNumber, "%v", err)
	}

	offset, hasOffset := s.parseTZOffset()
	s.skipInlineSpaces()
	tzName := s.readWhile(isIdentChar)
	if tzName == "" {
		return nil, newParseError(line, col, KindMissingTz, "DateTime literal is missing an explicit timezone name")
	}

	loc := time.FixedZone(tzName, offset)
	_ = hasOffset
	t := time.Date(y, time.Month(mo), d, hh, mm, ss, ms*1e6, loc)
	return value.DateTime{Time: t, TZName: tzName}, nil
}

func (s *scanner) parseTZOffset() (int, bool) {
	r := s.peek()
	if r == 'Z' {
		s.advance()
		return 0, true
	}
	if r == '+' || r == '-' {
		sign := 1
		if r == '-' {
			sign = -1
		}
		s.advance()
		hh := s.readWhile(isDigit)
		s.match(':')
		mm := s.readWhile(isDigit)
		h, _ := strconv.Atoi(hh)
		m, _ := strconv.Atoi(mm)
		return sign * (h*3600 + m*60), true
	}
	return 0, false
}

func (s *scanner) finishTime(partial string) (value.Value, error) {
	rest := s.readWhile(func(r rune) bool { return isDigit(r) || r == ':' || r == '.' })
	full := partial + rest
	hh, mm, ss, ms, err := parseTimeParts(full)
	if err != nil {
		return nil, s.errorf(KindBadNumber, "%v", err)
	}
	return value.Time{Hour: hh, Minute: mm, Second: ss, Millisecond: ms}, nil
}

func parseDateParts(s string) (y, mo, d int, err error) {
	t, e := time.Parse("2006-01-02", s)
	if e != nil {
		return 0, 0, 0, e
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

func parseTimeParts(s string) (hh, mm, ss, ms int, err error) {
	main := s
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		main = s[:idx]
		frac := s[idx+1:]
		for len(frac) < 3 {
			frac += "0"
		}
		msVal, e := strconv.Atoi(frac[:3])
		if e != nil {
			return 0, 0, 0, 0, e
		}
		ms = msVal
	}
	parts := strings.Split(main, ":")
	if len(parts) < 2 {
		return 0, 0, 0, 0, fmt.Errorf("bad time %q", s)
	}
	hh, err = strconv.Atoi(parts[0])
	if err != nil {
		return
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil {
		return
	}
	if len(parts) > 2 {
		ss, err = strconv.Atoi(parts[2])
		if err != nil {
			return
		}
	}
	return hh, mm, ss, ms, nil
}

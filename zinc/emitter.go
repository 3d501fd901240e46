package zinc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// EmitGrid renders g as Zinc text, deterministically: the same Grid
// always produces byte-identical output.
func EmitGrid(g *grid.Grid) string {
	var b strings.Builder
	ver := Ver3
	if v, ok := g.Meta.Get("ver"); ok {
		if s, ok := v.(value.Str); ok {
			if parsed, err := NearestVersion(string(s)); err == nil {
				ver = parsed
			}
		}
	}

	b.WriteString("ver:\"")
	b.WriteString(ver.String())
	b.WriteString("\"")
	for _, k := range g.Meta.Keys() {
		if k == "ver" {
			continue
		}
		v, _ := g.Meta.Get(k)
		b.WriteByte(' ')
		emitTag(&b, k, v, ver)
	}
	b.WriteByte('\n')

	for i, c := range g.Cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Name)
		for _, k := range c.Meta.Keys() {
			v, _ := c.Meta.Get(k)
			b.WriteByte(' ')
			emitTag(&b, k, v, ver)
		}
	}
	b.WriteByte('\n')

	for _, row := range g.Rows {
		for i, c := range g.Cols {
			if i > 0 {
				b.WriteByte(',')
			}
			if v, ok := row.Get(c.Name); ok {
				b.WriteString(EmitScalar(v, ver))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func emitTag(b *strings.Builder, name string, v value.Value, ver Version) {
	b.WriteString(name)
	if v.Kind() == value.KindMarker {
		return
	}
	b.WriteByte(':')
	b.WriteString(EmitScalar(v, ver))
}

// EmitScalar renders a single Value as its Zinc literal form.
func EmitScalar(v value.Value, ver Version) string {
	switch t := v.(type) {
	case value.Null:
		return "N"
	case value.Marker:
		return "M"
	case value.Remove:
		return "R"
	case value.NA:
		return "NA"
	case value.Bool:
		if bool(t) {
			return "T"
		}
		return "F"
	case value.Number:
		return emitNumber(t)
	case value.Str:
		return emitQuoted(string(t), '"')
	case value.Uri:
		return emitQuoted(string(t), '`')
	case value.Ref:
		if t.Dis != "" {
			return "@" + t.Name + " " + emitQuoted(t.Dis, '"')
		}
		return "@" + t.Name
	case value.Bin:
		return "Bin(" + t.MIME + ")"
	case value.Date:
		return t.String()
	case value.Time:
		return t.String()
	case value.DateTime:
		return t.Time.Format("2006-01-02T15:04:05.999999999-07:00") + " " + t.TZName
	case value.Coord:
		return fmt.Sprintf("C(%s,%s)", strconv.FormatFloat(t.Lat, 'f', -1, 64), strconv.FormatFloat(t.Lng, 'f', -1, 64))
	case value.XStr:
		return t.Type + "(" + emitQuoted(t.Encoded, '"') + ")"
	case value.List:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(EmitScalar(item, ver))
		}
		b.WriteByte(']')
		return b.String()
	case value.Dict:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				b.WriteByte(' ')
			}
			iv, _ := t.Get(k)
			emitTag(&b, k, iv, ver)
		}
		b.WriteByte('}')
		return b.String()
	case *grid.Grid:
		return "<<\n" + EmitGrid(t) + ">>"
	default:
		return v.String()
	}
}

func emitNumber(n value.Number) string {
	s := formatNumberValue(n.Value)
	return s + n.Unit
}

func formatNumberValue(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func emitQuoted(s string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			b.WriteString(`\$`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

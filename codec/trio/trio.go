// Package trio implements the line-oriented Trio grid codec: one
// "tagName: zincScalar" pair per line, paragraphs (entities) separated
// by a blank line or a "---" marker, and multi-line string values
// continued on following lines indented by exactly two spaces. Trio
// carries no grid-level metadata; its column set is inferred as the
// union of tags seen across all entities, in first-seen order.
package trio

import (
	"strings"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
	"github.com/haystack-go/hscore/zinc"
)

const continuationIndent = "  "

// Encode renders g as Trio text.
func Encode(g *grid.Grid) ([]byte, error) {
	var b strings.Builder
	for i, row := range g.Rows {
		if i > 0 {
			b.WriteString("---\n")
		}
		for _, c := range g.Cols {
			v, ok := row.Get(c.Name)
			if !ok {
				continue
			}
			writeTagLine(&b, c.Name, v)
		}
	}
	return []byte(b.String()), nil
}

func writeTagLine(b *strings.Builder, name string, v value.Value) {
	if v.Kind() == value.KindMarker {
		b.WriteString(name)
		b.WriteByte('\n')
		return
	}

	// A multi-line Str is written with its embedded newlines intact,
	// continuation physical lines indented by two spaces, rather than
	// through the Zinc grammar's backslash-escaped single-line form.
	if s, ok := v.(value.Str); ok && strings.Contains(string(s), "\n") {
		physLines := strings.Split(string(s), "\n")
		b.WriteString(name)
		b.WriteString(": \"")
		b.WriteString(physLines[0])
		b.WriteByte('\n')
		for i, cont := range physLines[1:] {
			b.WriteString(continuationIndent)
			b.WriteString(cont)
			if i == len(physLines)-2 {
				b.WriteString("\"")
			}
			b.WriteByte('\n')
		}
		return
	}

	literal := zinc.EmitScalar(v, zinc.Ver3)
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(literal)
	b.WriteByte('\n')
}

// Decode parses Trio text into a Grid with synthesized columns.
func Decode(data []byte) (*grid.Grid, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	paragraphs := splitParagraphs(text)

	var cols []grid.Column
	seen := make(map[string]bool)
	rows := make([]value.Dict, 0, len(paragraphs))

	for _, p := range paragraphs {
		row, err := decodeParagraph(p)
		if err != nil {
			return nil, err
		}
		for _, k := range row.Keys() {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, grid.Column{Name: k, Meta: value.NewDict()})
			}
		}
		rows = append(rows, row)
	}

	meta := value.NewDict()
	meta.Set("ver", value.Str("3.0"))
	return &grid.Grid{Meta: meta, Cols: cols, Rows: rows}, nil
}

func splitParagraphs(text string) [][]string {
	var paragraphs [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, current)
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" || trimmed == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func decodeParagraph(lines []string) (value.Dict, error) {
	row := value.NewDict()
	var pendingName string
	var pendingLiteral []string

	flushPending := func() error {
		if pendingName == "" {
			return nil
		}
		literal := strings.Join(pendingLiteral, "\n")
		v, err := zinc.ParseScalar(literal, zinc.Ver3)
		if err != nil {
			return errors.Wrap(err, "trio codec: decode tag "+pendingName)
		}
		row.Set(pendingName, v)
		pendingName = ""
		pendingLiteral = nil
		return nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, continuationIndent) && pendingName != "" {
			pendingLiteral = append(pendingLiteral, strings.TrimPrefix(line, continuationIndent))
			continue
		}
		if err := flushPending(); err != nil {
			return row, err
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			row.Set(strings.TrimSpace(line), value.Marker{})
			continue
		}
		name := strings.TrimSpace(line[:idx])
		pendingName = name
		pendingLiteral = []string{strings.TrimSpace(line[idx+1:])}
	}
	if err := flushPending(); err != nil {
		return row, err
	}
	return row, nil
}

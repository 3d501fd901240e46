// Package csv implements the lossy, deterministic CSV grid codec: one
// header row of column names, Marker rendered as "✓", Null rendered as
// an empty field, Str written as its raw text, and every other scalar
// rendered through the Zinc scalar literal grammar so decoding recovers
// the type information CSV itself cannot carry. Str values are not
// quoted, so a Str whose text is itself a Zinc literal decodes as that
// literal's type.
package csv

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
	"github.com/haystack-go/hscore/zinc"
)

const markerGlyph = "✓"

// Encode renders g as CSV text. This is a lossy format: grid-level and
// column-level metadata are dropped, and every cell is downgraded to
// its printable text form.
func Encode(g *grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := g.ColumnNames()
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}

	for _, row := range g.Rows {
		record := make([]string, len(g.Cols))
		for i, c := range g.Cols {
			v, ok := row.Get(c.Name)
			if !ok {
				record[i] = ""
				continue
			}
			record[i] = encodeCell(v)
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}

func encodeCell(v value.Value) string {
	switch t := v.(type) {
	case value.Null:
		return ""
	case value.Marker:
		return markerGlyph
	case value.Str:
		return string(t)
	default:
		return zinc.EmitScalar(t, zinc.Ver3)
	}
}

// Decode parses CSV text back into a Grid with no grid- or
// column-level metadata. Scalars are recovered by attempting the Zinc
// scalar grammar on each field, falling back to a plain Str when that
// fails — CSV carries no type information of its own.
func Decode(data []byte) (*grid.Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return &grid.Grid{Meta: value.NewDict()}, nil
	}

	header := records[0]
	cols := make([]grid.Column, len(header))
	for i, name := range header {
		cols[i] = grid.Column{Name: strings.TrimSpace(name), Meta: value.NewDict()}
	}

	rows := make([]value.Dict, 0, len(records)-1)
	for _, record := range records[1:] {
		row := value.NewDict()
		for i, field := range record {
			if i >= len(cols) {
				break
			}
			v := decodeCell(field)
			if _, isNull := v.(value.Null); isNull {
				continue
			}
			row.Set(cols[i].Name, v)
		}
		rows = append(rows, row)
	}

	meta := value.NewDict()
	meta.Set("ver", value.Str("3.0"))
	return &grid.Grid{Meta: meta, Cols: cols, Rows: rows}, nil
}

func decodeCell(field string) value.Value {
	if field == "" {
		return value.Null{}
	}
	if field == markerGlyph {
		return value.Marker{}
	}
	if v, err := zinc.ParseScalar(field, zinc.Ver3); err == nil {
		return v
	}
	return value.Str(field)
}

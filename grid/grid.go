// Package grid implements the Grid model: an ordered table of tagged
// Dicts with grid-level and column-level metadata, plus the merge/diff/
// union algebra used to version and synchronize Grids.
package grid

import (
	"fmt"
	"strings"

	"github.com/haystack-go/hscore/value"
)

// Column is a named column definition carrying its own metadata Dict
// (units, display names, and other per-column tags).
type Column struct {
	Name string
	Meta value.Dict
}

// Grid is an immutable table: grid-level metadata, an ordered column
// list, and an ordered list of row Dicts. The algebra functions return
// a new Grid rather than changing their inputs, but the result can share
// unchanged row Dicts with the Grids it was built from.
type Grid struct {
	Meta value.Dict
	Cols []Column
	Rows []value.Dict
}

// Kind, Equal, and String let *Grid satisfy value.Value, so a Grid can
// be nested inside another Grid's cell (the Zinc "<<...>>" form).
func (g *Grid) Kind() value.Kind { return value.KindGrid }

func (g *Grid) Equal(v value.Value) bool {
	o, ok := v.(*Grid)
	if !ok || o == nil {
		return false
	}
	if !g.Meta.Equal(o.Meta) || len(g.Cols) != len(o.Cols) || len(g.Rows) != len(o.Rows) {
		return false
	}
	for i := range g.Cols {
		if g.Cols[i].Name != o.Cols[i].Name || !g.Cols[i].Meta.Equal(o.Cols[i].Meta) {
			return false
		}
	}
	for i := range g.Rows {
		if !g.Rows[i].Equal(o.Rows[i]) {
			return false
		}
	}
	return true
}

func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("Grid")
	b.WriteString(g.Meta.String())
	b.WriteByte('[')
	for i, c := range g.Cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Name)
	}
	b.WriteString("] ")
	fmt.Fprintf(&b, "%d rows", len(g.Rows))
	return b.String()
}

// Column looks up a column definition by name.
func (g *Grid) Column(name string) (Column, bool) {
	for _, c := range g.Cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the declared column order.
func (g *Grid) ColumnNames() []string {
	names := make([]string, len(g.Cols))
	for i, c := range g.Cols {
		names[i] = c.Name
	}
	return names
}

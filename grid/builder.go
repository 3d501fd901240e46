package grid

import "github.com/haystack-go/hscore/value"

// Builder constructs a Grid incrementally. Build freezes the Grid; once
// built, a Grid is never mutated again — every algebra operation returns
// a new Grid instead.
type Builder struct {
	meta value.Dict
	cols []Column
	rows []value.Dict
}

// New starts a Builder, stamping the grid-level "ver" metadata tag.
func New(version string) *Builder {
	b := &Builder{meta: value.NewDict()}
	b.meta.Set("ver", value.Str(version))
	return b
}

// Meta sets a grid-level metadata tag.
func (b *Builder) Meta(key string, v value.Value) *Builder {
	b.meta.Set(key, v)
	return b
}

// AddColumn appends a column definition in declaration order.
func (b *Builder) AddColumn(name string, meta value.Dict) *Builder {
	b.cols = append(b.cols, Column{Name: name, Meta: meta})
	return b
}

// AppendRow appends a row Dict.
func (b *Builder) AppendRow(row value.Dict) *Builder {
	b.rows = append(b.rows, row)
	return b
}

// Build freezes the accumulated state into an immutable *Grid.
func (b *Builder) Build() *Grid {
	return &Grid{
		Meta: b.meta,
		Cols: append([]Column(nil), b.cols...),
		Rows: append([]value.Dict(nil), b.rows...),
	}
}

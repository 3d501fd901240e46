package provider

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/filter"
	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

// MemoryProvider is a reference Provider backed by a single in-memory
// Grid. Read is served by the filter package's evaluator; any row
// lacking an "id" tag is assigned a synthesized Ref so every row can
// participate in a->b hop resolution.
type MemoryProvider struct {
	Unimplemented
	name string
	g    *grid.Grid
}

// NewMemoryProvider wraps g, synthesizing an "id" Ref for any row that
// lacks one.
func NewMemoryProvider(name string, g *grid.Grid) *MemoryProvider {
	for i, row := range g.Rows {
		if _, ok := row.Get("id"); ok {
			continue
		}
		row.Set("id", value.Ref{Name: uuid.NewString()})
		g.Rows[i] = row
	}
	return &MemoryProvider{name: name, g: g}
}

func (p *MemoryProvider) About(context.Context) (*grid.Grid, error) {
	row := value.NewDict()
	row.Set("whoami", value.Str(p.name))
	row.Set("haystackVersion", value.Str("3.0"))
	row.Set("tz", value.Str("UTC"))
	b := grid.New("3.0")
	b.AddColumn("whoami", value.NewDict())
	b.AddColumn("haystackVersion", value.NewDict())
	b.AddColumn("tz", value.NewDict())
	b.AppendRow(row)
	return b.Build(), nil
}

func (p *MemoryProvider) Read(_ context.Context, filterExpr string, limit int, selectCols []string, _ *time.Time) (*grid.Grid, error) {
	ast, err := filter.Parse(filterExpr)
	if err != nil {
		return nil, errors.NewDomainError(errors.CategoryFilter, err, "invalid filter expression")
	}
	matched := filter.Eval(ast, p.g)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	cols := p.g.Cols
	if len(selectCols) > 0 {
		cols = make([]grid.Column, len(selectCols))
		for i, name := range selectCols {
			cols[i] = grid.Column{Name: name, Meta: value.NewDict()}
		}
	}

	b := grid.New("3.0")
	for _, c := range cols {
		b.AddColumn(c.Name, c.Meta.Clone())
	}
	for _, row := range matched {
		if len(selectCols) == 0 {
			b.AppendRow(row)
			continue
		}
		projected := value.NewDict()
		for _, name := range selectCols {
			if v, ok := row.Get(name); ok {
				projected.Set(name, v)
			}
		}
		b.AppendRow(projected)
	}
	return b.Build(), nil
}

func (p *MemoryProvider) ValuesForTag(_ context.Context, tag string) ([]value.Value, error) {
	var out []value.Value
	seen := make(map[string]bool)
	for _, row := range p.g.Rows {
		v, ok := row.Get(tag)
		if !ok {
			continue
		}
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out, nil
}

func (p *MemoryProvider) Versions(context.Context) ([]time.Time, error) {
	return nil, nil
}

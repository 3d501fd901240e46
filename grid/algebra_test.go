package grid

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/value"
)

func rowDict(id string, tags map[string]value.Value) value.Dict {
	d := value.NewDict()
	if id != "" {
		d.Set("id", value.Ref{Name: id})
	}
	for k, v := range tags {
		d.Set(k, v)
	}
	return d
}

// sameRowsByID asserts two Grids contain the same rows when compared as
// a set keyed by id, ignoring row order. The merge/diff round-trip law
// is defined over row identity, not row position, so this is the
// faithful equality check for it.
func sameRowsByID(t *testing.T, got, want []value.Dict) {
	t.Helper()
	require.Equal(t, len(want), len(got), "row count mismatch")

	index := func(rows []value.Dict) map[string]value.Dict {
		m := make(map[string]value.Dict, len(rows))
		for _, r := range rows {
			ref, ok := rowID(r)
			require.True(t, ok, "round-trip test rows must carry an id tag")
			m[ref.Name] = r
		}
		return m
	}
	gm, wm := index(got), index(want)
	var ids []string
	for id := range wm {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		gr, ok := gm[id]
		require.True(t, ok, "missing row %s", id)
		assert.True(t, gr.Equal(wm[id]), "row %s differs: got %v want %v", id, gr, wm[id])
	}
}

func TestMergeDiffRoundTrip(t *testing.T) {
	a := &Grid{
		Meta: value.NewDict(),
		Rows: []value.Dict{
			rowDict("r1", map[string]value.Value{"name": value.Str("alpha"), "site": value.Marker{}}),
			rowDict("r2", map[string]value.Value{"name": value.Str("beta")}),
			rowDict("r3", map[string]value.Value{"name": value.Str("gamma")}),
		},
	}
	b := &Grid{
		Meta: value.NewDict(),
		Rows: []value.Dict{
			rowDict("r1", map[string]value.Value{"name": value.Str("alpha-renamed")}),
			rowDict("r3", map[string]value.Value{"name": value.Str("gamma")}),
			rowDict("r4", map[string]value.Value{"name": value.Str("delta")}),
		},
	}

	patch := Diff(a, b)
	merged := Merge(a, patch)
	sameRowsByID(t, merged.Rows, b.Rows)
}

func TestMergeRemovesTombstonedTag(t *testing.T) {
	base := &Grid{
		Rows: []value.Dict{
			rowDict("r1", map[string]value.Value{"removedTag": value.Marker{}, "kept": value.Str("x")}),
		},
	}
	patchRow := value.NewDict()
	patchRow.Set("id", value.Ref{Name: "r1"})
	patchRow.Set("removedTag", value.Remove{})
	patch := &Grid{Rows: []value.Dict{patchRow}}

	merged := Merge(base, patch)
	require.Len(t, merged.Rows, 1)
	_, ok := merged.Rows[0].Get("removedTag")
	assert.False(t, ok)
	kept, ok := merged.Rows[0].Get("kept")
	assert.True(t, ok)
	assert.Equal(t, value.Str("x"), kept)
}

func TestUnionKeepsFirstOccurrenceByID(t *testing.T) {
	a := &Grid{Rows: []value.Dict{rowDict("r1", map[string]value.Value{"v": value.Str("a")})}}
	b := &Grid{Rows: []value.Dict{rowDict("r1", map[string]value.Value{"v": value.Str("b")}), rowDict("r2", nil)}}

	u := Union(a, b)
	require.Len(t, u.Rows, 2)
	v, _ := u.Rows[0].Get("v")
	assert.Equal(t, value.Str("a"), v)
}

func TestDiffColumnRemoval(t *testing.T) {
	a := []Column{{Name: "id"}, {Name: "extra"}}
	b := []Column{{Name: "id"}}
	d := diffColumns(a, b)
	require.Len(t, d, 1)
	assert.Equal(t, "extra", d[0].Name)
	_, ok := d[0].Meta.Get("remove_")
	assert.True(t, ok)
}

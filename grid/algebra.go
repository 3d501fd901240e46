package grid

import "github.com/haystack-go/hscore/value"

// rowID returns the row's "id" tag as a Ref, if present and well-formed.
func rowID(row value.Dict) (value.Ref, bool) {
	v, ok := row.Get("id")
	if !ok {
		return value.Ref{}, false
	}
	ref, ok := v.(value.Ref)
	return ref, ok
}

// diffDict returns the patch Dict such that mergeDict(a, diffDict(a,b))
// equals b: keys present in a but absent from b become value.Remove
// tombstones, keys that are new or changed in b are copied from b.
func diffDict(a, b value.Dict) value.Dict {
	out := value.NewDict()
	for _, k := range a.Keys() {
		if _, ok := b.Get(k); !ok {
			out.Set(k, value.Remove{})
		}
	}
	for _, k := range b.Keys() {
		bv, _ := b.Get(k)
		av, existed := a.Get(k)
		if !existed || !av.Equal(bv) {
			out.Set(k, bv)
		}
	}
	return out
}

// mergeDict overlays diff onto orig: a value.Remove entry deletes that
// key, any other entry overwrites or inserts it.
func mergeDict(orig, diff value.Dict) value.Dict {
	out := orig.Clone()
	for _, k := range diff.Keys() {
		dv, _ := diff.Get(k)
		if _, isRemove := dv.(value.Remove); isRemove {
			out.Del(k)
		} else {
			out.Set(k, dv)
		}
	}
	return out
}

func diffColumns(a, b []Column) []Column {
	bByName := make(map[string]Column, len(b))
	for _, c := range b {
		bByName[c.Name] = c
	}
	seen := make(map[string]bool, len(b))

	var out []Column
	for _, ac := range a {
		if bc, ok := bByName[ac.Name]; ok {
			seen[ac.Name] = true
			d := diffDict(ac.Meta, bc.Meta)
			if d.Len() > 0 {
				out = append(out, Column{Name: ac.Name, Meta: d})
			}
		} else {
			removed := value.NewDict()
			removed.Set("remove_", value.Marker{})
			out = append(out, Column{Name: ac.Name, Meta: removed})
		}
	}
	for _, bc := range b {
		if !seen[bc.Name] {
			out = append(out, bc)
		}
	}
	return out
}

func mergeColumns(orig []Column, diff []Column) []Column {
	diffByName := make(map[string]Column, len(diff))
	var diffOrder []string
	for _, c := range diff {
		diffByName[c.Name] = c
		diffOrder = append(diffOrder, c.Name)
	}

	var out []Column
	for _, oc := range orig {
		dc, ok := diffByName[oc.Name]
		if !ok {
			out = append(out, oc)
			continue
		}
		if _, removed := dc.Meta.Get("remove_"); removed {
			continue
		}
		out = append(out, Column{Name: oc.Name, Meta: mergeDict(oc.Meta, dc.Meta)})
	}

	existing := make(map[string]bool, len(out))
	for _, c := range out {
		existing[c.Name] = true
	}
	for _, name := range diffOrder {
		if existing[name] {
			continue
		}
		dc := diffByName[name]
		if _, removed := dc.Meta.Get("remove_"); removed {
			continue
		}
		out = append(out, dc)
	}
	return out
}

func diffRowsOf(aRows, bRows []value.Dict) []value.Dict {
	bByID := make(map[string]value.Dict)
	var bNoID []value.Dict
	for _, r := range bRows {
		if ref, ok := rowID(r); ok {
			bByID[ref.Name] = r
		} else {
			bNoID = append(bNoID, r)
		}
	}
	consumedNoID := make([]bool, len(bNoID))
	matchedIDs := make(map[string]bool)

	var out []value.Dict
	for _, ar := range aRows {
		if ref, ok := rowID(ar); ok {
			if br, found := bByID[ref.Name]; found {
				matchedIDs[ref.Name] = true
				d := diffDict(ar, br)
				if d.Len() > 0 {
					d.Set("id", ref)
					out = append(out, d)
				}
				continue
			}
			tomb := value.NewDict()
			tomb.Set("id", ref)
			tomb.Set("remove_", value.Marker{})
			out = append(out, tomb)
			continue
		}

		matched := false
		for i, br := range bNoID {
			if !consumedNoID[i] && ar.Equal(br) {
				consumedNoID[i] = true
				matched = true
				break
			}
		}
		if !matched {
			tomb := ar.Clone()
			tomb.Set("remove_", value.Marker{})
			out = append(out, tomb)
		}
	}

	for _, br := range bRows {
		if ref, ok := rowID(br); ok && !matchedIDs[ref.Name] {
			out = append(out, br)
		}
	}
	for i, br := range bNoID {
		if !consumedNoID[i] {
			out = append(out, br)
		}
	}
	return out
}

func mergeRowsOf(origRows []value.Dict, diffRows []value.Dict) []value.Dict {
	out := append([]value.Dict(nil), origRows...)
	byID := make(map[string]int, len(out))
	for i, r := range out {
		if ref, ok := rowID(r); ok {
			byID[ref.Name] = i
		}
	}
	removed := make(map[int]bool)

	for _, dr := range diffRows {
		if ref, ok := rowID(dr); ok {
			if idx, found := byID[ref.Name]; found {
				if _, hasRemove := dr.Get("remove_"); hasRemove {
					removed[idx] = true
				} else {
					merged := mergeDict(out[idx], dr)
					merged.Del("remove_")
					out[idx] = merged
				}
				continue
			}
			if _, hasRemove := dr.Get("remove_"); !hasRemove {
				nr := dr.Clone()
				nr.Del("remove_")
				out = append(out, nr)
				byID[ref.Name] = len(out) - 1
			}
			continue
		}

		if _, hasRemove := dr.Get("remove_"); hasRemove {
			target := dr.Clone()
			target.Del("remove_")
			for i, r := range out {
				if !removed[i] && r.Equal(target) {
					removed[i] = true
					break
				}
			}
			continue
		}
		out = append(out, dr)
	}

	result := make([]value.Dict, 0, len(out))
	for i, r := range out {
		if !removed[i] {
			result = append(result, r)
		}
	}
	return result
}

// Diff returns the patch Grid such that Merge(a, Diff(a, b)) equals b:
// the round-trip law merge/diff are inverses is the algebra's core
// invariant. Rows are matched by their "id" tag; rows without one are
// matched by full value equality against an unconsumed row on the other
// side, falling back to a tombstone/append pair when no match exists.
func Diff(a, b *Grid) *Grid {
	return &Grid{
		Meta: diffDict(a.Meta, b.Meta),
		Cols: diffColumns(a.Cols, b.Cols),
		Rows: diffRowsOf(a.Rows, b.Rows),
	}
}

// Merge applies a diff patch produced by Diff (or authored by hand) onto
// base, returning a new Grid. A value.Remove entry in a patch row or
// metadata Dict deletes that tag; a patch row carrying a "remove_" tag
// deletes the matching row, and a patch column whose metadata carries
// "remove_" deletes that column.
func Merge(base, patch *Grid) *Grid {
	return &Grid{
		Meta: mergeDict(base.Meta, patch.Meta),
		Cols: mergeColumns(base.Cols, patch.Cols),
		Rows: mergeRowsOf(base.Rows, patch.Rows),
	}
}

// Union concatenates a and b into a single Grid, keeping the first
// occurrence of any row id seen in both (a multiset union by id, not a
// merge: non-id-tagged rows are never deduplicated).
func Union(a, b *Grid) *Grid {
	seen := make(map[string]bool)
	var rows []value.Dict
	for _, r := range a.Rows {
		if ref, ok := rowID(r); ok {
			seen[ref.Name] = true
		}
		rows = append(rows, r)
	}
	for _, r := range b.Rows {
		if ref, ok := rowID(r); ok {
			if seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
		}
		rows = append(rows, r)
	}

	cols := append([]Column(nil), a.Cols...)
	existing := make(map[string]bool, len(cols))
	for _, c := range cols {
		existing[c.Name] = true
	}
	for _, c := range b.Cols {
		if !existing[c.Name] {
			cols = append(cols, c)
			existing[c.Name] = true
		}
	}

	return &Grid{Meta: a.Meta.Clone(), Cols: cols, Rows: rows}
}

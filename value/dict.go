package value

import "strings"

// Dict is an insertion-ordered tag map, the same role Haystack's
// SortableDict plays in the reference implementation: iteration order
// follows insertion order, and deleting a key leaves the relative order
// of the remaining keys untouched.
type Dict struct {
	keys []string
	vals map[string]Value
}

// NewDict returns an empty Dict ready for Set calls.
func NewDict() Dict {
	return Dict{vals: make(map[string]Value)}
}

// Set inserts or overwrites the tag named key. Overwriting an existing
// key does not change its position in iteration order.
func (d *Dict) Set(key string, v Value) {
	if d.vals == nil {
		d.vals = make(map[string]Value)
	}
	if _, exists := d.vals[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Get returns the value stored under key and whether it was present.
// A key that was never Set is reported absent; a key explicitly Set to
// Null is reported present with a Null value — the two are distinct.
func (d Dict) Get(key string) (Value, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Has reports whether key is non-Null and not explicitly false: the
// filter grammar's bare-path truthiness rule, exposed for reuse outside
// the filter package.
func (d Dict) Has(key string) bool {
	v, ok := d.vals[key]
	if !ok {
		return false
	}
	if _, isNull := v.(Null); isNull {
		return false
	}
	if b, isBool := v.(Bool); isBool && !bool(b) {
		return false
	}
	return true
}

// Del removes key, preserving the relative order of remaining keys.
func (d *Dict) Del(key string) {
	if _, ok := d.vals[key]; !ok {
		return
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the tag names in insertion order. The returned slice must
// not be mutated by the caller.
func (d Dict) Keys() []string { return d.keys }

// Len returns the number of tags in the Dict.
func (d Dict) Len() int { return len(d.keys) }

// Clone returns a deep-enough copy: a new backing map and key slice, so
// Set and Del on the clone never affect the original. The values are
// not copied: a nested Dict, List, or Grid is shared with the original.
func (d Dict) Clone() Dict {
	c := Dict{
		keys: append([]string(nil), d.keys...),
		vals: make(map[string]Value, len(d.vals)),
	}
	for k, v := range d.vals {
		c.vals[k] = v
	}
	return c
}

func (d Dict) Kind() Kind { return KindDict }

func (d Dict) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		if v := d.vals[k]; v.Kind() != KindMarker {
			b.WriteByte(':')
			b.WriteString(v.String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

func (d Dict) Equal(v Value) bool {
	o, ok := v.(Dict)
	if !ok || len(d.keys) != len(o.keys) {
		return false
	}
	for _, k := range d.keys {
		ov, ok := o.vals[k]
		if !ok {
			return false
		}
		dv := d.vals[k]
		if !valuesEqual(dv, ov) {
			return false
		}
	}
	return true
}

// valuesEqual guards against a nil interface value, which has no Equal
// method to call.
func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictPreservesInsertionOrderAfterDelete(t *testing.T) {
	d := NewDict()
	d.Set("a", Marker{})
	d.Set("b", Marker{})
	d.Set("c", Marker{})
	d.Del("b")
	assert.Equal(t, []string{"a", "c"}, d.Keys())
}

func TestDictAbsentVsExplicitNull(t *testing.T) {
	d := NewDict()
	d.Set("present", Null{})

	_, ok := d.Get("missing")
	assert.False(t, ok)

	v, ok := d.Get("present")
	assert.True(t, ok)
	assert.Equal(t, KindNull, v.Kind())
}

func TestDictHasFalsyRules(t *testing.T) {
	d := NewDict()
	d.Set("m", Marker{})
	d.Set("n", Null{})
	d.Set("f", Bool(false))
	d.Set("t", Bool(true))

	assert.True(t, d.Has("m"))
	assert.False(t, d.Has("n"))
	assert.False(t, d.Has("f"))
	assert.True(t, d.Has("t"))
	assert.False(t, d.Has("absent"))
}

func TestDictCloneIsIndependent(t *testing.T) {
	d := NewDict()
	d.Set("x", Str("1"))
	c := d.Clone()
	c.Set("y", Str("2"))

	_, ok := d.Get("y")
	assert.False(t, ok)
}

func TestDictEqual(t *testing.T) {
	a := NewDict()
	a.Set("x", Str("1"))
	b := NewDict()
	b.Set("x", Str("1"))
	assert.True(t, a.Equal(b))

	b.Set("y", Marker{})
	assert.False(t, a.Equal(b))
}

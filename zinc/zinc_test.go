package zinc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/value"
)

func TestParseScalarBasics(t *testing.T) {
	cases := []struct {
		in   string
		want value.Value
	}{
		{"N", value.Null{}},
		{"M", value.Marker{}},
		{"R", value.Remove{}},
		{"T", value.Bool(true)},
		{"F", value.Bool(false)},
		{`"hello"`, value.Str("hello")},
		{"`http://example.com`", value.Uri("http://example.com")},
		{"@site-1", value.Ref{Name: "site-1"}},
		{"123kg", value.Number{Value: 123, Unit: "kg"}},
		{"-45.5", value.Number{Value: -45.5}},
		{"2024-01-15", value.Date{Year: 2024, Month: 1, Day: 15}},
	}
	for _, c := range cases {
		got, err := ParseScalar(c.in, Ver3)
		require.NoError(t, err, "input %q", c.in)
		assert.True(t, got.Equal(c.want), "input %q: got %v want %v", c.in, got, c.want)
	}
}

func TestParseScalarInfinityAndNaN(t *testing.T) {
	pos, err := ParseScalar("INF", Ver3)
	require.NoError(t, err)
	assert.True(t, math.IsInf(pos.(value.Number).Value, 1))

	neg, err := ParseScalar("-INF", Ver3)
	require.NoError(t, err)
	assert.True(t, math.IsInf(neg.(value.Number).Value, -1))

	nanVal, err := ParseScalar("NaN", Ver3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nanVal.(value.Number).Value))
}

func TestParseScalarDateTimeRequiresTZName(t *testing.T) {
	_, err := ParseScalar("2024-01-15T10:30:00+05:00", Ver3)
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, KindMissingTz, pe.Kind)
}

func TestParseScalarDateTimeWithTZName(t *testing.T) {
	v, err := ParseScalar("2024-01-15T10:30:00-05:00 New_York", Ver3)
	require.NoError(t, err)
	dt, ok := v.(value.DateTime)
	require.True(t, ok)
	assert.Equal(t, "New_York", dt.TZName)
}

func TestParseListRequiresExplicitNull(t *testing.T) {
	v, err := ParseScalar(`[1,N,"x"]`, Ver3)
	require.NoError(t, err)
	l, ok := v.(value.List)
	require.True(t, ok)
	require.Len(t, l, 3)
	assert.Equal(t, value.KindNull, l[1].Kind())
}

func TestParseDict(t *testing.T) {
	v, err := ParseScalar(`{marker1 tag:"val"}`, Ver3)
	require.NoError(t, err)
	d, ok := v.(value.Dict)
	require.True(t, ok)
	assert.True(t, d.Has("marker1"))
	tagVal, ok := d.Get("tag")
	require.True(t, ok)
	assert.Equal(t, value.Str("val"), tagVal)
}

func TestEmitScalarRoundTrip(t *testing.T) {
	vals := []value.Value{
		value.Null{}, value.Marker{}, value.Bool(true), value.Bool(false),
		value.Number{Value: 42.5, Unit: "m"}, value.Str(`has "quotes" and \n`),
		value.Ref{Name: "r1", Dis: "Room 1"},
	}
	for _, v := range vals {
		emitted := EmitScalar(v, Ver3)
		parsed, err := ParseScalar(emitted, Ver3)
		require.NoError(t, err, "emitted %q", emitted)
		assert.True(t, v.Equal(parsed), "round trip mismatch for %v: emitted %q, reparsed %v", v, emitted, parsed)
	}
}

func TestParseAndEmitGrid(t *testing.T) {
	src := "ver:\"3.0\"\n" +
		"id,name,count\n" +
		"@a,\"Alpha\",3\n" +
		"@b,\"Beta\",N\n"
	g, err := ParseGrid(src)
	require.NoError(t, err)
	require.Len(t, g.Rows, 2)
	require.Len(t, g.Cols, 3)

	nameVal, ok := g.Rows[0].Get("name")
	require.True(t, ok)
	assert.Equal(t, value.Str("Alpha"), nameVal)

	_, hasCount := g.Rows[1].Get("count")
	assert.False(t, hasCount, "explicit N must not be stored as a present tag")

	out := EmitGrid(g)
	reparsed, err := ParseGrid(out)
	require.NoError(t, err)
	assert.Equal(t, len(g.Rows), len(reparsed.Rows))
}

func TestDuplicateColumnError(t *testing.T) {
	_, err := ParseGrid("ver:\"3.0\"\nid,id\n")
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, KindDuplicateColumn, pe.Kind)
}

package trio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	row1 := value.NewDict()
	row1.Set("id", value.Ref{Name: "r1"})
	row1.Set("dis", value.Str("Room 1"))
	row1.Set("occupied", value.Marker{})

	row2 := value.NewDict()
	row2.Set("id", value.Ref{Name: "r2"})
	row2.Set("dis", value.Str("Room 2"))

	g := &grid.Grid{
		Meta: value.NewDict(),
		Cols: []grid.Column{{Name: "id"}, {Name: "dis"}, {Name: "occupied"}},
		Rows: []value.Dict{row1, row2},
	}

	data, err := Encode(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), "---")

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Rows, 2)

	dis, ok := decoded.Rows[0].Get("dis")
	require.True(t, ok)
	assert.Equal(t, value.Str("Room 1"), dis)

	_, hasOccupied := decoded.Rows[1].Get("occupied")
	assert.False(t, hasOccupied)
}

func TestDecodeMultilineContinuation(t *testing.T) {
	text := "note: \"first line\n  second line\"\n"
	g, err := Decode([]byte(text))
	require.NoError(t, err)
	require.Len(t, g.Rows, 1)
	v, ok := g.Rows[0].Get("note")
	require.True(t, ok)
	assert.Equal(t, value.Str("first line\nsecond line"), v)
}

func TestEncodeMultilineStringRoundTrip(t *testing.T) {
	row := value.NewDict()
	row.Set("note", value.Str("first line\nsecond line\nthird line"))
	g := &grid.Grid{Cols: []grid.Column{{Name: "note"}}, Rows: []value.Dict{row}}

	data, err := Encode(g)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	v, ok := decoded.Rows[0].Get("note")
	require.True(t, ok)
	assert.Equal(t, value.Str("first line\nsecond line\nthird line"), v)
}

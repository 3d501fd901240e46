package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

func TestEncodeDecodeLossyRoundTrip(t *testing.T) {
	row := value.NewDict()
	row.Set("name", value.Str("Alpha"))
	row.Set("occupied", value.Marker{})
	row.Set("count", value.Number{Value: 3})

	g := &grid.Grid{
		Meta: value.NewDict(),
		Cols: []grid.Column{{Name: "name"}, {Name: "occupied"}, {Name: "count"}},
		Rows: []value.Dict{row},
	}

	data, err := Encode(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), "✓")

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Rows, 1)

	name, ok := decoded.Rows[0].Get("name")
	require.True(t, ok)
	assert.Equal(t, value.Str("Alpha"), name)

	marker, ok := decoded.Rows[0].Get("occupied")
	require.True(t, ok)
	assert.Equal(t, value.KindMarker, marker.Kind())

	count, ok := decoded.Rows[0].Get("count")
	require.True(t, ok)
	assert.True(t, count.Equal(value.Number{Value: 3}))
}

package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

func buildSampleGrid() *grid.Grid {
	meta := value.NewDict()
	meta.Set("ver", value.Str("3.0"))

	row := value.NewDict()
	row.Set("id", value.Ref{Name: "r1", Dis: "Room 1"})
	row.Set("temp", value.Number{Value: 21.5, Unit: "°C"})
	row.Set("occupied", value.Marker{})

	return &grid.Grid{
		Meta: meta,
		Cols: []grid.Column{{Name: "id"}, {Name: "temp"}, {Name: "occupied"}},
		Rows: []value.Dict{row},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := buildSampleGrid()
	data, err := Encode(g)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Rows, 1)

	idVal, ok := decoded.Rows[0].Get("id")
	require.True(t, ok)
	assert.True(t, idVal.Equal(value.Ref{Name: "r1", Dis: "Room 1"}))

	tempVal, ok := decoded.Rows[0].Get("temp")
	require.True(t, ok)
	assert.True(t, tempVal.Equal(value.Number{Value: 21.5, Unit: "°C"}))

	markerVal, ok := decoded.Rows[0].Get("occupied")
	require.True(t, ok)
	assert.Equal(t, value.KindMarker, markerVal.Kind())
}

func TestDecodeRemoveSigilBothVersions(t *testing.T) {
	v3, err := decodeSigilString("-:")
	require.NoError(t, err)
	assert.Equal(t, value.KindRemove, v3.Kind())

	v2, err := decodeSigilString("x:-")
	require.NoError(t, err)
	assert.Equal(t, value.KindRemove, v2.Kind())
}

package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

func buildLobbyGrid() *grid.Grid {
	row1 := value.NewDict()
	row1.Set("dis", value.Str("Lobby"))
	row1.Set("occupied", value.Marker{})

	row2 := value.NewDict()
	row2.Set("dis", value.Str("Office"))

	return &grid.Grid{
		Meta: value.NewDict(),
		Cols: []grid.Column{{Name: "dis"}, {Name: "occupied"}},
		Rows: []value.Dict{row1, row2},
	}
}

func TestMemoryProviderSynthesizesIDs(t *testing.T) {
	g := buildLobbyGrid()
	p := NewMemoryProvider("test", g)
	for _, row := range p.g.Rows {
		_, ok := row.Get("id")
		assert.True(t, ok)
	}
}

func TestMemoryProviderRead(t *testing.T) {
	p := NewMemoryProvider("test", buildLobbyGrid())
	result, err := p.Read(context.Background(), "occupied", 0, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	dis, _ := result.Rows[0].Get("dis")
	assert.Equal(t, value.Str("Lobby"), dis)
}

func TestMemoryProviderReadWithSelect(t *testing.T) {
	p := NewMemoryProvider("test", buildLobbyGrid())
	result, err := p.Read(context.Background(), "dis", 0, []string{"dis"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	_, hasOccupied := result.Rows[0].Get("occupied")
	assert.False(t, hasOccupied)
}

func TestMemoryProviderValuesForTag(t *testing.T) {
	p := NewMemoryProvider("test", buildLobbyGrid())
	vals, err := p.ValuesForTag(context.Background(), "dis")
	require.NoError(t, err)
	assert.Len(t, vals, 2)
}

func TestMemoryProviderUnsupportedCapability(t *testing.T) {
	p := NewMemoryProvider("test", buildLobbyGrid())
	_, err := p.PointWrite(context.Background(), value.Ref{Name: "x"}, 1, value.Bool(true), "test", 0)
	require.Error(t, err)
}

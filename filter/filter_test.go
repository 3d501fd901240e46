package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/grid"
	"github.com/haystack-go/hscore/value"
)

func buildRoomGrid() *grid.Grid {
	siteRow := value.NewDict()
	siteRow.Set("id", value.Ref{Name: "site1"})
	siteRow.Set("dis", value.Str("Building A"))

	room1 := value.NewDict()
	room1.Set("id", value.Ref{Name: "room1"})
	room1.Set("dis", value.Str("Lobby"))
	room1.Set("siteRef", value.Ref{Name: "site1"})
	room1.Set("area", value.Number{Value: 120, Unit: "sqft"})
	room1.Set("occupied", value.Marker{})

	room2 := value.NewDict()
	room2.Set("id", value.Ref{Name: "room2"})
	room2.Set("dis", value.Str("Office"))
	room2.Set("siteRef", value.Ref{Name: "site1"})
	room2.Set("area", value.Number{Value: 30, Unit: "sqft"})

	return &grid.Grid{
		Meta: value.NewDict(),
		Cols: []grid.Column{{Name: "id"}, {Name: "dis"}, {Name: "siteRef"}, {Name: "area"}, {Name: "occupied"}},
		Rows: []value.Dict{siteRow, room1, room2},
	}
}

func TestParseAndEvalBarePath(t *testing.T) {
	ast, err := Parse("occupied")
	require.NoError(t, err)
	g := buildRoomGrid()
	rows := Eval(ast, g)
	require.Len(t, rows, 1)
	dis, _ := rows[0].Get("dis")
	assert.Equal(t, value.Str("Lobby"), dis)
}

func TestParseAndEvalNot(t *testing.T) {
	ast, err := Parse("not occupied")
	require.NoError(t, err)
	g := buildRoomGrid()
	rows := Eval(ast, g)
	// site row and room2 both lack "occupied"
	assert.Len(t, rows, 2)
}

func TestEvalComparison(t *testing.T) {
	ast, err := Parse(`area > 50sqft`)
	require.NoError(t, err)
	g := buildRoomGrid()
	rows := Eval(ast, g)
	require.Len(t, rows, 1)
	dis, _ := rows[0].Get("dis")
	assert.Equal(t, value.Str("Lobby"), dis)
}

func TestEvalComparisonUnitMismatchIsFalseNotError(t *testing.T) {
	ast, err := Parse(`area > 50sqm`)
	require.NoError(t, err)
	g := buildRoomGrid()
	rows := Eval(ast, g)
	assert.Len(t, rows, 0)
}

func TestEvalRefHop(t *testing.T) {
	ast, err := Parse(`siteRef->dis == "Building A"`)
	require.NoError(t, err)
	g := buildRoomGrid()
	rows := Eval(ast, g)
	assert.Len(t, rows, 2)
}

func TestEvalAndOr(t *testing.T) {
	g := buildRoomGrid()

	ast, err := Parse(`occupied and area > 100sqft`)
	require.NoError(t, err)
	assert.Len(t, Eval(ast, g), 1)

	ast, err = Parse(`occupied or area > 100sqft`)
	require.NoError(t, err)
	assert.Len(t, Eval(ast, g), 1)
}

func TestEvalParens(t *testing.T) {
	g := buildRoomGrid()
	ast, err := Parse(`not (occupied or area > 100sqft)`)
	require.NoError(t, err)
	rows := Eval(ast, g)
	assert.Len(t, rows, 2)
}

func TestEvalLike(t *testing.T) {
	g := buildRoomGrid()
	ast, err := Parse(`dis like "Build*"`)
	require.NoError(t, err)
	rows := Eval(ast, g)
	require.Len(t, rows, 1)
	dis, _ := rows[0].Get("dis")
	assert.Equal(t, value.Str("Building A"), dis)
}

func TestEvalIn(t *testing.T) {
	g := buildRoomGrid()
	ast, err := Parse(`dis in ["Lobby", "Office"]`)
	require.NoError(t, err)
	rows := Eval(ast, g)
	assert.Len(t, rows, 2)
}

func TestParseEmptyExpressionError(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindEmptyExpression, pe.Kind)
}

func TestParseTrailingInputError(t *testing.T) {
	_, err := Parse("occupied )")
	require.Error(t, err)
}

func TestParseUnterminatedParen(t *testing.T) {
	_, err := Parse("(occupied")
	require.Error(t, err)
}

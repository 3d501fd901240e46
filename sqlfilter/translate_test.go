package sqlfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/filter"
)

func TestTranslateHasPredicate(t *testing.T) {
	ast, err := filter.Parse("occupied")
	require.NoError(t, err)

	where, args, limitation, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	assert.Nil(t, limitation)
	assert.Empty(t, args)
	assert.Contains(t, where, "json_extract(entity, '$.occupied')")
	assert.Contains(t, where, "IS NOT NULL")
}

func TestTranslateEquality(t *testing.T) {
	ast, err := filter.Parse(`dis == "Lobby"`)
	require.NoError(t, err)

	where, args, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "s:Lobby", args[0])
	assert.Contains(t, where, "= ?")
}

func TestTranslateAndOr(t *testing.T) {
	ast, err := filter.Parse(`occupied and area > 10sqft`)
	require.NoError(t, err)

	where, args, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Contains(t, where, "AND")
	assert.Equal(t, "n:10 sqft", args[0])
}

func TestTranslateRefHop(t *testing.T) {
	ast, err := filter.Parse(`siteRef->dis == "Building A"`)
	require.NoError(t, err)

	where, _, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	assert.Contains(t, where, "SELECT")
	assert.Contains(t, where, "entities")
}

func TestTranslateOrAcrossRefHopFlagsLimitation(t *testing.T) {
	ast, err := filter.Parse(`siteRef->dis == "Building A" or occupied`)
	require.NoError(t, err)

	_, _, limitation, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	require.NotNil(t, limitation)
	assert.Contains(t, limitation.Reason, "SQLite")
}

func TestTranslatePostgresAllowsParenthesizedOr(t *testing.T) {
	ast, err := filter.Parse(`siteRef->dis == "Building A" or occupied`)
	require.NoError(t, err)

	_, _, limitation, err := Translate(ast, PostgresDialect{})
	require.NoError(t, err)
	assert.Nil(t, limitation)
}

func TestTranslateLike(t *testing.T) {
	ast, err := filter.Parse(`dis like "Build*"`)
	require.NoError(t, err)

	where, args, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "s:Build%", args[0])
	assert.Contains(t, where, "LIKE ?")
}

func TestTranslateIn(t *testing.T) {
	ast, err := filter.Parse(`dis in ["Lobby", "Office"]`)
	require.NoError(t, err)

	where, args, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Contains(t, where, "IN (?, ?)")
}

func TestTranslateNot(t *testing.T) {
	ast, err := filter.Parse(`not occupied`)
	require.NoError(t, err)

	where, _, _, err := Translate(ast, SQLiteDialect{})
	require.NoError(t, err)
	assert.Contains(t, where, "NOT (")
}

package provider

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haystack-go/hscore/sqlfilter"
)

func TestSQLProviderRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "entity", "customer_id", "start_datetime", "end_datetime"}).
		AddRow("room1", `{"dis":"s:Lobby","occupied":"m:"}`, nil, nil, nil)
	mock.ExpectQuery("SELECT id, entity, customer_id, start_datetime, end_datetime FROM").
		WillReturnRows(rows)

	p := NewSQLProvider(db, "entities", sqlfilter.SQLiteDialect{})
	result, err := p.Read(context.Background(), "occupied", 0, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	dis, ok := result.Rows[0].Get("dis")
	require.True(t, ok)
	assert.EqualValues(t, "Lobby", dis.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLProviderAbout(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewSQLProvider(db, "entities", sqlfilter.SQLiteDialect{})
	about, err := p.About(context.Background())
	require.NoError(t, err)
	require.Len(t, about.Rows, 1)
}

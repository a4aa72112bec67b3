package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(memoryConfig("inspect"))
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	assert.True(t, TableExists(db, "test_items"))
	assert.False(t, TableExists(db, "non_existent"))
	assert.True(t, ColumnExists(db, "test_items", "name"))
	assert.False(t, ColumnExists(db, "test_items", "price"))
}

func TestProvider_Statistics(t *testing.T) {
	p, err := NewProvider([]Config{memoryConfig("local")}, nil)
	require.NoError(t, err)
	defer p.Close()

	stats, err := p.Statistics(context.Background(), "local")
	require.NoError(t, err)
	assert.True(t, stats.Connected)
	assert.Equal(t, "sqlite", stats.Driver)
	assert.NotEmpty(t, stats.Version)
	assert.NotEmpty(t, stats.ServerTime)
	assert.Empty(t, stats.Error)

	_, err = p.Statistics(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownConnection)
}

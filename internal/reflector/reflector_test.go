package reflector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panoplyio/dbsrv/internal/enginesql"
	"github.com/panoplyio/dbsrv/internal/value"
)

func TestReflect(t *testing.T) {
	engine, err := enginesql.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	_, err = engine.Exec(ctx, "CREATE TABLE zebras (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	_, err = engine.Exec(ctx, "CREATE TABLE apples (id INTEGER PRIMARY KEY, weight REAL, label BLOB)")
	require.NoError(t, err)

	tables, err := Reflect(ctx, engine)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// ordered by name
	assert.Equal(t, "apples", tables[0].Name)
	assert.Equal(t, 1, tables[0].Identity)
	assert.Equal(t, "zebras", tables[1].Name)
	assert.Equal(t, 2, tables[1].Identity)

	require.Len(t, tables[0].Columns, 3)
	assert.Equal(t, "id", tables[0].Columns[0].Name)
	assert.Equal(t, value.Integer, tables[0].Columns[0].Primitive)
	assert.Equal(t, "weight", tables[0].Columns[1].Name)
	assert.Equal(t, value.Real, tables[0].Columns[1].Primitive)
	assert.Equal(t, "label", tables[0].Columns[2].Name)
	assert.Equal(t, value.Blob, tables[0].Columns[2].Primitive)
}

func TestReflect_UnsupportedColumnType(t *testing.T) {
	engine, err := enginesql.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	ctx := context.Background()
	_, err = engine.Exec(ctx, "CREATE TABLE t (id VARCHAR(10))")
	require.NoError(t, err)

	_, err = Reflect(ctx, engine)
	require.Error(t, err)
}

package observer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panoplyio/dbsrv/internal/enginesql"
	"github.com/panoplyio/dbsrv/internal/registry"
	"github.com/panoplyio/dbsrv/internal/value"
)

func newDB(t *testing.T) *registry.Database {
	t.Helper()
	engine, err := enginesql.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return &registry.Database{ID: 1, Spec: ":memory:", Engine: engine}
}

func TestRecv_CreateTableIsEmpty(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	res, err := New(db, Query{SQL: "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModeEmpty, res.Mode)
}

func TestRecv_InsertIsMutation(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	_, err := New(db, Query{SQL: "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)

	res, err := New(db, Query{SQL: "INSERT INTO test (id,name) VALUES (1,'a')", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModeMutation, res.Mode)
	assert.Equal(t, int64(1), res.Count)
}

func TestRecv_StatementFlagZeroChangesIsEmpty(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	_, err := New(db, Query{SQL: "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)

	res, err := New(db, Query{SQL: "UPDATE test SET name = 'z' WHERE id = 999", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModeEmpty, res.Mode, "P4: statement-flag with zero changes is Empty, never Mutation")
}

func TestRecv_SingleValue(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	res, err := New(db, Query{SQL: "SELECT 1"}).Recv(ctx)
	require.NoError(t, err)
	require.Equal(t, ModeSingle, res.Mode)
	assert.Equal(t, value.NumberValue(1), res.Value)
}

func TestRecv_SingleValueFromTable(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	_, err := New(db, Query{SQL: "CREATE TABLE test (id INTEGER PRIMARY KEY, text TEXT)", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)
	_, err = New(db, Query{SQL: "INSERT INTO test (id,text) VALUES (1,'hello')", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)

	res, err := New(db, Query{SQL: "SELECT text FROM test LIMIT 1"}).Recv(ctx)
	require.NoError(t, err)
	require.Equal(t, ModeSingle, res.Mode)
	assert.Equal(t, value.StringValue("hello"), res.Value)
}

func TestRecv_Rows(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	_, err := New(db, Query{SQL: "CREATE TABLE test (id INTEGER PRIMARY KEY, text TEXT)", StatementFlag: true}).Recv(ctx)
	require.NoError(t, err)
	for _, s := range []string{
		"INSERT INTO test (id,text) VALUES (1,'hello')",
		"INSERT INTO test (id,text) VALUES (2,'hello2')",
		"INSERT INTO test (id,text) VALUES (3,'hello3')",
	} {
		_, err := New(db, Query{SQL: s, StatementFlag: true}).Recv(ctx)
		require.NoError(t, err)
	}

	var rowsSeen []Row
	var ended Result
	res, err := New(db, Query{SQL: "SELECT * FROM test"}).
		OnRow(func(r Row) { rowsSeen = append(rowsSeen, r) }).
		OnEnd(func(r Result) { ended = r }).
		Recv(ctx)
	require.NoError(t, err)

	require.Equal(t, ModeRows, res.Mode)
	require.Len(t, res.Tables, 1)
	assert.Equal(t, 1, res.Tables[0].Identity)
	require.Len(t, res.Rows, 3)
	require.Len(t, rowsSeen, 3, "onRow fires once per row, before onEnd")
	assert.Equal(t, ModeRows, ended.Mode, "onEnd receives the terminal result")

	for _, row := range res.Rows {
		assert.Len(t, row.Values, len(res.Tables[0].Columns), "P6: row completeness")
		assert.Equal(t, res.Tables[0].Identity, row.TableIdentity)
	}

	assert.Equal(t, value.NumberValue(1), res.Rows[0].Values[0])
	assert.Equal(t, value.StringValue("hello"), res.Rows[0].Values[1])
	assert.Equal(t, value.StringValue("hello2"), res.Rows[1].Values[1])
	assert.Equal(t, value.StringValue("hello3"), res.Rows[2].Values[1])
}

func TestRecv_EngineErrorBecomesErrorResultNotGoError(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	var gotErr error
	res, err := New(db, Query{SQL: "not a valid query", StatementFlag: true}).
		OnError(func(e error) { gotErr = e }).
		Recv(ctx)
	require.NoError(t, err, "engine errors become an Error result, Recv itself does not fail")
	assert.Equal(t, ModeError, res.Mode)
	assert.Error(t, gotErr)
}

func TestRecv_MissingSQLIsProtocolError(t *testing.T) {
	db := newDB(t)
	_, err := New(db, Query{SQL: ""}).Recv(context.Background())
	require.Error(t, err)
}

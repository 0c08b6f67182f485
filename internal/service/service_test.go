package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/panoplyio/dbsrv/internal/registry"
	"github.com/panoplyio/dbsrv/internal/sqlclass"
	"github.com/panoplyio/dbsrv/proto/dbsvc"
)

func newDispatcher(t *testing.T, access sqlclass.AccessLevel) *Dispatcher {
	t.Helper()
	return New(registry.New(), access)
}

func connect(t *testing.T, d *Dispatcher, name string) uint64 {
	t.Helper()
	resp, err := d.Connect(context.Background(), &dbsvc.ConnectRequest{Identifier: &dbsvc.Identifier{Name: name}})
	require.NoError(t, err)
	return resp.Connection.Token
}

func TestConnect_UnknownName(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	_, err := d.Connect(context.Background(), &dbsvc.ConnectRequest{Identifier: &dbsvc.Identifier{Name: "elsewhere"}})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQuery_UnknownConnection(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	_, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: 999},
		Query:      &dbsvc.Query{Spec: "SELECT 1"},
	})
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestQuery_SingleValue(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	resp, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "SELECT 1"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result.Single)
	assert.Equal(t, float64(1), resp.Result.Single.Value.NumberValue)
}

func TestQuery_PermissionDenied(t *testing.T) {
	d := newDispatcher(t, sqlclass.ReadOnly)
	token := connect(t, d, "default")

	_, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "CREATE TABLE t (id INTEGER)", StatementFlag: true},
	})
	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestQuery_InvalidSQL(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	_, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "not a valid query", StatementFlag: true},
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTables(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	_, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)", StatementFlag: true},
	})
	require.NoError(t, err)

	resp, err := d.Tables(context.Background(), &dbsvc.TablesRequest{Connection: &dbsvc.Connection{Token: token}})
	require.NoError(t, err)
	require.Len(t, resp.Table, 1)
	assert.Equal(t, "test", resp.Table[0].Name)
}

func TestList(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	resp, err := d.List(context.Background(), &dbsvc.ListRequest{Connection: &dbsvc.Connection{Token: token}})
	require.NoError(t, err)
	require.Len(t, resp.Database, 1)
	assert.Equal(t, "default", resp.Database[0].Name)
}

func TestDisconnect_InvalidatesToken(t *testing.T) {
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	_, err := d.Disconnect(context.Background(), &dbsvc.DisconnectRequest{Connection: &dbsvc.Connection{Token: token}})
	require.NoError(t, err)

	_, err = d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "SELECT 1"},
	})
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestConnect_NewTokenUsableImmediately(t *testing.T) {
	// P7: a newly issued token is immediately usable.
	d := newDispatcher(t, sqlclass.Admin)
	token := connect(t, d, "default")

	_, err := d.Query(context.Background(), &dbsvc.QueryRequest{
		Connection: &dbsvc.Connection{Token: token},
		Query:      &dbsvc.Query{Spec: "SELECT 1"},
	})
	require.NoError(t, err)
}

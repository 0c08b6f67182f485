// Package service implements the Service Dispatcher (component C6): the RPC
// handlers (Connect, Disconnect, Query, List, Tables, Listen) that resolve
// connections through the Connection Registry and route through the Query
// Observer and Table Reflector.
//
// The Dispatcher holds no per-connection state itself; all of it lives in
// the Registry, so a Dispatcher can serve any number of concurrent RPCs
// without synchronizing anything beyond what the Registry already does.
package service

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/panoplyio/dbsrv/internal/dberr"
	"github.com/panoplyio/dbsrv/internal/envelope"
	"github.com/panoplyio/dbsrv/internal/logging"
	"github.com/panoplyio/dbsrv/internal/observer"
	"github.com/panoplyio/dbsrv/internal/reflector"
	"github.com/panoplyio/dbsrv/internal/registry"
	"github.com/panoplyio/dbsrv/internal/sqlclass"
	"github.com/panoplyio/dbsrv/proto/dbsvc"
)

// Dispatcher implements dbsvc.DatabaseServiceServer.
type Dispatcher struct {
	dbsvc.UnimplementedDatabaseServiceServer

	registry *registry.Registry
	access   sqlclass.AccessLevel
}

// New builds a Dispatcher bound to reg, enforcing access at most `access`
// for every query it runs. Access control is coarse-grained: one level,
// derived only from query shape, governs the whole server instance, not
// any notion of per-caller identity.
func New(reg *registry.Registry, access sqlclass.AccessLevel) *Dispatcher {
	return &Dispatcher{registry: reg, access: access}
}

func (d *Dispatcher) Connect(ctx context.Context, req *dbsvc.ConnectRequest) (*dbsvc.ConnectResponse, error) {
	if req.Identifier == nil || req.Identifier.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "identifier is required")
	}

	conn, err := d.registry.ResolveOrOpen(req.Identifier.Name)
	if err != nil {
		return nil, toStatus(err)
	}

	logging.Conn(conn.Token, req.Identifier.Name).Info("connected")
	return &dbsvc.ConnectResponse{Connection: &dbsvc.Connection{Token: conn.Token}}, nil
}

func (d *Dispatcher) resolveConnection(ref *dbsvc.Connection) (*registry.Connection, error) {
	if ref == nil {
		return nil, dberr.InvalidArgument("connection is required")
	}
	req := registry.Request{}
	if ref.Name != "" {
		req.Name = &ref.Name
	} else {
		req.Token = &ref.Token
	}
	return d.registry.ResolveRequest(req)
}

func (d *Dispatcher) Query(ctx context.Context, req *dbsvc.QueryRequest) (*dbsvc.QueryResponse, error) {
	if req.Query == nil || req.Query.Spec == "" {
		return nil, status.Error(codes.InvalidArgument, "query is required")
	}

	conn, err := d.resolveConnection(req.Connection)
	if err != nil {
		return nil, toStatus(err)
	}

	db, err := d.registry.Database(conn.DatabaseID)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := d.checkAccess(req.Query.Spec); err != nil {
		return nil, toStatus(err)
	}

	log := logging.Conn(conn.Token, db.Name)

	var captured error
	q := observer.Query{SQL: req.Query.Spec, StatementFlag: req.Query.StatementFlag}
	res, protoErr := observer.New(db, q).
		OnRow(func(r observer.Row) { log.WithField("ordinal", r.Ordinal).Debug("row") }).
		OnError(func(e error) { captured = e }).
		Recv(ctx)
	if protoErr != nil {
		return nil, toStatus(protoErr)
	}
	if captured != nil {
		return nil, toStatus(captured)
	}

	return &dbsvc.QueryResponse{Result: envelope.Encode(res)}, nil
}

// checkAccess classifies spec and rejects it if it requires more access
// than this dispatcher instance permits, naming the offending statement by
// ordinal.
func (d *Dispatcher) checkAccess(spec string) error {
	stmts, err := sqlclass.Parse(spec)
	if err != nil {
		return err
	}
	if idx, denied := sqlclass.OffendingStatement(stmts, d.access); denied {
		return dberr.WithStatementIndex(
			dberr.PermissionDenied("statement requires more access than granted"), idx,
		)
	}
	return nil
}

func (d *Dispatcher) List(ctx context.Context, req *dbsvc.ListRequest) (*dbsvc.ListResponse, error) {
	if _, err := d.resolveConnection(req.Connection); err != nil {
		return nil, toStatus(err)
	}
	// the reference implementation tracks only the default database.
	return &dbsvc.ListResponse{Database: []dbsvc.Database{{Name: "default"}}}, nil
}

func (d *Dispatcher) Tables(ctx context.Context, req *dbsvc.TablesRequest) (*dbsvc.TablesResponse, error) {
	conn, err := d.resolveConnection(req.Connection)
	if err != nil {
		return nil, toStatus(err)
	}
	db, err := d.registry.Database(conn.DatabaseID)
	if err != nil {
		return nil, toStatus(err)
	}

	tables, err := reflector.Reflect(ctx, db.Engine)
	if err != nil {
		return nil, toStatus(err)
	}
	return &dbsvc.TablesResponse{Table: envelope.EncodeTables(tables)}, nil
}

// Disconnect retires a connection token explicitly. The server never retires
// a connection on its own, so this is the only way to release one.
func (d *Dispatcher) Disconnect(ctx context.Context, req *dbsvc.DisconnectRequest) (*dbsvc.DisconnectResponse, error) {
	conn, err := d.resolveConnection(req.Connection)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := d.registry.Close(conn.Token); err != nil {
		return nil, toStatus(err)
	}
	return &dbsvc.DisconnectResponse{}, nil
}

// Listen is the streaming handler: it yields exactly one empty event, then
// fails unimplemented. Extending it to carry real change events must keep
// each subscriber's stream independent, cancel cleanly on client
// disconnect, and leave backpressure to the transport.
func (d *Dispatcher) Listen(req *dbsvc.ListenRequest, stream dbsvc.DatabaseService_ListenServer) error {
	if _, err := d.resolveConnection(req.Connection); err != nil {
		return toStatus(err)
	}

	if err := stream.Send(&dbsvc.DatabaseListenEvent{Empty: true}); err != nil {
		return err
	}
	return status.Error(codes.Unimplemented, "Listen is not implemented")
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(dberr.Code(err), err.Error())
}

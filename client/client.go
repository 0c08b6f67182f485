// Package client implements the Adapter Facade (component C7): a thin
// client-side wrapper around dbsvc.DatabaseServiceClient that converts the
// typed wire responses back into the same Empty/Single/Rows/Mutation/Error
// result-mode union the server works with internally, hiding all RPC
// plumbing (connection token bookkeeping, status-to-error translation) from
// callers.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/panoplyio/dbsrv/internal/envelope"
	"github.com/panoplyio/dbsrv/internal/logging"
	"github.com/panoplyio/dbsrv/internal/observer"
	"github.com/panoplyio/dbsrv/proto/dbsvc"
)

// Adapter is a client-side handle onto one database. It is not safe for
// concurrent use by multiple goroutines, matching the single active
// statement per connection invariant the server enforces.
type Adapter struct {
	rpc             dbsvc.DatabaseServiceClient
	connectionToken uint64
	connected       bool
	name            string
}

// Dial opens a plain-text gRPC connection to addr and returns it, ready to
// be wrapped with New. TLS setup, when needed, belongs to the caller building
// the grpc.DialOption list (see cmd/dbsrv's --tls flag).
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	return grpc.DialContext(ctx, addr, opts...)
}

// New wraps an already-established grpc.ClientConn.
func New(cc *grpc.ClientConn) *Adapter {
	return &Adapter{rpc: dbsvc.NewDatabaseServiceClient(cc)}
}

// Connect resolves name to a database, opening it if this is the first
// reference, and stores the returned Connection token for subsequent calls.
// On failure, the Adapter is left (or remains) disconnected.
func (a *Adapter) Connect(ctx context.Context, name string) error {
	resp, err := a.rpc.Connect(ctx, &dbsvc.ConnectRequest{Identifier: &dbsvc.Identifier{Name: name}})
	if err != nil {
		a.connected = false
		return err
	}
	if resp.Connection == nil {
		a.connected = false
		return fmt.Errorf("client: connect returned no connection")
	}
	a.connectionToken = resp.Connection.Token
	a.name = name
	a.connected = true
	return nil
}

func (a *Adapter) connection() *dbsvc.Connection {
	return &dbsvc.Connection{Token: a.connectionToken}
}

// Exec runs spec as a statement expected to produce no rows: an unexpected
// Single or Rows envelope is downgraded to Empty rather than surfaced, and
// logged as a warning, since Exec's contract promises only "ran, or didn't."
func (a *Adapter) Exec(ctx context.Context, spec string) (observer.Result, error) {
	res, err := a.query(ctx, spec, true)
	if err != nil {
		return observer.Result{}, err
	}
	if res.Mode == observer.ModeSingle || res.Mode == observer.ModeRows {
		logging.Log.WithField("database", a.name).Warn("exec produced a row-bearing result, downgrading to empty")
		return observer.Result{Mode: observer.ModeEmpty}, nil
	}
	return res, nil
}

// Query runs spec and returns the full result-mode union. The server reports
// query-level failures (engine errors, permission denial) as RPC errors,
// which are returned as err; a ModeError value is returned only when the
// wire envelope itself has ok=false or is missing.
func (a *Adapter) Query(ctx context.Context, spec string) (observer.Result, error) {
	return a.query(ctx, spec, false)
}

func (a *Adapter) query(ctx context.Context, spec string, statementFlag bool) (observer.Result, error) {
	if !a.connected {
		return observer.Result{}, fmt.Errorf("client: not connected")
	}
	resp, err := a.rpc.Query(ctx, &dbsvc.QueryRequest{
		Connection: a.connection(),
		Query:      &dbsvc.Query{Spec: spec, StatementFlag: statementFlag},
	})
	if err != nil {
		return observer.Result{}, err
	}
	return envelope.Decode(resp.Result), nil
}

// Disconnect retires this adapter's connection token. The Adapter is left
// disconnected and must be Connect'd again before further use.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if !a.connected {
		return fmt.Errorf("client: not connected")
	}
	_, err := a.rpc.Disconnect(ctx, &dbsvc.DisconnectRequest{Connection: a.connection()})
	if err != nil {
		return err
	}
	a.connected = false
	return nil
}

// Tables returns the connected database's current table catalog, reflected
// fresh on every call (component C5 makes no freshness guarantee beyond
// "as of this call").
func (a *Adapter) Tables(ctx context.Context) ([]observer.TableDescriptor, error) {
	if !a.connected {
		return nil, fmt.Errorf("client: not connected")
	}
	resp, err := a.rpc.Tables(ctx, &dbsvc.TablesRequest{Connection: a.connection()})
	if err != nil {
		return nil, err
	}
	return envelope.DecodeTables(resp.Table), nil
}

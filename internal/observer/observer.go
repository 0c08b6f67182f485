// Package observer implements the Query Observer (component C4): executes
// one parsed statement against a Database handle, classifies the outcome
// into a result mode, dispatches per-row/on-end/on-error callbacks in
// registration order, and produces a terminal Result.
//
// Callers build an Observer with New, register zero or more OnRow/OnEnd/
// OnError callbacks, then call Recv once to run the statement and drain
// the callbacks in order before returning the terminal Result.
package observer

import (
	"context"

	"google.golang.org/grpc/codes"

	"github.com/panoplyio/dbsrv/internal/dberr"
	"github.com/panoplyio/dbsrv/internal/enginesql"
	"github.com/panoplyio/dbsrv/internal/registry"
	"github.com/panoplyio/dbsrv/internal/value"
)

// Query is the request the Observer executes: a raw SQL spec and a flag
// asserting the caller expects no row-producing result.
type Query struct {
	SQL           string
	StatementFlag bool
}

// Mode discriminates the cases of the server-internal Query Result union.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeSingle
	ModeRows
	ModeMutation
	ModeError
)

// TableDescriptor is a response-scoped table descriptor: identities start at
// 1 and are local to one Result, never stable across queries.
type TableDescriptor struct {
	Identity int
	Name     string
	Columns  []value.ColumnSpec
}

// Row is one row within a Rows result.
type Row struct {
	TableIdentity int
	Ordinal       int
	Values        []value.Value
}

// Result is the server-internal Query Result union, produced before wire
// encoding (component C8 translates it to the wire envelope).
type Result struct {
	Mode Mode

	// ModeSingle
	Value value.Value

	// ModeRows
	Tables []TableDescriptor
	Rows   []Row

	// ModeMutation
	Count int64

	// ModeError
	Message string
	Code    codes.Code
}

type rowCallback func(Row)
type endCallback func(Result)
type errorCallback func(error)

// Observer is bound to one Database handle and one Query. Registration
// methods return the Observer for chaining; Recv is the terminal operation.
type Observer struct {
	db    *registry.Database
	query Query

	onRow   []rowCallback
	onEnd   []endCallback
	onError []errorCallback
}

func New(db *registry.Database, q Query) *Observer {
	return &Observer{db: db, query: q}
}

// OnRow registers a callback fired once per decoded row, in row order.
func (o *Observer) OnRow(cb func(Row)) *Observer {
	o.onRow = append(o.onRow, cb)
	return o
}

// OnEnd registers a callback fired once, after the last per-row callback,
// with the terminal Result. Not fired if OnError fires first.
func (o *Observer) OnEnd(cb func(Result)) *Observer {
	o.onEnd = append(o.onEnd, cb)
	return o
}

// OnError registers a callback fired once on engine or decode failure,
// before Recv returns the Error result. Precludes OnEnd.
func (o *Observer) OnError(cb func(error)) *Observer {
	o.onError = append(o.onError, cb)
	return o
}

// Recv executes the query to completion and returns the terminal Result.
// It never returns a non-nil error for engine or decode failures — those
// become an Error Result — but does return an error for protocol-level
// preconditions (an empty query spec).
func (o *Observer) Recv(ctx context.Context) (Result, error) {
	if o.query.SQL == "" {
		return Result{}, dberr.InvalidArgument("query spec is missing")
	}

	if o.query.StatementFlag {
		return o.recvExec(ctx)
	}
	return o.recvQuery(ctx)
}

func (o *Observer) recvExec(ctx context.Context) (Result, error) {
	changes, err := o.db.Engine.Exec(ctx, o.query.SQL)
	if err != nil {
		return o.fail(err), nil
	}

	var res Result
	if changes > 0 {
		res = Result{Mode: ModeMutation, Count: changes}
	} else {
		res = Result{Mode: ModeEmpty}
	}
	o.succeed(res)
	return res, nil
}

func (o *Observer) recvQuery(ctx context.Context) (Result, error) {
	rows, err := o.db.Engine.All(ctx, o.query.SQL)
	if err != nil {
		return o.fail(err), nil
	}

	cols := make([]value.ColumnSpec, len(rows.Columns))
	for i, name := range rows.Columns {
		prim := value.Unspecified
		if i < len(rows.ColumnTypes) && rows.ColumnTypes[i] != "" {
			if p, err := value.ParsePrimitive(rows.ColumnTypes[i]); err == nil {
				prim = p
			}
		}
		cols[i] = value.ColumnSpec{Ordinal: i, Name: name, Primitive: prim}
	}

	// Single-value detection (P5): exactly one column, exactly one row.
	if len(cols) == 1 && len(rows.Cells) == 1 {
		v, err := value.Decode(cols[0], rows.Cells[0][0])
		if err != nil {
			return o.fail(err), nil
		}
		res := Result{Mode: ModeSingle, Value: v}
		o.succeed(res)
		return res, nil
	}

	table := TableDescriptor{Identity: 1, Columns: cols}
	resultRows := make([]Row, 0, len(rows.Cells))
	for ordinal, cells := range rows.Cells {
		values := make([]value.Value, len(cols))
		for i, cell := range cells {
			v, err := value.Decode(cols[i], cell)
			if err != nil {
				return o.fail(err), nil
			}
			values[i] = v
		}
		row := Row{TableIdentity: table.Identity, Ordinal: ordinal, Values: values}
		resultRows = append(resultRows, row)
		for _, cb := range o.onRow {
			cb(row)
		}
	}

	res := Result{Mode: ModeRows, Tables: []TableDescriptor{table}, Rows: resultRows}
	o.succeed(res)
	return res, nil
}

func (o *Observer) succeed(res Result) {
	for _, cb := range o.onEnd {
		cb(res)
	}
}

func (o *Observer) fail(err error) Result {
	for _, cb := range o.onError {
		cb(err)
	}
	return Result{Mode: ModeError, Message: err.Error(), Code: dberr.Code(err)}
}

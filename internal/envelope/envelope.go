// Package envelope implements the Result Envelope (component C8): a
// bidirectional, order-preserving translator between the server-internal
// Query Result union (internal/observer.Result) and the wire DatabaseResult
// message.
package envelope

import (
	"google.golang.org/grpc/codes"

	"github.com/panoplyio/dbsrv/internal/observer"
	"github.com/panoplyio/dbsrv/internal/value"
	"github.com/panoplyio/dbsrv/proto/dbsvc"
)

// Encode translates a server-internal Result into its wire DatabaseResult.
func Encode(res observer.Result) *dbsvc.DatabaseResult {
	if res.Mode == observer.ModeError {
		return &dbsvc.DatabaseResult{
			OK:           false,
			ErrorMessage: res.Message,
			ErrorCode:    res.Code.String(),
		}
	}

	out := &dbsvc.DatabaseResult{OK: true}
	switch res.Mode {
	case observer.ModeEmpty:
		out.Kind = dbsvc.DatabaseResultKindEmpty
	case observer.ModeSingle:
		out.Kind = dbsvc.DatabaseResultKindSingle
		dv := encodeValue(res.Value)
		out.Single = &dv
	case observer.ModeMutation:
		out.Kind = dbsvc.DatabaseResultKindMutation
		out.Mutation = &dbsvc.Mutation{RowsModified: res.Count}
	case observer.ModeRows:
		out.Kind = dbsvc.DatabaseResultKindResultSet
		out.ResultSet = &dbsvc.ResultSet{
			Tables: encodeTables(res.Tables),
			Rows:   encodeRows(res.Rows),
		}
	}
	return out
}

// Decode is Encode's inverse: a wire DatabaseResult with ok=false becomes an
// Error Result.
func Decode(res *dbsvc.DatabaseResult) observer.Result {
	if res == nil || !res.OK {
		r := observer.Result{Mode: observer.ModeError}
		if res != nil {
			r.Message = res.ErrorMessage
			r.Code = codeFromString(res.ErrorCode)
		}
		return r
	}

	switch res.Kind {
	case dbsvc.DatabaseResultKindEmpty:
		return observer.Result{Mode: observer.ModeEmpty}
	case dbsvc.DatabaseResultKindSingle:
		var v value.Value
		if res.Single != nil {
			v = decodeValue(*res.Single)
		}
		return observer.Result{Mode: observer.ModeSingle, Value: v}
	case dbsvc.DatabaseResultKindMutation:
		var count int64
		if res.Mutation != nil {
			count = res.Mutation.RowsModified
		}
		return observer.Result{Mode: observer.ModeMutation, Count: count}
	case dbsvc.DatabaseResultKindResultSet:
		rs := res.ResultSet
		if rs == nil {
			return observer.Result{Mode: observer.ModeRows}
		}
		return observer.Result{
			Mode:   observer.ModeRows,
			Tables: decodeTables(rs.Tables),
			Rows:   decodeRows(rs.Rows),
		}
	default:
		return observer.Result{Mode: observer.ModeEmpty}
	}
}

func encodeValue(v value.Value) dbsvc.DatabaseValue {
	wv := &dbsvc.Value{}
	switch v.Kind {
	case value.Null:
		wv.Kind = dbsvc.ValueKindNull
	case value.String:
		wv.Kind = dbsvc.ValueKindString
		wv.StringValue = v.Str
	case value.Number:
		wv.Kind = dbsvc.ValueKindNumber
		wv.NumberValue = v.Num
	case value.Bool:
		wv.Kind = dbsvc.ValueKindBool
		wv.BoolValue = v.Bool
	}
	return dbsvc.DatabaseValue{Kind: dbsvc.DatabaseValueKindValue, Value: wv}
}

func decodeValue(dv dbsvc.DatabaseValue) value.Value {
	switch dv.Kind {
	case dbsvc.DatabaseValueKindEmpty:
		return value.NullValue()
	case dbsvc.DatabaseValueKindReal:
		return value.NumberValue(dv.Real)
	case dbsvc.DatabaseValueKindBlob:
		// raw-byte wire case; this implementation never emits it (see
		// dbsvc.proto), but decode it losslessly as a string of bytes if a
		// future adapter does.
		return value.StringValue(string(dv.Blob))
	case dbsvc.DatabaseValueKindValue:
		if dv.Value == nil {
			return value.NullValue()
		}
		switch dv.Value.Kind {
		case dbsvc.ValueKindNull:
			return value.NullValue()
		case dbsvc.ValueKindString:
			return value.StringValue(dv.Value.StringValue)
		case dbsvc.ValueKindNumber:
			return value.NumberValue(dv.Value.NumberValue)
		case dbsvc.ValueKindBool:
			return value.BoolValue(dv.Value.BoolValue)
		}
	}
	return value.NullValue()
}

func encodeColumns(cols []value.ColumnSpec) []dbsvc.ColumnSpec {
	out := make([]dbsvc.ColumnSpec, len(cols))
	for i, c := range cols {
		out[i] = dbsvc.ColumnSpec{
			Ordinal:   int32(c.Ordinal),
			Name:      c.Name,
			Primitive: encodePrimitive(c.Primitive),
		}
	}
	return out
}

func decodeColumns(cols []dbsvc.ColumnSpec) []value.ColumnSpec {
	out := make([]value.ColumnSpec, len(cols))
	for i, c := range cols {
		out[i] = value.ColumnSpec{
			Ordinal:   int(c.Ordinal),
			Name:      c.Name,
			Primitive: decodePrimitive(c.Primitive),
		}
	}
	return out
}

func encodePrimitive(p value.Primitive) dbsvc.Primitive {
	switch p {
	case value.Text:
		return dbsvc.Primitive_TEXT
	case value.Integer:
		return dbsvc.Primitive_INTEGER
	case value.Real:
		return dbsvc.Primitive_REAL
	case value.Blob:
		return dbsvc.Primitive_BLOB
	default:
		return dbsvc.Primitive_UNSPECIFIED
	}
}

func decodePrimitive(p dbsvc.Primitive) value.Primitive {
	switch p {
	case dbsvc.Primitive_TEXT:
		return value.Text
	case dbsvc.Primitive_INTEGER:
		return value.Integer
	case dbsvc.Primitive_REAL:
		return value.Real
	case dbsvc.Primitive_BLOB:
		return value.Blob
	default:
		return value.Unspecified
	}
}

// EncodeTables translates Table Reflector output into its wire form, used
// directly by the Tables RPC handler (which has no Query Result to wrap).
func EncodeTables(tables []observer.TableDescriptor) []dbsvc.TableDescriptor {
	return encodeTables(tables)
}

func encodeTables(tables []observer.TableDescriptor) []dbsvc.TableDescriptor {
	out := make([]dbsvc.TableDescriptor, len(tables))
	for i, t := range tables {
		out[i] = dbsvc.TableDescriptor{
			Identity: int32(t.Identity),
			Name:     t.Name,
			Columns:  encodeColumns(t.Columns),
		}
	}
	return out
}

// DecodeTables translates the wire form of a table catalog back into
// Table Reflector output, used directly by the client adapter's Tables call
// (which has no Query Result to unwrap).
func DecodeTables(tables []dbsvc.TableDescriptor) []observer.TableDescriptor {
	return decodeTables(tables)
}

func decodeTables(tables []dbsvc.TableDescriptor) []observer.TableDescriptor {
	out := make([]observer.TableDescriptor, len(tables))
	for i, t := range tables {
		out[i] = observer.TableDescriptor{
			Identity: int(t.Identity),
			Name:     t.Name,
			Columns:  decodeColumns(t.Columns),
		}
	}
	return out
}

func encodeRows(rows []observer.Row) []dbsvc.Row {
	out := make([]dbsvc.Row, len(rows))
	for i, r := range rows {
		values := make([]dbsvc.DatabaseValue, len(r.Values))
		for j, v := range r.Values {
			values[j] = encodeValue(v)
		}
		out[i] = dbsvc.Row{
			TableIdentity: int32(r.TableIdentity),
			Ordinal:       int32(r.Ordinal),
			Values:        values,
		}
	}
	return out
}

func decodeRows(rows []dbsvc.Row) []observer.Row {
	out := make([]observer.Row, len(rows))
	for i, r := range rows {
		values := make([]value.Value, len(r.Values))
		for j, v := range r.Values {
			values[j] = decodeValue(v)
		}
		out[i] = observer.Row{
			TableIdentity: int(r.TableIdentity),
			Ordinal:       int(r.Ordinal),
			Values:        values,
		}
	}
	return out
}

func codeFromString(s string) codes.Code {
	for c := codes.OK; c <= codes.Unauthenticated; c++ {
		if c.String() == s {
			return c
		}
	}
	return codes.Unknown
}

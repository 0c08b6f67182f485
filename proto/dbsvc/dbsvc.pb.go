// Package dbsvc holds the wire types described by dbsvc.proto. This file is
// a hand-authored stand-in for protoc-gen-go output, kept deliberately close
// to what that schema would generate. See DESIGN.md for the codec this repo
// uses to carry these types over google.golang.org/grpc without a full
// protobuf-go code generation pass.
package dbsvc

// Primitive mirrors the Primitive enum in dbsvc.proto.
type Primitive int32

const (
	Primitive_UNSPECIFIED Primitive = 0
	Primitive_TEXT        Primitive = 1
	Primitive_INTEGER     Primitive = 2
	Primitive_REAL        Primitive = 3
	Primitive_BLOB        Primitive = 4
)

func (p Primitive) String() string {
	switch p {
	case Primitive_TEXT:
		return "TEXT"
	case Primitive_INTEGER:
		return "INTEGER"
	case Primitive_REAL:
		return "REAL"
	case Primitive_BLOB:
		return "BLOB"
	default:
		return "UNSPECIFIED"
	}
}

// Value is the general-purpose tagged union: exactly one of the fields below
// is set, selected by ValueKind.
type ValueKind int32

const (
	ValueKindNull ValueKind = iota
	ValueKindString
	ValueKindNumber
	ValueKindBool
)

type Value struct {
	Kind        ValueKind `json:"kind"`
	StringValue string    `json:"string_value,omitempty"`
	NumberValue float64   `json:"number_value,omitempty"`
	BoolValue   bool      `json:"bool_value,omitempty"`
}

// DatabaseValueKind selects the outer case of DatabaseValue.
type DatabaseValueKind int32

const (
	DatabaseValueKindValue DatabaseValueKind = iota
	DatabaseValueKindBlob
	DatabaseValueKindEmpty
	DatabaseValueKindReal
)

// DatabaseValue is the outer envelope around a single cell. "Blob" carries
// raw bytes directly; this implementation never populates it — BLOB columns
// are projected through Value.StringValue as base64 (see internal/value) —
// but the case is kept for schema completeness.
type DatabaseValue struct {
	Kind  DatabaseValueKind `json:"kind"`
	Value *Value            `json:"value,omitempty"`
	Blob  []byte            `json:"blob,omitempty"`
	Real  float64           `json:"real,omitempty"`
}

type ColumnSpec struct {
	Ordinal   int32     `json:"ordinal"`
	Name      string    `json:"name,omitempty"`
	Primitive Primitive `json:"primitive,omitempty"`
}

type TableDescriptor struct {
	Identity int32        `json:"identity"`
	Name     string       `json:"name,omitempty"`
	Columns  []ColumnSpec `json:"columns,omitempty"`
}

type Row struct {
	TableIdentity int32           `json:"table_identity"`
	Ordinal       int32           `json:"ordinal"`
	Values        []DatabaseValue `json:"values,omitempty"`
}

type ResultSet struct {
	Tables []TableDescriptor `json:"tables,omitempty"`
	Rows   []Row             `json:"rows,omitempty"`
}

type Mutation struct {
	RowsModified int64 `json:"rows_modified"`
}

// DatabaseResultKind selects which case of the `result` oneof is populated.
type DatabaseResultKind int32

const (
	DatabaseResultKindEmpty DatabaseResultKind = iota
	DatabaseResultKindSingle
	DatabaseResultKindMutation
	DatabaseResultKindResultSet
)

// DatabaseResult is the single result envelope every Query response
// carries.
type DatabaseResult struct {
	OK           bool               `json:"ok"`
	Kind         DatabaseResultKind `json:"kind"`
	Single       *DatabaseValue     `json:"single,omitempty"`
	Mutation     *Mutation          `json:"mutation,omitempty"`
	ResultSet    *ResultSet         `json:"resultset,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	ErrorCode    string             `json:"error_code,omitempty"`
}

type Identifier struct {
	Name string `json:"name,omitempty"`
}

// Connection names a connection either by a prior Token or, inline, by
// database Name (resolved via the Connection Registry's resolve-or-open
// path). Exactly one should be set.
type Connection struct {
	Token uint64 `json:"token,omitempty"`
	Name  string `json:"name,omitempty"`
}

type ConnectRequest struct {
	Identifier *Identifier `json:"identifier,omitempty"`
}

type ConnectResponse struct {
	Connection *Connection `json:"connection,omitempty"`
}

type Query struct {
	Spec          string `json:"spec,omitempty"`
	StatementFlag bool   `json:"statement_flag,omitempty"`
}

type QueryRequest struct {
	Connection *Connection `json:"connection,omitempty"`
	Query      *Query      `json:"query,omitempty"`
}

type QueryResponse struct {
	Result *DatabaseResult `json:"result,omitempty"`
}

type ListRequest struct {
	Connection *Connection `json:"connection,omitempty"`
}

type Database struct {
	Name string `json:"name,omitempty"`
}

type ListResponse struct {
	Database []Database `json:"database,omitempty"`
}

type TablesRequest struct {
	Connection *Connection `json:"connection,omitempty"`
}

type TablesResponse struct {
	Table []TableDescriptor `json:"table,omitempty"`
}

// DisconnectRequest retires a connection token explicitly.
type DisconnectRequest struct {
	Connection *Connection `json:"connection,omitempty"`
}

type DisconnectResponse struct{}

type ListenRequest struct {
	Connection *Connection `json:"connection,omitempty"`
}

type DatabaseListenEvent struct {
	Empty bool `json:"empty"`
}

// Package value implements the codec that coerces engine-native cell values
// into the protocol's typed Value model (component C1 of the database
// service spec). It converts in that direction only: there is no function
// turning a Value back into an engine-native value.
//
// The codec is table-driven by the column's declared primitive type and is
// pure: it holds no state and never mutates its inputs.
package value

import (
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/panoplyio/dbsrv/internal/dberr"
)

// Primitive is one of the declared SQL column types this service
// understands.
type Primitive int

const (
	// Unspecified means the column carries no declared type; the codec
	// infers a representation from the runtime value instead.
	Unspecified Primitive = iota
	Text
	Integer
	Real
	Blob
)

// primitiveNames maps the closed set of declared-type strings accepted from
// the engine's catalog to a Primitive. Any other string is rejected.
var primitiveNames = map[string]Primitive{
	"TEXT":    Text,
	"INTEGER": Integer,
	"REAL":    Real,
	"BLOB":    Blob,
}

func (p Primitive) String() string {
	switch p {
	case Text:
		return "TEXT"
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Blob:
		return "BLOB"
	default:
		return "UNSPECIFIED"
	}
}

// ParsePrimitive translates a declared column-type string from the engine's
// catalog into a Primitive. It fails loudly on any string outside the closed
// set TEXT/INTEGER/REAL/BLOB.
func ParsePrimitive(s string) (Primitive, error) {
	p, ok := primitiveNames[s]
	if !ok {
		return Unspecified, dberr.InvalidArgument("unsupported column type %q", s)
	}
	return p, nil
}

// ColumnSpec describes one column: its ordinal position, optional name, and
// optional declared primitive type. It's threaded through every decode call
// so error messages can name the offending column.
type ColumnSpec struct {
	Ordinal   int
	Name      string
	Primitive Primitive
}

// Kind discriminates the cases of the protocol Value union.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
)

// Value is the protocol's typed value model: a tagged union of null, string,
// number (double-precision), and bool. BLOB cells are represented as
// base64-encoded strings (see Decode), not as a distinct Kind — there is no
// separate byte-carrying case at this layer.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

func NullValue() Value          { return Value{Kind: Null} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: Number, Num: n} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, Bool: b} }

// Equal reports whether two Values are semantically equal: same Kind and
// same payload for that Kind.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case String:
		return v.Str == o.Str
	case Number:
		return v.Num == o.Num
	case Bool:
		return v.Bool == o.Bool
	default:
		return false
	}
}

// Decode coerces a single engine-native cell into a Value, per the column's
// declared primitive type. A nil cell always yields Null regardless of
// declared type; Decode never fails for nil.
func Decode(col ColumnSpec, native interface{}) (Value, error) {
	if native == nil {
		return NullValue(), nil
	}

	switch col.Primitive {
	case Text:
		return decodeText(native), nil
	case Integer:
		return decodeInteger(col, native)
	case Real:
		return decodeReal(col, native)
	case Blob:
		return decodeBlob(col, native)
	default:
		return decodeUnspecified(col, native)
	}
}

func decodeText(native interface{}) Value {
	switch v := native.(type) {
	case string:
		return StringValue(v)
	case []byte:
		return StringValue(string(v))
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

func decodeInteger(col ColumnSpec, native interface{}) (Value, error) {
	switch v := native.(type) {
	case int64:
		return NumberValue(float64(v)), nil
	case int32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	case *big.Int:
		f := new(big.Float).SetInt(v)
		n, _ := f.Float64()
		return NumberValue(n), nil
	case float64:
		// some drivers surface integer columns as float64; accept only
		// when it carries no fractional part.
		if v == float64(int64(v)) {
			return NumberValue(v), nil
		}
		return Value{}, decodeErr(col, "INTEGER", native)
	default:
		return Value{}, decodeErr(col, "INTEGER", native)
	}
}

func decodeReal(col ColumnSpec, native interface{}) (Value, error) {
	switch v := native.(type) {
	case float64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(float64(v)), nil
	case int64:
		return NumberValue(float64(v)), nil
	case int32:
		return NumberValue(float64(v)), nil
	case int:
		return NumberValue(float64(v)), nil
	default:
		return Value{}, decodeErr(col, "REAL", native)
	}
}

func decodeBlob(col ColumnSpec, native interface{}) (Value, error) {
	b, ok := native.([]byte)
	if !ok {
		return Value{}, decodeErr(col, "BLOB", native)
	}
	return StringValue(base64.StdEncoding.EncodeToString(b)), nil
}

func decodeUnspecified(col ColumnSpec, native interface{}) (Value, error) {
	switch v := native.(type) {
	case string:
		return StringValue(v), nil
	case []byte:
		return StringValue(string(v)), nil
	case int64, int32, int, float64, float32:
		return decodeReal(col, native)
	case bool:
		return BoolValue(v), nil
	default:
		return Value{}, decodeErr(col, "UNSPECIFIED", native)
	}
}

func decodeErr(col ColumnSpec, declared string, native interface{}) error {
	return dberr.Internal(
		"column %d (%s): cannot coerce %T into %s",
		col.Ordinal, col.Name, native, declared,
	)
}

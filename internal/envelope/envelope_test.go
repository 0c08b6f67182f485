package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"

	"github.com/panoplyio/dbsrv/internal/observer"
	"github.com/panoplyio/dbsrv/internal/value"
)

func TestRoundTrip_Empty(t *testing.T) {
	res := observer.Result{Mode: observer.ModeEmpty}
	got := Decode(Encode(res))
	assert.Equal(t, res.Mode, got.Mode)
}

func TestRoundTrip_Single(t *testing.T) {
	res := observer.Result{Mode: observer.ModeSingle, Value: value.StringValue("hello")}
	got := Decode(Encode(res))
	assert.Equal(t, observer.ModeSingle, got.Mode)
	assert.True(t, res.Value.Equal(got.Value))
}

func TestRoundTrip_SingleNull(t *testing.T) {
	res := observer.Result{Mode: observer.ModeSingle, Value: value.NullValue()}
	got := Decode(Encode(res))
	assert.Equal(t, observer.ModeSingle, got.Mode)
	assert.True(t, got.Value.Equal(value.NullValue()))
}

func TestRoundTrip_Mutation(t *testing.T) {
	res := observer.Result{Mode: observer.ModeMutation, Count: 3}
	got := Decode(Encode(res))
	assert.Equal(t, observer.ModeMutation, got.Mode)
	assert.Equal(t, int64(3), got.Count)
}

func TestRoundTrip_Rows(t *testing.T) {
	res := observer.Result{
		Mode: observer.ModeRows,
		Tables: []observer.TableDescriptor{
			{Identity: 1, Columns: []value.ColumnSpec{
				{Ordinal: 0, Name: "id", Primitive: value.Integer},
				{Ordinal: 1, Name: "text", Primitive: value.Text},
			}},
		},
		Rows: []observer.Row{
			{TableIdentity: 1, Ordinal: 0, Values: []value.Value{value.NumberValue(1), value.StringValue("a")}},
			{TableIdentity: 1, Ordinal: 1, Values: []value.Value{value.NumberValue(2), value.StringValue("b")}},
		},
	}
	got := Decode(Encode(res))
	assert.Equal(t, observer.ModeRows, got.Mode)
	assert.Len(t, got.Tables, 1)
	assert.Len(t, got.Rows, 2)
	assert.True(t, got.Rows[0].Values[1].Equal(value.StringValue("a")))
}

func TestEncode_Error(t *testing.T) {
	res := observer.Result{Mode: observer.ModeError, Message: "boom", Code: codes.Internal}
	wire := Encode(res)
	assert.False(t, wire.OK)
	assert.Equal(t, "boom", wire.ErrorMessage)

	got := Decode(wire)
	assert.Equal(t, observer.ModeError, got.Mode)
	assert.Equal(t, codes.Internal, got.Code)
}

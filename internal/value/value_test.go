package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(p Primitive) ColumnSpec {
	return ColumnSpec{Ordinal: 0, Name: "c", Primitive: p}
}

func TestDecode_Null(t *testing.T) {
	for _, p := range []Primitive{Text, Integer, Real, Blob, Unspecified} {
		v, err := Decode(col(p), nil)
		require.NoError(t, err)
		assert.Equal(t, Null, v.Kind)
	}
}

func TestDecode_Text(t *testing.T) {
	v, err := Decode(col(Text), "hello")
	require.NoError(t, err)
	assert.True(t, v.Equal(StringValue("hello")))

	v, err = Decode(col(Text), int64(42))
	require.NoError(t, err)
	assert.True(t, v.Equal(StringValue("42")))
}

func TestDecode_Integer(t *testing.T) {
	v, err := Decode(col(Integer), int64(7))
	require.NoError(t, err)
	assert.True(t, v.Equal(NumberValue(7)))

	_, err = Decode(col(Integer), true)
	require.Error(t, err)

	_, err = Decode(col(Integer), "7")
	require.Error(t, err)
}

func TestDecode_Real(t *testing.T) {
	v, err := Decode(col(Real), 3.25)
	require.NoError(t, err)
	assert.True(t, v.Equal(NumberValue(3.25)))

	_, err = Decode(col(Real), "3.25")
	require.Error(t, err)
}

func TestDecode_Blob(t *testing.T) {
	v, err := Decode(col(Blob), []byte("hi"))
	require.NoError(t, err)
	assert.True(t, v.Equal(StringValue("aGk=")))

	_, err = Decode(col(Blob), "not bytes")
	require.Error(t, err)
}

func TestDecode_Unspecified(t *testing.T) {
	v, err := Decode(col(Unspecified), "s")
	require.NoError(t, err)
	assert.Equal(t, String, v.Kind)

	v, err = Decode(col(Unspecified), int64(9))
	require.NoError(t, err)
	assert.Equal(t, Number, v.Kind)

	_, err = Decode(col(Unspecified), struct{}{})
	require.Error(t, err)
}

func TestParsePrimitive(t *testing.T) {
	cases := map[string]Primitive{
		"TEXT":    Text,
		"INTEGER": Integer,
		"REAL":    Real,
		"BLOB":    Blob,
	}
	for s, want := range cases {
		got, err := ParsePrimitive(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePrimitive("VARCHAR")
	require.Error(t, err)
}

// TestRoundTrip covers the decode side of P3: every accepted native value
// decodes to the expected Value, with BLOB canonically becoming its base64
// string, and decoding the same input twice yields equal Values.
func TestRoundTrip(t *testing.T) {
	cases := []struct {
		p      Primitive
		native interface{}
		want   Value
	}{
		{Text, "abc", StringValue("abc")},
		{Integer, int64(5), NumberValue(5)},
		{Real, 1.5, NumberValue(1.5)},
		{Blob, []byte{0xde, 0xad}, StringValue("3q0=")},
	}
	for _, c := range cases {
		v, err := Decode(col(c.p), c.native)
		require.NoError(t, err)
		assert.True(t, v.Equal(c.want))

		// re-decode the same native input is idempotent
		v2, err := Decode(col(c.p), c.native)
		require.NoError(t, err)
		assert.True(t, v.Equal(v2))
	}
}

package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "OK", Format(NewSimpleString("OK")))
	assert.Equal(t, "(error) ERR boom", Format(NewSimpleError("ERR boom")))
	assert.Equal(t, "(integer) 42", Format(NewInteger(42)))
	assert.Equal(t, `"a\r\nb"`, Format(NewBulkStringFromString("a\r\nb")))
	assert.Equal(t, "(nil)", Format(NullBulkString{}))
	assert.Equal(t, "(nil)", Format(NullArray{}))
	assert.Equal(t, "(nil)", Format(Null{}))
	assert.Equal(t, "(true)", Format(NewBoolean(true)))
	assert.Equal(t, "(double) 1.5", Format(NewDouble(1.5)))
	assert.Equal(t, "(empty array)", Format(NewArray()))
	assert.Equal(t, "(empty set)", Format(NewSet()))
	assert.Equal(t, "(empty hash)", Format(NewMap()))
}

func TestFormatNested(t *testing.T) {
	f := NewArray(
		NewBulkStringFromString("a"),
		NewArray(NewInteger(1), NewInteger(2)),
	)
	expected := "1) \"a\"\n" +
		"2) 1) (integer) 1\n" +
		"   2) (integer) 2"
	assert.Equal(t, expected, Format(f))
}

func TestFormatMap(t *testing.T) {
	m := NewMap()
	m.Set("proto", NewInteger(3))
	m.Set("id", NewInteger(7))

	expected := "1# \"id\" => (integer) 7\n" +
		"2# \"proto\" => (integer) 3"
	assert.Equal(t, expected, Format(m))
}

func TestFormatRaw(t *testing.T) {
	m := NewMap()
	m.Set("k", NewBulkStringFromString("v"))

	f := NewArray(NewSimpleString("OK"), NewInteger(1), m, NullBulkString{})
	assert.Equal(t, "OK\n1\nk\nv\n", FormatRaw(f))
}

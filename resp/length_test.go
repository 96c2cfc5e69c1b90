package resp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectLength(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix byte
		length int
	}{
		{"simple string", "+OK\r\n", TypeSimple, 5},
		{"simple string with trailing frame", "+OK\r\n+NEXT\r\n", TypeSimple, 5},
		{"error", "-ERR x\r\n", TypeError, 8},
		{"integer", ":-12\r\n", TypeInteger, 6},
		{"boolean", "#t\r\n", TypeBoolean, 4},
		{"double", ",1.5\r\n", TypeDouble, 6},
		{"null", "_\r\n", TypeNull, 3},
		{"bulk string", "$5\r\nhello\r\n", TypeBlob, 11},
		{"bulk string with crlf payload", "$2\r\n\r\n\r\n", TypeBlob, 8},
		{"null bulk string", "$-1\r\n", TypeBlob, 5},
		{"null bulk string with trailing frame", "$-1\r\n:1\r\n", TypeBlob, 5},
		{"array", "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n", TypeArray, 22},
		{"empty array", "*0\r\n", TypeArray, 4},
		{"null array", "*-1\r\n", TypeArray, 5},
		{"nested array", "*2\r\n*1\r\n:1\r\n:2\r\n", TypeArray, 16},
		{"set", "~2\r\n+a\r\n+b\r\n", TypeSet, 12},
		{"map counts pairs", "%1\r\n+k\r\n+v\r\n", TypeMap, 12},
		{"map with trailing frame", "%1\r\n+k\r\n+v\r\n+next\r\n", TypeMap, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ExpectLength([]byte(tt.input), tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.length, n)
		})
	}
}

func TestExpectLengthNotComplete(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix byte
	}{
		{"empty", "", TypeSimple},
		{"marker only", "+", TypeSimple},
		{"missing lf", "+OK\r", TypeSimple},
		{"integer without crlf", ":12", TypeInteger},
		{"bulk header only", "$5\r\n", TypeBlob},
		{"bulk short body", "$5\r\nhel", TypeBlob},
		{"bulk missing terminator", "$5\r\nhello", TypeBlob},
		{"bulk partial header", "$1", TypeBlob},
		{"array missing element", "*2\r\n:1\r\n", TypeArray},
		{"array partial element", "*2\r\n:1\r\n$3\r\nfo", TypeArray},
		{"nested partial", "*1\r\n*1\r\n+OK", TypeArray},
		{"map missing value", "%1\r\n+k\r\n", TypeMap},
		{"set missing element", "~1\r\n", TypeSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpectLength([]byte(tt.input), tt.prefix)
			assert.ErrorIs(t, err, ErrNotComplete)
			assert.False(t, IsFatal(err))
		})
	}
}

func TestExpectLengthInvalidLength(t *testing.T) {
	_, err := ExpectLength([]byte("$abc\r\n"), TypeBlob)
	require.ErrorIs(t, err, ErrInvalidFrameLength)
	var respErr *Error
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "abc", respErr.Text)

	_, err = ExpectLength([]byte("$-2\r\n"), TypeBlob)
	require.ErrorIs(t, err, ErrInvalidFrameLength)
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, int64(-2), respErr.Length)
	assert.Equal(t, "invalid frame length: -2", err.Error())

	_, err = ExpectLength([]byte("*x\r\n"), TypeArray)
	assert.ErrorIs(t, err, ErrInvalidFrameLength)

	_, err = ExpectLength([]byte("%-5\r\n"), TypeMap)
	assert.ErrorIs(t, err, ErrInvalidFrameLength)

	for _, in := range []string{"$+3\r\nabc\r\n", "*+1\r\n:1\r\n", "%+0\r\n", "~+2\r\n"} {
		_, err = FrameLength([]byte(in))
		require.ErrorIs(t, err, ErrInvalidFrameLength, in)
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, in[1:3], respErr.Text)
	}

	// A bad nested header fails the whole aggregate.
	_, err = ExpectLength([]byte("*1\r\n$-3\r\n"), TypeArray)
	assert.ErrorIs(t, err, ErrInvalidFrameLength)
}

func TestExpectLengthInvalidType(t *testing.T) {
	_, err := ExpectLength([]byte("+OK\r\n"), TypeInteger)
	assert.ErrorIs(t, err, ErrInvalidFrameType)

	_, err = ExpectLength([]byte("!3\r\nerr\r\n"), '!')
	assert.ErrorIs(t, err, ErrInvalidFrameType)

	_, err = ExpectLength([]byte("*1\r\n?\r\n"), TypeArray)
	assert.ErrorIs(t, err, ErrInvalidFrameType)
}

func TestExpectLengthDoesNotMutate(t *testing.T) {
	input := []byte("*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n")
	snapshot := append([]byte(nil), input...)

	for i := 0; i < 3; i++ {
		n, err := ExpectLength(input, TypeArray)
		require.NoError(t, err)
		assert.Equal(t, len(input), n)
	}
	assert.Equal(t, snapshot, input)
}

func TestExpectLengthHugeDeclaredLength(t *testing.T) {
	_, err := ExpectLength([]byte("$9223372036854775807\r\nabc"), TypeBlob)
	assert.ErrorIs(t, err, ErrNotComplete)

	_, err = ExpectLength([]byte("*9223372036854775807\r\n:1\r\n"), TypeArray)
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestFrameLength(t *testing.T) {
	n, err := FrameLength([]byte(":1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = FrameLength(nil)
	assert.ErrorIs(t, err, ErrNotComplete)
}

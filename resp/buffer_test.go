package resp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferWriteNext(t *testing.T) {
	b := NewBuffer([]byte("hello"))
	b.WriteString(" world")

	assert.Equal(t, 11, b.Len())
	b.Next(6)
	assert.Equal(t, "world", string(b.Bytes()))

	b.Next(100)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Bytes())
}

func TestBufferNewBufferCopies(t *testing.T) {
	src := []byte("abc")
	b := NewBuffer(src)
	src[0] = 'x'
	assert.Equal(t, "abc", string(b.Bytes()))
}

func TestBufferCompacts(t *testing.T) {
	b := &Buffer{}
	b.Write(bytes.Repeat([]byte("a"), 3000))
	b.Write([]byte("tail"))
	b.Next(3000)

	b.Write([]byte("!"))
	assert.Equal(t, 0, b.pos)
	assert.Equal(t, "tail!", string(b.Bytes()))
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer([]byte("data"))
	b.Reset()
	assert.Equal(t, 0, b.Len())
}

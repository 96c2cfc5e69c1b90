package resp

// compactThreshold is how many consumed bytes a Buffer keeps in front of the
// unread data before moving the unread data to the start of the slice.
const compactThreshold = 1024

// Buffer is a growable byte buffer with a read cursor. A connection appends
// what it reads with Write and consumes complete frames with Decode; bytes of
// a partial frame stay buffered until the rest arrives.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	buf []byte
	pos int
}

// NewBuffer returns a Buffer whose unread content is a copy of p.
func NewBuffer(p []byte) *Buffer {
	b := &Buffer{}
	_, _ = b.Write(p)
	return b
}

// Write appends p to the buffer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.pos > compactThreshold && b.pos > len(b.buf)/2 {
		n := copy(b.buf, b.buf[b.pos:])
		b.buf = b.buf[:n]
		b.pos = 0
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Bytes returns the unread bytes. The slice is only valid until the next
// call that modifies the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.pos:]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.pos
}

// Next consumes n bytes, or everything when n exceeds Len.
func (b *Buffer) Next(n int) {
	if n > b.Len() {
		n = b.Len()
	}
	b.pos += n
	if b.pos == len(b.buf) {
		b.Reset()
	}
}

// Reset discards all unread bytes and keeps the allocation.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
}

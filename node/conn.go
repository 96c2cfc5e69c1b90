package node

// Conn is the interface for connection.
type Conn interface {
	// Read drains the bytes currently available on the connection. It
	// returns io.EOF, possibly together with data, once the peer closed.
	Read() (data []byte, err error)

	// Write sends data, buffering whatever the socket does not accept yet.
	Write(data []byte) (err error)

	// Close closes the connection.
	Close() error

	Fd() int
	Ip() string
}

type Buffer interface {
	// DataToWrite returns the pending outbound bytes.
	DataToWrite() []byte

	Next(n int)

	Len() int
}

// BufferedConn is the interface for buffered connection.
type BufferedConn interface {
	Conn
	Buffer
}

//go:build linux
// +build linux

package node

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

const readChunkSize = 16 * 1024

type DefaultBufferedConn struct {
	fd        int
	ip        string
	outBuffer bytes.Buffer
	poll      *Poll
}

func (c *DefaultBufferedConn) Read() ([]byte, error) {
	var buf bytes.Buffer
	readBuffer := make([]byte, readChunkSize)

	for {
		n, err := unix.Read(c.fd, readBuffer)
		if n > 0 {
			buf.Write(readBuffer[:n])
		}
		if err != nil {
			if IsTemporaryError(err) {
				break
			}
			return buf.Bytes(), err
		}
		if n == 0 {
			return buf.Bytes(), io.EOF
		}
	}

	return buf.Bytes(), nil
}

func (c *DefaultBufferedConn) Write(data []byte) error {
	// A previous write is still pending, keep the order.
	if c.outBuffer.Len() > 0 {
		c.outBuffer.Write(data)
		return nil
	}

	n, err := unix.Write(c.fd, data)
	if err != nil {
		if !IsTemporaryError(err) {
			return err
		}
		n = 0
	}
	if n < len(data) {
		c.outBuffer.Write(data[n:])
		return c.poll.registerWrite(c.fd)
	}
	return nil
}

// Close unregisters and closes the fd. The fd is closed even if epoll
// refuses to remove it.
func (c *DefaultBufferedConn) Close() error {
	unregErr := c.poll.unregister(c.fd)
	return errors.Join(unregErr, unix.Close(c.fd))
}

// DataToWrite returns the data to write.
func (c *DefaultBufferedConn) DataToWrite() []byte {
	return c.outBuffer.Bytes()
}

// Next moves the buffer forward.
func (c *DefaultBufferedConn) Next(n int) {
	c.outBuffer.Next(n)
}

// Len returns the length of the buffer.
func (c *DefaultBufferedConn) Len() int {
	return c.outBuffer.Len()
}

// Fd returns the file descriptor of the connection.
func (c *DefaultBufferedConn) Fd() int {
	return c.fd
}

// Ip returns the ip of the connection.
func (c *DefaultBufferedConn) Ip() string {
	return c.ip
}

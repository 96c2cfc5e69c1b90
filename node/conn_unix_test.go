//go:build linux
// +build linux

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestBufferedConnCloseAfterUnregisterFailure(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[1])

	// an invalid epoll fd makes EPOLL_CTL_DEL fail
	r := NewRegistry(-1)
	r.epollSet[fds[0]] = readEvents
	conn := &DefaultBufferedConn{fd: fds[0], poll: &Poll{Registry: r}}

	err = conn.Close()
	assert.ErrorIs(t, err, unix.EBADF)
	assert.False(t, isFDValid(fds[0]))
	assert.NotContains(t, r.epollSet, fds[0])
}

func TestBufferedConnReadWrite(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[1])
	require.NoError(t, unix.SetNonblock(fds[0], true))

	conn := &DefaultBufferedConn{fd: fds[0], poll: &Poll{Registry: NewRegistry(-1)}}
	defer conn.Close()

	require.NoError(t, conn.Write([]byte("+PONG\r\n")))
	assert.Equal(t, 0, conn.Len())

	buf := make([]byte, 16)
	n, err := unix.Read(fds[1], buf)
	require.NoError(t, err)
	assert.Equal(t, "+PONG\r\n", string(buf[:n]))

	_, err = unix.Write(fds[1], []byte("*1\r\n$4\r\nPING\r\n"))
	require.NoError(t, err)
	data, err := conn.Read()
	require.NoError(t, err)
	assert.Equal(t, "*1\r\n$4\r\nPING\r\n", string(data))
}

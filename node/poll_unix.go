//go:build linux
// +build linux

package node

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"unsafe"

	"github.com/fzft/go-resp/log"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// https://copyconstruct.medium.com/the-method-to-epolls-madness-d9d2d6378642

type pipeSignal uint64

const (
	SignalStop pipeSignal = 1
)

const maxEventsPerWait = 1024

var maxClientsReply = []byte("-ERR max number of clients reached\r\n")

type Poll struct {
	*Registry
	done     chan struct{}
	epollFd  int
	listenFD int
	efd      int
	connCnt  int64 // current number of clients
	maxFD    int64 // max number of clients
	nextID   uint64
	rHandler ReaderHandler
	connPool map[int]*Client
}

func NewPoll(done chan struct{}, size int64, lnFd int) (*Poll, error) {
	// Create a new epoll instance
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		log.Logger.Error("Failed to create epoll", zap.Error(err))
		return nil, err
	}

	r := NewRegistry(epfd)

	efd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		log.Logger.Error("Failed to create eventfd", zap.Error(err))
		_ = unix.Close(epfd)
		return nil, err
	}

	// Register the eventfd to epoll for read events
	if err := r.AddRead(efd); err != nil {
		log.Logger.Error("Failed to add eventfd to epoll", zap.Error(err))
		_ = unix.Close(efd)
		_ = unix.Close(epfd)
		return nil, err
	}

	// Register the listener to epoll for read events
	if err := r.AddRead(lnFd); err != nil {
		log.Logger.Error("Failed to add listener to epoll", zap.Error(err))
		_ = unix.Close(efd)
		_ = unix.Close(epfd)
		return nil, err
	}

	poll := &Poll{
		Registry: r,
		epollFd:  epfd,
		listenFD: lnFd,
		maxFD:    size,
		connPool: make(map[int]*Client),
		done:     done,
		efd:      efd,
	}

	return poll, nil
}

func (p *Poll) Handler(handler ReaderHandler) {
	p.rHandler = handler
}

// CloseGracefully order: eventfd, listener, connections, epoll
// prevent the fd leak
func (p *Poll) CloseGracefully() error {

	// close the eventfd fd
	if err := p.Delete(p.efd); err != nil {
		log.Logger.Debug("Failed to delete eventfd from epoll", zap.Error(err))
	}

	if err := CloseFd(p.efd); err != nil {
		log.Logger.Debug("Failed to close eventfd", zap.Error(err))
	}

	// the listener fd itself belongs to the reactor
	if err := p.Delete(p.listenFD); err != nil {
		log.Logger.Debug("Failed to delete listener from epoll", zap.Error(err))
	}

	// close all connections
	if err := p.ClosAndClearAllFDs(); err != nil {
		log.Logger.Debug("Failed to close connections", zap.Error(err))
	}
	p.connPool = make(map[int]*Client)
	atomic.StoreInt64(&p.connCnt, 0)

	// close the epoll fd
	if err := CloseFd(p.epollFd); err != nil {
		log.Logger.Info("Failed to close epoll", zap.Error(err))
	}

	return nil
}

func (p *Poll) poll() {
	size := p.maxFD + 2
	if size > maxEventsPerWait {
		size = maxEventsPerWait
	}
	events := make([]unix.EpollEvent, size)
	msec := -1

	defer close(p.done)

	// handle cleanup if necessary,
	defer p.CloseGracefully()

	for {
		// level triggered, blocks until there is an event to report
		n, err := unix.EpollWait(p.epollFd, events, msec)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			log.Logger.Error("epoll wait error", zap.Error(err))
			return
		}

		for i := 0; i < n; i++ {
			ev := &events[i]
			err := p.processEvent(int(ev.Fd), ev)
			switch err {
			case nil:
			case ErrSignalStopped:
				return
			default:
				log.Logger.Error("Failed to process event", zap.Error(err))
				return
			}
		}
	}
}

func (p *Poll) processEvent(fd int, ev *unix.EpollEvent) error {
	if fd == p.efd {
		// the read end of the eventfd, there is a signal to handle
		return p.handleSignal(fd)
	}
	if fd == p.listenFD {
		return p.accept(fd)
	}

	c, ok := p.connPool[fd]
	if !ok {
		log.Logger.Warn("event for unknown fd", zap.Int("fd", fd))
		return p.unregister(fd)
	}

	if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 && ev.Events&unix.EPOLLIN == 0 {
		log.Logger.Debug("epoll error event", zap.Int("fd", fd))
		p.closeClient(c)
		return nil
	}

	if ev.Events&unix.EPOLLOUT != 0 {
		return p.handleWrite(c)
	}

	if ev.Events&unix.EPOLLIN != 0 {
		if err := p.rHandler.Read(c); err != nil {
			p.handleClientError(c, err)
		}
	}
	return nil
}

// handleClientError closes c once its pending replies are flushed.
func (p *Poll) handleClientError(c *Client, err error) {
	if errors.Is(err, io.EOF) {
		log.Logger.Debug("client closed connection", zap.Uint64("id", c.ID()))
		p.closeClient(c)
		return
	}

	log.Logger.Debug("closing client", zap.Uint64("id", c.ID()), zap.String("ip", c.conn.Ip()), zap.Error(err))
	if c.conn.Len() > 0 {
		c.closeAfterReply = true
		return
	}
	p.closeClient(c)
}

func (p *Poll) closeClient(c *Client) {
	fd := c.conn.Fd()
	if err := c.conn.Close(); err != nil {
		log.Logger.Debug("Failed to close client", zap.Int("fd", fd), zap.Error(err))
	}
	delete(p.connPool, fd)
	p.decrFd()
}

// handleSignal handles the signal from the signal pipe
func (p *Poll) handleSignal(fd int) error {
	var buf uint64
	_, err := unix.Read(fd, (*(*[8]byte)(unsafe.Pointer(&buf)))[:])
	if err != nil {
		log.Logger.Error("Failed to read from event fd", zap.Error(err))
		return nil
	}
	receivedSignal := pipeSignal(buf)
	switch receivedSignal {
	case SignalStop:
		return ErrSignalStopped
	}
	return nil
}

// sendSignal sends a signal to the event fd
func (p *Poll) sendSignal(sig pipeSignal) error {
	_, err := unix.Write(p.efd, (*(*[8]byte)(unsafe.Pointer(&sig)))[:])
	if err != nil {
		log.Logger.Error("Failed to write to event fd", zap.Error(err))
	}
	return err
}

// accept a new connection
func (p *Poll) accept(fd int) error {
	connFd, sa, err := unix.Accept(fd)
	if err != nil {
		// no more connections to accept right now
		if IsTemporaryError(err) || errors.Is(err, unix.ECONNABORTED) {
			return nil
		}
		log.Logger.Error("accept error", zap.Error(err))
		return fmt.Errorf("accept error: %w", err)
	}

	if atomic.LoadInt64(&p.connCnt) >= p.maxFD {
		log.Logger.Warn("rejecting connection", zap.Error(ErrMaxClients))
		_, _ = unix.Write(connFd, maxClientsReply)
		_ = unix.Close(connFd)
		return nil
	}

	// set the socket to non-blocking mode
	if err := unix.SetNonblock(connFd, true); err != nil {
		log.Logger.Error("set nonblock error", zap.Error(err))
		_ = unix.Close(connFd)
		return nil
	}

	// register the new connection to epoll for read events
	if err := p.registerRead(connFd); err != nil {
		log.Logger.Error("register read error", zap.Error(err))
		_ = unix.Close(connFd)
		return nil
	}

	var ip string
	switch addr := sa.(type) {
	case *unix.SockaddrInet4:
		ip = net.IPv4(addr.Addr[0], addr.Addr[1], addr.Addr[2], addr.Addr[3]).String()
	case *unix.SockaddrInet6:
		ip = net.IP(addr.Addr[:]).String()
	}

	p.nextID++
	p.connPool[connFd] = NewClient(p.nextID, &DefaultBufferedConn{
		fd:   connFd,
		ip:   ip,
		poll: p,
	})

	p.incrFd()
	recordConnection()

	log.Logger.Debug("new connection", zap.Int("fd", connFd), zap.String("ip", ip))

	return nil
}

func (p *Poll) incrFd() {
	atomic.AddInt64(&p.connCnt, 1)
}

func (p *Poll) decrFd() {
	atomic.AddInt64(&p.connCnt, -1)
}

func (p *Poll) handleWrite(c *Client) error {
	conn := c.conn
	fd := conn.Fd()

	n, err := unix.Write(fd, conn.DataToWrite())
	if err != nil {
		if IsTemporaryError(err) {
			return nil
		}
		log.Logger.Debug("write error", zap.Int("fd", fd), zap.Error(err))
		p.closeClient(c)
		return nil
	}

	// Advance the buffer to reflect the bytes written
	conn.Next(n)

	if conn.Len() > 0 {
		return nil
	}
	if c.closeAfterReply {
		p.closeClient(c)
		return nil
	}

	// All data was written, go back to reading.
	if err := p.deregisterWrite(fd); err != nil {
		return fmt.Errorf("failed to deregister write for fd %d: %w", fd, err)
	}
	return nil
}

//go:build linux
// +build linux

package node

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/fzft/go-resp/log"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Reactor drives a single epoll loop over a listener and its clients.
type Reactor struct {
	ln     net.Listener
	lnFile *os.File
	poll   *Poll
	doneCh chan struct{}
}

func NewReactor(ln net.Listener, maxClients int64) (*Reactor, error) {
	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("unsupported listener %T", ln)
	}

	// File returns a dup of the listener fd owned by the reactor.
	f, err := tcpLn.File()
	if err != nil {
		log.Logger.Error("Failed to get listener fd", zap.Error(err))
		return nil, err
	}

	lnFd := int(f.Fd())
	if err := unix.SetNonblock(lnFd, true); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set nonblock on listener: %w", err)
	}

	doneCh := make(chan struct{})
	poll, err := NewPoll(doneCh, maxClients, lnFd)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Reactor{
		ln:     ln,
		lnFile: f,
		poll:   poll,
		doneCh: doneCh,
	}, nil
}

// Run blocks until ctx is cancelled or the poll loop fails.
func (r *Reactor) Run(ctx context.Context) {
	go r.poll.poll()
	defer log.Logger.Info("reactor closed")
	defer r.ln.Close()

	select {
	case <-r.doneCh:
	case <-ctx.Done():
		log.Logger.Info("stop requested")
		if err := r.poll.sendSignal(SignalStop); err == nil {
			<-r.doneCh
		}
	}
	_ = r.lnFile.Close()
}

func (r *Reactor) Handler(handler ReaderHandler) {
	r.poll.Handler(handler)
}

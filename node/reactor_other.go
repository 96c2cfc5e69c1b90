//go:build !linux
// +build !linux

package node

import (
	"context"
	"errors"
	"net"
)

var ErrUnsupportedPlatform = errors.New("the epoll reactor requires linux")

type Reactor struct{}

func NewReactor(ln net.Listener, maxClients int64) (*Reactor, error) {
	return nil, ErrUnsupportedPlatform
}

func (r *Reactor) Run(ctx context.Context) {}

func (r *Reactor) Handler(handler ReaderHandler) {}

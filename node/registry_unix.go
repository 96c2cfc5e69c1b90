//go:build linux
// +build linux

package node

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	readEvents  = unix.EPOLLPRI | unix.EPOLLIN
	writeEvents = unix.EPOLLOUT
)

// Registry is a wrapper around epoll. It keeps track of the connection fds
// that are registered to epoll and the events each one waits for.
type Registry struct {
	epollFd  int
	epollSet map[int]uint32
}

func NewRegistry(epollFd int) *Registry {
	return &Registry{
		epollFd:  epollFd,
		epollSet: make(map[int]uint32),
	}
}

// registerRead registers fd to epoll for read events.
func (r *Registry) registerRead(fd int) (err error) {
	events, ok := r.epollSet[fd]
	if ok && events == readEvents {
		return nil
	}

	if ok {
		err = r.ModRead(fd)
	} else {
		err = r.AddRead(fd)
	}
	if err != nil {
		return err
	}

	r.epollSet[fd] = readEvents
	return
}

// registerWrite switches fd to write events. Reads are paused until the
// pending output is flushed.
func (r *Registry) registerWrite(fd int) (err error) {
	events, ok := r.epollSet[fd]
	if ok && events == writeEvents {
		return nil
	}

	if ok {
		err = r.ModWrite(fd)
	} else {
		err = r.AddWrite(fd)
	}
	if err != nil {
		return err
	}

	r.epollSet[fd] = writeEvents
	return
}

// deregisterWrite turns fd back to read events.
func (r *Registry) deregisterWrite(fd int) error {
	return r.registerRead(fd)
}

// unregister removes fd from epoll. fd is forgotten even when the epoll
// call fails, the caller is about to close it.
func (r *Registry) unregister(fd int) error {
	if _, ok := r.epollSet[fd]; !ok {
		return nil
	}

	delete(r.epollSet, fd)
	return r.Delete(fd)
}

// ClosAndClearAllFDs removes and closes every registered fd.
func (r *Registry) ClosAndClearAllFDs() error {
	var errs MultiError

	for fd := range r.epollSet {
		if err := r.Delete(fd); err != nil {
			errs = append(errs, fmt.Errorf("delete fd: %d error: %w", fd, err))
		}
		if err := unix.Close(fd); err != nil {
			errs = append(errs, fmt.Errorf("close fd: %d error: %w", fd, err))
		}
		delete(r.epollSet, fd)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *Registry) AddRead(fd int) error {
	return os.NewSyscallError("epoll_ctl add",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents}))
}

func (r *Registry) AddWrite(fd int) error {
	return os.NewSyscallError("epoll_ctl add",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Fd: int32(fd), Events: writeEvents}))
}

func (r *Registry) ModRead(fd int) error {
	return os.NewSyscallError("epoll_ctl mod",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: readEvents}))
}

func (r *Registry) ModWrite(fd int) error {
	return os.NewSyscallError("epoll_ctl mod",
		unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: writeEvents}))
}

func (r *Registry) Delete(fd int) error {
	return os.NewSyscallError("epoll_ctl del", unix.EpollCtl(r.epollFd, unix.EPOLL_CTL_DEL, fd, nil))
}

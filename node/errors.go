package node

import (
	"errors"
	"strings"
)

type MultiError []error

func (m MultiError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range m {
		b.WriteString("\n- " + err.Error())
	}
	return b.String()
}

var (
	ErrSignalStopped = errors.New("signal stopped")

	// ErrQueryBufferLimit is returned for a client whose pending, still
	// incomplete request grew past the configured max_query_buffer.
	ErrQueryBufferLimit = errors.New("query buffer limit exceeded")

	ErrMaxClients = errors.New("max number of clients reached")
)

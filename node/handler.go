package node

import (
	"errors"
	"fmt"

	"github.com/fzft/go-resp/db"
	"github.com/fzft/go-resp/log"
	"github.com/fzft/go-resp/resp"
	"go.uber.org/zap"
)

// ReaderHandler is called by the event loop when a client is readable. A
// returned error closes the client after its pending replies are written.
type ReaderHandler interface {
	Read(c *Client) error
}

// RESPHandler decodes RESP requests from the client query buffer and runs
// them against the keyspace.
type RESPHandler struct {
	store          *db.Store
	commands       *db.HashTable[string, *Command]
	maxQueryBuffer int
}

func NewRESPHandler(store *db.Store, maxQueryBuffer int) *RESPHandler {
	return &RESPHandler{
		store:          store,
		commands:       populateCommandTable(),
		maxQueryBuffer: maxQueryBuffer,
	}
}

func (h *RESPHandler) Read(c *Client) error {
	data, readErr := c.conn.Read()
	if len(data) > 0 {
		c.query.Write(data)

		err := h.processInputBuffer(c)
		if flushErr := c.flush(); flushErr != nil {
			return flushErr
		}
		if err != nil {
			return err
		}
	}
	return readErr
}

// processInputBuffer executes every complete request in the query buffer
// and leaves a trailing partial request for the next read.
func (h *RESPHandler) processInputBuffer(c *Client) error {
	for c.query.Len() > 0 {
		frame, err := resp.Decode(c.query)
		if err != nil {
			if resp.IsNotComplete(err) {
				if c.query.Len() > h.maxQueryBuffer {
					recordProtocolError("query_buffer_limit")
					log.Logger.Warn("closing client that reached max query buffer length",
						zap.Uint64("id", c.id), zap.Int("qbuf", c.query.Len()))
					c.AddReplyError("ERR Protocol error: too big request")
					return ErrQueryBufferLimit
				}
				return nil
			}

			recordProtocolError(errorKind(err))
			log.Logger.Debug("protocol error", zap.Uint64("id", c.id), zap.Error(err))
			c.AddReplyError(fmt.Sprintf("ERR Protocol error: %v", err))
			return fmt.Errorf("client %d: %w", c.id, err)
		}

		recordFrameDecoded()
		h.processRequest(c, frame)
	}
	return nil
}

// processRequest turns one decoded frame into argv and executes it.
func (h *RESPHandler) processRequest(c *Client, frame resp.Frame) {
	var elems []resp.Frame
	switch f := frame.(type) {
	case resp.Array:
		elems = f.Elements
	case resp.NullArray:
		return
	default:
		c.AddReplyError("ERR Protocol error: expected array of bulk strings")
		return
	}
	// empty requests are ignored
	if len(elems) == 0 {
		return
	}

	argv := make([][]byte, len(elems))
	for i, elem := range elems {
		switch arg := elem.(type) {
		case resp.BulkString:
			argv[i] = arg.Value
		case resp.SimpleString:
			argv[i] = []byte(arg.Value)
		default:
			c.AddReplyError("ERR Protocol error: expected array of bulk strings")
			return
		}
	}

	c.argv = argv
	c.processCommand(h.commands, h.store)
}

func errorKind(err error) string {
	var respErr *resp.Error
	if errors.As(err, &respErr) {
		return respErr.Kind.String()
	}
	return "unknown"
}

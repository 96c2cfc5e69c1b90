package node

import (
	"strings"

	"github.com/fzft/go-resp/db"
	"github.com/fzft/go-resp/resp"
)

const (
	ProtoResp2 = 2
	ProtoResp3 = 3
)

// Client is the per connection state: the inbound query buffer, the parsed
// arguments of the command being executed and the replies not yet written.
type Client struct {
	id              uint64
	conn            BufferedConn
	proto           int          // resp protocol version. Can be 2 or 3
	query           *resp.Buffer // bytes read but not yet decoded
	argv            [][]byte     // arguments of the current command
	cmd             *Command     // command currently being processed
	commands        *db.HashTable[string, *Command]
	reply           []byte // encoded replies of the current read
	closeAfterReply bool
}

func NewClient(id uint64, conn BufferedConn) *Client {
	return &Client{
		id:    id,
		conn:  conn,
		proto: ProtoResp2,
		query: resp.NewBuffer(nil),
	}
}

func (c *Client) ID() uint64 {
	return c.id
}

func (c *Client) Proto() int {
	return c.proto
}

// AddReply queues the encoded frame on the client output.
func (c *Client) AddReply(f resp.Frame) {
	c.reply = resp.AppendFrame(c.reply, f)
}

// AddReplyError queues "-<msg>\r\n". CR and LF inside msg are replaced with
// spaces so the reply stays a single line.
func (c *Client) AddReplyError(msg string) {
	c.AddReply(resp.NewSimpleError(mapChars(msg, "\r\n", "  ")))
}

func (c *Client) AddReplyBulk(b []byte) {
	c.AddReply(resp.NewBulkString(b))
}

// AddReplyNull queues the null of the negotiated protocol.
func (c *Client) AddReplyNull() {
	if c.proto >= ProtoResp3 {
		c.AddReply(resp.Null{})
		return
	}
	c.AddReply(resp.NullBulkString{})
}

// AddReplyMap queues m as a map for RESP3 clients and as a flat key/value
// array for RESP2 clients.
func (c *Client) AddReplyMap(m resp.Map) {
	if c.proto >= ProtoResp3 {
		c.AddReply(m)
		return
	}
	elems := make([]resp.Frame, 0, 2*m.Len())
	m.Range(func(key string, value resp.Frame) bool {
		elems = append(elems, resp.NewBulkStringFromString(key), value)
		return true
	})
	c.AddReply(resp.NewArray(elems...))
}

// flush hands the queued replies to the connection.
func (c *Client) flush() error {
	if len(c.reply) == 0 {
		return nil
	}
	err := c.conn.Write(c.reply)
	c.reply = c.reply[:0]
	return err
}

func (c *Client) resetClient() {
	c.argv = nil
	c.cmd = nil
}

func mapChars(s, from, to string) string {
	for i := 0; i < len(from); i++ {
		s = strings.ReplaceAll(s, string(from[i]), string(to[i]))
	}
	return s
}

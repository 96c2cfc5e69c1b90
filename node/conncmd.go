package node

import (
	"sort"
	"strconv"

	"github.com/fzft/go-resp/db"
	"github.com/fzft/go-resp/resp"
)

// PING [message]
func pingCommand(c *Client, _ *db.Store) {
	switch len(c.argv) {
	case 1:
		c.AddReply(resp.NewSimpleString("PONG"))
	case 2:
		c.AddReplyBulk(c.argv[1])
	default:
		c.AddReplyError("ERR wrong number of arguments for 'ping' command")
	}
}

// ECHO message
func echoCommand(c *Client, _ *db.Store) {
	c.AddReplyBulk(c.argv[1])
}

// HELLO [protover]
func helloCommand(c *Client, _ *db.Store) {
	if len(c.argv) > 2 {
		c.AddReplyError("ERR syntax error")
		return
	}

	if len(c.argv) == 2 {
		ver, err := strconv.ParseInt(string(c.argv[1]), 10, 64)
		if err != nil {
			c.AddReplyError("ERR Protocol version is not an integer or out of range")
			return
		}
		if ver < ProtoResp2 || ver > ProtoResp3 {
			c.AddReplyError("NOPROTO unsupported protocol version")
			return
		}
		c.proto = int(ver)
	}

	m := resp.NewMap()
	m.Set("server", resp.NewBulkStringFromString(ServerName))
	m.Set("version", resp.NewBulkStringFromString(Version))
	m.Set("proto", resp.NewInteger(int64(c.proto)))
	m.Set("id", resp.NewInteger(int64(c.id)))
	m.Set("mode", resp.NewBulkStringFromString("standalone"))
	m.Set("role", resp.NewBulkStringFromString("master"))
	m.Set("modules", resp.NewArray())
	c.AddReplyMap(m)
}

// COMMAND COUNT
func commandCountCommand(c *Client, _ *db.Store) {
	c.AddReply(resp.NewInteger(int64(c.commands.Len())))
}

// COMMAND LIST, also the reply of a bare COMMAND.
func commandListCommand(c *Client, _ *db.Store) {
	names := c.commands.Keys()
	sort.Strings(names)

	elems := make([]resp.Frame, len(names))
	for i, name := range names {
		elems[i] = resp.NewBulkStringFromString(name)
	}
	c.AddReply(resp.NewArray(elems...))
}

var commandHelp = []string{
	"COMMAND <subcommand> [<arg> [value] [opt] ...]. Subcommands are:",
	"(no subcommand)",
	"    Return the names of all commands.",
	"COUNT",
	"    Return the total number of commands in this server.",
	"LIST",
	"    Return a list of all commands in this server.",
	"HELP",
	"    Print this help.",
}

// COMMAND HELP
func commandHelpCommand(c *Client, _ *db.Store) {
	elems := make([]resp.Frame, len(commandHelp))
	for i, line := range commandHelp {
		elems[i] = resp.NewSimpleString(line)
	}
	c.AddReply(resp.NewArray(elems...))
}

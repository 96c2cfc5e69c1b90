package node

import (
	"github.com/fzft/go-resp/db"
	"github.com/fzft/go-resp/resp"
)

// SET key value
func setCommand(c *Client, store *db.Store) {
	store.Set(string(c.argv[1]), c.argv[2])
	c.AddReply(resp.NewSimpleString("OK"))
}

// GET key
func getCommand(c *Client, store *db.Store) {
	value, ok := store.Get(string(c.argv[1]))
	if !ok {
		c.AddReplyNull()
		return
	}
	c.AddReplyBulk(value)
}

// DEL key [key ...]
func delCommand(c *Client, store *db.Store) {
	c.AddReply(resp.NewInteger(int64(store.Delete(argStrings(c.argv[1:])...))))
}

// EXISTS key [key ...]
func existsCommand(c *Client, store *db.Store) {
	c.AddReply(resp.NewInteger(int64(store.Exists(argStrings(c.argv[1:])...))))
}

func argStrings(argv [][]byte) []string {
	keys := make([]string, len(argv))
	for i, arg := range argv {
		keys[i] = string(arg)
	}
	return keys
}

package node

import (
	"fmt"
	"strings"

	"github.com/fzft/go-resp/db"
)

type CommandFlags uint64

const (
	CmdWrite CommandFlags = 1 << iota
	CmdReadOnly
	CmdFast
)

// CommandProc executes c.argv against the keyspace and queues the reply.
type CommandProc func(c *Client, store *db.Store)

type Command struct {
	declaredName    string
	fullname        string
	proc            CommandProc
	arity           int // fixed arg count including the name, or -N for at least N
	flags           CommandFlags
	subCommandsDict *db.HashTable[string, *Command]
}

func (cmd *Command) Fullname() string {
	return cmd.fullname
}

func (cmd *Command) Arity() int {
	return cmd.arity
}

func (cmd *Command) Flags() CommandFlags {
	return cmd.flags
}

// commandTable is the static description of every command the server
// understands.
var commandTable = []*Command{
	{declaredName: "ping", proc: pingCommand, arity: -1, flags: CmdFast},
	{declaredName: "echo", proc: echoCommand, arity: 2, flags: CmdFast},
	{declaredName: "hello", proc: helloCommand, arity: -1, flags: CmdFast},
	{declaredName: "get", proc: getCommand, arity: 2, flags: CmdReadOnly | CmdFast},
	{declaredName: "set", proc: setCommand, arity: 3, flags: CmdWrite},
	{declaredName: "del", proc: delCommand, arity: -2, flags: CmdWrite},
	{declaredName: "exists", proc: existsCommand, arity: -2, flags: CmdReadOnly | CmdFast},
	{declaredName: "command", proc: commandListCommand, arity: -1},
}

var commandSubTable = map[string][]*Command{
	"command": {
		{declaredName: "count", proc: commandCountCommand, arity: 2},
		{declaredName: "list", proc: commandListCommand, arity: 2},
		{declaredName: "help", proc: commandHelpCommand, arity: 2},
	},
}

// populateCommandTable builds the lookup table keyed by lower case name.
func populateCommandTable() *db.HashTable[string, *Command] {
	commands := db.NewHashTable[string, *Command](len(commandTable))
	for _, tmpl := range commandTable {
		cmd := *tmpl
		cmd.fullname = cmd.declaredName
		if subs, ok := commandSubTable[cmd.declaredName]; ok {
			cmd.subCommandsDict = db.NewHashTable[string, *Command](len(subs))
			for _, subTmpl := range subs {
				sub := *subTmpl
				sub.fullname = cmd.declaredName + "|" + sub.declaredName
				cmd.subCommandsDict.Set(sub.declaredName, &sub)
			}
		}
		commands.Set(cmd.declaredName, &cmd)
	}
	return commands
}

// lookupCommand resolves argv to a command, descending into sub commands
// for container commands. It returns nil when nothing matches.
func lookupCommand(commands *db.HashTable[string, *Command], argv [][]byte) *Command {
	baseCmd, exist := commands.Get(strings.ToLower(string(argv[0])))
	if !exist {
		return nil
	}
	if len(argv) == 1 || baseCmd.subCommandsDict == nil {
		return baseCmd
	}
	sub, _ := baseCmd.subCommandsDict.Get(strings.ToLower(string(argv[1])))
	return sub
}

func isContainerCommand(commands *db.HashTable[string, *Command], name []byte) bool {
	baseCmd, exist := commands.Get(strings.ToLower(string(name)))
	return exist && baseCmd.subCommandsDict != nil
}

// commandCheckExistence fills the error reply for an unknown command.
func (c *Client) commandCheckExistence(commands *db.HashTable[string, *Command]) (string, bool) {
	if c.cmd != nil {
		return "", true
	}

	var err string
	if isContainerCommand(commands, c.argv[0]) {
		// argv[0] is a command by itself, so the sub command is invalid
		cmdStr := strings.ToUpper(string(c.argv[0]))
		err = fmt.Sprintf("unknown subcommand '%.128s'. Try %s HELP.", c.argv[1], cmdStr)
	} else {
		var args strings.Builder
		limit := 128
		for _, arg := range c.argv[1:] {
			remaining := limit - args.Len()
			if remaining <= 0 {
				break
			}
			fmt.Fprintf(&args, "'%.*s' ", remaining, arg)
		}
		err = fmt.Sprintf("unknown command '%.128s', with args beginning with: %s", c.argv[0], args.String())
	}

	return err, false
}

// commandCheckArity checks c.argv against c.cmd, filling the error reply
// when the count does not match.
func (c *Client) commandCheckArity() (string, bool) {
	argc := len(c.argv)
	arity := c.cmd.Arity()
	if (arity > 0 && arity != argc) || argc < -arity {
		return fmt.Sprintf("wrong number of arguments for '%s' command", c.cmd.Fullname()), false
	}
	return "", true
}

// processCommand runs the command in c.argv and queues exactly one reply.
func (c *Client) processCommand(commands *db.HashTable[string, *Command], store *db.Store) {
	defer c.resetClient()

	c.commands = commands
	c.cmd = lookupCommand(commands, c.argv)
	if msg, ok := c.commandCheckExistence(commands); !ok {
		c.AddReplyError("ERR " + msg)
		return
	}
	if msg, ok := c.commandCheckArity(); !ok {
		c.AddReplyError("ERR " + msg)
		return
	}

	recordCommand(c.cmd.Fullname())
	c.cmd.proc(c, store)
}

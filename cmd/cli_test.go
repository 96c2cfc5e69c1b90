package cmd

import (
	"bytes"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/fzft/go-resp/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer reads one command from conn and answers with reply, written a
// few bytes at a time.
func fakeServer(t *testing.T, conn net.Conn, reply []byte) <-chan resp.Frame {
	got := make(chan resp.Frame, 1)
	go func() {
		defer close(got)
		buf := resp.NewBuffer(nil)
		chunk := make([]byte, 64)
		for {
			f, err := resp.Decode(buf)
			if err == nil {
				got <- f
				break
			}
			n, err := conn.Read(chunk)
			if err != nil {
				return
			}
			buf.Write(chunk[:n])
		}
		for i := 0; i < len(reply); i += 2 {
			end := i + 2
			if end > len(reply) {
				end = len(reply)
			}
			if _, err := conn.Write(reply[i:end]); err != nil {
				return
			}
		}
	}()
	return got
}

func newPipeCli(t *testing.T, output OutputMode) (*Cli, net.Conn, *bytes.Buffer) {
	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})

	var out bytes.Buffer
	cli := NewCli(CliCfg{
		ConnInfo: CliConnInfo{HostIp: "127.0.0.1", HostPort: 6379},
		Output:   output,
		Timeout:  time.Second,
	}, &out)
	cli.conn = client
	return cli, server, &out
}

func TestSendCommandReadsChunkedReply(t *testing.T) {
	cli, server, _ := newPipeCli(t, OutputStandard)

	m := resp.NewMap()
	m.Set("proto", resp.NewInteger(3))
	m.Set("server", resp.NewBulkStringFromString("go-resp"))
	got := fakeServer(t, server, resp.Encode(m))

	reply, err := cli.sendCommand([]string{"HELLO", "3"})
	require.NoError(t, err)
	assert.Equal(t, m, reply)
	assert.Equal(t, resp.Command("HELLO", "3"), <-got)
}

func TestIssueCommandFormatted(t *testing.T) {
	cli, server, out := newPipeCli(t, OutputStandard)

	reply := resp.NewArray(resp.NewBulkStringFromString("a"), resp.NewInteger(2))
	fakeServer(t, server, resp.Encode(reply))

	require.NoError(t, cli.issueCommand([]string{"LRANGE", "k", "0", "-1"}))
	assert.Equal(t, "1) \"a\"\n2) (integer) 2\n", out.String())
}

func TestIssueCommandRaw(t *testing.T) {
	cli, server, out := newPipeCli(t, OutputRaw)

	fakeServer(t, server, []byte("$5\r\nhello\r\n"))

	require.NoError(t, cli.issueCommand([]string{"GET", "k"}))
	assert.Equal(t, "hello\n", out.String())
}

func TestReadReplyBadFrame(t *testing.T) {
	cli, server, _ := newPipeCli(t, OutputStandard)

	fakeServer(t, server, []byte("!5\r\nhello\r\n"))

	_, err := cli.sendCommand([]string{"PING"})
	require.Error(t, err)
	assert.True(t, resp.IsFatal(err))
}

func TestSendCommandNotConnected(t *testing.T) {
	cli := NewCli(CliCfg{ConnInfo: CliConnInfo{HostIp: "127.0.0.1", HostPort: 1}}, &bytes.Buffer{})
	_, err := cli.sendCommand([]string{"PING"})
	assert.Error(t, err)
}

func TestPrompt(t *testing.T) {
	cli := NewCli(CliCfg{ConnInfo: CliConnInfo{HostIp: "::1", HostPort: 7000}}, &bytes.Buffer{})
	assert.Equal(t, "[::1]:7000> ", cli.config.prompt)
}

func TestVersion(t *testing.T) {
	cli := NewCli(CliCfg{}, &bytes.Buffer{})
	assert.Equal(t, "resp-cli", cli.Version("unknown", "unknown"))
	assert.Equal(t, "resp-cli (git:abc123-dirty)", cli.Version("abc123", "1"))
}

func TestGetDotfilePath(t *testing.T) {
	t.Setenv(CliHisFileEnv, "/tmp/custom_history")
	assert.Equal(t, "/tmp/custom_history", getDotfilePath(CliHisFileEnv, CliHisFileDefault))

	t.Setenv(CliHisFileEnv, "/dev/null")
	assert.Equal(t, "", getDotfilePath(CliHisFileEnv, CliHisFileDefault))

	home := t.TempDir()
	t.Setenv(CliHisFileEnv, "")
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, CliHisFileDefault), getDotfilePath(CliHisFileEnv, CliHisFileDefault))
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fzft/go-resp/log"
	"github.com/fzft/go-resp/resp"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

var (
	CliHisFileEnv     = "RESPCLI_HISTFILE"
	CliHisFileDefault = ".respcli_history"

	CliDefaultTimeout    = 5 * time.Second
	CliKeepAliveInterval = 15 * time.Second
)

type CliConnectFlag int

const (
	CCForce CliConnectFlag = 1 << iota // Re-connect if already connected.
	CCQuiet                            // Don't show non-error messages.
)

type OutputMode uint8

const (
	OutputStandard OutputMode = iota
	OutputRaw
)

type CliConnInfo struct {
	HostIp   string
	HostPort int
}

type CliCfg struct {
	ConnInfo CliConnInfo
	Resp3    bool // send HELLO 3 after connecting
	Output   OutputMode
	Timeout  time.Duration
	prompt   string
}

// DefaultOutputMode formats replies for a terminal and prints them raw when
// stdout is redirected.
func DefaultOutputMode() OutputMode {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return OutputStandard
	}
	return OutputRaw
}

type Cli struct {
	config *CliCfg
	out    io.Writer
	conn   net.Conn
	buf    *resp.Buffer
}

func NewCli(cfg CliCfg, out io.Writer) *Cli {
	if cfg.Timeout <= 0 {
		cfg.Timeout = CliDefaultTimeout
	}
	cli := &Cli{
		config: &cfg,
		out:    out,
		buf:    resp.NewBuffer(nil),
	}
	cli.cliRefreshPrompt()
	return cli
}

func (cli *Cli) Version(gitSHA1, gitDirty string) string {
	version := "resp-cli"
	// Add git commit and working tree status when available
	if sha1Int, err := strconv.ParseUint(gitSHA1, 16, 64); err == nil && sha1Int != 0 {
		version = fmt.Sprintf("%s (git:%s", version, gitSHA1)
		if dirtyInt, err := strconv.ParseInt(gitDirty, 10, 64); err == nil && dirtyInt != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	return version
}

// Run executes args once when given, otherwise starts the interactive
// prompt.
func (cli *Cli) Run(args []string) error {
	if len(args) > 0 {
		if err := cli.connect(0); err != nil {
			return err
		}
		defer cli.Close()
		return cli.issueCommand(args)
	}

	if err := cli.connect(CCQuiet); err != nil {
		fmt.Fprintf(cli.out, "Could not connect to %s: %v\n", cli.addr(), err)
	}
	defer cli.Close()
	return cli.repl()
}

func (cli *Cli) Close() error {
	if cli.conn == nil {
		return nil
	}
	err := cli.conn.Close()
	cli.conn = nil
	return err
}

func (cli *Cli) addr() string {
	return net.JoinHostPort(cli.config.ConnInfo.HostIp, strconv.Itoa(cli.config.ConnInfo.HostPort))
}

// connect to the server
// flag: CCForce: The connection is performed even if there is already
// a connected socket.
// CCQuiet: Don't log errors if connection fails
func (cli *Cli) connect(flag CliConnectFlag) error {
	if cli.conn != nil && flag&CCForce == 0 {
		return nil
	}
	cli.Close()
	cli.buf.Reset()

	conn, err := net.DialTimeout("tcp", cli.addr(), cli.config.Timeout)
	if err != nil {
		if flag&CCQuiet == 0 {
			log.Logger.Error("connect failed", zap.String("addr", cli.addr()), zap.Error(err))
		}
		return err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetKeepAlivePeriod(CliKeepAliveInterval); err != nil {
			log.Logger.Debug("failed to set keepalive", zap.Error(err))
		}
	}
	cli.conn = conn
	log.Logger.Debug("connected", zap.String("addr", cli.addr()))

	return cli.switchProto()
}

// switchProto switch to RESP3 if needed
func (cli *Cli) switchProto() error {
	if !cli.config.Resp3 {
		return nil
	}

	reply, err := cli.sendCommand([]string{"HELLO", "3"})
	if err != nil {
		return err
	}
	if e, ok := reply.(resp.SimpleError); ok {
		return fmt.Errorf("HELLO 3 failed: %s", e.Message)
	}
	return nil
}

// sendCommand writes argv as a command array and reads one reply.
func (cli *Cli) sendCommand(argv []string) (resp.Frame, error) {
	if cli.conn == nil {
		return nil, errors.New("not connected")
	}
	if err := cli.conn.SetDeadline(time.Now().Add(cli.config.Timeout)); err != nil {
		return nil, err
	}
	if _, err := cli.conn.Write(resp.EncodeCommand(argv[0], argv[1:]...)); err != nil {
		return nil, err
	}
	return cli.readReply()
}

// readReply decodes the next reply, reading from the connection until the
// buffered bytes hold a complete frame.
func (cli *Cli) readReply() (resp.Frame, error) {
	chunk := make([]byte, 16*1024)
	for {
		f, err := resp.Decode(cli.buf)
		if err == nil {
			return f, nil
		}
		if !resp.IsNotComplete(err) {
			return nil, fmt.Errorf("bad reply: %w", err)
		}

		n, err := cli.conn.Read(chunk)
		if n > 0 {
			cli.buf.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && n > 0 {
				continue
			}
			return nil, err
		}
	}
}

// issueCommand sends argv and prints the reply.
func (cli *Cli) issueCommand(argv []string) error {
	reply, err := cli.sendCommand(argv)
	if err != nil {
		return err
	}
	cli.printReply(reply)
	return nil
}

func (cli *Cli) printReply(f resp.Frame) {
	switch cli.config.Output {
	case OutputRaw:
		fmt.Fprintln(cli.out, resp.FormatRaw(f))
	default:
		fmt.Fprintln(cli.out, resp.Format(f))
	}
}

func (cli *Cli) repl() error {
	var (
		history     bool
		historyFile string
	)

	line := NewLineNoise()
	defer line.Close()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		historyFile = getDotfilePath(CliHisFileEnv, CliHisFileDefault)
		// keep in-memory history always regardless if history file can be determined
		history = true
		if historyFile != "" {
			if err := line.HistoryLoad(historyFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Logger.Debug("failed to load history", zap.String("file", historyFile), zap.Error(err))
			}
		}
	}

	for {
		prompt := cli.config.prompt
		if cli.conn == nil {
			prompt = "not connected> "
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		argv, err := splitArgs(input)
		if history && strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
			if historyFile != "" {
				if err := line.HistorySave(historyFile); err != nil {
					log.Logger.Debug("failed to save history", zap.Error(err))
				}
			}
		}
		if err != nil {
			fmt.Fprintln(cli.out, "Invalid argument(s)")
			continue
		}
		if len(argv) == 0 {
			continue
		}

		// check if we have a repeat command option and need to skip the first arg
		repeat := 1
		if n, err := strconv.Atoi(argv[0]); err == nil && len(argv) > 1 {
			if n <= 0 {
				fmt.Fprintln(cli.out, "Invalid resp-cli repeat command option value.")
				continue
			}
			repeat = n
			argv = argv[1:]
		}

		switch {
		case strings.EqualFold(argv[0], "quit") || strings.EqualFold(argv[0], "exit"):
			return nil
		case len(argv) == 1 && strings.EqualFold(argv[0], "clear"):
			_ = line.ClearScreen(cli.out)
		case len(argv) == 3 && strings.EqualFold(argv[0], "connect"):
			port, err := strconv.Atoi(argv[2])
			if err != nil {
				fmt.Fprintln(cli.out, "Invalid port number")
				continue
			}
			cli.config.ConnInfo.HostIp = argv[1]
			cli.config.ConnInfo.HostPort = port
			cli.cliRefreshPrompt()
			if err := cli.connect(CCForce); err != nil {
				fmt.Fprintf(cli.out, "Could not connect to %s: %v\n", cli.addr(), err)
			}
		default:
			for i := 0; i < repeat; i++ {
				if err := cli.connect(CCQuiet); err != nil {
					fmt.Fprintf(cli.out, "Could not connect to %s: %v\n", cli.addr(), err)
					break
				}
				if err := cli.issueCommand(argv); err != nil {
					fmt.Fprintf(cli.out, "Error: %v\n", err)
					cli.Close()
					break
				}
			}
		}
	}
}

func (cli *Cli) cliRefreshPrompt() {
	cli.config.prompt = fmt.Sprintf("%s> ", cli.addr())
}

func getDotfilePath(envOverride, dotFilename string) string {
	path := os.Getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, dotFilename)
}

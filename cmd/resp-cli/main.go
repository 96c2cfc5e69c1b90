package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fzft/go-resp/cmd"
	"github.com/fzft/go-resp/log"
	"github.com/fzft/go-resp/node"
)

func main() {
	host := flag.String("h", "127.0.0.1", "server hostname")
	port := flag.Int("p", 6379, "server port")
	resp3 := flag.Bool("3", false, "start session in RESP3 protocol mode")
	raw := flag.Bool("raw", false, "use raw formatting for replies (default when stdout is not a tty)")
	noRaw := flag.Bool("no-raw", false, "force formatted output even when stdout is not a tty")
	timeout := flag.Duration("t", 5*time.Second, "connect and reply timeout")
	verbose := flag.Bool("verbose", false, "log connection details to stderr")
	version := flag.Bool("version", false, "output version and exit")
	flag.Parse()

	output := cmd.DefaultOutputMode()
	switch {
	case *raw:
		output = cmd.OutputRaw
	case *noRaw:
		output = cmd.OutputStandard
	}

	cli := cmd.NewCli(cmd.CliCfg{
		ConnInfo: cmd.CliConnInfo{HostIp: *host, HostPort: *port},
		Resp3:    *resp3,
		Output:   output,
		Timeout:  *timeout,
	}, os.Stdout)

	if *version {
		fmt.Println(cli.Version(node.GitSHA1(), node.GitDirty()), node.Version)
		return
	}

	if *verbose {
		if err := log.InitLogger("debug"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer log.Sync()
	}

	if err := cli.Run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Sync()
		os.Exit(1)
	}
}

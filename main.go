package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fzft/go-resp/config"
	"github.com/fzft/go-resp/log"
	"github.com/fzft/go-resp/node"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := log.InitLogger(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Logger.Info("starting",
		zap.String("server", node.ServerName),
		zap.String("version", node.Version),
		zap.String("git_sha1", node.GitSHA1()),
		zap.String("addr", cfg.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := node.NewServer(cfg).Run(ctx); err != nil {
		log.Logger.Error("server stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Logger.Info("bye")
}
